package modals

import (
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

const (
	optionNotifications = "notifications"
	optionAutostart     = "autostart"
)

// ModalWidthWide is the width of the settings modal.
var ModalWidthWide = 80

// SettingsValues is what the settings modal edits.
type SettingsValues struct {
	Theme                string
	Model                string
	BaseURL              string
	NotificationsEnabled bool
	Autostart            bool
}

// =============================================================================
// SettingsState - application settings
// =============================================================================

type SettingsState struct {
	Original SettingsValues

	theme          string
	model          string
	baseURL        string
	generalOptions []string
	availableWidth int

	form *huh.Form
}

func (*SettingsState) modalState() {}

func (s *SettingsState) PreferredWidth() int { return ModalWidthWide }

// SetSize updates the available width for rendering content.
func (s *SettingsState) SetSize(width, height int) {
	s.availableWidth = width
	s.form.WithWidth(s.contentWidth())
}

func (s *SettingsState) contentWidth() int {
	if s.availableWidth > 0 {
		return s.availableWidth - 10
	}
	return ModalWidthWide - 10
}

func (s *SettingsState) Title() string { return "Settings" }

func (s *SettingsState) Help() string {
	return "Tab: next field  Enter: save  Esc: cancel"
}

func (s *SettingsState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *SettingsState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, msg)
	return s, cmd
}

// Values returns the edited settings.
func (s *SettingsState) Values() SettingsValues {
	return SettingsValues{
		Theme:                s.theme,
		Model:                strings.TrimSpace(s.model),
		BaseURL:              strings.TrimSpace(s.baseURL),
		NotificationsEnabled: slices.Contains(s.generalOptions, optionNotifications),
		Autostart:            slices.Contains(s.generalOptions, optionAutostart),
	}
}

// ThemeChanged reports whether a different theme was picked
func (s *SettingsState) ThemeChanged() bool {
	return s.theme != s.Original.Theme
}

// ServerChanged reports whether the model or server address changed.
func (s *SettingsState) ServerChanged() bool {
	v := s.Values()
	return v.Model != s.Original.Model || v.BaseURL != s.Original.BaseURL
}

// NewSettingsState creates the settings form. themes and themeDisplayNames
// are parallel slices; installedModels comes from the last successful probe
// and turns the model field into a picker when non-empty.
func NewSettingsState(themes, themeDisplayNames []string, current SettingsValues, installedModels []string) *SettingsState {
	s := &SettingsState{
		Original: current,
		theme:    current.Theme,
		model:    current.Model,
		baseURL:  current.BaseURL,
	}
	if current.NotificationsEnabled {
		s.generalOptions = append(s.generalOptions, optionNotifications)
	}
	if current.Autostart {
		s.generalOptions = append(s.generalOptions, optionAutostart)
	}

	themeOptions := make([]huh.Option[string], len(themes))
	for i := range themes {
		themeOptions[i] = huh.NewOption(themeDisplayNames[i], themes[i])
	}

	var modelField huh.Field
	if len(installedModels) > 0 {
		models := installedModels
		if current.Model != "" && !slices.Contains(models, current.Model) {
			models = append([]string{current.Model}, models...)
		}
		modelOptions := make([]huh.Option[string], len(models))
		for i, name := range models {
			modelOptions[i] = huh.NewOption(name, name)
		}
		modelField = huh.NewSelect[string]().
			Title("Model").
			Options(modelOptions...).
			Value(&s.model)
	} else {
		modelField = huh.NewInput().
			Title("Model").
			Description("No installed models reported; type a name").
			Placeholder("llama3.2:3b").
			CharLimit(ModalInputCharLimit).
			Value(&s.model)
	}

	generalOpts := []huh.Option[string]{
		huh.NewOption("Desktop notifications", optionNotifications).
			Selected(current.NotificationsEnabled),
		huh.NewOption("Start ollama serve when offline", optionAutostart).
			Selected(current.Autostart),
	}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(themeOptions...).
				Value(&s.theme),
			modelField,
			huh.NewInput().
				Title("Ollama URL").
				Placeholder("http://localhost:11434").
				CharLimit(ModalInputCharLimit).
				Value(&s.baseURL),
			huh.NewMultiSelect[string]().
				Title("Options").
				Options(generalOpts...).
				Height(len(generalOpts)).
				Value(&s.generalOptions),
		),
	).WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(s.contentWidth()).
		WithLayout(huh.LayoutStack)

	initHuhForm(s.form)
	return s
}
