package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
	"github.com/zhubert/scribe/internal/ui/modals"
)

// Color palette, populated from the active theme.
var (
	ColorPrimary     color.Color
	ColorSecondary   color.Color
	ColorBorder      color.Color
	ColorBorderFocus color.Color
	ColorBg          color.Color
	ColorBgSelected  color.Color
	ColorText        color.Color
	ColorTextMuted   color.Color
	ColorTextInverse color.Color
	ColorWarning     color.Color
	ColorInfo        color.Color
	ColorError       color.Color
	ColorSuccess     color.Color
	ColorDirty       color.Color
)

// Header and tab strip styles
var (
	HeaderTitleStyle   lipgloss.Style
	StatusOnlineStyle  lipgloss.Style
	StatusOfflineStyle lipgloss.Style
	StatusUnknownStyle lipgloss.Style

	TabStyle         lipgloss.Style
	TabActiveStyle   lipgloss.Style
	TabDirtyStyle    lipgloss.Style
	TabOverflowStyle lipgloss.Style
)

// Footer styles
var (
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
	FooterInfoStyle lipgloss.Style
)

// Panel styles
var (
	PanelStyle        lipgloss.Style
	PanelFocusedStyle lipgloss.Style
	PanelTitleStyle   lipgloss.Style
	EmptyStateStyle   lipgloss.Style
	SelectionStyle    lipgloss.Style
)

// Modal styles
var (
	ModalStyle        lipgloss.Style
	ModalTitleStyle   lipgloss.Style
	ModalHelpStyle    lipgloss.Style
	ListItemStyle     lipgloss.Style
	ListSelectedStyle lipgloss.Style
)

// Status styles
var (
	StatusLoadingStyle lipgloss.Style
	StatusErrorStyle   lipgloss.Style
)

// Markdown styles for the side panel
var (
	MarkdownH1Style         lipgloss.Style
	MarkdownH2Style         lipgloss.Style
	MarkdownH3Style         lipgloss.Style
	MarkdownBoldStyle       lipgloss.Style
	MarkdownInlineCodeStyle lipgloss.Style
	MarkdownListBulletStyle lipgloss.Style
	MarkdownBlockquoteStyle lipgloss.Style
	MarkdownHRStyle         lipgloss.Style
)

func init() {
	regenerateStyles()
	RefreshModalStyles()
}

func buildStyles() {
	t := currentTheme

	HeaderTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	StatusOnlineStyle = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	StatusOfflineStyle = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	StatusUnknownStyle = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)

	TabStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)
	TabActiveStyle = lipgloss.NewStyle().
		Foreground(ColorTextInverse).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)
	TabDirtyStyle = lipgloss.NewStyle().Foreground(ColorDirty)
	TabOverflowStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)
	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)
	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)
	FooterInfoStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)
	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)
	PanelTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		Padding(0, 1)
	EmptyStateStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)
	SelectionStyle = lipgloss.NewStyle().
		Background(ColorBgSelected).
		Foreground(ColorText)

	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(1, 2).
		Width(ModalWidth)
	ModalTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimary).
		MarginBottom(1)
	ModalHelpStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		MarginTop(1)
	ListItemStyle = lipgloss.NewStyle().
		Padding(0, 1)
	ListSelectedStyle = lipgloss.NewStyle().
		Background(ColorBgSelected).
		Foreground(ColorText).
		Bold(true).
		Padding(0, 1)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	MarkdownH1Style = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownH1)).
		Bold(true).
		Underline(true)
	MarkdownH2Style = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownH2)).
		Bold(true)
	MarkdownH3Style = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownH3)).
		Bold(true)
	MarkdownBoldStyle = lipgloss.NewStyle().Bold(true)
	MarkdownInlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownCode)).
		Background(lipgloss.Color(t.MarkdownCodeBg))
	MarkdownListBulletStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownListItem))
	MarkdownBlockquoteStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true).
		PaddingLeft(2)
	MarkdownHRStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)
}

// RefreshModalStyles pushes the current styles into the modals package.
func RefreshModalStyles() {
	modals.SetStyles(
		ModalTitleStyle, ModalHelpStyle, ListItemStyle, ListSelectedStyle, StatusErrorStyle,
		ColorPrimary, ColorSecondary, ColorText, ColorTextMuted, ColorTextInverse, ColorWarning,
		ModalInputWidth, ModalInputCharLimit, ModalWidth,
	)
}
