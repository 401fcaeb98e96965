package ui

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// ConnectionStatus is what the header shows about the inference server.
type ConnectionStatus int

const (
	StatusChecking ConnectionStatus = iota
	StatusConnected
	StatusOffline
)

// Text is the label shown in the header.
func (s ConnectionStatus) Text() string {
	switch s {
	case StatusConnected:
		return "Ollama Connected"
	case StatusOffline:
		return "Ollama Offline (Editor Only)"
	default:
		return "Checking Ollama..."
	}
}

func (s ConnectionStatus) style() lipgloss.Style {
	switch s {
	case StatusConnected:
		return StatusOnlineStyle
	case StatusOffline:
		return StatusOfflineStyle
	default:
		return StatusUnknownStyle
	}
}

const headerTitle = " scribe"

// Header represents the top header bar
type Header struct {
	width  int
	status ConnectionStatus
	model  string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetStatus sets the inference server status
func (h *Header) SetStatus(status ConnectionStatus) {
	h.status = status
}

// Status returns the displayed inference server status
func (h *Header) Status() ConnectionStatus {
	return h.status
}

// SetModel sets the model name shown next to the status
func (h *Header) SetModel(model string) {
	h.model = model
}

// View renders the header
func (h *Header) View() string {
	statusText := h.status.Text()
	rightText := statusText + " "
	if h.model != "" && h.status == StatusConnected {
		rightText = h.model + " | " + rightText
	}

	paddingLen := h.width - runewidth.StringWidth(headerTitle) - runewidth.StringWidth(rightText)
	if paddingLen < 1 {
		paddingLen = 1
	}
	content := headerTitle + strings.Repeat(" ", paddingLen) + rightText

	statusStart := len([]rune(content)) - len([]rune(statusText)) - 1
	return renderGradient(content, statusStart, h.status.style().GetForeground())
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient paints content over a background fading from the theme's
// primary color into its background. Runes from highlightFrom onward use
// highlight as their foreground.
func renderGradient(content string, highlightFrom int, highlight color.Color) string {
	if content == "" {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)

	runes := []rune(content)
	width := len(runes)
	titleLen := len([]rune(headerTitle))
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < titleLen)
		if highlightFrom >= 0 && i >= highlightFrom && highlight != nil {
			style = style.Foreground(highlight)
		} else {
			style = style.Foreground(textColor)
		}
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
