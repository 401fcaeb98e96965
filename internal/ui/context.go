package ui

import (
	"sync"

	"github.com/zhubert/scribe/internal/logger"
)

// ViewContext holds centralized layout calculations.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int

	// ContentHeight is everything between the tab strip and the footer.
	ContentHeight  int
	EditorWidth    int
	SidePanelWidth int
	SidePanelOpen  bool

	mu sync.Mutex
}

var (
	ctx     *ViewContext
	ctxOnce sync.Once
)

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{}
		logger.WithComponent("ui").Debug("ViewContext initialized")
	})
	return ctx
}

// UpdateTerminalSize recalculates all dimensions when the terminal is resized.
func (v *ViewContext) UpdateTerminalSize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	if height < MinTerminalHeight {
		height = MinTerminalHeight
	}
	v.TerminalWidth = width
	v.TerminalHeight = height
	v.recalc()
}

// SetSidePanelOpen splits the content area when the side panel is shown.
func (v *ViewContext) SetSidePanelOpen(open bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.SidePanelOpen = open
	v.recalc()
}

func (v *ViewContext) recalc() {
	v.ContentHeight = v.TerminalHeight - HeaderHeight - TabStripHeight - FooterHeight
	if v.SidePanelOpen {
		v.SidePanelWidth = v.TerminalWidth * SidePanelWidthParts / SidePanelWidthRatio
	} else {
		v.SidePanelWidth = 0
	}
	v.EditorWidth = v.TerminalWidth - v.SidePanelWidth

	logger.WithComponent("ui").Debug("layout updated",
		"width", v.TerminalWidth,
		"height", v.TerminalHeight,
		"contentHeight", v.ContentHeight,
		"editorWidth", v.EditorWidth,
		"sidePanelWidth", v.SidePanelWidth,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}
