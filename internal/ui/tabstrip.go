package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/zhubert/scribe/internal/tabs"
)

// DirtyMarker is appended to the label of a tab with unsaved changes.
const DirtyMarker = "●"

// TabStrip renders one label per open tab.
type TabStrip struct {
	width int
}

// NewTabStrip creates an empty tab strip
func NewTabStrip() *TabStrip {
	return &TabStrip{}
}

// SetWidth sets the strip width
func (s *TabStrip) SetWidth(width int) {
	s.width = width
}

// TabLabel is the plain label for a tab: its truncated name plus the
// dirty marker.
func TabLabel(v tabs.TabView) string {
	label := ansi.Truncate(v.Name, MaxTabNameWidth, "…")
	if v.Dirty {
		label += " " + DirtyMarker
	}
	return label
}

func renderTab(v tabs.TabView) string {
	if v.Active {
		return TabActiveStyle.Render(TabLabel(v))
	}
	if v.Dirty {
		name := ansi.Truncate(v.Name, MaxTabNameWidth, "…")
		return TabStyle.Render(name + " " + TabDirtyStyle.Render(DirtyMarker))
	}
	return TabStyle.Render(TabLabel(v))
}

// tabWidth is the rendered cell width of a tab, including padding.
func tabWidth(v tabs.TabView) int {
	return runewidth.StringWidth(TabLabel(v)) + 2
}

// View renders the tabs. When they do not fit, the strip scrolls so the
// active tab stays visible and arrows mark the hidden side.
func (s *TabStrip) View(views []tabs.TabView) string {
	if len(views) == 0 {
		return lipgloss.NewStyle().Width(s.width).Render("")
	}

	first, last := s.window(views)

	var b strings.Builder
	if first > 0 {
		b.WriteString(TabOverflowStyle.Render("‹ "))
	}
	for i := first; i <= last; i++ {
		b.WriteString(renderTab(views[i]))
	}
	if last < len(views)-1 {
		b.WriteString(TabOverflowStyle.Render(" ›"))
	}

	line := b.String()
	if s.width > 0 {
		line = ansi.Truncate(line, s.width, "")
		return lipgloss.NewStyle().Width(s.width).Render(line)
	}
	return line
}

// window picks the widest run of tabs around the active one that fits.
func (s *TabStrip) window(views []tabs.TabView) (first, last int) {
	active := 0
	for i, v := range views {
		if v.Active {
			active = i
			break
		}
	}
	if s.width <= 0 {
		return 0, len(views) - 1
	}

	// Reserve room for both overflow arrows.
	budget := s.width - 4
	first, last = active, active
	used := tabWidth(views[active])
	for {
		grew := false
		if last+1 < len(views) && used+tabWidth(views[last+1]) <= budget {
			last++
			used += tabWidth(views[last])
			grew = true
		}
		if first > 0 && used+tabWidth(views[first-1]) <= budget {
			first--
			used += tabWidth(views[first])
			grew = true
		}
		if !grew {
			return first, last
		}
	}
}
