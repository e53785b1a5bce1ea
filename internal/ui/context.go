package ui

import (
	"sync"

	"github.com/zhubert/noro/internal/logger"
	"github.com/zhubert/noro/internal/transcript"
)

// ViewContext holds centralized layout calculations.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Calculated dimensions
	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	SidebarWidth  int
	ChatWidth     int

	mu sync.Mutex
}

var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
	})
	return ctx
}

// SidebarWidthFor returns the outer sidebar width for the given state.
func SidebarWidthFor(state transcript.SidebarState) int {
	switch {
	case !state.Visible:
		return 0
	case state.Expanded:
		return SidebarExpandedWidth
	default:
		return SidebarCollapsedWidth
	}
}

// SidebarFits reports whether a terminal of the given width has room for
// the sidebar.
func SidebarFits(terminalWidth int) bool {
	return terminalWidth >= MinSidebarTerminalWidth
}

// UpdateLayout recalculates all dimensions for a terminal size and sidebar
// state. It should be called from the main event loop on resize and
// whenever the sidebar changes.
func (v *ViewContext) UpdateLayout(width, height int, sidebar transcript.SidebarState) {
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
	v.HeaderHeight = HeaderHeight
	v.FooterHeight = FooterHeight
	v.ContentHeight = height - v.HeaderHeight - v.FooterHeight
	v.SidebarWidth = SidebarWidthFor(sidebar)
	v.ChatWidth = width - v.SidebarWidth

	logger.WithComponent("ui").Debug("layout updated",
		"width", width,
		"height", height,
		"contentHeight", v.ContentHeight,
		"sidebarWidth", v.SidebarWidth,
		"chatWidth", v.ChatWidth,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return max(panelWidth-BorderSize, 0)
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return max(panelHeight-BorderSize, 0)
}
