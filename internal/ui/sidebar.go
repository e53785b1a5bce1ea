package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/rivo/uniseg"

	"github.com/zhubert/noro/internal/keys"
	"github.com/zhubert/noro/internal/transcript"
)

// Sidebar glyphs.
const (
	LogoGlyph     = "◆"
	NewChatGlyph  = "+"
	CollapseGlyph = "‹"
	ExpandGlyph   = "›"
)

// SidebarItem is a selectable row in the sidebar.
type SidebarItem int

const (
	SidebarItemLogo SidebarItem = iota
	SidebarItemToggle
	SidebarItemNewChat
)

var sidebarItems = []SidebarItem{SidebarItemLogo, SidebarItemToggle, SidebarItemNewChat}

// SidebarActionMsg is emitted when the user activates a sidebar item.
type SidebarActionMsg struct {
	Item SidebarItem
}

// Sidebar is the collapsible left rail.
type Sidebar struct {
	width       int
	height      int
	focused     bool
	expanded    bool
	selectedIdx int
	chatPreview string
}

// NewSidebar creates a new sidebar
func NewSidebar() *Sidebar {
	return &Sidebar{}
}

// SetSize sets the outer sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height
}

// Width returns the outer width
func (s *Sidebar) Width() int { return s.width }

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetState applies the session's sidebar flags.
func (s *Sidebar) SetState(state transcript.SidebarState) {
	s.expanded = state.Expanded
}

// IsExpanded returns whether the wide layout is shown
func (s *Sidebar) IsExpanded() bool {
	return s.expanded
}

// SetChatPreview sets the text shown under the title for the current chat.
// An empty preview hides the row.
func (s *Sidebar) SetChatPreview(text string) {
	s.chatPreview = firstLine(text)
}

// SelectedItem returns the highlighted item
func (s *Sidebar) SelectedItem() SidebarItem {
	return sidebarItems[s.selectedIdx]
}

// Select highlights an item
func (s *Sidebar) Select(item SidebarItem) {
	for i, it := range sidebarItems {
		if it == item {
			s.selectedIdx = i
			return
		}
	}
}

// Update handles navigation keys while focused. Enter emits a
// SidebarActionMsg for the highlighted item.
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	if !s.focused {
		return s, nil
	}
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch keyMsg.String() {
	case keys.Up, "k":
		if s.selectedIdx > 0 {
			s.selectedIdx--
		}
	case keys.Down, "j":
		if s.selectedIdx < len(sidebarItems)-1 {
			s.selectedIdx++
		}
	case keys.Home:
		s.selectedIdx = 0
	case keys.End:
		s.selectedIdx = len(sidebarItems) - 1
	case keys.Enter, keys.Space:
		item := s.SelectedItem()
		return s, func() tea.Msg { return SidebarActionMsg{Item: item} }
	}
	return s, nil
}

func (s *Sidebar) renderItem(item SidebarItem, label string, innerWidth int) string {
	style := SidebarItemStyle
	if s.focused && s.SelectedItem() == item {
		style = SidebarSelectedStyle
	}
	// Item styles add one column of padding on each side.
	return style.Width(innerWidth).Render(truncateWidth(label, innerWidth-2))
}

// View renders the sidebar
func (s *Sidebar) View() string {
	if s.width <= 0 {
		return ""
	}

	panelStyle := PanelStyle
	if s.focused {
		panelStyle = PanelFocusedStyle
	}

	ctx := GetViewContext()
	innerWidth := ctx.InnerWidth(s.width)
	innerHeight := ctx.InnerHeight(s.height)

	var top []string
	if s.expanded {
		top = append(top,
			s.renderItem(SidebarItemLogo, SidebarLogoStyle.Render(LogoGlyph)+" "+AppTitle, innerWidth),
			s.renderItem(SidebarItemToggle, CollapseGlyph+" collapse", innerWidth),
		)
		if s.chatPreview != "" {
			top = append(top, "", SidebarMutedStyle.Render(" "+truncateWidth(s.chatPreview, innerWidth-2)))
		}
	} else {
		top = append(top,
			s.renderItem(SidebarItemLogo, SidebarLogoStyle.Render(LogoGlyph), innerWidth),
			s.renderItem(SidebarItemToggle, ExpandGlyph, innerWidth),
		)
	}

	newChat := NewChatGlyph
	if s.expanded {
		newChat = "New Chat " + NewChatGlyph
	}
	bottom := s.renderItem(SidebarItemNewChat, newChat, innerWidth)

	topBlock := strings.Join(top, "\n")
	gap := innerHeight - lipgloss.Height(topBlock) - lipgloss.Height(bottom)
	if gap < 1 {
		gap = 1
	}
	content := topBlock + strings.Repeat("\n", gap+1) + bottom

	return panelStyle.Width(s.width).Height(s.height).Render(content)
}

// firstLine returns the first non-empty line of text, trimmed.
func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// truncateWidth shortens s to at most width terminal cells, ending in an
// ellipsis when cut. It never splits a grapheme cluster.
func truncateWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if uniseg.StringWidth(ansi.Strip(s)) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}
