package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/noro/internal/ui"
)

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	visible := ui.SidebarFits(m.width)
	if visible != m.session.Sidebar().Visible {
		m.session.SetSidebarVisible(visible)
		m.sidebar.SetState(m.session.Sidebar())
		if !visible && m.focus == ui.PaneSidebar {
			m.setFocus(ui.PaneComposer)
		}
	}

	ctx := ui.GetViewContext()
	ctx.UpdateLayout(m.width, m.height, m.session.Sidebar())

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.SidebarWidth, ctx.ContentHeight)
	m.chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
}

// footerContext is what the footer needs to pick its key hints.
func (m *Model) footerContext() ui.FooterContext {
	e, selected := m.chat.SelectedEntry()
	active := m.session.ChatActive()
	return ui.FooterContext{
		Focus:        m.focus,
		ChatActive:   active,
		HasEntries:   active && m.session.Len() > 0,
		CanEdit:      active && selected && e.IsUser(),
		ModalVisible: m.modal.IsVisible(),
	}
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	v.ReportFocus = true
	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	m.footer.SetContext(m.footerContext())

	panels := m.chat.View()
	if m.session.Sidebar().Visible {
		panels = lipgloss.JoinHorizontal(lipgloss.Top, m.sidebar.View(), panels)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.header.View(),
		panels,
		m.footer.View(),
	)
}
