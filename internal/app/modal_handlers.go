package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/noro/internal/keys"
	"github.com/zhubert/noro/internal/ui"
	"github.com/zhubert/noro/internal/ui/modals"
)

// handleModalKey routes modal key events to the handler for the visible
// modal.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.HelpState:
		return m.handleHelpModal(key, msg, s)
	case *modals.SettingsState:
		return m.handleSettingsModal(key, msg, s)
	}

	if key == keys.Escape {
		m.modal.Hide()
		return m, nil
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleHelpModal handles key events for the Help modal.
func (m *Model) handleHelpModal(key string, msg tea.KeyPressMsg, state *modals.HelpState) (tea.Model, tea.Cmd) {
	// While filtering, forward all keys to the list (Esc cancels filter, Enter applies)
	if state.IsFiltering() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	switch key {
	case keys.Escape, "?", "q":
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		shortcut := state.GetSelectedShortcut()
		if shortcut == nil {
			return m, nil
		}
		m.modal.Hide()
		return m, func() tea.Msg {
			return modals.HelpShortcutTriggeredMsg{Key: shortcut.Key}
		}
	}
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleHelpShortcutTrigger runs a shortcut picked in the help modal.
func (m *Model) handleHelpShortcutTrigger(display string) (tea.Model, tea.Cmd) {
	key := keyForDisplay(display)
	if key == "" {
		return m, nil // Display-only shortcut, no action
	}
	result, cmd, _ := m.ExecuteShortcut(key)
	return result, cmd
}

// handleSettingsModal handles key events for the Settings modal.
func (m *Model) handleSettingsModal(key string, msg tea.KeyPressMsg, state *modals.SettingsState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if err := state.Validate(); err != nil {
			m.modal.SetError(err.Error())
			return m, nil
		}
		v := state.Values()

		if state.ThemeChanged() {
			ui.SetThemeByName(v.Theme)
			m.config.SetTheme(string(ui.CurrentThemeName()))
			m.syncChat()
		}
		m.config.SetNotificationsEnabled(v.NotificationsEnabled)
		m.config.SetSidebarExpanded(v.SidebarExpanded)
		m.config.SetReplyDelay(v.ReplyDelay)
		m.session.SetReplyDelay(v.ReplyDelay)

		m.modal.Hide()
		return m, m.saveConfigOrFlash()
	}
	// Forward other keys to the form
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
