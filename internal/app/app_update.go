package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/noro/internal/keys"
	"github.com/zhubert/noro/internal/notification"
	"github.com/zhubert/noro/internal/transcript"
	"github.com/zhubert/noro/internal/ui"
	"github.com/zhubert/noro/internal/ui/modals"
)

// Update handles messages. This is the core Bubble Tea update function that routes
// all messages to appropriate handlers.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		return m, nil

	case tea.FocusMsg:
		m.windowFocused = true
		m.log.Debug("window focused")
		return m, nil

	case tea.BlurMsg:
		m.windowFocused = false
		m.log.Debug("window blurred")
		return m, nil

	case tea.KeyPressMsg:
		if result, cmd := m.handleKeyPress(msg); result != nil {
			return result, cmd
		}
		// Key not handled by handleKeyPress, let it fall through to focused panel

	case BotReplyMsg:
		return m.handleBotReply(msg)

	case ui.SidebarActionMsg:
		return m.handleSidebarAction(msg.Item)

	case ui.TypingTickMsg:
		return m, m.chat.AdvanceTyping()

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() || !m.footer.HasFlash() {
			return m, nil
		}
		return m, ui.FlashTick()

	case modals.HelpShortcutTriggeredMsg:
		return m.handleHelpShortcutTrigger(msg.Key)

	case ClipboardUnavailableMsg:
		m.log.Warn("clipboard unavailable", "error", msg.Err)
		return m, m.ShowFlashWarning("Clipboard unavailable; copy is disabled")
	}

	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		return m, cmd
	}

	if m.focus == ui.PaneSidebar {
		if _, isKey := msg.(tea.KeyPressMsg); isKey {
			sidebar, cmd := m.sidebar.Update(msg)
			m.sidebar = sidebar
			return m, cmd
		}
	}

	// Mouse wheel and paste go to the chat panel regardless of focus.
	chat, cmd := m.chat.Update(msg)
	m.chat = chat
	if m.focus == ui.PaneComposer {
		m.syncDraft()
	}
	return m, cmd
}

// handleKeyPress handles keyboard input that is not plain typing.
// Returns (model, cmd) if the key was handled, or (nil, nil) if it should fall through
// to the focused panel for handling.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.log.Debug("key pressed", "key", key, "focus", m.focus.String(), "modal", m.modal.IsVisible())

	// Handle modal first if visible
	if m.modal.IsVisible() {
		return m.handleModalKey(msg)
	}

	// ctrl+c always quits
	if key == keys.CtrlC {
		return m, tea.Quit
	}

	if result, cmd, handled := m.ExecuteShortcut(key); handled {
		return result, cmd
	}

	if key == keys.Enter {
		return m.handleEnterKey()
	}

	return nil, nil
}

// handleEnterKey sends the draft, activates a landing button, or leaves the
// key to the sidebar, depending on focus.
func (m *Model) handleEnterKey() (tea.Model, tea.Cmd) {
	switch m.focus {
	case ui.PaneComposer:
		return m.sendMessage()
	case ui.PaneTranscript:
		if !m.session.ChatActive() {
			return m.activateCTA(m.chat.SelectedCTA())
		}
		return m, nil
	default:
		return nil, nil
	}
}

// sendMessage commits the composer text and schedules the bot reply.
func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	m.syncDraft()
	pending := m.session.SendMessage()
	m.chat.SetInput(m.session.Draft())
	if pending == nil {
		return m, nil
	}
	return m, tea.Batch(scheduleReply(pending), m.chat.SetPending(m.chat.Pending()+1))
}

// scheduleReply returns a command that delivers the reply after its delay.
// Replies are never cancelled; ticks with equal delays fire in order.
func scheduleReply(p *transcript.PendingReply) tea.Cmd {
	return tea.Tick(p.Delay, func(time.Time) tea.Msg {
		return BotReplyMsg{Pending: p}
	})
}

// handleBotReply appends a due bot reply and, if the terminal is in the
// background, announces it.
func (m *Model) handleBotReply(msg BotReplyMsg) (tea.Model, tea.Cmd) {
	if m.session.Closed() {
		return m, nil
	}
	m.chat.SetPending(m.chat.Pending() - 1)
	before := m.session.Len()
	m.session.DeliverReply(msg.Pending)
	if m.session.Len() == before {
		return m, nil
	}

	if m.windowFocused || !m.config.GetNotificationsEnabled() {
		return m, nil
	}
	entries := m.session.Entries()
	text := entries[len(entries)-1].Text
	return m, func() tea.Msg {
		// Failures are logged by the notification package.
		_ = notification.ReplyArrived(text)
		return nil
	}
}

// activateCTA loads a landing button's starter prompt into the composer.
func (m *Model) activateCTA(cta ui.CTA) (tea.Model, tea.Cmd) {
	m.log.Debug("landing button activated", "label", cta.Label)
	m.session.UpdateDraft(cta.Prompt)
	m.chat.SetInput(cta.Prompt)
	m.setFocus(ui.PaneComposer)
	return m, nil
}

// handleSidebarAction runs the action behind a sidebar item.
func (m *Model) handleSidebarAction(item ui.SidebarItem) (tea.Model, tea.Cmd) {
	switch item {
	case ui.SidebarItemLogo:
		m.session.ExpandSidebar()
		m.syncSidebar()
	case ui.SidebarItemToggle:
		m.session.ToggleSidebar()
		m.syncSidebar()
	case ui.SidebarItemNewChat:
		return m.newChat()
	}
	return m, nil
}

// newChat clears the transcript and returns to the landing screen. The
// composer text is kept.
func (m *Model) newChat() (tea.Model, tea.Cmd) {
	m.session.StartNewChat()
	m.setFocus(ui.PaneComposer)
	return m, nil
}

// copySelected copies the selected transcript entry.
func (m *Model) copySelected() (tea.Model, tea.Cmd) {
	e, ok := m.chat.SelectedEntry()
	if !ok {
		return m, nil
	}
	m.session.CopyMessage(e.Text)
	return m, m.ShowFlashSuccess(ui.CopiedFlash)
}

// editSelected moves the selected user entry back into the composer.
func (m *Model) editSelected() (tea.Model, tea.Cmd) {
	e, ok := m.chat.SelectedEntry()
	if !ok || !e.IsUser() {
		return m, nil
	}
	m.syncDraft()
	if !m.session.EditMessage(e.ID) {
		return m, nil
	}
	m.chat.SetInput(m.session.Draft())
	m.setFocus(ui.PaneComposer)
	return m, nil
}
