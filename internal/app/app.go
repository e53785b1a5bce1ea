package app

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/zhubert/noro/internal/clipboard"
	"github.com/zhubert/noro/internal/config"
	"github.com/zhubert/noro/internal/logger"
	"github.com/zhubert/noro/internal/transcript"
	"github.com/zhubert/noro/internal/ui"
)

// paneOrder is the tab order between panes.
var paneOrder = []ui.Pane{ui.PaneSidebar, ui.PaneTranscript, ui.PaneComposer}

// Model is the main Bubble Tea model. It owns the chat session; the ui
// components only render what the session holds.
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)
	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	session *transcript.Session
	log     *slog.Logger

	width  int
	height int
	focus  ui.Pane

	// windowFocused tracks terminal focus reports; replies that land while
	// the window is blurred trigger a desktop notification.
	windowFocused bool
	// systemClipboard is set when copies go to the real clipboard, which
	// is initialized in the background on start.
	systemClipboard bool
}

// BotReplyMsg is sent when a scheduled bot reply is due.
type BotReplyMsg struct {
	Pending *transcript.PendingReply
}

// ClipboardUnavailableMsg reports that no clipboard backend could start.
type ClipboardUnavailableMsg struct {
	Err error
}

type options struct {
	responses transcript.ResponseSource
	clipboard transcript.ClipboardSink
	clock     func() time.Time
}

// Option configures New.
type Option func(*options)

// WithResponses replaces the canned bot replies.
func WithResponses(r transcript.ResponseSource) Option {
	return func(o *options) { o.responses = r }
}

// WithClipboard replaces the system clipboard.
func WithClipboard(c transcript.ClipboardSink) Option {
	return func(o *options) { o.clipboard = c }
}

// WithClock replaces time.Now for entry ids and timestamps.
func WithClock(fn func() time.Time) Option {
	return func(o *options) { o.clock = fn }
}

// New creates a new app model
func New(cfg *config.Config, version string, opts ...Option) *Model {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	systemClipboard := o.clipboard == nil
	if systemClipboard {
		o.clipboard = clipboard.System{}
	}

	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:          cfg,
		version:         version,
		header:          ui.NewHeader(),
		footer:          ui.NewFooter(),
		sidebar:         ui.NewSidebar(),
		chat:            ui.NewChat(),
		modal:           ui.NewModal(),
		focus:           ui.PaneComposer,
		windowFocused:   true,
		systemClipboard: systemClipboard,
	}
	m.session = transcript.New(transcript.Options{
		Responses:  o.responses,
		Clipboard:  o.clipboard,
		Scroller:   m,
		Clock:      o.clock,
		ReplyDelay: cfg.GetReplyDelay(),
	})
	m.log = logger.WithComponent("app").With("session", m.session.ID())

	if cfg.GetSidebarExpanded() {
		m.session.ExpandSidebar()
	}
	m.sidebar.SetState(m.session.Sidebar())
	m.applyFocus()
	m.syncChat()

	m.log.Info("app started", "version", version, "theme", ui.CurrentThemeName())
	return m
}

// Session returns the chat session.
func (m *Model) Session() *transcript.Session {
	return m.session
}

// Focus returns the pane that receives keys.
func (m *Model) Focus() ui.Pane {
	return m.focus
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	if !m.systemClipboard {
		return nil
	}
	return func() tea.Msg {
		if err := clipboard.Init(); err != nil {
			return ClipboardUnavailableMsg{Err: err}
		}
		return nil
	}
}

// Close stops the session. Replies still in flight are dropped.
func (m *Model) Close() {
	m.session.Close()
	m.log.Info("app closed", "entries", m.session.Len())
}

// ScrollToBottom re-renders the transcript and scrolls to the newest entry.
// The session calls it after every transcript change.
func (m *Model) ScrollToBottom() {
	m.syncChat()
	m.chat.ScrollToBottom()
}

// syncChat copies session state into the chat panel, header and sidebar.
func (m *Model) syncChat() {
	entries := m.session.Entries()
	active := m.session.ChatActive()

	m.chat.SetEntries(entries, active)
	m.header.SetChat(active, len(entries))

	preview := ""
	for _, e := range entries {
		if e.IsUser() {
			preview = e.Text
			break
		}
	}
	m.sidebar.SetChatPreview(preview)
}

// syncDraft pulls the composer text into the session draft.
func (m *Model) syncDraft() {
	if m.chat.GetInput() != m.session.Draft() {
		m.session.UpdateDraft(m.chat.GetInput())
	}
}

// syncSidebar applies the session's sidebar flags and relays out the screen.
func (m *Model) syncSidebar() {
	m.sidebar.SetState(m.session.Sidebar())
	if !m.session.Sidebar().Visible && m.focus == ui.PaneSidebar {
		m.setFocus(ui.PaneComposer)
	}
	if m.width > 0 && m.height > 0 {
		m.updateSizes()
	}
}

// setFocus moves keyboard focus to p.
func (m *Model) setFocus(p ui.Pane) {
	if m.focus != p {
		m.log.Debug("focus changed", "from", m.focus.String(), "to", p.String())
	}
	m.focus = p
	m.applyFocus()
}

func (m *Model) applyFocus() {
	m.sidebar.SetFocused(m.focus == ui.PaneSidebar)
	m.chat.SetFocus(m.focus)
}

// cycleFocus moves focus forward (dir=1) or backward (dir=-1) through the
// panes, skipping a hidden sidebar.
func (m *Model) cycleFocus(dir int) {
	idx := 0
	for i, p := range paneOrder {
		if p == m.focus {
			idx = i
			break
		}
	}
	for range paneOrder {
		idx = (idx + dir + len(paneOrder)) % len(paneOrder)
		if paneOrder[idx] == ui.PaneSidebar && !m.session.Sidebar().Visible {
			continue
		}
		break
	}
	m.setFocus(paneOrder[idx])
}
