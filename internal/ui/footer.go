package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// Pane identifies which part of the screen has keyboard focus.
type Pane int

const (
	PaneSidebar Pane = iota
	PaneTranscript
	PaneComposer
)

func (p Pane) String() string {
	switch p {
	case PaneSidebar:
		return "sidebar"
	case PaneTranscript:
		return "transcript"
	default:
		return "composer"
	}
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType selects the icon and color of a flash message.
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays up.
const DefaultFlashDuration = 3 * time.Second

// flashTickInterval is how often expiry is checked.
const flashTickInterval = 500 * time.Millisecond

// FlashMessage is a transient message shown in place of the key hints.
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration.
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) >= f.Duration
}

// FlashTickMsg drives flash expiry.
type FlashTickMsg time.Time

// FlashTick returns a command that fires a FlashTickMsg.
func FlashTick() tea.Cmd {
	return tea.Tick(flashTickInterval, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// FooterContext is what the footer needs to pick its bindings.
type FooterContext struct {
	Focus      Pane
	ChatActive bool
	HasEntries bool
	// CanEdit is true when the selected transcript entry is a user entry.
	CanEdit      bool
	ModalVisible bool
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	ctx          FooterContext
	flashMessage *FlashMessage
	bindings     []KeyBinding
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		ctx: FooterContext{Focus: PaneComposer},
		bindings: []KeyBinding{
			{Key: "tab", Desc: "switch pane"},
			{Key: "ctrl+n", Desc: "new chat"},
			{Key: "ctrl+b", Desc: "sidebar"},
			{Key: "ctrl+o", Desc: "settings"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(ctx FooterContext) {
	f.ctx = ctx
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetFlash shows a flash message for DefaultFlashDuration.
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for a custom duration.
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message.
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is showing.
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired drops an expired flash and reports whether it did.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// Bindings returns the key hints for the current context.
func (f *Footer) Bindings() []KeyBinding {
	if f.ctx.ModalVisible {
		return []KeyBinding{
			{Key: "enter", Desc: "confirm"},
			{Key: "esc", Desc: "close"},
		}
	}

	switch f.ctx.Focus {
	case PaneComposer:
		return []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "tab", Desc: "switch pane"},
			{Key: "ctrl+n", Desc: "new chat"},
			{Key: "ctrl+b", Desc: "sidebar"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	case PaneTranscript:
		if !f.ctx.ChatActive {
			return []KeyBinding{
				{Key: "←/→", Desc: "choose"},
				{Key: "enter", Desc: "start"},
				{Key: "tab", Desc: "switch pane"},
				{Key: "?", Desc: "help"},
				{Key: "q", Desc: "quit"},
			}
		}
		b := []KeyBinding{{Key: "↑/↓", Desc: "select"}}
		if f.ctx.HasEntries {
			b = append(b, KeyBinding{Key: "c", Desc: "copy"})
		}
		if f.ctx.CanEdit {
			b = append(b, KeyBinding{Key: "e", Desc: "edit"})
		}
		return append(b,
			KeyBinding{Key: "pgup/dn", Desc: "scroll"},
			KeyBinding{Key: "tab", Desc: "switch pane"},
			KeyBinding{Key: "q", Desc: "quit"},
		)
	default:
		return f.bindings
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		return FooterStyle.Width(f.width).Render(renderFlash(f.flashMessage))
	}

	var parts []string
	for _, b := range f.Bindings() {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}
	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	return FooterStyle.Width(f.width).Render(content)
}

func renderFlash(msg *FlashMessage) string {
	var icon string
	var c = ColorInfo
	switch msg.Type {
	case FlashError:
		icon, c = "✕", ColorError
	case FlashWarning:
		icon, c = "⚠", ColorWarning
	case FlashSuccess:
		icon, c = "✓", ColorSuccess
	default:
		icon = "ℹ"
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(icon + " " + msg.Text)
}
