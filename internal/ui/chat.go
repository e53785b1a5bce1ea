package ui

import (
	"slices"
	"strings"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/zhubert/noro/internal/keys"
	"github.com/zhubert/noro/internal/transcript"
)

// CTA is a call-to-action button on the landing screen.
type CTA struct {
	Label string
	// Prompt is loaded into the composer when the button is activated.
	Prompt string
}

// LandingCTAs are the buttons shown while no chat is active.
var LandingCTAs = []CTA{
	{Label: "Create an AI Agent", Prompt: "Help me create an AI agent that "},
	{Label: "Generate Profile Picture", Prompt: "Generate a profile picture of "},
}

// BotAvatar marks bot entries in the transcript.
const BotAvatar = "◉"

// Chat is the main panel: landing screen or transcript, plus the composer.
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focus    Pane
	focused  bool

	entries     []transcript.Entry
	chatActive  bool
	selectedIdx int
	selectedID  int64 // id of entries[selectedIdx], valid while selectedIdx >= 0
	ctaIdx      int
	typing      typingState

	// entryStart is the first content line of each rendered entry.
	entryStart []int
}

// NewChat creates a new chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = ComposerPlaceholder
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport:    vp,
		input:       ti,
		focus:       PaneComposer,
		selectedIdx: -1,
	}
	c.updateContent()
	return c
}

// SetSize sets the chat panel dimensions
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()
	viewportHeight := max(ctx.InnerHeight(height-InputTotalHeight), 1)

	c.viewport.SetWidth(ctx.InnerWidth(width))
	c.viewport.SetHeight(viewportHeight)
	c.input.SetWidth(max(ctx.InnerWidth(width)-InputPaddingWidth, 1))

	c.updateContent()
}

// SetFocus tells the panel which pane has focus. Only PaneTranscript and
// PaneComposer belong to the chat panel; anything else blurs it.
func (c *Chat) SetFocus(p Pane) {
	c.focus = p
	c.focused = p == PaneTranscript || p == PaneComposer
	if p == PaneComposer {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
	if p == PaneTranscript && c.chatActive && c.selectedIdx < 0 && len(c.entries) > 0 {
		c.selectedIdx = len(c.entries) - 1
		c.selectedID = c.entries[c.selectedIdx].ID
	}
	c.updateContent()
}

// ComposerFocused reports whether keys go to the composer.
func (c *Chat) ComposerFocused() bool {
	return c.focused && c.focus == PaneComposer
}

// TranscriptFocused reports whether keys go to the transcript list.
func (c *Chat) TranscriptFocused() bool {
	return c.focused && c.focus == PaneTranscript
}

// SetEntries replaces the rendered transcript.
func (c *Chat) SetEntries(entries []transcript.Entry, chatActive bool) {
	c.entries = entries
	c.chatActive = chatActive
	// Follow the selected entry to its new position; drop the selection
	// when the entry is gone.
	if c.selectedIdx >= 0 {
		c.selectedIdx = slices.IndexFunc(entries, func(e transcript.Entry) bool {
			return e.ID == c.selectedID
		})
	}
	c.updateContent()
}

// ChatActive reports whether the transcript, not the landing screen, is shown.
func (c *Chat) ChatActive() bool {
	return c.chatActive
}

// SelectedEntry returns the highlighted transcript entry.
func (c *Chat) SelectedEntry() (transcript.Entry, bool) {
	if c.selectedIdx < 0 || c.selectedIdx >= len(c.entries) {
		return transcript.Entry{}, false
	}
	return c.entries[c.selectedIdx], true
}

// SelectedCTA returns the highlighted landing button.
func (c *Chat) SelectedCTA() CTA {
	return LandingCTAs[c.ctaIdx]
}

// GetInput returns the composer text
func (c *Chat) GetInput() string {
	return c.input.Value()
}

// SetInput replaces the composer text
func (c *Chat) SetInput(value string) {
	if c.input.Value() != value {
		c.input.SetValue(value)
	}
}

// ScrollToBottom moves the viewport to the newest entry.
func (c *Chat) ScrollToBottom() {
	c.viewport.GotoBottom()
}

// Update handles keys for whichever chat pane is focused, and mouse wheel
// scrolling otherwise.
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyPressMsg)
	if !isKey {
		var cmds []tea.Cmd
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		cmds = append(cmds, cmd)
		if c.ComposerFocused() {
			c.input, cmd = c.input.Update(msg)
			cmds = append(cmds, cmd)
		}
		return c, tea.Batch(cmds...)
	}
	if !c.focused {
		return c, nil
	}

	key := keyMsg.String()
	switch key {
	case keys.PgUp, keys.PgDown, keys.CtrlU, keys.CtrlD:
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		return c, cmd
	}

	if c.focus == PaneComposer {
		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		return c, cmd
	}

	if !c.chatActive {
		switch key {
		case keys.Left, "h":
			c.ctaIdx = max(c.ctaIdx-1, 0)
		case keys.Right, "l":
			c.ctaIdx = min(c.ctaIdx+1, len(LandingCTAs)-1)
		}
		c.updateContent()
		return c, nil
	}

	switch key {
	case keys.Up, "k":
		c.moveSelection(-1)
	case keys.Down, "j":
		c.moveSelection(1)
	case keys.Home:
		c.selectIndex(0)
	case keys.End:
		c.selectIndex(len(c.entries) - 1)
	}
	return c, nil
}

func (c *Chat) moveSelection(delta int) {
	if len(c.entries) == 0 {
		return
	}
	if c.selectedIdx < 0 {
		c.selectIndex(len(c.entries) - 1)
		return
	}
	c.selectIndex(c.selectedIdx + delta)
}

func (c *Chat) selectIndex(i int) {
	if len(c.entries) == 0 {
		c.selectedIdx = -1
		return
	}
	c.selectedIdx = min(max(i, 0), len(c.entries)-1)
	c.selectedID = c.entries[c.selectedIdx].ID
	c.updateContent()
	if c.selectedIdx < len(c.entryStart) {
		c.viewport.SetYOffset(max(c.entryStart[c.selectedIdx]-c.viewport.Height()/3, 0))
	}
}

func (c *Chat) wrapWidth() int {
	w := c.viewport.Width()
	if w <= 0 {
		w = DefaultWrapWidth
	}
	return w
}

// renderLanding renders the headline and call-to-action buttons.
func (c *Chat) renderLanding() string {
	width := c.wrapWidth()

	var buttons []string
	for i, cta := range LandingCTAs {
		style := CTAButtonStyle
		if c.TranscriptFocused() && i == c.ctaIdx {
			style = CTAButtonActiveStyle
		}
		buttons = append(buttons, style.Render(cta.Label))
	}
	spaced := make([]string, 0, len(buttons)*2)
	for i, b := range buttons {
		if i > 0 {
			spaced = append(spaced, "  ")
		}
		spaced = append(spaced, b)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Center, spaced...)
	if lipgloss.Width(row) > width {
		row = lipgloss.JoinVertical(lipgloss.Center, buttons...)
	}

	block := lipgloss.JoinVertical(lipgloss.Center,
		LandingHeadlineStyle.Render(LandingHeadline),
		"",
		LandingSubtitleStyle.Width(min(width, 48)).Align(lipgloss.Center).Render(LandingSubtitle),
		"",
		row,
	)
	return lipgloss.Place(width, c.viewport.Height(), lipgloss.Center, lipgloss.Center, block)
}

// renderEntry renders one transcript entry as a bubble with its label and,
// when selected, the available actions.
func (c *Chat) renderEntry(e transcript.Entry, selected bool) string {
	width := c.wrapWidth()
	bubbleWidth := min(width-2, MaxBubbleWidth)
	// Bubble border and padding take four columns.
	body := renderMarkdown(e.Text, bubbleWidth-4)

	style := ChatBubbleStyle
	if selected {
		style = ChatBubbleSelected
	}
	bubble := style.MaxWidth(bubbleWidth).Render(ChatMessageStyle.Render(body))

	var label string
	if e.IsUser() {
		label = ChatUserStyle.Render("You")
	} else {
		label = ChatBotStyle.Render(BotAvatar + " Noro")
	}

	parts := []string{label, bubble}
	if selected && c.TranscriptFocused() {
		actions := "[c] copy"
		if e.IsUser() {
			actions += "  [e] edit"
		}
		parts = append(parts, ChatActionStyle.Render(actions))
	}

	align := lipgloss.Left
	if e.IsUser() {
		align = lipgloss.Right
	}
	block := lipgloss.JoinVertical(align, parts...)
	return lipgloss.PlaceHorizontal(width, align, block)
}

func (c *Chat) updateContent() {
	c.entryStart = c.entryStart[:0]

	if !c.chatActive {
		c.viewport.SetContent(c.renderLanding())
		return
	}

	var sb strings.Builder
	line := 0
	for i, e := range c.entries {
		if i > 0 {
			sb.WriteString("\n\n")
			line += 2
		}
		c.entryStart = append(c.entryStart, line)
		rendered := c.renderEntry(e, i == c.selectedIdx && c.TranscriptFocused())
		sb.WriteString(rendered)
		line += lipgloss.Height(rendered) - 1
	}
	if c.typing.pending > 0 {
		if len(c.entries) > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderTyping(c.typing.verb, c.typing.frame))
	}
	c.viewport.SetContent(sb.String())
}

// View renders the chat panel
func (c *Chat) View() string {
	panelStyle := PanelStyle
	if c.TranscriptFocused() {
		panelStyle = PanelFocusedStyle
	}
	chatPanel := panelStyle.Width(c.width).Height(c.height - InputTotalHeight).Render(c.viewport.View())

	inputStyle := ChatInputStyle
	if c.ComposerFocused() {
		inputStyle = ChatInputFocusedStyle
	}
	inputArea := inputStyle.Width(c.width).Render(c.input.View())

	return lipgloss.JoinVertical(lipgloss.Left, chatPanel, inputArea)
}
