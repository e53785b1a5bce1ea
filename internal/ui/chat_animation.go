package ui

import (
	"math/rand/v2"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// TypingTickMsg advances the typing indicator.
type TypingTickMsg time.Time

const typingTickInterval = 200 * time.Millisecond

// thinkingVerbs cycle between replies while the bot is "typing".
var thinkingVerbs = []string{
	"Thinking",
	"Pondering",
	"Considering",
	"Musing",
	"Brewing",
}

// spinnerFrames are the characters of the typing spinner.
var spinnerFrames = []string{"·", "✺", "✹", "✸", "✷", "✶", "✵", "✴", "✳", "✲", "✱", "✧", "✦", "·"}

// typingState tracks the indicator shown while replies are pending.
type typingState struct {
	pending int
	frame   int
	verb    string
	ticking bool // a TypingTickMsg is in flight
}

// TypingTick returns a command that fires a TypingTickMsg.
func TypingTick() tea.Cmd {
	return tea.Tick(typingTickInterval, func(t time.Time) tea.Msg {
		return TypingTickMsg(t)
	})
}

// SetPending sets how many bot replies are on their way. The indicator is
// shown while the count is positive. It returns the first animation tick
// when the indicator appears and no tick is already in flight.
func (c *Chat) SetPending(n int) tea.Cmd {
	n = max(n, 0)
	starting := c.typing.pending == 0 && n > 0
	c.typing.pending = n
	var cmd tea.Cmd
	if starting {
		c.typing.frame = 0
		c.typing.verb = thinkingVerbs[rand.IntN(len(thinkingVerbs))]
		if !c.typing.ticking {
			c.typing.ticking = true
			cmd = TypingTick()
		}
	}
	c.updateContent()
	return cmd
}

// Pending returns the number of replies on their way.
func (c *Chat) Pending() int {
	return c.typing.pending
}

// AdvanceTyping handles a TypingTickMsg: it moves the spinner one frame and
// schedules the next tick. The loop ends once nothing is pending.
func (c *Chat) AdvanceTyping() tea.Cmd {
	if c.typing.pending == 0 {
		c.typing.ticking = false
		return nil
	}
	c.typing.frame++
	c.updateContent()
	return TypingTick()
}

// renderTyping renders the spinner and verb under the last entry.
func renderTyping(verb string, frame int) string {
	spinner := lipgloss.NewStyle().Foreground(ColorBot).Bold(true).
		Render(spinnerFrames[frame%len(spinnerFrames)])
	text := lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true).
		Render(verb + "...")
	return ChatBotStyle.Render(BotAvatar) + " " + spinner + " " + text
}
