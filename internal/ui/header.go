package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// headerTitle is the bold product name on the left of the header.
const headerTitle = " noro"

// Header represents the top header bar
type Header struct {
	width      int
	entryCount int
	active     bool
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetChat updates the chat summary shown on the right.
func (h *Header) SetChat(active bool, entryCount int) {
	h.active = active
	h.entryCount = entryCount
}

// rightText is the plain right-hand text of the header.
func (h *Header) rightText() string {
	text := AppTitle
	if h.active {
		noun := "messages"
		if h.entryCount == 1 {
			noun = "message"
		}
		text += fmt.Sprintf(" · %d %s", h.entryCount, noun)
	}
	return text + " "
}

// View renders the header
func (h *Header) View() string {
	right := h.rightText()

	paddingLen := h.width - runewidth.StringWidth(headerTitle) - runewidth.StringWidth(right)
	if paddingLen < 0 {
		// Too narrow for both sides; keep the title.
		right = ""
		paddingLen = max(h.width-runewidth.StringWidth(headerTitle), 0)
	}

	return renderGradient(headerTitle + strings.Repeat(" ", paddingLen) + right)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content on a background fading from the theme's
// primary color to its background color.
func renderGradient(content string) string {
	if content == "" {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)
	titleLen := len([]rune(headerTitle))

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)

		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Foreground(textColor).
			Bold(i < titleLen)

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
