package transcript

import "math/rand/v2"

// ResponseSource produces the text of bot replies.
type ResponseSource interface {
	NextReply() string
}

// DefaultResponses is the fixed set of canned replies, in order.
var DefaultResponses = []string{
	"Hello! How can I assist you today?",
	"I'm here to help. What do you need?",
	"Let me know how I can assist you.",
	"Feel free to ask me anything.",
	"I'm listening. What's on your mind?",
}

// CannedResponses picks uniformly at random from a fixed list.
type CannedResponses struct {
	Replies []string
	// Intn returns a value in [0, n). Defaults to math/rand/v2.IntN.
	Intn func(n int) int
}

// NewCannedResponses returns a source over DefaultResponses.
func NewCannedResponses() *CannedResponses {
	return &CannedResponses{Replies: DefaultResponses, Intn: rand.IntN}
}

func (c *CannedResponses) NextReply() string {
	replies := c.Replies
	if len(replies) == 0 {
		replies = DefaultResponses
	}
	intn := c.Intn
	if intn == nil {
		intn = rand.IntN
	}
	return replies[intn(len(replies))]
}

// StaticResponse always returns the same reply.
type StaticResponse string

func (s StaticResponse) NextReply() string {
	return string(s)
}

// ResponseFunc adapts a function to ResponseSource.
type ResponseFunc func() string

func (f ResponseFunc) NextReply() string {
	return f()
}
