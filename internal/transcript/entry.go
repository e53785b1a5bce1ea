package transcript

import "time"

// Sender identifies who authored an entry.
type Sender int

const (
	SenderUser Sender = iota
	SenderBot
)

func (s Sender) String() string {
	switch s {
	case SenderUser:
		return "user"
	case SenderBot:
		return "bot"
	default:
		return "unknown"
	}
}

// Entry is one message in the transcript. Entries are never mutated after
// they are appended; they can only be removed.
type Entry struct {
	ID        int64
	Text      string
	Sender    Sender
	CreatedAt time.Time
}

// IsUser reports whether the entry was written by the user.
func (e Entry) IsUser() bool {
	return e.Sender == SenderUser
}

// Phase is the coarse state of the chat.
type Phase int

const (
	// PhaseIdle shows the landing screen. Nothing has been sent since the
	// session started or since the last StartNewChat.
	PhaseIdle Phase = iota
	// PhaseActive shows the transcript.
	PhaseActive
)

func (p Phase) String() string {
	if p == PhaseActive {
		return "active"
	}
	return "idle"
}

// SidebarState holds the sidebar presentation flags.
type SidebarState struct {
	Expanded bool
	Visible  bool
}

// PendingReply describes a scheduled bot reply. The host is expected to
// wait Delay and then hand it back to DeliverReply. Replies cannot be
// cancelled.
type PendingReply struct {
	Seq   int
	Delay time.Duration
}
