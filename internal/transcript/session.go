// Package transcript holds the state of one chat: the composer draft, the
// ordered list of entries, the sidebar flags and whether a conversation is
// in progress.
//
// A Session is not safe for concurrent use. The host serializes calls, in
// practice by only touching it from the Bubble Tea update loop.
package transcript

import (
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zhubert/noro/internal/logger"
)

// DefaultReplyDelay is how long the bot waits before answering.
const DefaultReplyDelay = 1000 * time.Millisecond

// Options configures a Session. Zero values get working defaults.
type Options struct {
	Responses  ResponseSource
	Clipboard  ClipboardSink
	Scroller   ScrollSink
	Clock      func() time.Time
	ReplyDelay time.Duration
	Logger     *slog.Logger
}

// Session is the transcript manager.
type Session struct {
	id         string
	responses  ResponseSource
	clipboard  ClipboardSink
	scroller   ScrollSink
	clock      func() time.Time
	replyDelay time.Duration
	log        *slog.Logger

	draft      string
	entries    []Entry
	chatActive bool
	sidebar    SidebarState

	lastID  int64
	nextSeq int
	closed  bool
}

// New creates an empty session.
func New(opts Options) *Session {
	s := &Session{
		id:         uuid.New().String(),
		responses:  opts.Responses,
		clipboard:  opts.Clipboard,
		scroller:   opts.Scroller,
		clock:      opts.Clock,
		replyDelay: opts.ReplyDelay,
		log:        opts.Logger,
		sidebar:    SidebarState{Visible: true},
	}
	if s.responses == nil {
		s.responses = NewCannedResponses()
	}
	if s.clipboard == nil {
		s.clipboard = nopClipboard{}
	}
	if s.scroller == nil {
		s.scroller = nopScroller{}
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.replyDelay <= 0 {
		s.replyDelay = DefaultReplyDelay
	}
	if s.log == nil {
		s.log = logger.WithComponent("transcript")
	}
	s.log = s.log.With("session", s.id)
	return s
}

// SetScroller replaces the scroll sink. Used by hosts that construct the
// session before the sink exists.
func (s *Session) SetScroller(sink ScrollSink) {
	if sink == nil {
		sink = nopScroller{}
	}
	s.scroller = sink
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Draft returns the current composer text.
func (s *Session) Draft() string { return s.draft }

// ChatActive reports whether a conversation is in progress.
func (s *Session) ChatActive() bool { return s.chatActive }

// Phase returns PhaseActive once a message has been sent, PhaseIdle before
// that and after StartNewChat.
func (s *Session) Phase() Phase {
	if s.chatActive {
		return PhaseActive
	}
	return PhaseIdle
}

// Sidebar returns the sidebar flags.
func (s *Session) Sidebar() SidebarState { return s.sidebar }

// ReplyDelay returns the delay attached to new pending replies.
func (s *Session) ReplyDelay() time.Duration { return s.replyDelay }

// SetReplyDelay changes the delay for replies scheduled from now on.
// Non-positive values restore DefaultReplyDelay.
func (s *Session) SetReplyDelay(d time.Duration) {
	if d <= 0 {
		d = DefaultReplyDelay
	}
	s.replyDelay = d
}

// Len returns the number of entries.
func (s *Session) Len() int { return len(s.entries) }

// Entries returns a copy of the transcript in chronological order.
func (s *Session) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Entry looks up an entry by id.
func (s *Session) Entry(id int64) (Entry, bool) {
	if i := s.indexOf(id); i >= 0 {
		return s.entries[i], true
	}
	return Entry{}, false
}

func (s *Session) indexOf(id int64) int {
	for i, e := range s.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}

// UpdateDraft replaces the composer text.
func (s *Session) UpdateDraft(text string) {
	s.draft = text
}

// SendMessage commits the draft as a user entry and schedules a bot reply.
// A draft that is empty after trimming whitespace is ignored and nil is
// returned.
func (s *Session) SendMessage() *PendingReply {
	if s.closed {
		return nil
	}
	text := strings.TrimSpace(s.draft)
	if text == "" {
		return nil
	}

	e := s.appendEntry(text, SenderUser, 0)
	s.draft = ""
	s.chatActive = true
	s.scroller.ScrollToBottom()

	s.nextSeq++
	pending := &PendingReply{Seq: s.nextSeq, Delay: s.replyDelay}
	s.log.Debug("message sent", "id", e.ID, "len", len(text), "reply_seq", pending.Seq)
	return pending
}

// DeliverReply appends the bot reply for a pending reply. Replies are
// delivered even if StartNewChat ran in between; after Close they are
// dropped.
func (s *Session) DeliverReply(p *PendingReply) {
	if p == nil {
		return
	}
	if s.closed {
		s.log.Debug("dropping reply after close", "reply_seq", p.Seq)
		return
	}
	e := s.appendEntry(s.responses.NextReply(), SenderBot, 1)
	s.scroller.ScrollToBottom()
	s.log.Debug("reply delivered", "id", e.ID, "reply_seq", p.Seq)
}

// CopyMessage writes text to the clipboard sink. Failures are logged and
// otherwise ignored.
func (s *Session) CopyMessage(text string) {
	if err := s.clipboard.WriteText(text); err != nil {
		s.log.Warn("copy to clipboard failed", "error", err)
		return
	}
	s.log.Debug("copied to clipboard", "len", len(text))
}

// EditMessage moves an entry back into the draft and removes it from the
// transcript. It reports whether the id was found.
func (s *Session) EditMessage(id int64) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	e := s.entries[i]
	s.draft = e.Text
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.scroller.ScrollToBottom()
	s.log.Debug("entry moved to draft", "id", id)
	return true
}

// StartNewChat clears the transcript and returns to the landing screen.
// The draft is left alone.
func (s *Session) StartNewChat() {
	s.entries = nil
	s.chatActive = false
	s.scroller.ScrollToBottom()
	s.log.Debug("new chat")
}

// ExpandSidebar opens the sidebar.
func (s *Session) ExpandSidebar() {
	s.sidebar.Expanded = true
}

// ToggleSidebar flips the sidebar between expanded and collapsed.
func (s *Session) ToggleSidebar() {
	s.sidebar.Expanded = !s.sidebar.Expanded
}

// SetSidebarVisible shows or hides the sidebar entirely.
func (s *Session) SetSidebarVisible(visible bool) {
	s.sidebar.Visible = visible
}

// Close stops the session. Pending replies delivered afterwards are
// dropped and further sends are ignored.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.log.Debug("session closed", "entries", len(s.entries))
}

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

func (s *Session) appendEntry(text string, sender Sender, offset int64) Entry {
	now := s.clock()
	id := now.UnixMilli() + offset
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	e := Entry{ID: id, Text: text, Sender: sender, CreatedAt: now}
	s.entries = append(s.entries, e)
	return e
}
