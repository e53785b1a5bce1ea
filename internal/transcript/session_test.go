package transcript

import (
	"errors"
	"io"
	"log/slog"
	"slices"
	"testing"
	"time"
)

// fakeClock returns a fixed time that tests advance by hand.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type recordingClipboard struct {
	writes []string
	err    error
}

func (r *recordingClipboard) WriteText(text string) error {
	r.writes = append(r.writes, text)
	return r.err
}

type countingScroller struct {
	calls int
}

func (c *countingScroller) ScrollToBottom() { c.calls++ }

type fixture struct {
	s      *Session
	clock  *fakeClock
	clip   *recordingClipboard
	scroll *countingScroller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		clock:  &fakeClock{now: time.UnixMilli(1_700_000_000_000)},
		clip:   &recordingClipboard{},
		scroll: &countingScroller{},
	}
	f.s = New(Options{
		Responses: StaticResponse("Feel free to ask me anything."),
		Clipboard: f.clip,
		Scroller:  f.scroll,
		Clock:     f.clock.Now,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return f
}

func (f *fixture) send(t *testing.T, text string) *PendingReply {
	t.Helper()
	f.s.UpdateDraft(text)
	return f.s.SendMessage()
}

func TestNew_Defaults(t *testing.T) {
	s := New(Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	if s.ID() == "" {
		t.Error("expected a session id")
	}
	if s.Draft() != "" || s.Len() != 0 {
		t.Errorf("new session should be empty, got draft=%q len=%d", s.Draft(), s.Len())
	}
	if s.ChatActive() || s.Phase() != PhaseIdle {
		t.Error("new session should be idle")
	}
	if s.ReplyDelay() != DefaultReplyDelay {
		t.Errorf("ReplyDelay() = %v, want %v", s.ReplyDelay(), DefaultReplyDelay)
	}
	if got := s.Sidebar(); got.Expanded || !got.Visible {
		t.Errorf("Sidebar() = %+v, want collapsed and visible", got)
	}
	if New(Options{}).ID() == s.ID() {
		t.Error("session ids should differ")
	}
}

func TestUpdateDraft(t *testing.T) {
	f := newFixture(t)

	for _, text := range []string{"h", "hello", "", "   "} {
		f.s.UpdateDraft(text)
		if f.s.Draft() != text {
			t.Errorf("Draft() = %q, want %q", f.s.Draft(), text)
		}
	}
	if f.s.Len() != 0 {
		t.Error("UpdateDraft must not touch the transcript")
	}
}

func TestSendMessage_BlankDraftIsNoop(t *testing.T) {
	tests := []struct {
		name  string
		draft string
	}{
		{"empty", ""},
		{"spaces", "   "},
		{"newlines and tabs", "\n\t \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.s.UpdateDraft(tt.draft)

			if p := f.s.SendMessage(); p != nil {
				t.Errorf("SendMessage() = %+v, want nil", p)
			}
			if f.s.Len() != 0 {
				t.Errorf("Len() = %d, want 0", f.s.Len())
			}
			if f.s.Draft() != tt.draft {
				t.Errorf("Draft() = %q, want unchanged %q", f.s.Draft(), tt.draft)
			}
			if f.s.ChatActive() {
				t.Error("ChatActive should stay false")
			}
			if f.scroll.calls != 0 {
				t.Errorf("scroll sink called %d times, want 0", f.scroll.calls)
			}
		})
	}
}

func TestSendMessage_AppendsAndSchedulesReply(t *testing.T) {
	f := newFixture(t)

	p := f.send(t, "hi")
	if p == nil {
		t.Fatal("SendMessage() returned nil for a non-empty draft")
	}
	if p.Delay != DefaultReplyDelay {
		t.Errorf("Delay = %v, want %v", p.Delay, DefaultReplyDelay)
	}

	entries := f.s.Entries()
	if len(entries) != 1 {
		t.Fatalf("Len = %d, want 1", len(entries))
	}
	user := entries[0]
	if user.Text != "hi" || user.Sender != SenderUser {
		t.Errorf("entry = %+v, want user entry %q", user, "hi")
	}
	if user.ID != f.clock.now.UnixMilli() {
		t.Errorf("ID = %d, want clock millis %d", user.ID, f.clock.now.UnixMilli())
	}
	if !user.CreatedAt.Equal(f.clock.now) {
		t.Errorf("CreatedAt = %v, want %v", user.CreatedAt, f.clock.now)
	}
	if f.s.Draft() != "" {
		t.Errorf("Draft() = %q, want empty", f.s.Draft())
	}
	if !f.s.ChatActive() || f.s.Phase() != PhaseActive {
		t.Error("chat should be active after a send")
	}
	if f.scroll.calls != 1 {
		t.Errorf("scroll calls = %d, want 1", f.scroll.calls)
	}

	f.clock.Advance(p.Delay)
	f.s.DeliverReply(p)

	entries = f.s.Entries()
	if len(entries) != 2 {
		t.Fatalf("Len = %d after reply, want 2", len(entries))
	}
	bot := entries[1]
	if bot.Sender != SenderBot || bot.Text != "Feel free to ask me anything." {
		t.Errorf("reply = %+v", bot)
	}
	if bot.ID != f.clock.now.UnixMilli()+1 {
		t.Errorf("bot ID = %d, want now+1 = %d", bot.ID, f.clock.now.UnixMilli()+1)
	}
	if f.scroll.calls != 2 {
		t.Errorf("scroll calls = %d, want 2", f.scroll.calls)
	}
}

func TestSendMessage_TrimsText(t *testing.T) {
	f := newFixture(t)
	f.send(t, "  hello there \n")

	e := f.s.Entries()[0]
	if e.Text != "hello there" {
		t.Errorf("Text = %q, want trimmed %q", e.Text, "hello there")
	}
}

func TestSendMessage_CustomDelay(t *testing.T) {
	s := New(Options{
		ReplyDelay: 250 * time.Millisecond,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	s.UpdateDraft("x")
	p := s.SendMessage()
	if p == nil || p.Delay != 250*time.Millisecond {
		t.Errorf("pending = %+v, want delay 250ms", p)
	}
}

func TestSetReplyDelay(t *testing.T) {
	f := newFixture(t)

	f.s.SetReplyDelay(10 * time.Millisecond)
	if p := f.send(t, "a"); p.Delay != 10*time.Millisecond {
		t.Errorf("delay = %v, want 10ms", p.Delay)
	}

	f.s.SetReplyDelay(0)
	if f.s.ReplyDelay() != DefaultReplyDelay {
		t.Errorf("ReplyDelay() = %v after reset, want default", f.s.ReplyDelay())
	}
}

func TestSendMessage_OverlappingReplies(t *testing.T) {
	f := newFixture(t)

	p1 := f.send(t, "one")
	p2 := f.send(t, "two")
	if p1 == nil || p2 == nil {
		t.Fatal("both sends should schedule a reply")
	}
	if p1.Seq >= p2.Seq {
		t.Errorf("Seq should increase: %d then %d", p1.Seq, p2.Seq)
	}

	f.s.DeliverReply(p1)
	f.s.DeliverReply(p2)

	var senders []Sender
	for _, e := range f.s.Entries() {
		senders = append(senders, e.Sender)
	}
	want := []Sender{SenderUser, SenderUser, SenderBot, SenderBot}
	if !slices.Equal(senders, want) {
		t.Errorf("senders = %v, want %v", senders, want)
	}
}

func TestIDs_UniqueAndIncreasing(t *testing.T) {
	f := newFixture(t)

	// Clock frozen: every id has to be bumped past the last one.
	var pending []*PendingReply
	for i := 0; i < 5; i++ {
		pending = append(pending, f.send(t, "msg"))
	}
	for _, p := range pending {
		f.s.DeliverReply(p)
	}

	// A user send landing on the previous bot reply's millisecond.
	f.clock.Advance(time.Millisecond)
	p := f.send(t, "again")
	f.s.DeliverReply(p)

	// Clock moving backwards.
	f.clock.Advance(-time.Hour)
	f.send(t, "past")

	entries := f.s.Entries()
	seen := make(map[int64]bool)
	for i, e := range entries {
		if seen[e.ID] {
			t.Fatalf("duplicate id %d", e.ID)
		}
		seen[e.ID] = true
		if i > 0 && e.ID <= entries[i-1].ID {
			t.Errorf("id %d at %d not greater than previous %d", e.ID, i, entries[i-1].ID)
		}
	}
}

func TestIDs_UniqueAfterEdit(t *testing.T) {
	f := newFixture(t)

	p := f.send(t, "first")
	f.s.DeliverReply(p)
	first := f.s.Entries()[0]

	f.s.EditMessage(first.ID)
	f.send(t, "first again")

	for _, e := range f.s.Entries() {
		if e.Text == "first again" && e.ID == first.ID {
			t.Error("an id removed by edit must not be reused")
		}
	}
}

func TestDeliverReply_AfterStartNewChat(t *testing.T) {
	f := newFixture(t)

	p := f.send(t, "hi")
	f.s.StartNewChat()
	f.s.DeliverReply(p)

	entries := f.s.Entries()
	if len(entries) != 1 || entries[0].Sender != SenderBot {
		t.Fatalf("entries = %+v, want the late bot reply only", entries)
	}
	if f.s.ChatActive() {
		t.Error("a late reply must not reactivate the chat")
	}
}

func TestDeliverReply_AfterClose(t *testing.T) {
	f := newFixture(t)

	p := f.send(t, "hi")
	f.s.Close()
	f.s.DeliverReply(p)

	if f.s.Len() != 1 {
		t.Errorf("Len() = %d, want 1 (reply dropped)", f.s.Len())
	}
	if !f.s.Closed() {
		t.Error("Closed() should report true")
	}

	f.s.UpdateDraft("more")
	if p := f.s.SendMessage(); p != nil {
		t.Error("SendMessage after Close should be ignored")
	}
	f.s.Close()
}

func TestDeliverReply_Nil(t *testing.T) {
	f := newFixture(t)
	f.s.DeliverReply(nil)
	if f.s.Len() != 0 || f.scroll.calls != 0 {
		t.Error("nil pending reply should be ignored")
	}
}

func TestCopyMessage(t *testing.T) {
	f := newFixture(t)

	f.s.CopyMessage("some text")
	if !slices.Equal(f.clip.writes, []string{"some text"}) {
		t.Errorf("clipboard writes = %v", f.clip.writes)
	}

	// A failing clipboard is swallowed.
	f.clip.err = errors.New("no clipboard")
	f.s.CopyMessage("again")
	if len(f.clip.writes) != 2 {
		t.Errorf("clipboard writes = %v, want the failed write attempted", f.clip.writes)
	}
	if f.s.Len() != 0 || f.s.Draft() != "" {
		t.Error("CopyMessage must not change session state")
	}
}

func TestEditMessage(t *testing.T) {
	f := newFixture(t)

	p := f.send(t, "first")
	f.clock.Advance(time.Second)
	f.s.DeliverReply(p)
	f.clock.Advance(time.Second)
	f.send(t, "second")

	before := f.s.Entries()
	target := before[0]
	scrolls := f.scroll.calls

	if !f.s.EditMessage(target.ID) {
		t.Fatal("EditMessage() = false for a present id")
	}
	if f.s.Draft() != "first" {
		t.Errorf("Draft() = %q, want %q", f.s.Draft(), "first")
	}
	after := f.s.Entries()
	if len(after) != len(before)-1 {
		t.Fatalf("Len = %d, want %d", len(after), len(before)-1)
	}
	if _, ok := f.s.Entry(target.ID); ok {
		t.Error("edited entry should be gone")
	}
	if !slices.Equal(after, before[1:]) {
		t.Errorf("remaining entries = %+v, want %+v", after, before[1:])
	}
	if f.scroll.calls != scrolls+1 {
		t.Errorf("scroll calls = %d, want %d", f.scroll.calls, scrolls+1)
	}
}

func TestEditMessage_BotEntry(t *testing.T) {
	f := newFixture(t)
	p := f.send(t, "hi")
	f.s.DeliverReply(p)

	bot := f.s.Entries()[1]
	if !f.s.EditMessage(bot.ID) {
		t.Fatal("EditMessage should accept any present id")
	}
	if f.s.Draft() != bot.Text {
		t.Errorf("Draft() = %q, want %q", f.s.Draft(), bot.Text)
	}
}

func TestEditMessage_AbsentID(t *testing.T) {
	f := newFixture(t)
	f.send(t, "hi")
	f.s.UpdateDraft("keep me")
	before := f.s.Entries()
	scrolls := f.scroll.calls

	if f.s.EditMessage(12345) {
		t.Error("EditMessage() = true for an absent id")
	}
	if !slices.Equal(f.s.Entries(), before) {
		t.Error("transcript changed on absent id")
	}
	if f.s.Draft() != "keep me" {
		t.Errorf("Draft() = %q, want unchanged", f.s.Draft())
	}
	if f.scroll.calls != scrolls {
		t.Error("scroll sink should not be called on a no-op")
	}
}

func TestStartNewChat(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, f *fixture)
	}{
		{"fresh session", func(*testing.T, *fixture) {}},
		{"after send", func(t *testing.T, f *fixture) { f.send(t, "hi") }},
		{"after reply", func(t *testing.T, f *fixture) { f.s.DeliverReply(f.send(t, "hi")) }},
		{"twice", func(*testing.T, *fixture) {}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)
			f.s.UpdateDraft("unsent")
			scrolls := f.scroll.calls

			f.s.StartNewChat()
			wantScrolls := scrolls + 1
			if tt.name == "twice" {
				f.s.StartNewChat()
				wantScrolls++
			}

			if f.scroll.calls != wantScrolls {
				t.Errorf("scroll calls = %d, want %d", f.scroll.calls, wantScrolls)
			}

			if f.s.Len() != 0 {
				t.Errorf("Len() = %d, want 0", f.s.Len())
			}
			if f.s.ChatActive() || f.s.Phase() != PhaseIdle {
				t.Error("chat should be idle")
			}
			if f.s.Draft() != "unsent" {
				t.Errorf("Draft() = %q, StartNewChat must keep the draft", f.s.Draft())
			}
		})
	}
}

func TestSidebar(t *testing.T) {
	f := newFixture(t)

	f.s.ToggleSidebar()
	f.s.ToggleSidebar()
	if f.s.Sidebar().Expanded {
		t.Error("toggling twice should restore Expanded")
	}

	f.s.ExpandSidebar()
	f.s.ExpandSidebar()
	if !f.s.Sidebar().Expanded {
		t.Error("ExpandSidebar should set Expanded")
	}

	f.s.ToggleSidebar()
	if f.s.Sidebar().Expanded {
		t.Error("toggle after expand should collapse")
	}

	f.s.SetSidebarVisible(false)
	if f.s.Sidebar().Visible {
		t.Error("SetSidebarVisible(false) should hide the sidebar")
	}
	f.s.SetSidebarVisible(true)
	if !f.s.Sidebar().Visible {
		t.Error("SetSidebarVisible(true) should show the sidebar")
	}
}

func TestEntries_ReturnsCopy(t *testing.T) {
	f := newFixture(t)
	f.send(t, "hi")

	entries := f.s.Entries()
	entries[0].Text = "mutated"

	if got := f.s.Entries()[0].Text; got != "hi" {
		t.Errorf("stored entry changed to %q", got)
	}
}

func TestSetScroller(t *testing.T) {
	f := newFixture(t)
	var calls int
	f.s.SetScroller(ScrollFunc(func() { calls++ }))
	f.send(t, "hi")
	if calls != 1 {
		t.Errorf("replacement scroller calls = %d, want 1", calls)
	}

	f.s.SetScroller(nil)
	f.send(t, "no panic")
}
