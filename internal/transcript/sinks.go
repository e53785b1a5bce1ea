package transcript

// ClipboardSink receives text copied from the transcript. Writes are best
// effort.
type ClipboardSink interface {
	WriteText(text string) error
}

// ScrollSink is told to scroll to the newest entry after every change to
// the transcript.
type ScrollSink interface {
	ScrollToBottom()
}

// ClipboardFunc adapts a function to ClipboardSink.
type ClipboardFunc func(text string) error

func (f ClipboardFunc) WriteText(text string) error { return f(text) }

// ScrollFunc adapts a function to ScrollSink.
type ScrollFunc func()

func (f ScrollFunc) ScrollToBottom() { f() }

type nopClipboard struct{}

func (nopClipboard) WriteText(string) error { return nil }

type nopScroller struct{}

func (nopScroller) ScrollToBottom() {}
