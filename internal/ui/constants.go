package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarCollapsedWidth is the width of the icon rail, borders included
	SidebarCollapsedWidth = 7

	// SidebarExpandedWidth is the width of the open sidebar, borders included
	SidebarExpandedWidth = 28

	// MinSidebarTerminalWidth is the narrowest terminal that still shows the sidebar
	MinSidebarTerminalWidth = 60

	// MinTerminalWidth and MinTerminalHeight clamp layout math
	MinTerminalWidth  = 30
	MinTerminalHeight = 10

	// TextareaHeight is the number of lines for the composer
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the composer
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the composer (Padding(0, 1))
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the composer (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is used when the viewport width is not known yet
	DefaultWrapWidth = 80

	// MaxBubbleWidth caps the width of a single transcript entry
	MaxBubbleWidth = 72
)

// Modal dimensions
const (
	// ModalWidth is the default width of modals
	ModalWidth = 60

	// ModalInputCharLimit is the character limit for modal text inputs
	ModalInputCharLimit = 256

	// ModalInputWidth is the width of modal text inputs
	ModalInputWidth = 50
)

// Strings shown by the chat shell.
const (
	AppTitle            = "Noro AI Chat"
	ComposerPlaceholder = "Write your message here..."
	LandingHeadline     = "How can I help you today?"
	LandingSubtitle     = "This code will display a prompt asking the user for their name."
	CopiedFlash         = "Copied to clipboard!"
)
