// Package ui provides constants for layout calculations and configuration.
package ui

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// SidebarWidthRatio is the denominator for sidebar width (1/3 of total width)
	SidebarWidthRatio = 3

	// TextareaHeight is the number of lines for the message input textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area (Padding(0, 1) = 1 left + 1 right)
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is the default width for text wrapping when viewport width is unknown
	DefaultWrapWidth = 80

	// NarrowWidthThreshold is the terminal width below which the app
	// switches to the single-panel presentation with a sidebar overlay
	NarrowWidthThreshold = 80

	// MinTerminalWidth is the smallest width the layout math tolerates
	MinTerminalWidth = 40

	// MinTerminalHeight is the smallest height the layout math tolerates
	MinTerminalHeight = 10
)

// Sidebar constants
const (
	// SidebarSearchCharLimit is the character limit for the sidebar search input
	SidebarSearchCharLimit = 64

	// SidebarTimeWidth is the space reserved for the activity timestamp column
	SidebarTimeWidth = 12
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
