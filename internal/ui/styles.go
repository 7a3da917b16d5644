package ui

import "charm.land/lipgloss/v2"

// Color palette - Purple + Cyan/Teal theme
var (
	ColorPrimary     = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted       = lipgloss.Color("#6B7280") // Gray
	ColorBorder      = lipgloss.Color("#374151") // Dark gray
	ColorBorderFocus = lipgloss.Color("#7C3AED") // Purple when focused
	ColorBg          = lipgloss.Color("#1F2937") // Dark background
	ColorText        = lipgloss.Color("#F9FAFB") // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4") // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937") // Dark text for light backgrounds
	ColorSelf        = lipgloss.Color("#A78BFA") // Light purple for own messages
	ColorPeer        = lipgloss.Color("#22D3EE") // Bright cyan for other parties
	ColorWarning     = lipgloss.Color("#F59E0B") // Amber for pending deliveries
	ColorInfo        = lipgloss.Color("#06B6D4") // Cyan for typing indicators
	ColorError       = lipgloss.Color("#EF4444") // Red for errors
	ColorSuccess     = lipgloss.Color("#10B981") // Green for delivered/online
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorText)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus)
)

// Sidebar styles
var (
	SidebarItemStyle = lipgloss.NewStyle().
				Padding(0, 1)

	// SidebarSelectedStyle uses theme's BgSelected color - kept current by regenerateStyles()
	SidebarSelectedStyle = lipgloss.NewStyle().
				Background(lipgloss.Color(BuiltinThemes[DefaultTheme].GetBgSelected())).
				Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].Text)).
				Bold(true).
				Padding(0, 1)

	SidebarUnreadBadgeStyle = lipgloss.NewStyle().
				Foreground(ColorTextInverse).
				Background(ColorPrimary).
				Bold(true).
				Padding(0, 1)

	SidebarTimeStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	PresenceOnlineStyle  = lipgloss.NewStyle().Foreground(ColorSuccess)
	PresenceOfflineStyle = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Chat styles
var (
	ChatSelfStyle = lipgloss.NewStyle().
			Foreground(ColorSelf).
			Bold(true)

	ChatPeerStyle = lipgloss.NewStyle().
			Foreground(ColorPeer).
			Bold(true)

	ChatMessageStyle = lipgloss.NewStyle().
				Foreground(ColorText)

	ChatTimeStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	ChatTypingStyle = lipgloss.NewStyle().
			Foreground(ColorInfo).
			Italic(true)

	ChatInputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorderFocus).
				Padding(0, 1)
)

// Delivery tick styles
var (
	DeliveryPendingStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)
	DeliverySentStyle    = lipgloss.NewStyle().Foreground(ColorSuccess)
	DeliveryFailedStyle  = lipgloss.NewStyle().Foreground(ColorError)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(ModalWidth)

	ModalTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	ModalHelpStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			MarginTop(1)
)

// Status styles
var (
	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorError).
				Bold(true)
)

// Code and link styles (kept current by regenerateStyles)
var (
	InlineCodeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].Code)).
			Background(lipgloss.Color(BuiltinThemes[DefaultTheme].CodeBg))

	LinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(BuiltinThemes[DefaultTheme].Link)).
			Underline(true)
)
