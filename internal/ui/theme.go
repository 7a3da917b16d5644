// Package ui provides theme management for the application.
// Themes define the color palette used throughout the UI, allowing users
// to customize the visual appearance of Parley.
package ui

import "charm.land/lipgloss/v2"

// Theme defines a complete color palette for the application.
// Each theme provides colors for all UI elements, ensuring visual consistency.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (used for focus, highlights, headers)
	Primary string
	// Secondary is the secondary accent color (used for peer messages, info)
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Selected item background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Secondary/muted text
	TextInverse string // Text on colored backgrounds

	// Semantic colors
	Self    string // The current user's own message labels
	Peer    string // Other parties' message labels
	Warning string // Warnings, pending deliveries
	Error   string // Error messages, failed deliveries
	Info    string // Information, typing indicators
	Success string // Delivered ticks, online presence

	// Border colors
	Border      string // Default borders
	BorderFocus string // Focused element borders (defaults to Primary if empty)

	// Code block colors
	Code   string // Inline code
	CodeBg string // Code background
	Link   string // Links
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// GetBorderFocus returns the focused border color, defaulting to Primary
func (t Theme) GetBorderFocus() string {
	if t.BorderFocus != "" {
		return t.BorderFocus
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		Self:        "#A78BFA",
		Peer:        "#22D3EE",
		Warning:     "#F59E0B",
		Error:       "#EF4444",
		Info:        "#06B6D4",
		Success:     "#10B981",
		Border:      "#374151",
		Code:        "#67E8F9",
		CodeBg:      "#1E1E2E",
		Link:        "#67E8F9",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Self:        "#A3BE8C",
		Peer:        "#88C0D0",
		Warning:     "#EBCB8B",
		Error:       "#BF616A",
		Info:        "#81A1C1",
		Success:     "#A3BE8C",
		Border:      "#4C566A",
		Code:        "#A3BE8C",
		CodeBg:      "#242933",
		Link:        "#88C0D0",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkPurple,
		ThemeNord,
	}
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
	RefreshModalStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	// Update color variables
	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorMuted = lipgloss.Color(t.TextMuted)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.GetBorderFocus())
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorSelf = lipgloss.Color(t.Self)
	ColorPeer = lipgloss.Color(t.Peer)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorInfo = lipgloss.Color(t.Info)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	// Update header styles
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	HeaderTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	// Update footer styles
	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	// Update panel styles
	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	// Update sidebar styles
	SidebarItemStyle = lipgloss.NewStyle().
		Padding(0, 1)

	SidebarSelectedStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(t.GetBgSelected())).
		Foreground(lipgloss.Color(t.Text)).
		Bold(true).
		Padding(0, 1)

	SidebarUnreadBadgeStyle = lipgloss.NewStyle().
		Foreground(ColorTextInverse).
		Background(ColorPrimary).
		Bold(true).
		Padding(0, 1)

	SidebarTimeStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	PresenceOnlineStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	PresenceOfflineStyle = lipgloss.NewStyle().Foreground(ColorMuted)

	// Update chat styles
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

	DeliveryPendingStyle = lipgloss.NewStyle().Foreground(ColorTextMuted)
	DeliverySentStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	DeliveryFailedStyle = lipgloss.NewStyle().Foreground(ColorError)

	// Update modal styles
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

	// Update status styles
	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	// Update code styles
	InlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Code)).
		Background(lipgloss.Color(t.CodeBg))

	LinkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.Link)).
		Underline(true)
}
