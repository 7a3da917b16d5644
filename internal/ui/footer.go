package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashType categorizes a flash message for icon and color selection
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays visible
const DefaultFlashDuration = 4 * time.Second

// FlashMessage is a transient status line shown in place of the keybindings
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg is sent periodically while a flash message is visible
type FlashTickMsg time.Time

// FlashTick returns a command that sends a tick to expire flash messages
func FlashTick() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width           int
	bindings        []KeyBinding
	hasConversation bool // Whether a conversation is selected
	sidebarFocused  bool // Whether sidebar has focus
	searchMode      bool // Whether sidebar search is active
	narrow          bool // Whether the single-panel presentation is active
	sidebarOpen     bool // Whether the narrow-mode sidebar overlay is open

	flashMessage *FlashMessage
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "↑/↓", Desc: "navigate"},
			{Key: "enter", Desc: "open"},
			{Key: "/", Desc: "search"},
			{Key: "tab", Desc: "switch pane"},
			{Key: "t", Desc: "theme"},
			{Key: "ctrl+l", Desc: "logout"},
			{Key: "q", Desc: "quit"},
		},
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasConversation, sidebarFocused, searchMode, narrow, sidebarOpen bool) {
	f.hasConversation = hasConversation
	f.sidebarFocused = sidebarFocused
	f.searchMode = searchMode
	f.narrow = narrow
	f.sidebarOpen = sidebarOpen
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a flash message with the default duration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for a custom duration
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// HasFlash reports whether a flash message is currently set
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// ClearIfExpired removes the flash message if it has outlived its duration.
// Returns true if a message was cleared.
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

// flashIcon returns the icon for a flash type
func flashIcon(t FlashType) string {
	switch t {
	case FlashError:
		return "✕"
	case FlashWarning:
		return "⚠"
	case FlashSuccess:
		return "✓"
	default:
		return "ℹ"
	}
}

// flashStyle returns the text style for a flash type
func flashStyle(t FlashType) lipgloss.Style {
	switch t {
	case FlashError:
		return lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	case FlashWarning:
		return lipgloss.NewStyle().Foreground(ColorWarning)
	case FlashSuccess:
		return lipgloss.NewStyle().Foreground(ColorSuccess)
	default:
		return lipgloss.NewStyle().Foreground(ColorInfo)
	}
}

// View renders the footer
func (f *Footer) View() string {
	// Flash messages take priority over keybindings
	if f.flashMessage != nil {
		style := flashStyle(f.flashMessage.Type)
		content := style.Render(flashIcon(f.flashMessage.Type) + " " + f.flashMessage.Text)
		return FooterStyle.Width(f.width).Render(content)
	}

	var active []KeyBinding

	switch {
	case f.searchMode:
		active = []KeyBinding{
			{Key: "esc", Desc: "cancel"},
			{Key: "enter", Desc: "keep filter"},
			{Key: "↑/↓", Desc: "navigate"},
		}
	case f.narrow && !f.sidebarOpen:
		active = []KeyBinding{
			{Key: "ctrl+b", Desc: "conversations"},
			{Key: "enter", Desc: "send"},
			{Key: "ctrl+y", Desc: "copy last"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	case !f.sidebarFocused && f.hasConversation:
		active = []KeyBinding{
			{Key: "enter", Desc: "send"},
			{Key: "shift+enter", Desc: "newline"},
			{Key: "ctrl+y", Desc: "copy last"},
			{Key: "tab", Desc: "switch pane"},
			{Key: "pgup/dn", Desc: "scroll"},
		}
	default:
		for _, b := range f.bindings {
			// Tab only makes sense once a conversation is open
			if b.Key == "tab" && !f.hasConversation {
				continue
			}
			active = append(active, b)
		}
	}

	var parts []string
	for _, b := range active {
		key := FooterKeyStyle.Render(b.Key)
		desc := FooterDescStyle.Render(": " + b.Desc)
		parts = append(parts, key+desc)
	}

	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")

	// Drop bindings that don't fit rather than wrapping onto a second row
	if f.width > 2 {
		content = ansi.Truncate(content, f.width-2, "…")
	}

	return FooterStyle.Width(f.width).Render(content)
}
