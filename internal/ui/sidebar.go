package ui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/keys"
)

// Sidebar represents the left panel with the conversation list. It reads
// rows from the directory on every render, so ordering and unread counts
// always reflect the latest timeline sync.
type Sidebar struct {
	directory    *chat.Directory
	selectedIdx  int
	width        int
	height       int
	focused      bool
	scrollOffset int

	// Conversation IDs with an active typing indicator
	typing map[string]bool

	// Search mode
	searchMode  bool
	searchInput textinput.Model
}

// NewSidebar creates a new sidebar backed by the given directory
func NewSidebar(dir *chat.Directory) *Sidebar {
	ti := textinput.New()
	ti.Placeholder = "search..."
	ti.CharLimit = SidebarSearchCharLimit

	return &Sidebar{
		directory:   dir,
		typing:      make(map[string]bool),
		searchInput: ti,
	}
}

// SetSize sets the sidebar dimensions
func (s *Sidebar) SetSize(width, height int) {
	s.width = width
	s.height = height

	ctx := GetViewContext()
	ctx.Log("Sidebar.SetSize: outer=%dx%d inner=%dx%d",
		width, height, ctx.InnerWidth(width), ctx.InnerHeight(height))
}

// Width returns the sidebar width
func (s *Sidebar) Width() int {
	return s.width
}

// SetFocused sets the focus state
func (s *Sidebar) SetFocused(focused bool) {
	s.focused = focused
}

// IsFocused returns the focus state
func (s *Sidebar) IsFocused() bool {
	return s.focused
}

// SetTyping records whether someone is typing in a conversation
func (s *Sidebar) SetTyping(conversationID string, active bool) {
	if active {
		s.typing[conversationID] = true
	} else {
		delete(s.typing, conversationID)
	}
}

// visibleConversations returns the directory rows matching the current
// filter, in directory order
func (s *Sidebar) visibleConversations() []chat.Conversation {
	return s.directory.List(s.searchInput.Value())
}

// SelectedConversation returns the ID of the highlighted conversation,
// or empty string when the list is empty
func (s *Sidebar) SelectedConversation() string {
	convs := s.visibleConversations()
	if s.selectedIdx < 0 || s.selectedIdx >= len(convs) {
		return ""
	}
	return convs[s.selectedIdx].ID
}

// SelectConversation moves the highlight to the conversation with the
// given ID, if it is visible under the current filter
func (s *Sidebar) SelectConversation(id string) {
	for i, c := range s.visibleConversations() {
		if c.ID == id {
			s.selectedIdx = i
			return
		}
	}
}

// EnterSearchMode activates search mode
func (s *Sidebar) EnterSearchMode() tea.Cmd {
	s.searchMode = true
	s.searchInput.SetValue("")
	s.searchInput.Focus()
	s.selectedIdx = 0
	s.scrollOffset = 0
	return nil
}

// ExitSearchMode deactivates search mode and clears the filter
func (s *Sidebar) ExitSearchMode() {
	s.searchMode = false
	s.searchInput.Blur()
	s.searchInput.SetValue("")
	s.clampSelection()
}

// IsSearchMode returns whether search mode is active
func (s *Sidebar) IsSearchMode() bool {
	return s.searchMode
}

// GetSearchQuery returns the current search query
func (s *Sidebar) GetSearchQuery() string {
	return s.searchInput.Value()
}

func (s *Sidebar) clampSelection() {
	n := len(s.visibleConversations())
	if s.selectedIdx >= n {
		s.selectedIdx = n - 1
	}
	if s.selectedIdx < 0 {
		s.selectedIdx = 0
	}
}

// Update handles messages
func (s *Sidebar) Update(msg tea.Msg) (*Sidebar, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok || !s.focused {
		return s, nil
	}

	// Handle search mode input
	if s.searchMode {
		switch keyMsg.String() {
		case keys.Escape:
			s.ExitSearchMode()
			return s, nil
		case keys.Enter:
			// Exit search mode but keep filter applied
			s.searchMode = false
			s.searchInput.Blur()
			s.clampSelection()
			return s, nil
		case keys.Up:
			if s.selectedIdx > 0 {
				s.selectedIdx--
			}
			return s, nil
		case keys.Down:
			if s.selectedIdx < len(s.visibleConversations())-1 {
				s.selectedIdx++
			}
			return s, nil
		default:
			// Forward to text input
			var cmd tea.Cmd
			s.searchInput, cmd = s.searchInput.Update(msg)
			s.selectedIdx = 0
			s.scrollOffset = 0
			return s, cmd
		}
	}

	// Normal mode navigation
	switch keyMsg.String() {
	case keys.Up, "k":
		if s.selectedIdx > 0 {
			s.selectedIdx--
		}
	case keys.Down, "j":
		if s.selectedIdx < len(s.visibleConversations())-1 {
			s.selectedIdx++
		}
	case keys.Home:
		s.selectedIdx = 0
	case keys.End:
		if n := len(s.visibleConversations()); n > 0 {
			s.selectedIdx = n - 1
		}
	}

	return s, nil
}

// View renders the sidebar
func (s *Sidebar) View() string {
	ctx := GetViewContext()

	style := PanelStyle
	if s.focused {
		style = PanelFocusedStyle
	}

	innerHeight := ctx.InnerHeight(s.height)
	innerWidth := ctx.InnerWidth(s.width)

	// Render search input if in search mode
	var searchLine string
	if s.searchMode {
		searchStyle := lipgloss.NewStyle().
			Foreground(ColorSecondary).
			Bold(true)
		s.searchInput.SetWidth(innerWidth - 3) // Leave room for "/ "
		searchLine = searchStyle.Render("/") + " " + s.searchInput.View()
		innerHeight-- // Reserve one line for search
	}

	convs := s.visibleConversations()

	var content string
	if len(convs) == 0 {
		emptyMsg := "No conversations."
		if s.searchInput.Value() != "" {
			emptyMsg = "No matches."
		}
		content = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render(emptyMsg)
	} else {
		// Build actual rendered lines so scroll math survives wrapping
		var allLines []string
		selectedStartLine := 0

		for idx, conv := range convs {
			isSelected := idx == s.selectedIdx
			row := s.renderConversation(conv, isSelected, innerWidth)

			itemStyle := SidebarItemStyle.Width(innerWidth)
			if isSelected {
				itemStyle = SidebarSelectedStyle.Width(innerWidth)
				selectedStartLine = len(allLines)
			}

			rendered := itemStyle.Render(row)
			allLines = append(allLines, strings.Split(rendered, "\n")...)
		}

		// Adjust scroll to keep the selected conversation visible
		if selectedStartLine < s.scrollOffset {
			s.scrollOffset = selectedStartLine
		} else if selectedStartLine >= s.scrollOffset+innerHeight {
			s.scrollOffset = selectedStartLine - innerHeight + 1
		}

		if s.scrollOffset < 0 {
			s.scrollOffset = 0
		}
		maxScroll := len(allLines) - innerHeight
		if maxScroll < 0 {
			maxScroll = 0
		}
		if s.scrollOffset > maxScroll {
			s.scrollOffset = maxScroll
		}

		if s.scrollOffset > 0 && s.scrollOffset < len(allLines) {
			allLines = allLines[s.scrollOffset:]
		}
		if len(allLines) > innerHeight && innerHeight > 0 {
			allLines = allLines[:innerHeight]
		}
		content = strings.Join(allLines, "\n")
	}

	if s.searchMode {
		if content != "" {
			content = searchLine + "\n" + content
		} else {
			content = searchLine
		}
	}

	// In lipgloss v2, Width/Height include borders, so pass full panel size
	return style.Width(s.width).Height(s.height).Render(content)
}

// renderConversation builds the two-line row for a directory entry:
// presence, name, unread badge and activity time on the first line, the
// last message preview (or typing indicator) on the second.
func (s *Sidebar) renderConversation(conv chat.Conversation, isSelected bool, innerWidth int) string {
	// Presence marker: dot for direct conversations, member count for groups
	var marker, styledMarker string
	switch conv.Kind {
	case chat.KindGroup:
		marker = fmt.Sprintf("⬢%d", conv.MemberCount)
		styledMarker = lipgloss.NewStyle().Foreground(ColorSecondary).Render(marker)
	default:
		marker = "●"
		if conv.CounterpartPresence == chat.PresenceOnline {
			styledMarker = PresenceOnlineStyle.Render(marker)
		} else {
			styledMarker = PresenceOfflineStyle.Render(marker)
		}
	}

	timeLabel := ""
	if !conv.LastActivityAt.IsZero() {
		timeLabel = humanize.Time(conv.LastActivityAt)
	}
	if runewidth.StringWidth(timeLabel) > SidebarTimeWidth {
		timeLabel = runewidth.Truncate(timeLabel, SidebarTimeWidth, "…")
	}

	badge := ""
	if conv.UnreadCount > 0 {
		badge = fmt.Sprintf(" (%d)", conv.UnreadCount)
	}

	prefix := " "
	if isSelected {
		prefix = ">"
	}

	// Truncate the name so marker, badge and time always fit on one line
	nameBudget := innerWidth - runewidth.StringWidth(prefix) - runewidth.StringWidth(marker) - runewidth.StringWidth(badge) - runewidth.StringWidth(timeLabel) - 4
	if nameBudget < 4 {
		nameBudget = 4
	}
	name := runewidth.Truncate(conv.DisplayName, nameBudget, "…")

	var line strings.Builder
	line.WriteString(prefix + " ")
	if isSelected {
		line.WriteString(marker)
	} else {
		line.WriteString(styledMarker)
	}
	line.WriteString(" " + name)
	if badge != "" {
		if isSelected {
			line.WriteString(badge)
		} else {
			line.WriteString(SidebarUnreadBadgeStyle.Render(badge))
		}
	}

	// Right-align the activity time with whatever width remains
	used := runewidth.StringWidth(prefix) + runewidth.StringWidth(marker) + runewidth.StringWidth(name) + runewidth.StringWidth(badge) + 2
	gap := innerWidth - used - runewidth.StringWidth(timeLabel)
	if gap < 1 {
		gap = 1
	}
	line.WriteString(strings.Repeat(" ", gap))
	if isSelected {
		line.WriteString(timeLabel)
	} else {
		line.WriteString(SidebarTimeStyle.Render(timeLabel))
	}

	// Second line: typing indicator beats the stored preview
	var preview string
	if s.typing[conv.ID] {
		preview = "typing…"
		if !isSelected {
			preview = ChatTypingStyle.Render(preview)
		}
	} else if conv.LastMessagePreview != "" {
		p := runewidth.Truncate(conv.LastMessagePreview, innerWidth-4, "…")
		if isSelected {
			preview = p
		} else {
			preview = lipgloss.NewStyle().Foreground(ColorTextMuted).Render(p)
		}
	}

	if preview == "" {
		return line.String()
	}
	return line.String() + "\n   " + preview
}
