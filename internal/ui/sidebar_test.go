package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/parleychat/parley/internal/chat"
)

func testDirectory() *chat.Directory {
	dir := chat.NewDirectory()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	dir.Upsert(chat.Conversation{
		ID:                  "conv-john",
		Kind:                chat.KindDirect,
		DisplayName:         "John Doe",
		CounterpartPresence: chat.PresenceOnline,
		LastActivityAt:      base.Add(2 * time.Hour),
		LastMessagePreview:  "see you then",
	})
	dir.Upsert(chat.Conversation{
		ID:             "conv-team",
		Kind:           chat.KindGroup,
		DisplayName:    "Team Standup",
		MemberCount:    5,
		LastActivityAt: base.Add(time.Hour),
		UnreadCount:    3,
	})
	dir.Upsert(chat.Conversation{
		ID:             "conv-sarah",
		Kind:           chat.KindDirect,
		DisplayName:    "Sarah Chen",
		LastActivityAt: base,
	})
	return dir
}

func TestNewSidebar(t *testing.T) {
	sidebar := NewSidebar(testDirectory())

	if sidebar == nil {
		t.Fatal("NewSidebar() returned nil")
	}

	if sidebar.selectedIdx != 0 {
		t.Errorf("Expected selectedIdx 0, got %d", sidebar.selectedIdx)
	}

	if sidebar.typing == nil {
		t.Error("typing map should be initialized")
	}
}

func TestSidebar_SetSize(t *testing.T) {
	sidebar := NewSidebar(testDirectory())

	sidebar.SetSize(40, 24)

	if sidebar.width != 40 {
		t.Errorf("Expected width 40, got %d", sidebar.width)
	}

	if sidebar.height != 24 {
		t.Errorf("Expected height 24, got %d", sidebar.height)
	}

	if sidebar.Width() != 40 {
		t.Errorf("Width() should return 40, got %d", sidebar.Width())
	}
}

func TestSidebar_FocusState(t *testing.T) {
	sidebar := NewSidebar(testDirectory())

	if sidebar.IsFocused() {
		t.Error("Should not be focused initially")
	}

	sidebar.SetFocused(true)
	if !sidebar.IsFocused() {
		t.Error("Should be focused after SetFocused(true)")
	}

	sidebar.SetFocused(false)
	if sidebar.IsFocused() {
		t.Error("Should not be focused after SetFocused(false)")
	}
}

func TestSidebar_SelectedConversation_DirectoryOrder(t *testing.T) {
	sidebar := NewSidebar(testDirectory())

	// Directory lists most recently active first
	if got := sidebar.SelectedConversation(); got != "conv-john" {
		t.Errorf("Expected conv-john selected by default, got %q", got)
	}
}

func TestSidebar_SelectConversation(t *testing.T) {
	sidebar := NewSidebar(testDirectory())

	sidebar.SelectConversation("conv-sarah")
	if got := sidebar.SelectedConversation(); got != "conv-sarah" {
		t.Errorf("Expected conv-sarah, got %q", got)
	}

	// Unknown ID leaves selection alone
	sidebar.SelectConversation("conv-nope")
	if got := sidebar.SelectedConversation(); got != "conv-sarah" {
		t.Errorf("Selection should be unchanged, got %q", got)
	}
}

func TestSidebar_SelectedConversation_Empty(t *testing.T) {
	sidebar := NewSidebar(chat.NewDirectory())

	if got := sidebar.SelectedConversation(); got != "" {
		t.Errorf("Expected empty selection, got %q", got)
	}
}

func TestSidebar_SearchFilter(t *testing.T) {
	sidebar := NewSidebar(testDirectory())

	sidebar.EnterSearchMode()
	if !sidebar.IsSearchMode() {
		t.Fatal("Should be in search mode")
	}

	sidebar.searchInput.SetValue("sarah")
	convs := sidebar.visibleConversations()
	if len(convs) != 1 || convs[0].ID != "conv-sarah" {
		t.Fatalf("Expected only conv-sarah under filter, got %d rows", len(convs))
	}
	if got := sidebar.SelectedConversation(); got != "conv-sarah" {
		t.Errorf("Selection should land on filtered row, got %q", got)
	}

	sidebar.ExitSearchMode()
	if sidebar.IsSearchMode() {
		t.Error("Should have left search mode")
	}
	if got := sidebar.GetSearchQuery(); got != "" {
		t.Errorf("Filter should be cleared on exit, got %q", got)
	}
	if n := len(sidebar.visibleConversations()); n != 3 {
		t.Errorf("Expected full list after exit, got %d rows", n)
	}
}

func TestSidebar_SetTyping(t *testing.T) {
	sidebar := NewSidebar(testDirectory())

	sidebar.SetTyping("conv-john", true)
	if !sidebar.typing["conv-john"] {
		t.Error("Typing flag should be set")
	}

	sidebar.SetTyping("conv-john", false)
	if _, ok := sidebar.typing["conv-john"]; ok {
		t.Error("Typing flag should be removed")
	}
}

func TestSidebar_View_ShowsConversations(t *testing.T) {
	sidebar := NewSidebar(testDirectory())
	GetViewContext().UpdateTerminalSize(120, 40)
	sidebar.SetSize(40, 30)

	view := sidebar.View()
	if !strings.Contains(view, "John Doe") {
		t.Error("View should show John Doe")
	}
	if !strings.Contains(view, "Team Standup") {
		t.Error("View should show the group conversation")
	}
	if !strings.Contains(view, "(3)") {
		t.Error("View should show the unread badge")
	}
}

func TestSidebar_View_Empty(t *testing.T) {
	sidebar := NewSidebar(chat.NewDirectory())
	GetViewContext().UpdateTerminalSize(120, 40)
	sidebar.SetSize(40, 30)

	if !strings.Contains(sidebar.View(), "No conversations.") {
		t.Error("Empty directory should render placeholder")
	}
}
