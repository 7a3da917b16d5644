package ui

import (
	"strings"
	"testing"
	"time"
)

func TestFooterSetFlash(t *testing.T) {
	f := NewFooter()

	if f.HasFlash() {
		t.Error("new footer should not have a flash message")
	}

	f.SetFlash("saved", FlashSuccess)

	if !f.HasFlash() {
		t.Error("expected flash message after SetFlash")
	}
	if f.flashMessage.Duration != DefaultFlashDuration {
		t.Errorf("expected default duration %v, got %v", DefaultFlashDuration, f.flashMessage.Duration)
	}
}

func TestFooterSetFlashWithDuration(t *testing.T) {
	f := NewFooter()
	f.SetFlashWithDuration("slow down", FlashWarning, 10*time.Second)

	if f.flashMessage.Duration != 10*time.Second {
		t.Errorf("expected 10s duration, got %v", f.flashMessage.Duration)
	}
}

func TestFooterClearFlash(t *testing.T) {
	f := NewFooter()
	f.SetFlash("oops", FlashError)
	f.ClearFlash()

	if f.HasFlash() {
		t.Error("expected no flash message after ClearFlash")
	}
}

func TestFlashMessageIsExpired(t *testing.T) {
	msg := &FlashMessage{
		Text:      "old news",
		Type:      FlashInfo,
		CreatedAt: time.Now().Add(-5 * time.Second),
		Duration:  4 * time.Second,
	}
	if !msg.IsExpired() {
		t.Error("message older than its duration should be expired")
	}

	fresh := &FlashMessage{
		Text:      "just in",
		Type:      FlashInfo,
		CreatedAt: time.Now(),
		Duration:  4 * time.Second,
	}
	if fresh.IsExpired() {
		t.Error("fresh message should not be expired")
	}
}

func TestFooterClearIfExpired(t *testing.T) {
	f := NewFooter()
	f.SetFlash("still here", FlashInfo)

	if f.ClearIfExpired() {
		t.Error("fresh flash should not be cleared")
	}
	if !f.HasFlash() {
		t.Error("flash should survive ClearIfExpired while fresh")
	}

	f.flashMessage.CreatedAt = time.Now().Add(-time.Minute)
	if !f.ClearIfExpired() {
		t.Error("expired flash should be cleared")
	}
	if f.HasFlash() {
		t.Error("flash should be gone after expiry")
	}
}

func TestFooterFlashIcons(t *testing.T) {
	tests := []struct {
		flashType FlashType
		icon      string
	}{
		{FlashError, "✕"},
		{FlashWarning, "⚠"},
		{FlashInfo, "ℹ"},
		{FlashSuccess, "✓"},
	}

	for _, tt := range tests {
		if got := flashIcon(tt.flashType); got != tt.icon {
			t.Errorf("flashIcon(%d) = %q, want %q", tt.flashType, got, tt.icon)
		}
	}
}

func TestFooterFlashTakesPriority(t *testing.T) {
	f := NewFooter()
	f.SetWidth(120)
	f.SetFlash("copied to clipboard", FlashSuccess)

	view := f.View()
	if !strings.Contains(view, "copied to clipboard") {
		t.Error("footer view should contain flash text")
	}
	if strings.Contains(view, "quit") {
		t.Error("keybindings should be hidden while a flash is visible")
	}
}

func TestFooterSearchModeBindings(t *testing.T) {
	f := NewFooter()
	f.SetWidth(120)
	f.SetContext(true, true, true, false, false)

	view := f.View()
	if !strings.Contains(view, "cancel") {
		t.Error("search mode footer should mention cancel")
	}
	if strings.Contains(view, "logout") {
		t.Error("search mode footer should not show default bindings")
	}
}

func TestFooterHidesTabWithoutConversation(t *testing.T) {
	f := NewFooter()
	f.SetWidth(120)
	f.SetContext(false, true, false, false, false)

	if strings.Contains(f.View(), "switch pane") {
		t.Error("tab binding should be hidden with no conversation selected")
	}

	f.SetContext(true, true, false, false, false)
	if !strings.Contains(f.View(), "switch pane") {
		t.Error("tab binding should appear once a conversation is selected")
	}
}
