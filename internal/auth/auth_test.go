package auth

import (
	"testing"

	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/errors"
)

func TestLogin(t *testing.T) {
	a := New()

	user, err := a.Login("John Doe", "secret1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.ID == "" {
		t.Error("user ID should be generated")
	}
	if user.DisplayName != "John Doe" {
		t.Errorf("DisplayName = %q, want %q", user.DisplayName, "John Doe")
	}
	if user.Presence != chat.PresenceOnline {
		t.Error("a fresh login should be online")
	}
	if user.AvatarRef == "" {
		t.Error("AvatarRef should be derived")
	}
}

func TestLogin_Validation(t *testing.T) {
	a := New()

	tests := []struct {
		name     string
		display  string
		password string
	}{
		{"empty name", "", "secret1"},
		{"whitespace name", "   ", "secret1"},
		{"short password", "John", "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Login(tt.display, tt.password)
			if err == nil {
				t.Fatal("expected login failure")
			}
			if !errors.Is(err, errors.KindAuth) {
				t.Errorf("error kind = %v, want KindAuth", errors.GetKind(err))
			}
		})
	}
}

func TestLogin_UniqueIDs(t *testing.T) {
	a := New()
	u1, _ := a.Login("John Doe", "secret1")
	u2, _ := a.Login("John Doe", "secret1")
	if u1.ID == u2.ID {
		t.Error("each login should mint a distinct session user ID")
	}
}

func TestAvatarRef(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"John Doe", "https://api.dicebear.com/7.x/avataaars/svg?seed=john-doe"},
		{"  Sarah Wilson ", "https://api.dicebear.com/7.x/avataaars/svg?seed=sarah-wilson"},
	}

	for _, tt := range tests {
		if got := AvatarRef(tt.name); got != tt.want {
			t.Errorf("AvatarRef(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
