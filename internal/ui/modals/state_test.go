package modals

import (
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(key rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: key, Text: string(key)}
}

func TestThemeState_Navigation(t *testing.T) {
	s := NewThemeState([]string{"Dark Purple", "Nord"}, "Dark Purple")

	if s.SelectedIndex != 0 {
		t.Errorf("expected highlight on current theme, got index %d", s.SelectedIndex)
	}

	s.Update(keyPress('j'))
	if s.GetSelectedTheme() != "Nord" {
		t.Errorf("expected Nord after down, got %q", s.GetSelectedTheme())
	}

	// Bottom of the list clamps
	s.Update(keyPress('j'))
	if s.GetSelectedTheme() != "Nord" {
		t.Errorf("selection should clamp at last theme, got %q", s.GetSelectedTheme())
	}

	s.Update(keyPress('k'))
	if s.GetSelectedTheme() != "Dark Purple" {
		t.Errorf("expected Dark Purple after up, got %q", s.GetSelectedTheme())
	}
}

func TestThemeState_StartsOnCurrent(t *testing.T) {
	s := NewThemeState([]string{"Dark Purple", "Nord"}, "Nord")

	if s.GetSelectedTheme() != "Nord" {
		t.Errorf("expected initial selection Nord, got %q", s.GetSelectedTheme())
	}
}

func TestConfirmLogoutState(t *testing.T) {
	s := NewConfirmLogoutState()

	if s.Confirmed() {
		t.Error("default selection should not confirm logout")
	}

	s.Update(keyPress('j'))
	if !s.Confirmed() {
		t.Error("expected confirm after moving to the log out option")
	}
}

func TestLoginState_Credentials(t *testing.T) {
	s := NewLoginState("")

	name, password := s.GetCredentials()
	if name != "" || password != "" {
		t.Error("fresh login form should have empty credentials")
	}

	s.displayName = "Ada"
	s.password = "hunter2"
	name, password = s.GetCredentials()
	if name != "Ada" || password != "hunter2" {
		t.Errorf("GetCredentials() = %q, %q", name, password)
	}
}

func TestLoginState_PrefilledDisplayName(t *testing.T) {
	s := NewLoginState("Ada Lovelace")

	name, password := s.GetCredentials()
	if name != "Ada Lovelace" {
		t.Errorf("display name = %q, want prefilled %q", name, "Ada Lovelace")
	}
	if password != "" {
		t.Errorf("password = %q, want empty", password)
	}
}
