package session

import "testing"

func TestLayout_Defaults(t *testing.T) {
	l := NewLayout()
	if l.SidebarOpen() {
		t.Error("sidebar should default closed")
	}
}

func TestLayout_Toggle(t *testing.T) {
	l := NewLayout()

	l.ToggleSidebar()
	if !l.SidebarOpen() {
		t.Error("sidebar should be open after first toggle")
	}
	l.ToggleSidebar()
	if l.SidebarOpen() {
		t.Error("sidebar should be closed after second toggle")
	}
}

func TestLayout_CloseIdempotent(t *testing.T) {
	l := NewLayout()
	l.OpenSidebar()

	l.CloseSidebar()
	l.CloseSidebar()
	if l.SidebarOpen() {
		t.Error("sidebar should stay closed")
	}
}

func TestLayout_Reset(t *testing.T) {
	l := NewLayout()
	l.OpenSidebar()
	l.Reset()
	if l.SidebarOpen() {
		t.Error("reset should close the sidebar")
	}
}
