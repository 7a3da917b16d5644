package session

// Layout is the two-state machine for sidebar visibility in narrow
// viewports. Wide layouts always show the sidebar and ignore this state;
// the rendering layer decides which regime applies.
type Layout struct {
	sidebarOpen bool
}

// NewLayout returns the default layout: sidebar closed.
func NewLayout() *Layout {
	return &Layout{}
}

// SidebarOpen reports whether the overlay sidebar is showing.
func (l *Layout) SidebarOpen() bool {
	return l.sidebarOpen
}

// ToggleSidebar flips the sidebar state.
func (l *Layout) ToggleSidebar() {
	l.sidebarOpen = !l.sidebarOpen
}

// OpenSidebar shows the sidebar. Idempotent.
func (l *Layout) OpenSidebar() {
	l.sidebarOpen = true
}

// CloseSidebar hides the sidebar. Idempotent; also invoked as a side
// effect of selecting a conversation in narrow mode so the timeline
// becomes visible.
func (l *Layout) CloseSidebar() {
	l.sidebarOpen = false
}

// Reset returns the layout to its default state.
func (l *Layout) Reset() {
	l.sidebarOpen = false
}
