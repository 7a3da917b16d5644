package app

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/parleychat/parley/internal/ui"
)

// updateSizes recalculates and applies dimensions to all UI components
func (m *Model) updateSizes() {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.sidebar.SetSize(ctx.SidebarWidth, ctx.ContentHeight)
	m.chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
}

// View renders the app
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	v.SetContent(m.RenderToString())
	return v
}

// RenderToString renders the current view as a string.
// This is useful for demos and testing.
func (m *Model) RenderToString() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	ctx := ui.GetViewContext()

	// Update footer context for conditional bindings
	hasConversation := false
	sidebarOpen := false
	if m.coordinator != nil {
		_, hasConversation = m.coordinator.Selected()
		sidebarOpen = m.coordinator.Layout().SidebarOpen()
	}
	sidebarFocused := m.focus == FocusSidebar
	searchMode := m.sidebar.IsSearchMode()
	m.footer.SetContext(hasConversation, sidebarFocused, searchMode, ctx.Narrow, sidebarOpen)

	header := m.header.View()
	footer := m.footer.View()

	// In the narrow regime one panel fills the content area; the sidebar
	// acts as a full-width overlay when open
	var panels string
	if ctx.Narrow {
		if sidebarOpen {
			panels = m.sidebar.View()
		} else {
			panels = m.chat.View()
		}
	} else {
		panels = lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.sidebar.View(),
			m.chat.View(),
		)
	}

	view := lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		panels,
		footer,
	)

	// Overlay modal if visible
	if m.modal.IsVisible() {
		return m.modal.View(m.width, m.height)
	}

	return view
}
