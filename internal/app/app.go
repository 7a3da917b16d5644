package app

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/clipboard"
	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/keys"
	"github.com/parleychat/parley/internal/logger"
	"github.com/parleychat/parley/internal/session"
	"github.com/parleychat/parley/internal/transport"
	"github.com/parleychat/parley/internal/ui"
	"github.com/parleychat/parley/internal/ui/modals"
)

// Focus represents which panel is focused
type Focus int

const (
	FocusSidebar Focus = iota
	FocusChat
)

// AppState represents the current state of the application.
// Using an explicit state machine prevents invalid state combinations
// and makes state transitions clear and traceable.
type AppState int

const (
	StateAuth AppState = iota // Waiting for sign-in
	StateChat                 // Signed in, conversations available
)

// String returns a human-readable name for the state
func (s AppState) String() string {
	switch s {
	case StateAuth:
		return "Auth"
	case StateChat:
		return "Chat"
	default:
		return "Unknown"
	}
}

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string // App version (injected at build time)
	header  *ui.Header
	footer  *ui.Footer
	sidebar *ui.Sidebar
	chat    *ui.Chat
	modal   *ui.Modal

	width  int
	height int
	focus  Focus

	// Session-scoped engine state, nil until sign-in
	coordinator *session.Coordinator
	feed        *transport.Feed

	state AppState
}

// IncomingMsg is sent when the transport delivers a message from a remote party
type IncomingMsg struct {
	Message chat.Message
}

// AckMsg is sent when the transport resolves delivery of an outgoing message
type AckMsg struct {
	Ack transport.Ack
}

// TypingMsg is sent when a remote party starts or stops composing
type TypingMsg struct {
	Event transport.TypingEvent
}

// New creates a new app model
func New(cfg *config.Config, version string) *Model {
	// Load saved theme from config, or use default
	if savedTheme := cfg.GetTheme(); savedTheme != "" {
		ui.SetThemeByName(savedTheme)
	}

	m := &Model{
		config:  cfg,
		version: version,
		header:  ui.NewHeader(),
		footer:  ui.NewFooter(),
		sidebar: ui.NewSidebar(chat.NewDirectory()),
		chat:    ui.NewChat(),
		modal:   ui.NewModal(),
		focus:   FocusSidebar,
		state:   StateAuth,
	}

	m.sidebar.SetFocused(true)
	m.modal.Show(modals.NewLoginState(m.config.GetUsername()))

	return m
}

// setState transitions to a new state with logging
func (m *Model) setState(newState AppState) {
	if m.state != newState {
		logger.Log("App: State transition %s -> %s", m.state, newState)
		m.state = newState
	}
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()
		if m.coordinator != nil {
			m.coordinator.SetNarrow(ui.GetViewContext().Narrow)
		}

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() {
			return m, nil
		}
		if m.footer.HasFlash() {
			return m, ui.FlashTick()
		}

	case tea.KeyPressMsg:
		// Handle modal first if visible
		if m.modal.IsVisible() {
			return m.handleModalKey(msg)
		}

		// Nothing behind the modal is interactive before sign-in
		if m.state == StateAuth {
			m.modal.Show(modals.NewLoginState(m.config.GetUsername()))
			return m, nil
		}

		// Sidebar search mode owns the keyboard while active so the
		// query can contain letters that double as shortcuts
		if m.focus == FocusSidebar && m.sidebar.IsSearchMode() && msg.String() != keys.CtrlC {
			sidebar, cmd := m.sidebar.Update(msg)
			m.sidebar = sidebar
			if !m.sidebar.IsSearchMode() {
				// Enter or Escape left search mode; a selection may have moved
				m.clampChatToSelection()
			}
			return m, cmd
		}

		// Global keys
		switch msg.String() {
		case keys.CtrlC:
			return m, m.quit()
		case "q":
			// Only quit on 'q' when sidebar is focused (so user can type 'q' in chat)
			if !m.chat.IsFocused() {
				return m, m.quit()
			}
		case keys.Tab:
			m.toggleFocus()
		case "/":
			if m.focus == FocusSidebar {
				return m, m.sidebar.EnterSearchMode()
			}
		case "t":
			if !m.chat.IsFocused() {
				m.modal.Show(modals.NewThemeState(themeDisplayNames(), currentThemeDisplayName()))
			}
		case keys.CtrlL:
			m.modal.Show(modals.NewConfirmLogoutState())
		case keys.CtrlB:
			if m.coordinator.Narrow() {
				m.coordinator.ToggleSidebar()
				if m.coordinator.Layout().SidebarOpen() {
					m.setFocus(FocusSidebar)
				} else {
					m.setFocus(FocusChat)
				}
			}
		case keys.CtrlY:
			return m, m.copyLastMessage()
		case keys.Enter:
			if m.focus == FocusSidebar {
				return m.selectConversation(m.sidebar.SelectedConversation())
			} else if m.focus == FocusChat {
				return m.sendMessage()
			}
		}

	case IncomingMsg:
		return m.handleIncoming(msg)

	case AckMsg:
		return m.handleAck(msg)

	case TypingMsg:
		return m.handleTyping(msg)
	}

	// Update modal
	if m.modal.IsVisible() {
		modal, cmd := m.modal.Update(msg)
		m.modal = modal
		cmds = append(cmds, cmd)
		return m, tea.Batch(cmds...)
	}

	// Route scroll keys to the chat panel even when the sidebar is focused.
	// Note: up/down/j/k are reserved for sidebar navigation.
	if m.focus == FocusSidebar {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case keys.PgUp, keys.PgDown, "page up", "page down", keys.CtrlU, keys.CtrlD:
				chatPanel, cmd := m.chat.Update(msg)
				m.chat = chatPanel
				cmds = append(cmds, cmd)
				return m, tea.Batch(cmds...)
			}
		}
	}

	// Update focused panel for other messages
	if m.focus == FocusSidebar {
		sidebar, cmd := m.sidebar.Update(msg)
		m.sidebar = sidebar
		cmds = append(cmds, cmd)
	} else {
		chatPanel, cmd := m.chat.Update(msg)
		m.chat = chatPanel
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// quit tears down the transport before exiting so its goroutines stop
func (m *Model) quit() tea.Cmd {
	if m.feed != nil {
		m.feed.Close()
	}
	return tea.Quit
}

func (m *Model) toggleFocus() {
	if m.focus == FocusSidebar {
		m.setFocus(FocusChat)
	} else {
		m.setFocus(FocusSidebar)
	}
}

func (m *Model) setFocus(focus Focus) {
	m.focus = focus
	m.sidebar.SetFocused(focus == FocusSidebar)
	m.chat.SetFocused(focus == FocusChat)
}

// selectConversation makes the conversation current, marks its backlog
// read, and loads its timeline into the chat panel.
func (m *Model) selectConversation(id string) (tea.Model, tea.Cmd) {
	if id == "" {
		return m, nil
	}

	result, err := m.coordinator.SelectConversation(id)
	if err != nil {
		return m, m.ShowFlashError(err.Error())
	}

	conv, err := m.coordinator.Directory().Get(result.ConversationID)
	if err != nil {
		return m, m.ShowFlashError(err.Error())
	}

	m.chat.SetConversation(conv.DisplayName, conv.Kind == chat.KindGroup, m.coordinator.Timelines().MessagesFor(conv.ID))
	m.header.SetConversation(conv.DisplayName, conversationStatus(conv))
	m.setFocus(FocusChat)

	logger.Log("App: Selected conversation %s (epoch %d)", conv.ID, result.Epoch)
	return m, nil
}

// sendMessage validates the composed text, appends it optimistically,
// and hands it to the transport for delivery.
func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	body := m.chat.GetInput()
	if body == "" {
		return m, nil
	}

	id, ok := m.coordinator.Selected()
	if !ok {
		return m, m.ShowFlashWarning("Select a conversation first")
	}

	sent, err := m.coordinator.SendMessage(id, body)
	if err != nil {
		return m, m.ShowFlashError(err.Error())
	}

	m.feed.Send(sent)
	m.chat.ClearInput()
	m.refreshChat()
	return m, nil
}

// copyLastMessage puts the newest message body of the open conversation
// on the system clipboard.
func (m *Model) copyLastMessage() tea.Cmd {
	body := m.chat.LastMessageBody()
	if body == "" {
		return m.ShowFlashWarning("No message to copy")
	}
	if err := clipboard.CopyText(body); err != nil {
		logger.Error("App: Clipboard copy failed: %v", err)
		return m.ShowFlashError("Couldn't copy to clipboard")
	}
	return m.ShowFlashSuccess("Copied last message")
}

// refreshChat reloads the selected conversation's timeline into the chat panel
func (m *Model) refreshChat() {
	id, ok := m.coordinator.Selected()
	if !ok {
		return
	}
	m.chat.SetMessages(m.coordinator.Timelines().MessagesFor(id))
}

// clampChatToSelection clears the chat panel if the selected conversation
// was filtered away while searching.
func (m *Model) clampChatToSelection() {
	id, ok := m.coordinator.Selected()
	if !ok {
		return
	}
	if m.sidebar.SelectedConversation() != id {
		m.sidebar.SelectConversation(id)
	}
}

// conversationStatus renders the header status line for a directory entry
func conversationStatus(conv chat.Conversation) string {
	if conv.Kind == chat.KindGroup {
		return fmt.Sprintf("%d members", conv.MemberCount)
	}
	return conv.CounterpartPresence.String()
}

// themeDisplayNames returns the display names of all built-in themes in order
func themeDisplayNames() []string {
	names := ui.ThemeNames()
	display := make([]string, len(names))
	for i, name := range names {
		display[i] = ui.GetTheme(name).Name
	}
	return display
}

// currentThemeDisplayName returns the display name of the active theme
func currentThemeDisplayName() string {
	return ui.GetTheme(ui.CurrentThemeName()).Name
}

// themeNameForDisplay maps a display name back to its theme identifier
func themeNameForDisplay(display string) (ui.ThemeName, bool) {
	for _, name := range ui.ThemeNames() {
		if ui.GetTheme(name).Name == display {
			return name, true
		}
	}
	return "", false
}

// completeLogin stands up the session-scoped engine for an authenticated
// user and starts the transport listeners.
func (m *Model) completeLogin(user chat.User) tea.Cmd {
	m.config.MarkLogin(user.DisplayName, time.Now())
	if err := m.config.Save(); err != nil {
		logger.Warn("App: Failed to save config after login: %v", err)
	}

	m.coordinator = session.NewCoordinator(user)
	m.feed = transport.NewFeed(user, m.config.GetServerURL())
	m.feed.Seed(m.coordinator.Directory(), m.coordinator.Timelines())
	m.feed.Start()

	m.sidebar = ui.NewSidebar(m.coordinator.Directory())
	m.chat.SetSelf(user.ID)
	m.setFocus(FocusSidebar)
	m.modal.Hide()
	m.setState(StateChat)
	m.updateSizes()
	m.coordinator.SetNarrow(ui.GetViewContext().Narrow)

	logger.Info("App: Signed in as %s (%s)", user.DisplayName, user.ID)
	return tea.Batch(m.feedListeners()...)
}

// completeLogout tears down the session-scoped engine and returns to sign-in
func (m *Model) completeLogout() {
	user := m.coordinator.User()
	m.coordinator.Logout()
	m.feed.Close()
	m.coordinator = nil
	m.feed = nil

	m.sidebar = ui.NewSidebar(chat.NewDirectory())
	m.chat.ClearConversation()
	m.header.ClearConversation()
	m.setFocus(FocusSidebar)
	m.setState(StateAuth)
	m.updateSizes()
	m.modal.Show(modals.NewLoginState(m.config.GetUsername()))

	logger.Info("App: Signed out %s", user.ID)
}
