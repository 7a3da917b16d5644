package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ConfirmLogoutState asks before tearing down the session.
type ConfirmLogoutState struct {
	Options       []string
	SelectedIndex int
}

func (*ConfirmLogoutState) modalState() {}

func (s *ConfirmLogoutState) Title() string { return "Log Out?" }

func (s *ConfirmLogoutState) Help() string {
	return "↑/↓ to select, Enter to confirm, Esc to cancel"
}

func (s *ConfirmLogoutState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	message := lipgloss.NewStyle().
		Foreground(ColorText).
		MarginBottom(1).
		Render("This clears all conversations and messages from this session.")

	var optionList string
	for i, opt := range s.Options {
		style := SidebarItemStyle
		prefix := "  "
		if i == s.SelectedIndex {
			style = SidebarSelectedStyle
			prefix = "> "
		}
		optionList += style.Render(prefix+opt) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, message, optionList, help)
}

func (s *ConfirmLogoutState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case "down", "j":
			if s.SelectedIndex < len(s.Options)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// Confirmed returns true if the user selected the log out option
func (s *ConfirmLogoutState) Confirmed() bool {
	return s.SelectedIndex == 1
}

// NewConfirmLogoutState creates a new ConfirmLogoutState
func NewConfirmLogoutState() *ConfirmLogoutState {
	return &ConfirmLogoutState{
		Options:       []string{"Stay signed in", "Log out"},
		SelectedIndex: 0,
	}
}
