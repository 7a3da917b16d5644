package modals

import (
	tea "charm.land/bubbletea/v2"
	huh "charm.land/huh/v2"
	"charm.land/lipgloss/v2"
)

// LoginState is the sign-in form shown before the chat surface unlocks.
// Credentials are read out by the app layer on Enter; the form itself
// never validates them.
type LoginState struct {
	form        *huh.Form
	initialized bool

	displayName string
	password    string
}

func (*LoginState) modalState() {}

func (s *LoginState) Title() string { return "Sign In" }

func (s *LoginState) Help() string {
	return "Tab: next field  Enter: sign in  Ctrl+C: quit"
}

func (s *LoginState) Render() string {
	title := ModalTitleStyle.Render(s.Title())
	help := ModalHelpStyle.Render(s.Help())
	return lipgloss.JoinVertical(lipgloss.Left, title, s.form.View(), help)
}

func (s *LoginState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	var cmd tea.Cmd
	s.form, cmd = huhFormUpdate(s.form, &s.initialized, msg)
	return s, cmd
}

// GetCredentials returns the entered display name and password
func (s *LoginState) GetCredentials() (displayName, password string) {
	return s.displayName, s.password
}

// NewLoginState creates a new LoginState. displayName pre-fills the
// name field, typically from the last saved login.
func NewLoginState(displayName string) *LoginState {
	s := &LoginState{displayName: displayName}

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Display name").
				Placeholder("Ada Lovelace").
				CharLimit(ModalInputCharLimit).
				Value(&s.displayName),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				CharLimit(ModalInputCharLimit).
				Value(&s.password),
		),
	).WithTheme(ModalTheme()).
		WithShowHelp(false).
		WithWidth(ModalInputWidth).
		WithLayout(huh.LayoutStack)

	s.initialized = true
	initHuhForm(s.form)
	return s
}
