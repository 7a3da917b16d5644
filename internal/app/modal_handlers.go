package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/parleychat/parley/internal/auth"
	"github.com/parleychat/parley/internal/keys"
	"github.com/parleychat/parley/internal/logger"
	"github.com/parleychat/parley/internal/ui"
	"github.com/parleychat/parley/internal/ui/modals"
)

// handleModalKey routes modal key events to the appropriate handler based
// on modal state type. The modal states themselves only manage their own
// widgets; commitment and cancellation semantics live here.
func (m *Model) handleModalKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch s := m.modal.State.(type) {
	case *modals.LoginState:
		return m.handleLoginModal(key, msg, s)
	case *modals.ThemeState:
		return m.handleThemeModal(key, msg, s)
	case *modals.ConfirmLogoutState:
		return m.handleConfirmLogoutModal(key, msg, s)
	}

	// Default: update modal input (for text-based modals)
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleLoginModal validates the entered credentials and stands up the
// session on success. Escape quits; there is nothing to fall back to
// before sign-in.
func (m *Model) handleLoginModal(key string, msg tea.KeyPressMsg, s *modals.LoginState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape, keys.CtrlC:
		return m, m.quit()
	case keys.Enter:
		displayName, password := s.GetCredentials()
		user, err := auth.New().Login(displayName, password)
		if err != nil {
			logger.Warn("App: Login rejected: %v", err)
			m.modal.SetError(err.Error())
			return m, nil
		}
		return m, m.completeLogin(user)
	}

	m.modal.SetError("")
	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleThemeModal applies the highlighted theme on Enter and persists
// the choice to config.
func (m *Model) handleThemeModal(key string, msg tea.KeyPressMsg, s *modals.ThemeState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		name, ok := themeNameForDisplay(s.GetSelectedTheme())
		if !ok {
			m.modal.Hide()
			return m, nil
		}
		ui.SetTheme(name)
		m.config.SetTheme(string(name))
		if err := m.config.Save(); err != nil {
			logger.Warn("App: Failed to save theme: %v", err)
		}
		m.modal.Hide()
		return m, m.ShowFlashSuccess("Theme: " + s.GetSelectedTheme())
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}

// handleConfirmLogoutModal tears the session down when the user confirms
func (m *Model) handleConfirmLogoutModal(key string, msg tea.KeyPressMsg, s *modals.ConfirmLogoutState) (tea.Model, tea.Cmd) {
	switch key {
	case keys.Escape:
		m.modal.Hide()
		return m, nil
	case keys.Enter:
		if s.Confirmed() {
			m.completeLogout()
			return m, nil
		}
		m.modal.Hide()
		return m, nil
	}

	modal, cmd := m.modal.Update(msg)
	m.modal = modal
	return m, cmd
}
