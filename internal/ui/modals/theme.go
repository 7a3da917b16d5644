package modals

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ThemeState is the theme picker modal. Theme names are passed in by the
// app layer so this package stays independent of the theme registry.
type ThemeState struct {
	Themes        []string
	SelectedIndex int
	CurrentTheme  string
}

func (*ThemeState) modalState() {}

func (s *ThemeState) Title() string { return "Select Theme" }

func (s *ThemeState) Help() string {
	return "↑/↓ to select, Enter to apply, Esc to cancel"
}

func (s *ThemeState) Render() string {
	title := ModalTitleStyle.Render(s.Title())

	var content string
	for i, name := range s.Themes {
		style := SidebarItemStyle
		prefix := "  "
		suffix := ""

		if i == s.SelectedIndex {
			style = SidebarSelectedStyle
			prefix = "> "
		}

		if name == s.CurrentTheme {
			suffix = " (current)"
		}

		content += style.Render(prefix+name+suffix) + "\n"
	}

	help := ModalHelpStyle.Render(s.Help())

	return lipgloss.JoinVertical(lipgloss.Left, title, content, help)
}

func (s *ThemeState) Update(msg tea.Msg) (ModalState, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		switch keyMsg.String() {
		case "up", "k":
			if s.SelectedIndex > 0 {
				s.SelectedIndex--
			}
		case "down", "j":
			if s.SelectedIndex < len(s.Themes)-1 {
				s.SelectedIndex++
			}
		}
	}
	return s, nil
}

// GetSelectedTheme returns the selected theme name
func (s *ThemeState) GetSelectedTheme() string {
	if len(s.Themes) == 0 || s.SelectedIndex >= len(s.Themes) {
		return ""
	}
	return s.Themes[s.SelectedIndex]
}

// NewThemeState creates a new ThemeState with the highlight on the
// currently active theme
func NewThemeState(themes []string, current string) *ThemeState {
	selectedIndex := 0
	for i, t := range themes {
		if t == current {
			selectedIndex = i
			break
		}
	}

	return &ThemeState{
		Themes:        themes,
		SelectedIndex: selectedIndex,
		CurrentTheme:  current,
	}
}
