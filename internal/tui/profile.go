package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepak75500/welledapp-freelance/internal/nav"
	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

type profileModel struct {
	back       nav.Screen
	confirming bool
}

func (m appModel) updateProfile(msg tea.Msg) (appModel, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.profile.confirming {
		switch k.String() {
		case "y", "enter":
			m.profile.confirming = false
			m.lastLog = "Logging out…"
			return m, m.logoutCmd()
		default:
			m.profile.confirming = false
			m.lastLog = "Logout cancelled."
			return m, nil
		}
	}
	switch k.String() {
	case "esc", "backspace":
		m.screen = m.profile.back
		return m, nil
	case "l":
		m.profile.confirming = true
		return m, nil
	case "q":
		m.stopDaily()
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) viewProfile() string {
	lines := []string{ui.Heading(ui.IconUser, "Profile"), ""}
	if u := m.state.User; u != nil {
		role := u.Role
		if role == "" {
			role = "teacher"
		}
		lines = append(lines,
			ui.LabelValue("Username", u.Username),
			ui.LabelValue("Email", u.Email),
			ui.LabelValue("Role", role),
			ui.LabelValue("Current streak", ui.Streak(u.CurrentStreak)),
			ui.LabelValue("Longest streak", ui.Days(u.LongestStreak)),
		)
	}
	lines = append(lines, "")
	if m.profile.confirming {
		lines = append(lines, ui.Warn.Render(ui.IconWarn+" Log out? (y/n)"))
	} else {
		lines = append(lines, ui.Muted.Render("l logout · esc back · q quit"))
	}
	return ui.Panel.Render(strings.Join(lines, "\n"))
}
