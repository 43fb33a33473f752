package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepak75500/welledapp-freelance/internal/api"
	"github.com/deepak75500/welledapp-freelance/internal/leaderboard"
	"github.com/deepak75500/welledapp-freelance/internal/nav"
	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

type adminModel struct {
	board    leaderboard.Board
	loaded   bool
	loading  bool
	selected int
}

type boardMsg struct {
	board leaderboard.Board
	err   error
}

func (m appModel) loadBoardCmd() tea.Cmd {
	return func() tea.Msg {
		b, err := m.deps.Roster.Load(m.ctx)
		return boardMsg{board: b, err: err}
	}
}

func (m appModel) updateAdmin(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case boardMsg:
		m.admin.loading = false
		if msg.err != nil {
			m.lastLog = "Refresh failed: " + api.Message(msg.err, "could not reach the server")
			return m, nil
		}
		m.admin.board = msg.board
		m.admin.loaded = true
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "r":
			m.admin.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadBoardCmd()
		case "up", "k":
			if m.admin.selected > 0 {
				m.admin.selected--
			}
			return m, nil
		case "down", "j":
			if m.admin.selected < len(m.admin.board.Entries)-1 {
				m.admin.selected++
			}
			return m, nil
		case "p":
			m.screen = nav.ScreenProfile
			m.profile = profileModel{back: nav.ScreenLeaderboard}
			return m, nil
		case "l":
			m.lastLog = "Logging out…"
			return m, m.logoutCmd()
		}
	}
	return m, nil
}

func (m appModel) viewAdmin() string {
	var b strings.Builder
	b.WriteString(ui.Heading(ui.IconTrophy, "Teacher leaderboard") + "\n\n")
	if !m.admin.loaded {
		b.WriteString(m.spin.View() + " Loading…\n")
		b.WriteString(ui.Muted.Render("r refresh · l logout · q quit"))
		return b.String()
	}

	st := m.admin.board.Stats
	stats := strings.Join([]string{
		ui.LabelValue("Teachers", st.Total),
		ui.LabelValue("Active today", st.ActiveToday),
		ui.LabelValue("Completion", fmt.Sprintf("%d%%", st.CompletionPercent())),
		ui.LabelValue("Total streak days", st.TotalStreaks),
	}, "   ")
	b.WriteString(ui.Panel.Render(stats) + "\n")
	b.WriteString(ui.ProgressBar(st.ActiveToday, st.Total, 30) + "\n\n")

	if len(m.admin.board.Entries) == 0 {
		b.WriteString(ui.Muted.Render("No teachers yet.") + "\n")
	}
	for i, e := range m.admin.board.Entries {
		cursor := "  "
		if i == m.admin.selected {
			cursor = "> "
		}
		today := ui.Muted.Render("pending")
		if e.Teacher.CompletedToday {
			today = ui.Good.Render(ui.IconDone + " today")
		}
		line := fmt.Sprintf("%s%-4s %s  %s  %s  best %s",
			cursor,
			ui.Medal(e.Rank),
			padRight(e.Teacher.Username, 18),
			ui.Streak(e.Teacher.CurrentStreak),
			today,
			ui.Days(e.Teacher.LongestStreak),
		)
		b.WriteString(line + "\n")
	}
	if m.admin.loading {
		b.WriteString("\n" + m.spin.View() + " Refreshing…\n")
	}
	b.WriteString("\n" + ui.Muted.Render("↑/↓ move · r refresh · p profile · l logout · q quit"))
	return b.String()
}
