package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepak75500/welledapp-freelance/internal/api"
	"github.com/deepak75500/welledapp-freelance/internal/nav"
	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

type historyModel struct {
	days    []api.DayRecord
	loading bool
	err     error
}

type historyMsg struct {
	days []api.DayRecord
	err  error
}

func (m appModel) loadHistoryCmd() tea.Cmd {
	return func() tea.Msg {
		h, err := m.deps.Client.History(m.ctx)
		if err != nil {
			return historyMsg{err: err}
		}
		return historyMsg{days: h.Days()}
	}
}

func (m appModel) updateHistory(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyMsg:
		m.history.loading = false
		m.history.err = msg.err
		if msg.err != nil {
			m.lastLog = "History failed: " + api.Message(msg.err, "could not reach the server")
			return m, nil
		}
		m.history.days = msg.days
		m.lastLog = fmt.Sprintf("%d days loaded.", len(msg.days))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace", "h":
			m.screen = nav.ScreenHome
			return m, nil
		case "r":
			m.history.loading = true
			return m, m.loadHistoryCmd()
		case "q":
			m.stopDaily()
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m appModel) viewHistory() string {
	lines := []string{ui.Heading(ui.IconCalendar, "History"), ""}
	switch {
	case m.history.loading:
		lines = append(lines, m.spin.View()+" Loading…")
	case m.history.err != nil:
		lines = append(lines, ui.Bad.Render("Could not load history."))
	case len(m.history.days) == 0:
		lines = append(lines, ui.Muted.Render("No history yet."))
	default:
		for _, d := range m.history.days {
			mark := ui.Warn.Render("partial")
			if d.AllCompleted {
				mark = ui.Good.Render(ui.IconDone + " complete")
			}
			lines = append(lines, fmt.Sprintf("%s  %d/%d  %s", d.Date, api.CountCompleted(d.Tasks), len(d.Tasks), mark))
		}
	}
	lines = append(lines, "", ui.Muted.Render("esc back · r refresh · q quit"))
	return strings.Join(lines, "\n")
}
