package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepak75500/welledapp-freelance/internal/api"
	"github.com/deepak75500/welledapp-freelance/internal/daily"
	"github.com/deepak75500/welledapp-freelance/internal/nav"
	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

type homeModel struct {
	snap     daily.Snapshot
	selected int
}

type toggledMsg struct {
	id  string
	err error
}

type confirmedMsg struct {
	res api.CompletionResult
	err error
}

func (m appModel) toggleCmd(id string) tea.Cmd {
	ctrl := m.daily
	return func() tea.Msg {
		return toggledMsg{id: id, err: ctrl.Toggle(m.ctx, id)}
	}
}

func (m appModel) confirmCmd() tea.Cmd {
	ctrl := m.daily
	return func() tea.Msg {
		res, err := ctrl.MarkAllCompleted(m.ctx)
		return confirmedMsg{res: res, err: err}
	}
}

func (m appModel) reloadCmd() tea.Cmd {
	ctrl := m.daily
	return func() tea.Msg {
		ctrl.CheckDay(m.ctx)
		return nil
	}
}

func (m appModel) updateHome(msg tea.Msg) (appModel, tea.Cmd) {
	if m.daily == nil {
		return m, nil
	}
	switch msg := msg.(type) {
	case toggledMsg:
		switch {
		case errors.Is(msg.err, daily.ErrTaskCompleted):
			m.lastLog = "Already done."
		case msg.err != nil:
			m.lastLog = "Update failed."
		default:
			m.lastLog = "Task completed."
		}
		return m, nil
	case confirmedMsg:
		switch {
		case errors.Is(msg.err, daily.ErrConfirmInFlight):
			// the pending confirmation reports through the snapshot
		case msg.err != nil:
			m.lastLog = "Confirmation failed."
		case msg.res.OK:
			m.lastLog = fmt.Sprintf("Day confirmed. Streak %d.", msg.res.Streak)
		default:
			m.lastLog = "Server declined: " + msg.res.Error
		}
		return m, nil
	case tea.KeyMsg:
		tasks := m.home.snap.Tasks
		switch msg.String() {
		case "q":
			m.stopDaily()
			return m, tea.Quit
		case "up", "k":
			if m.home.selected > 0 {
				m.home.selected--
			}
			return m, nil
		case "down", "j":
			if m.home.selected < len(tasks)-1 {
				m.home.selected++
			}
			return m, nil
		case "enter", " ", "x":
			if m.home.selected < 0 || m.home.selected >= len(tasks) {
				return m, nil
			}
			t := tasks[m.home.selected]
			if t.Completed {
				m.lastLog = "Already done."
				return m, nil
			}
			m.lastLog = "Completing " + string(t.Category) + "…"
			return m, m.toggleCmd(t.ID)
		case "c":
			if m.home.snap.ServerConfirmed {
				m.lastLog = "Today is already confirmed."
				return m, nil
			}
			m.lastLog = "Confirming today…"
			return m, m.confirmCmd()
		case "r":
			m.lastLog = "Refreshing…"
			return m, m.reloadCmd()
		case "h":
			m.screen = nav.ScreenHistory
			m.history = historyModel{loading: true}
			return m, m.loadHistoryCmd()
		case "p":
			m.screen = nav.ScreenProfile
			m.profile = profileModel{back: nav.ScreenHome}
			return m, nil
		}
	}
	return m, nil
}

func (m appModel) viewHome() string {
	snap := m.home.snap
	var b strings.Builder

	name := ""
	streak := 0
	if u := m.state.User; u != nil {
		name = u.Username
		streak = u.CurrentStreak
	}
	b.WriteString(ui.Heading(ui.IconApp, "Today's wellness") + "  " + ui.Muted.Render(snap.Today) + "\n")
	b.WriteString(fmt.Sprintf("Hi %s  %s\n\n", ui.H2.Render(name), ui.Streak(streak)))

	if snap.Banner.Kind != daily.BannerNone {
		style := ui.BannerSuccess
		if snap.Banner.Kind == daily.BannerError {
			style = ui.BannerError
		}
		b.WriteString(style.Render(snap.Banner.Text) + "\n\n")
	}

	if snap.Phase == daily.PhaseLoading {
		b.WriteString(m.spin.View() + " Loading today's tasks…\n")
		return b.String()
	}

	done, total, pct := snap.Progress()
	b.WriteString(fmt.Sprintf("%s %d/%d (%d%%)\n\n", ui.ProgressBar(done, total, 30), done, total, pct))

	if len(snap.Tasks) == 0 {
		b.WriteString(ui.Muted.Render("No tasks today.") + "\n")
	}
	for i, t := range snap.Tasks {
		cursor := "  "
		if i == m.home.selected {
			cursor = "> "
		}
		mark := ui.IconTodo
		if t.Completed {
			mark = ui.IconDone
		}
		line := fmt.Sprintf("%s%s %s %s  %s", cursor, mark, ui.TaskIcon(t), ui.Category(t.Category), t.Instruction)
		if i == m.home.selected {
			line = ui.SelectedRow.Render(line)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	switch {
	case snap.ConfirmInFlight:
		b.WriteString(m.spin.View() + " Confirming…\n")
	case snap.ServerConfirmed:
		b.WriteString(ui.Good.Render(ui.IconParty+" Today is complete.") + "\n")
	case snap.AllCompleted:
		b.WriteString(ui.Warn.Render("All done. Press c to confirm.") + "\n")
	}
	b.WriteString(ui.Muted.Render("↑/↓ move · enter complete · c confirm day · r refresh · h history · p profile · q quit"))
	return b.String()
}
