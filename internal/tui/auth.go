package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepak75500/welledapp-freelance/internal/authflow"
	"github.com/deepak75500/welledapp-freelance/internal/nav"
	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

type authDoneMsg struct {
	err error
}

type authModel struct {
	inputs []textinput.Model
	labels []string
	focus  int
	busy   bool
	err    string
}

func newInput(placeholder string, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 128
	in.Width = 32
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '•'
	}
	return in
}

func newAuthModel() authModel {
	a := authModel{
		inputs: []textinput.Model{newInput("you@school.edu", false), newInput("password", true)},
		labels: []string{"Email", "Password"},
	}
	a.inputs[0].Focus()
	return a
}

func newRegisterModel() authModel {
	a := authModel{
		inputs: []textinput.Model{
			newInput("display name", false),
			newInput("you@school.edu", false),
			newInput("at least 6 characters", true),
			newInput("repeat password", true),
		},
		labels: []string{"Username", "Email", "Password", "Confirm"},
	}
	a.inputs[0].Focus()
	return a
}

func (a authModel) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (a authModel) value(i int) string {
	if i < 0 || i >= len(a.inputs) {
		return ""
	}
	return a.inputs[i].Value()
}

func (a *authModel) move(delta int) {
	a.inputs[a.focus].Blur()
	a.focus = (a.focus + delta + len(a.inputs)) % len(a.inputs)
	a.inputs[a.focus].Focus()
}

func (m appModel) submitAuthCmd() tea.Cmd {
	a := m.auth
	if m.screen == nav.ScreenRegister {
		form := authflow.RegisterForm{
			Username:        a.value(0),
			Email:           a.value(1),
			Password:        a.value(2),
			ConfirmPassword: a.value(3),
		}
		return func() tea.Msg {
			_, err := m.deps.Auth.Register(m.ctx, form)
			return authDoneMsg{err: err}
		}
	}
	form := authflow.LoginForm{Email: a.value(0), Password: a.value(1)}
	return func() tea.Msg {
		_, err := m.deps.Auth.Login(m.ctx, form)
		return authDoneMsg{err: err}
	}
}

func (m appModel) updateAuth(msg tea.Msg) (appModel, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		m.auth.busy = false
		if msg.err != nil {
			m.auth.err = msg.err.Error()
			m.lastLog = "Sign-in failed."
			return m, nil
		}
		m.auth.err = ""
		m.lastLog = "Signed in."
		return m, nil
	case tea.KeyMsg:
		if m.auth.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.auth.move(1)
			return m, nil
		case "shift+tab", "up":
			m.auth.move(-1)
			return m, nil
		case "ctrl+r":
			if m.screen == nav.ScreenLogin {
				m.screen = nav.ScreenRegister
				m.auth = newRegisterModel()
			} else {
				m.screen = nav.ScreenLogin
				m.auth = newAuthModel()
			}
			return m, m.auth.focusCmd()
		case "esc":
			if m.screen == nav.ScreenRegister {
				m.screen = nav.ScreenLogin
				m.auth = newAuthModel()
				return m, m.auth.focusCmd()
			}
			return m, tea.Quit
		case "enter":
			if m.auth.focus < len(m.auth.inputs)-1 {
				m.auth.move(1)
				return m, nil
			}
			m.auth.busy = true
			m.auth.err = ""
			m.lastLog = "Signing in…"
			return m, m.submitAuthCmd()
		}
	}

	var cmd tea.Cmd
	m.auth.inputs[m.auth.focus], cmd = m.auth.inputs[m.auth.focus].Update(msg)
	return m, cmd
}

func (m appModel) viewAuth() string {
	title := "Log in"
	switchHint := "ctrl+r: create an account"
	if m.screen == nav.ScreenRegister {
		title = "Create account"
		switchHint = "ctrl+r/esc: back to log in"
	}

	lines := []string{ui.Heading(ui.IconApp, "Welled"), ui.H2.Render(title), ""}
	for i, in := range m.auth.inputs {
		lines = append(lines, ui.Key.Render(padRight(m.auth.labels[i], 12))+" "+in.View())
	}
	lines = append(lines, "")
	if m.auth.busy {
		lines = append(lines, m.spin.View()+" Please wait…")
	} else if m.auth.err != "" {
		lines = append(lines, ui.Bad.Render(ui.IconError+" "+m.auth.err))
	}
	lines = append(lines, "", ui.Muted.Render("tab: next field · enter: submit · "+switchHint+" · ctrl+c: quit"))
	return ui.Panel.Render(strings.Join(lines, "\n"))
}
