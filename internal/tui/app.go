package tui

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepak75500/welledapp-freelance/internal/api"
	"github.com/deepak75500/welledapp-freelance/internal/authflow"
	"github.com/deepak75500/welledapp-freelance/internal/daily"
	"github.com/deepak75500/welledapp-freelance/internal/leaderboard"
	"github.com/deepak75500/welledapp-freelance/internal/nav"
	"github.com/deepak75500/welledapp-freelance/internal/session"
)

// Deps are the long-lived services the screens drive.
type Deps struct {
	Session *session.Store
	Auth    *authflow.Flow
	Client  *api.Client
	Roster  *leaderboard.View
	// NewDaily builds a fresh controller for each logged-in home stack.
	NewDaily func() *daily.Controller
	Log      *slog.Logger
}

type sessionMsg struct {
	state session.State
}

type snapshotMsg struct {
	snap daily.Snapshot
}

type logoutMsg struct {
	err error
}

type appModel struct {
	ctx    context.Context
	deps   Deps
	events chan tea.Msg

	width  int
	height int

	state  session.State
	stack  nav.Stack
	screen nav.Screen

	spin    spinner.Model
	daily   *daily.Controller
	unsub   func()
	auth    authModel
	home    homeModel
	history historyModel
	admin   adminModel
	profile profileModel

	lastLog string
}

func newAppModel(ctx context.Context, deps Deps) appModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := appModel{
		ctx:     ctx,
		deps:    deps,
		events:  make(chan tea.Msg, 64),
		stack:   nav.StackSplash,
		screen:  nav.ScreenSplash,
		spin:    sp,
		auth:    newAuthModel(),
		lastLog: "Welcome.",
	}
	m.state = deps.Session.State()
	return m
}

// push forwards a message from a background observer into the program.
func (m appModel) push(msg tea.Msg) {
	select {
	case m.events <- msg:
	case <-m.ctx.Done():
	}
}

func (m appModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

func (m appModel) Init() tea.Cmd {
	m.push(sessionMsg{state: m.deps.Session.State()})
	cmds := []tea.Cmd{m.spin.Tick, m.waitForEvent()}
	if m.state.Loading {
		cmds = append(cmds, m.restoreCmd())
	}
	return tea.Batch(cmds...)
}

func (m appModel) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		m.deps.Session.Restore(m.ctx)
		return nil
	}
}

func (m appModel) logoutCmd() tea.Cmd {
	return func() tea.Msg {
		return logoutMsg{err: m.deps.Session.Logout(m.ctx)}
	}
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case sessionMsg:
		return m.applySession(msg.state)
	case snapshotMsg:
		m.home.snap = msg.snap
		return m, m.waitForEvent()
	case logoutMsg:
		if msg.err != nil {
			m.lastLog = "Logged out, but local data could not be cleared."
		} else {
			m.lastLog = "Logged out."
		}
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stopDaily()
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch m.screen {
	case nav.ScreenLogin, nav.ScreenRegister:
		m, cmd = m.updateAuth(msg)
	case nav.ScreenHome:
		m, cmd = m.updateHome(msg)
	case nav.ScreenHistory:
		m, cmd = m.updateHistory(msg)
	case nav.ScreenLeaderboard:
		m, cmd = m.updateAdmin(msg)
	case nav.ScreenProfile:
		m, cmd = m.updateProfile(msg)
	default:
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, cmd
}

// applySession re-resolves the stack. Crossing into a new stack resets to its
// initial screen, so logging out anywhere lands on Login.
func (m appModel) applySession(st session.State) (tea.Model, tea.Cmd) {
	m.state = st
	next := nav.Resolve(st)
	cmds := []tea.Cmd{m.waitForEvent()}
	if next == m.stack {
		return m, tea.Batch(cmds...)
	}

	m.stopDaily()
	m.stack = next
	m.screen = nav.Initial(next)
	m.deps.Log.Debug("navigation", slog.String("stack", next.String()), slog.String("screen", string(m.screen)))

	switch next {
	case nav.StackAuth:
		m.auth = newAuthModel()
		cmds = append(cmds, m.auth.focusCmd())
	case nav.StackHome:
		m.home = homeModel{}
		m.daily = m.deps.NewDaily()
		ctrl := m.daily
		m.unsub = ctrl.Subscribe(func(s daily.Snapshot) { m.push(snapshotMsg{snap: s}) })
		cmds = append(cmds, func() tea.Msg {
			ctrl.Start(m.ctx)
			return nil
		})
	case nav.StackAdmin:
		m.admin = adminModel{loading: true}
		cmds = append(cmds, m.loadBoardCmd())
	}
	return m, tea.Batch(cmds...)
}

func (m *appModel) stopDaily() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
	if m.daily != nil {
		m.daily.Close()
		m.daily = nil
	}
}

func (m appModel) View() string {
	var body string
	switch m.screen {
	case nav.ScreenLogin, nav.ScreenRegister:
		body = m.viewAuth()
	case nav.ScreenHome:
		body = m.viewHome()
	case nav.ScreenHistory:
		body = m.viewHistory()
	case nav.ScreenLeaderboard:
		body = m.viewAdmin()
	case nav.ScreenProfile:
		body = m.viewProfile()
	default:
		body = m.viewSplash()
	}
	return body + "\n" + renderFooter(m.lastLog)
}

// Run starts the full-screen app and blocks until the user quits.
func Run(ctx context.Context, deps Deps, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := newAppModel(ctx, deps)
	unsub := deps.Session.Subscribe(func(st session.State) { m.push(sessionMsg{state: st}) })
	defer unsub()

	p := tea.NewProgram(m, tea.WithOutput(out), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if fm, ok := final.(appModel); ok {
		fm.stopDaily()
	}
	return err
}
