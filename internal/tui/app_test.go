package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deepak75500/welledapp-freelance/internal/api"
	"github.com/deepak75500/welledapp-freelance/internal/daily"
	"github.com/deepak75500/welledapp-freelance/internal/logging"
	"github.com/deepak75500/welledapp-freelance/internal/nav"
	"github.com/deepak75500/welledapp-freelance/internal/session"
	"github.com/deepak75500/welledapp-freelance/internal/storage"
)

func newTestApp(t *testing.T) (appModel, *session.Store) {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "welled.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	log := logging.Discard()
	kv := storage.NewKVRepo(db)
	sess := session.New(kv, nil, log)
	guard := storage.NewConfirmationRepo(db)
	deps := Deps{
		Session: sess,
		Log:     log,
		NewDaily: func() *daily.Controller {
			return daily.New(nil, sess, kv, guard, daily.Options{Logger: log})
		},
	}
	ctx, cancel := context.WithCancel(ctx)
	t.Cleanup(cancel)
	return newAppModel(ctx, deps), sess
}

func apply(t *testing.T, m appModel, st session.State) appModel {
	t.Helper()
	next, _ := m.applySession(st)
	return next.(appModel)
}

func TestNavigationFollowsSession(t *testing.T) {
	m, _ := newTestApp(t)
	if m.screen != nav.ScreenSplash {
		t.Fatalf("initial screen=%s, want Splash", m.screen)
	}

	m = apply(t, m, session.State{})
	if m.screen != nav.ScreenLogin {
		t.Fatalf("logged out screen=%s, want Login", m.screen)
	}

	admin := &api.User{ID: "a", Username: "admin", Role: api.RoleAdmin}
	m = apply(t, m, session.State{User: admin})
	if m.stack != nav.StackAdmin || m.screen != nav.ScreenLeaderboard {
		t.Fatalf("admin stack=%v screen=%s", m.stack, m.screen)
	}

	m.screen = nav.ScreenProfile
	m = apply(t, m, session.State{})
	if m.screen != nav.ScreenLogin {
		t.Fatalf("after logout screen=%s, want Login", m.screen)
	}
}

func TestHomeStackOwnsOneController(t *testing.T) {
	m, _ := newTestApp(t)
	teacher := &api.User{ID: "t", Username: "ann"}

	m = apply(t, m, session.State{User: teacher})
	if m.screen != nav.ScreenHome || m.daily == nil {
		t.Fatalf("screen=%s daily=%v", m.screen, m.daily)
	}
	first := m.daily

	m = apply(t, m, session.State{User: teacher})
	if m.daily != first {
		t.Fatalf("same stack rebuilt the controller")
	}

	m = apply(t, m, session.State{})
	if m.daily != nil {
		t.Fatalf("controller kept after logout")
	}
	if err := first.Toggle(context.Background(), "x"); err != daily.ErrClosed {
		t.Fatalf("Toggle after logout err=%v, want ErrClosed", err)
	}
}

func TestRegisterSwitchAndLocalValidation(t *testing.T) {
	m, _ := newTestApp(t)
	m = apply(t, m, session.State{})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	m = next.(appModel)
	if m.screen != nav.ScreenRegister || len(m.auth.inputs) != 4 {
		t.Fatalf("screen=%s inputs=%d", m.screen, len(m.auth.inputs))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(appModel)
	if m.screen != nav.ScreenLogin {
		t.Fatalf("esc screen=%s, want Login", m.screen)
	}

	m.auth.err = "Please fill in all fields"
	if !strings.Contains(m.View(), "Please fill in all fields") {
		t.Fatalf("form error not rendered")
	}
}

func TestHomeViewShowsBannerAndProgress(t *testing.T) {
	m, _ := newTestApp(t)
	m = apply(t, m, session.State{User: &api.User{ID: "t", Username: "ann", CurrentStreak: 2}})
	m.home.snap = daily.Snapshot{
		Phase: daily.PhaseLoaded,
		Today: "2026-03-02",
		Tasks: []api.Task{
			{ID: "1", Category: api.CategoryWater, Instruction: "Drink water", Completed: true},
			{ID: "2", Category: api.CategoryDiet, Instruction: "Eat greens"},
		},
		Banner: daily.Banner{Kind: daily.BannerError, Text: "already completed"},
	}

	out := m.View()
	for _, want := range []string{"already completed", "1/2 (50%)", "Drink water", "Eat greens"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q:\n%s", want, out)
		}
	}
}

func TestConfirmWhileInFlightIsQuiet(t *testing.T) {
	m, _ := newTestApp(t)
	m = apply(t, m, session.State{User: &api.User{ID: "t", Username: "ann"}})
	if m.daily == nil {
		t.Fatalf("home stack has no controller")
	}
	m.lastLog = "Task completed."

	m, _ = m.updateHome(confirmedMsg{err: daily.ErrConfirmInFlight})
	if m.lastLog != "Task completed." {
		t.Fatalf("lastLog=%q, want unchanged", m.lastLog)
	}

	m, _ = m.updateHome(confirmedMsg{err: errors.New("boom")})
	if m.lastLog != "Confirmation failed." {
		t.Fatalf("lastLog=%q", m.lastLog)
	}
}
