package devserver

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/deepak75500/welledapp-freelance/internal/api"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type harness struct {
	srv   *Server
	clock *clock
	url   string
}

// testTokenTTL outlives every clock advance in the multi-day tests.
const testTokenTTL = 30 * 24 * time.Hour

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessTTL(t, testTokenTTL)
}

func newHarnessTTL(t *testing.T, ttl time.Duration) *harness {
	t.Helper()
	clk := &clock{now: time.Date(2026, 3, 2, 9, 0, 0, 0, time.Local)}
	srv, err := New(Options{
		Secret:     "test-secret",
		TokenTTL:   ttl,
		Now:        clk.Now,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		BcryptCost: bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ts := httptest.NewServer(srv.Echo)
	t.Cleanup(ts.Close)
	return &harness{srv: srv, clock: clk, url: ts.URL + "/api"}
}

// client returns an API client authenticated as a freshly registered teacher.
func (h *harness) client(t *testing.T, email string) (*api.Client, api.User) {
	t.Helper()
	var token string
	c := api.New(h.url, api.WithTokenSource(func() string { return token }))
	res, err := c.Register(context.Background(), email, "secret1", "teacher-"+email)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	token = res.Token
	return c, res.User
}

func completeDay(t *testing.T, c *api.Client) api.CompletionResult {
	t.Helper()
	ctx := context.Background()
	daily, err := c.DailyTasks(ctx)
	if err != nil {
		t.Fatalf("DailyTasks: %v", err)
	}
	for _, task := range daily.Tasks {
		if _, err := c.UpdateTaskCompletion(ctx, task.ID, true); err != nil {
			t.Fatalf("UpdateTaskCompletion: %v", err)
		}
	}
	res, err := c.MarkAllCompleted(ctx)
	if err != nil {
		t.Fatalf("MarkAllCompleted: %v", err)
	}
	return res
}

func TestDailyTasksOnePerCategory(t *testing.T) {
	h := newHarness(t)
	c, _ := h.client(t, "a@school.edu")

	daily, err := c.DailyTasks(context.Background())
	if err != nil {
		t.Fatalf("DailyTasks: %v", err)
	}
	if len(daily.Tasks) != len(api.Categories) {
		t.Fatalf("tasks=%d, want %d", len(daily.Tasks), len(api.Categories))
	}
	for i, task := range daily.Tasks {
		if task.Category != api.Categories[i] || task.Completed || task.ID == "" {
			t.Fatalf("task[%d]=%+v", i, task)
		}
	}
	if daily.ServerConfirmed {
		t.Fatalf("fresh day reported confirmed")
	}
}

func TestCompleteRejectsIncompleteAndRepeat(t *testing.T) {
	h := newHarness(t)
	c, _ := h.client(t, "a@school.edu")
	ctx := context.Background()

	res, err := c.MarkAllCompleted(ctx)
	if err != nil {
		t.Fatalf("MarkAllCompleted: %v", err)
	}
	if res.OK || res.Error != "Complete all tasks first" {
		t.Fatalf("res=%+v, want incomplete rejection", res)
	}

	res = completeDay(t, c)
	if !res.OK || res.Streak != 1 || res.LongestStreak != 1 {
		t.Fatalf("res=%+v, want streak 1", res)
	}

	res, err = c.MarkAllCompleted(ctx)
	if err != nil {
		t.Fatalf("MarkAllCompleted: %v", err)
	}
	if res.OK || res.Error != "Tasks already completed today" {
		t.Fatalf("res=%+v, want repeat rejection", res)
	}

	daily, err := c.DailyTasks(ctx)
	if err != nil {
		t.Fatalf("DailyTasks: %v", err)
	}
	if !daily.ServerConfirmed {
		t.Fatalf("ServerConfirmed=false after confirmation")
	}
}

func TestStreakGrowsOnConsecutiveDaysAndResetsAfterGap(t *testing.T) {
	h := newHarness(t)
	c, _ := h.client(t, "a@school.edu")

	for day := 1; day <= 3; day++ {
		res := completeDay(t, c)
		if res.Streak != day {
			t.Fatalf("day %d streak=%d", day, res.Streak)
		}
		h.clock.Advance(24 * time.Hour)
	}

	h.clock.Advance(24 * time.Hour)
	res := completeDay(t, c)
	if res.Streak != 1 || res.LongestStreak != 3 {
		t.Fatalf("after gap res=%+v, want streak 1 longest 3", res)
	}

	u, err := c.CurrentUser(context.Background())
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if u.CurrentStreak != 1 || u.LongestStreak != 3 {
		t.Fatalf("user=%+v", u)
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	h := newHarness(t)
	c, _ := h.client(t, "a@school.edu")
	completeDay(t, c)
	h.clock.Advance(24 * time.Hour)
	if _, err := c.DailyTasks(context.Background()); err != nil {
		t.Fatalf("DailyTasks: %v", err)
	}

	hist, err := c.History(context.Background())
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	days := hist.Days()
	if len(days) != 2 {
		t.Fatalf("days=%d, want 2", len(days))
	}
	if days[0].Date != "2026-03-03" || days[0].AllCompleted || !days[1].AllCompleted {
		t.Fatalf("days=%+v", days)
	}
}

func TestTeachersAdminOnly(t *testing.T) {
	h := newHarness(t)
	teacher, _ := h.client(t, "a@school.edu")
	completeDay(t, teacher)

	_, err := teacher.Teachers(context.Background())
	if err == nil || api.Message(err, "") != "Admin access required" {
		t.Fatalf("teacher roster err=%v, want forbidden", err)
	}

	var token string
	admin := api.New(h.url, api.WithTokenSource(func() string { return token }))
	res, err := admin.Login(context.Background(), SeedAdminEmail, SeedAdminPassword)
	if err != nil {
		t.Fatalf("admin Login: %v", err)
	}
	if !res.User.IsAdmin() {
		t.Fatalf("seed admin role=%q", res.User.Role)
	}
	token = res.Token

	roster, err := admin.Teachers(context.Background())
	if err != nil {
		t.Fatalf("Teachers: %v", err)
	}
	if len(roster) != 1 || !roster[0].CompletedToday || roster[0].CurrentStreak != 1 {
		t.Fatalf("roster=%+v", roster)
	}
}

func TestAuthFailures(t *testing.T) {
	h := newHarness(t)
	h.client(t, "a@school.edu")
	ctx := context.Background()
	anon := api.New(h.url)

	if _, err := anon.Register(ctx, "A@school.edu", "secret1", "dup"); api.Message(err, "") != "Email already registered" {
		t.Fatalf("duplicate register err=%v", err)
	}
	if _, err := anon.Login(ctx, "a@school.edu", "wrong"); api.Message(err, "") != "Invalid email or password" {
		t.Fatalf("bad password err=%v", err)
	}
	if _, err := anon.DailyTasks(ctx); !api.IsUnauthorized(err) {
		t.Fatalf("anonymous DailyTasks err=%v, want 401", err)
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	h := newHarnessTTL(t, time.Hour)
	c, _ := h.client(t, "a@school.edu")
	h.clock.Advance(2 * time.Hour)

	_, err := c.DailyTasks(context.Background())
	if !api.IsUnauthorized(err) || api.Message(err, "") != "Session expired" {
		t.Fatalf("err=%v, want session expired", err)
	}
}

func TestProfileStreakLapsesAfterMissedDay(t *testing.T) {
	h := newHarness(t)
	c, _ := h.client(t, "a@school.edu")
	completeDay(t, c)
	ctx := context.Background()

	h.clock.Advance(24 * time.Hour)
	u, err := c.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if u.CurrentStreak != 1 {
		t.Fatalf("next day streak=%d, want 1", u.CurrentStreak)
	}

	h.clock.Advance(24 * time.Hour)
	u, err = c.CurrentUser(ctx)
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if u.CurrentStreak != 0 || u.LongestStreak != 1 {
		t.Fatalf("after missed day user=%+v, want streak 0 longest 1", u)
	}

	res, err := api.New(h.url).Login(ctx, "a@school.edu", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.User.CurrentStreak != 0 {
		t.Fatalf("login streak=%d, want 0", res.User.CurrentStreak)
	}
}
