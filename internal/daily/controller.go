// Package daily drives today's wellness task set: load, toggle, detect that
// every task is done, confirm completion with the server once per day, and
// surface short-lived banners. It has no terminal code; the TUI and the CLI
// both drive a Controller.
package daily

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/deepak75500/welledapp-freelance/internal/api"
	"github.com/deepak75500/welledapp-freelance/internal/session"
	"github.com/deepak75500/welledapp-freelance/internal/storage"
)

const dateLayout = "2006-01-02"

// TaskClient is the part of the backend client the view calls.
type TaskClient interface {
	DailyTasks(ctx context.Context) (*api.DailyTasks, error)
	UpdateTaskCompletion(ctx context.Context, taskID string, completed bool) ([]api.Task, error)
	MarkAllCompleted(ctx context.Context) (api.CompletionResult, error)
}

// Session is the part of the session store the view reads and updates.
type Session interface {
	User() *api.User
	ApplyStreak(ctx context.Context, current, longest int) error
	Subscribe(fn func(session.State)) func()
}

// DayStore persists the last date tasks were loaded for.
type DayStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Guard records per-user, per-day confirmation attempts.
type Guard interface {
	Claim(ctx context.Context, userID, day string, at time.Time) (bool, error)
	MarkConfirmed(ctx context.Context, userID, day string) error
	Get(ctx context.Context, userID, day string) (*storage.Confirmation, error)
}

type Options struct {
	// DayCheckInterval is how often the day boundary is re-checked (default 60s).
	DayCheckInterval time.Duration
	// BannerDuration is how long a banner stays up (default 3s).
	BannerDuration time.Duration
	// ReloadDelay separates clearing the success banner from re-fetching
	// (default 300ms, negative for none).
	ReloadDelay time.Duration
	Now         func() time.Time
	Logger      *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.DayCheckInterval <= 0 {
		o.DayCheckInterval = time.Minute
	}
	if o.BannerDuration <= 0 {
		o.BannerDuration = 3 * time.Second
	}
	if o.ReloadDelay < 0 {
		o.ReloadDelay = 0
	} else if o.ReloadDelay == 0 {
		o.ReloadDelay = 300 * time.Millisecond
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

type Controller struct {
	client TaskClient
	sess   Session
	days   DayStore
	guard  Guard
	opts   Options
	log    *slog.Logger

	// ctx scopes timers and background work; cancelled by Close.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu        sync.Mutex
	closed    bool
	started   bool
	state     Snapshot
	bannerGen int
	timers    map[*time.Timer]struct{}

	subMu  sync.Mutex
	nextID int
	subs   map[int]func(Snapshot)
}

func New(client TaskClient, sess Session, days DayStore, guard Guard, opts Options) *Controller {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	return &Controller{
		client: client,
		sess:   sess,
		days:   days,
		guard:  guard,
		opts:   opts,
		log:    opts.Logger.With(slog.String("component", "daily")),
		ctx:    ctx,
		cancel: cancel,
		state:  Snapshot{Phase: PhaseLoading, Tasks: []api.Task{}},
		timers: map[*time.Timer]struct{}{},
		subs:   map[int]func(Snapshot){},
	}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	s := c.state
	s.Tasks = slices.Clone(c.state.Tasks)
	return s
}

// Subscribe registers fn for every state change.
func (c *Controller) Subscribe(fn func(Snapshot)) func() {
	c.subMu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.subMu.Unlock()
	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

func (c *Controller) publish(s Snapshot) {
	c.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()
	for _, fn := range fns {
		fn(s)
	}
}

// update applies fn to the state unless the controller is closed, then
// publishes the result. It reports whether fn ran.
func (c *Controller) update(fn func(s *Snapshot)) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	fn(&c.state)
	c.state.AllCompleted = api.AllCompleted(c.state.Tasks)
	snap := c.snapshotLocked()
	c.mu.Unlock()
	c.publish(snap)
	return true
}

func (c *Controller) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Start runs the first day check and then re-checks every DayCheckInterval
// until Close is called or the session logs out. It returns after the first
// check.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	c.mu.Unlock()

	unsub := c.sess.Subscribe(func(st session.State) {
		if !st.LoggedIn() {
			c.Close()
		}
	})

	c.CheckDay(ctx)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer unsub()
		ticker := time.NewTicker(c.opts.DayCheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-c.ctx.Done():
				return
			case <-ticker.C:
				c.CheckDay(c.ctx)
			}
		}
	}()
}

// Close stops the periodic check and every pending timer. Results of calls
// still in flight are discarded.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for t := range c.timers {
		t.Stop()
	}
	c.timers = map[*time.Timer]struct{}{}
	c.mu.Unlock()
	c.cancel()
}

// Wait blocks until the periodic check goroutine has exited.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) today() string {
	return c.opts.Now().Format(dateLayout)
}

// CheckDay compares the persisted last-loaded date with today, forces a
// fresh load on rollover, records today and loads the task set. The server
// decides what today's tasks are; the client only detects the boundary.
func (c *Controller) CheckDay(ctx context.Context) {
	if c.isClosed() {
		return
	}
	today := c.today()

	last, ok, err := c.days.Get(ctx, storage.KeyLastTaskDate)
	if err != nil {
		c.log.Error("error checking date", slog.Any("error", err))
	}

	c.mu.Lock()
	rolled := c.state.Today != "" && c.state.Today != today
	c.mu.Unlock()
	if ok && last != today {
		rolled = true
	}

	if rolled {
		c.log.Info("new day detected, loading new tasks", slog.String("previous", last), slog.String("today", today))
		c.update(func(s *Snapshot) {
			s.Phase = PhaseLoading
			s.ServerConfirmed = false
			s.Tasks = []api.Task{}
		})
	}
	c.update(func(s *Snapshot) { s.Today = today })

	if err == nil && (!ok || last != today) {
		if err := c.days.Set(ctx, storage.KeyLastTaskDate, today); err != nil {
			c.log.Error("error saving task date", slog.Any("error", err))
		}
	}

	_ = c.Load(ctx)
}

// Load fetches today's task set and replaces the local list with it.
func (c *Controller) Load(ctx context.Context) error {
	if c.isClosed() {
		return ErrClosed
	}
	res, err := c.client.DailyTasks(ctx)
	if err != nil {
		c.log.Error("error loading tasks", slog.Any("error", err))
		c.update(func(s *Snapshot) { s.Phase = PhaseLoaded })
		c.showBanner(BannerError, MsgLoadFailed, nil)
		return err
	}

	confirmed := res.ServerConfirmed || c.confirmedLocally(ctx)
	if !c.update(func(s *Snapshot) {
		s.Phase = PhaseLoaded
		s.Tasks = slices.Clone(res.Tasks)
		s.ServerConfirmed = confirmed
	}) {
		return ErrClosed
	}
	c.maybeAutoConfirm(ctx)
	return nil
}

func (c *Controller) confirmedLocally(ctx context.Context) bool {
	u := c.sess.User()
	if u == nil {
		return false
	}
	rec, err := c.guard.Get(ctx, u.ID, c.today())
	if err != nil {
		c.log.Warn("read confirmation record", slog.Any("error", err))
		return false
	}
	return rec != nil && rec.Confirmed
}

// Toggle marks an incomplete task as completed and adopts the server's
// returned list.
func (c *Controller) Toggle(ctx context.Context, taskID string) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	idx := slices.IndexFunc(c.state.Tasks, func(t api.Task) bool { return t.ID == taskID })
	if idx < 0 {
		c.mu.Unlock()
		return ErrTaskNotFound
	}
	if c.state.Tasks[idx].Completed {
		c.mu.Unlock()
		return ErrTaskCompleted
	}
	c.mu.Unlock()

	tasks, err := c.client.UpdateTaskCompletion(ctx, taskID, true)
	if err != nil {
		c.log.Error("error toggling task", slog.String("task_id", taskID), slog.Any("error", err))
		c.showBanner(BannerError, MsgToggleFailed, nil)
		return err
	}
	if !c.update(func(s *Snapshot) { s.Tasks = slices.Clone(tasks) }) {
		return ErrClosed
	}
	c.maybeAutoConfirm(ctx)
	return nil
}

// maybeAutoConfirm issues the confirmation when every task is done, the
// server has not confirmed today, nothing is in flight and no attempt has
// been recorded for this user today. The attempt is recorded before the call
// and is not re-armed within the same day, even if tasks become incomplete.
func (c *Controller) maybeAutoConfirm(ctx context.Context) {
	c.mu.Lock()
	eligible := !c.closed && c.state.AllCompleted && !c.state.ServerConfirmed && !c.state.ConfirmInFlight
	c.mu.Unlock()
	if !eligible {
		return
	}
	u := c.sess.User()
	if u == nil {
		return
	}
	claimed, err := c.guard.Claim(ctx, u.ID, c.today(), c.opts.Now())
	if err != nil {
		c.log.Error("record confirmation attempt", slog.Any("error", err))
		return
	}
	if !claimed {
		return
	}
	if _, err := c.MarkAllCompleted(ctx); err != nil {
		c.log.Error("auto mark complete failed", slog.Any("error", err))
	}
}

// MarkAllCompleted confirms today's completion with the server. A server
// rejection is shown verbatim in the error banner and leaves the user's
// streak untouched.
func (c *Controller) MarkAllCompleted(ctx context.Context) (api.CompletionResult, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return api.CompletionResult{}, ErrClosed
	}
	if !c.state.AllCompleted {
		c.mu.Unlock()
		c.showBanner(BannerError, MsgCompleteFirst, nil)
		return api.CompletionResult{}, ErrNotAllCompleted
	}
	if c.state.ConfirmInFlight {
		c.mu.Unlock()
		return api.CompletionResult{}, ErrConfirmInFlight
	}
	c.state.ConfirmInFlight = true
	c.mu.Unlock()

	c.log.Info("marking all tasks as complete")
	res, err := c.client.MarkAllCompleted(ctx)

	c.update(func(s *Snapshot) { s.ConfirmInFlight = false })
	if c.isClosed() {
		return res, ErrClosed
	}

	if err != nil {
		c.log.Error("error marking tasks complete", slog.Any("error", err))
		c.showBanner(BannerError, MsgConfirmFailed, nil)
		return res, err
	}
	if !res.OK {
		msg := res.Error
		if msg == "" {
			msg = MsgStreakFallback
		}
		c.showBanner(BannerError, msg, nil)
		return res, nil
	}

	c.update(func(s *Snapshot) { s.ServerConfirmed = true })
	if u := c.sess.User(); u != nil {
		day := c.today()
		if _, err := c.guard.Claim(ctx, u.ID, day, c.opts.Now()); err != nil {
			c.log.Warn("record confirmation attempt", slog.Any("error", err))
		}
		if err := c.guard.MarkConfirmed(ctx, u.ID, day); err != nil {
			c.log.Warn("record confirmation", slog.Any("error", err))
		}
	}
	if err := c.sess.ApplyStreak(ctx, res.Streak, res.LongestStreak); err != nil {
		c.log.Error("error updating local user after streak update", slog.Any("error", err))
	}

	c.showBanner(BannerSuccess, SuccessMessage(res), func() {
		c.after(c.opts.ReloadDelay, func() { _ = c.Load(c.ctx) })
	})
	return res, nil
}

// SuccessMessage renders the banner shown after a confirmed day.
func SuccessMessage(res api.CompletionResult) string {
	unit := "days"
	if res.Streak == 1 {
		unit = "day"
	}
	return fmt.Sprintf("🎉 Amazing! All tasks completed!\n🔥 Streak: %d %s\n%s", res.Streak, unit, res.Message)
}

// showBanner replaces any visible banner. After BannerDuration the banner is
// cleared if it is still the latest one, then then runs.
func (c *Controller) showBanner(kind BannerKind, text string, then func()) {
	var gen int
	if !c.update(func(s *Snapshot) {
		c.bannerGen++
		gen = c.bannerGen
		s.Banner = Banner{Kind: kind, Text: text}
	}) {
		return
	}
	c.after(c.opts.BannerDuration, func() {
		c.update(func(s *Snapshot) {
			if c.bannerGen == gen {
				s.Banner = Banner{}
			}
		})
		if then != nil {
			then()
		}
	})
}

// after runs fn once d has elapsed unless the controller closes first.
func (c *Controller) after(d time.Duration, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	var t *time.Timer
	t = time.AfterFunc(d, func() {
		c.mu.Lock()
		_, live := c.timers[t]
		delete(c.timers, t)
		c.mu.Unlock()
		if live {
			fn()
		}
	})
	c.timers[t] = struct{}{}
}
