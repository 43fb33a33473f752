package devserver

import (
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/deepak75500/welledapp-freelance/internal/api"
)

const dayLayout = "2006-01-02"

// Rejection is a request the backend refuses. Message is sent to the client
// as the response's error text.
type Rejection struct {
	Status  int
	Message string
}

func (r *Rejection) Error() string { return r.Message }

var (
	ErrEmailTaken         = &Rejection{http.StatusConflict, "Email already registered"}
	ErrInvalidCredentials = &Rejection{http.StatusUnauthorized, "Invalid email or password"}
	ErrUserNotFound       = &Rejection{http.StatusUnauthorized, "User not found"}
	ErrTaskNotFound       = &Rejection{http.StatusNotFound, "Task not found"}
	ErrAlreadyCompleted   = &Rejection{http.StatusBadRequest, "Tasks already completed today"}
	ErrIncomplete         = &Rejection{http.StatusBadRequest, "Complete all tasks first"}
)

type dayRecord struct {
	tasks     []api.Task
	confirmed bool
}

type account struct {
	user api.User
	hash []byte
	days map[string]*dayRecord
}

// Store is the dev backend's in-memory state. Safe for concurrent use.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*account
	byEmail  map[string]string
	cost     int
}

func NewStore(cost int) *Store {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Store{
		accounts: map[string]*account{},
		byEmail:  map[string]string{},
		cost:     cost,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user. role defaults to teacher.
func (s *Store) Register(email, password, username, role string) (api.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return api.User{}, err
	}
	if role == "" {
		role = api.RoleTeacher
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeEmail(email)
	if _, ok := s.byEmail[key]; ok {
		return api.User{}, ErrEmailTaken
	}
	u := api.User{
		ID:       uuid.NewString(),
		Username: strings.TrimSpace(username),
		Email:    key,
		Role:     role,
	}
	s.accounts[u.ID] = &account{user: u, hash: hash, days: map[string]*dayRecord{}}
	s.byEmail[key] = u.ID
	return u, nil
}

func (s *Store) Authenticate(email, password string, now time.Time) (api.User, error) {
	s.mu.Lock()
	id, ok := s.byEmail[normalizeEmail(email)]
	var acc *account
	if ok {
		acc = s.accounts[id]
	}
	s.mu.Unlock()
	if acc == nil {
		return api.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acc.hash, []byte(password)); err != nil {
		return api.User{}, ErrInvalidCredentials
	}
	return s.User(id, now)
}

// User returns the profile with the streak as of now.
func (s *Store) User(id string, now time.Time) (api.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return api.User{}, ErrUserNotFound
	}
	u := acc.user
	u.CurrentStreak = acc.streak(now)
	return u, nil
}

// streak is the stored streak, or 0 once neither today nor yesterday is
// confirmed. Callers hold s.mu.
func (acc *account) streak(now time.Time) int {
	if acc.confirmed(now) || acc.confirmed(now.AddDate(0, 0, -1)) {
		return acc.user.CurrentStreak
	}
	return 0
}

func (acc *account) confirmed(date time.Time) bool {
	rec, ok := acc.days[date.Format(dayLayout)]
	return ok && rec.confirmed
}

// day returns the record for date, creating today's task set on first access.
// Callers hold s.mu.
func (acc *account) day(date time.Time) *dayRecord {
	key := date.Format(dayLayout)
	rec, ok := acc.days[key]
	if !ok {
		rec = &dayRecord{tasks: dayTasks(date)}
		acc.days[key] = rec
	}
	return rec
}

func (s *Store) lookup(id string) (*account, error) {
	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	return acc, nil
}

// DailyTasks returns the user's tasks for now's date and whether the day is confirmed.
func (s *Store) DailyTasks(userID string, now time.Time) ([]api.Task, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, err := s.lookup(userID)
	if err != nil {
		return nil, false, err
	}
	rec := acc.day(now)
	return append([]api.Task(nil), rec.tasks...), rec.confirmed, nil
}

func (s *Store) SetCompleted(userID, taskID string, completed bool, now time.Time) ([]api.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	rec := acc.day(now)
	for i := range rec.tasks {
		if rec.tasks[i].ID == taskID {
			rec.tasks[i].Completed = completed
			return append([]api.Task(nil), rec.tasks...), nil
		}
	}
	return nil, ErrTaskNotFound
}

// Complete confirms now's date for the user. The streak grows when the
// previous day was confirmed and restarts at 1 otherwise.
func (s *Store) Complete(userID string, now time.Time) (api.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, err := s.lookup(userID)
	if err != nil {
		return api.User{}, err
	}
	rec := acc.day(now)
	if rec.confirmed {
		return api.User{}, ErrAlreadyCompleted
	}
	if !api.AllCompleted(rec.tasks) {
		return api.User{}, ErrIncomplete
	}
	rec.confirmed = true

	yesterday := now.AddDate(0, 0, -1).Format(dayLayout)
	if prev, ok := acc.days[yesterday]; ok && prev.confirmed {
		acc.user.CurrentStreak++
	} else {
		acc.user.CurrentStreak = 1
	}
	if acc.user.CurrentStreak > acc.user.LongestStreak {
		acc.user.LongestStreak = acc.user.CurrentStreak
	}
	return acc.user, nil
}

// History returns every recorded day for the user, newest first.
func (s *Store) History(userID string) ([]api.DayRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	out := make([]api.DayRecord, 0, len(acc.days))
	for date, rec := range acc.days {
		out = append(out, api.DayRecord{
			Date:         date,
			AllCompleted: rec.confirmed,
			Tasks:        append([]api.Task(nil), rec.tasks...),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// Teachers returns every non-admin user ordered by email.
// A streak whose last confirmed day is before yesterday reads as broken.
func (s *Store) Teachers(now time.Time) []api.TeacherSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]api.TeacherSummary, 0, len(s.accounts))
	for _, acc := range s.accounts {
		if acc.user.IsAdmin() {
			continue
		}
		out = append(out, api.TeacherSummary{
			ID:             acc.user.ID,
			Username:       acc.user.Username,
			Email:          acc.user.Email,
			CompletedToday: acc.confirmed(now),
			CurrentStreak:  acc.streak(now),
			LongestStreak:  acc.user.LongestStreak,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}
