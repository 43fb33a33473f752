// Package leaderboard builds the admin view of every teacher: totals,
// today's completion rate and a streak ranking.
package leaderboard

import (
	"context"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/deepak75500/welledapp-freelance/internal/api"
)

// Roster fetches teacher summaries.
type Roster interface {
	Teachers(ctx context.Context) ([]api.TeacherSummary, error)
}

type Stats struct {
	Total        int
	ActiveToday  int
	TotalStreaks int
}

// CompletionRate is ActiveToday/Total, 0 when there are no teachers.
func (s Stats) CompletionRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.ActiveToday) / float64(s.Total)
}

// CompletionPercent is CompletionRate as a rounded whole percentage.
func (s Stats) CompletionPercent() int {
	return int(math.Round(s.CompletionRate() * 100))
}

type Entry struct {
	Rank    int
	Teacher api.TeacherSummary
}

type Board struct {
	Stats   Stats
	Entries []Entry
}

// Build computes stats and ranks teachers by current streak, highest first.
// Ties keep the order the server sent.
func Build(teachers []api.TeacherSummary) Board {
	var st Stats
	st.Total = len(teachers)
	for _, t := range teachers {
		if t.CompletedToday {
			st.ActiveToday++
		}
		st.TotalStreaks += t.CurrentStreak
	}

	sorted := slices.Clone(teachers)
	slices.SortStableFunc(sorted, func(a, b api.TeacherSummary) int {
		return b.CurrentStreak - a.CurrentStreak
	})

	entries := make([]Entry, len(sorted))
	for i, t := range sorted {
		entries[i] = Entry{Rank: i + 1, Teacher: t}
	}
	return Board{Stats: st, Entries: entries}
}

// View holds the last loaded board. A failed refresh keeps the previous one.
type View struct {
	roster Roster
	log    *slog.Logger

	mu     sync.Mutex
	board  Board
	loaded bool
}

func NewView(roster Roster, log *slog.Logger) *View {
	if log == nil {
		log = slog.Default()
	}
	return &View{roster: roster, log: log.With(slog.String("component", "leaderboard"))}
}

// Load fetches the roster and rebuilds the board. Used on mount and on
// manual refresh.
func (v *View) Load(ctx context.Context) (Board, error) {
	teachers, err := v.roster.Teachers(ctx)
	if err != nil {
		v.log.Error("error loading teachers", slog.Any("error", err))
		return v.Board(), err
	}
	b := Build(teachers)

	v.mu.Lock()
	v.board = b
	v.loaded = true
	v.mu.Unlock()
	return b, nil
}

func (v *View) Board() Board {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Board{Stats: v.board.Stats, Entries: slices.Clone(v.board.Entries)}
}

// Loaded reports whether at least one load succeeded.
func (v *View) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loaded
}
