package leaderboard

import (
	"context"
	"errors"
	"testing"

	"github.com/deepak75500/welledapp-freelance/internal/api"
)

type fakeRoster struct {
	teachersFn func(ctx context.Context) ([]api.TeacherSummary, error)
}

func (f *fakeRoster) Teachers(ctx context.Context) ([]api.TeacherSummary, error) {
	return f.teachersFn(ctx)
}

func ids(b Board) []string {
	out := make([]string, len(b.Entries))
	for i, e := range b.Entries {
		out[i] = e.Teacher.ID
	}
	return out
}

func TestBuildStableRanking(t *testing.T) {
	b := Build([]api.TeacherSummary{
		{ID: "1", CurrentStreak: 5},
		{ID: "2", CurrentStreak: 9},
		{ID: "3", CurrentStreak: 9},
	})
	got := ids(b)
	want := []string{"2", "3", "1"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order=%v, want %v", got, want)
		}
	}
	for i, e := range b.Entries {
		if e.Rank != i+1 {
			t.Fatalf("entry %d rank=%d, want %d", i, e.Rank, i+1)
		}
	}

	// Same input with the tie pre-ordered the other way.
	b = Build([]api.TeacherSummary{
		{ID: "3", CurrentStreak: 9},
		{ID: "1", CurrentStreak: 5},
		{ID: "2", CurrentStreak: 9},
	})
	if got := ids(b); got[0] != "3" || got[1] != "2" || got[2] != "1" {
		t.Fatalf("order=%v, want [3 2 1]", got)
	}
}

func TestBuildStats(t *testing.T) {
	b := Build([]api.TeacherSummary{
		{ID: "1", CurrentStreak: 5, CompletedToday: true},
		{ID: "2", CurrentStreak: 0},
		{ID: "3", CurrentStreak: 2, CompletedToday: true},
		{ID: "4", CurrentStreak: 1},
	})
	if b.Stats.Total != 4 || b.Stats.ActiveToday != 2 || b.Stats.TotalStreaks != 8 {
		t.Fatalf("stats=%+v", b.Stats)
	}
	if b.Stats.CompletionRate() != 0.5 || b.Stats.CompletionPercent() != 50 {
		t.Fatalf("rate=%v percent=%d", b.Stats.CompletionRate(), b.Stats.CompletionPercent())
	}
}

func TestEmptyRosterHasZeroRate(t *testing.T) {
	b := Build(nil)
	if b.Stats.CompletionRate() != 0 || b.Stats.CompletionPercent() != 0 {
		t.Fatalf("rate=%v percent=%d, want 0", b.Stats.CompletionRate(), b.Stats.CompletionPercent())
	}
	if len(b.Entries) != 0 {
		t.Fatalf("entries=%v", b.Entries)
	}
}

func TestBuildDoesNotReorderInput(t *testing.T) {
	in := []api.TeacherSummary{{ID: "1", CurrentStreak: 1}, {ID: "2", CurrentStreak: 2}}
	_ = Build(in)
	if in[0].ID != "1" {
		t.Fatalf("input slice was sorted in place")
	}
}

func TestViewKeepsBoardOnFailure(t *testing.T) {
	calls := 0
	v := NewView(&fakeRoster{teachersFn: func(context.Context) ([]api.TeacherSummary, error) {
		calls++
		if calls == 1 {
			return []api.TeacherSummary{{ID: "1", CurrentStreak: 3, CompletedToday: true}}, nil
		}
		return nil, errors.New("offline")
	}}, nil)
	ctx := context.Background()

	if _, err := v.Load(ctx); err != nil {
		t.Fatalf("first Load: %v", err)
	}
	b, err := v.Load(ctx)
	if err == nil {
		t.Fatalf("expected refresh error")
	}
	if !v.Loaded() || b.Stats.Total != 1 || b.Entries[0].Teacher.ID != "1" {
		t.Fatalf("board after failed refresh=%+v", b)
	}
}
