package daily

import (
	"errors"
	"math"

	"github.com/deepak75500/welledapp-freelance/internal/api"
)

var (
	// ErrTaskCompleted is returned when toggling a task that is already done.
	// Completed tasks are not re-opened from the client.
	ErrTaskCompleted = errors.New("task is already completed")
	// ErrTaskNotFound is returned for an id not in today's set.
	ErrTaskNotFound = errors.New("task not found in today's set")
	// ErrNotAllCompleted is returned by MarkAllCompleted before every task is done.
	ErrNotAllCompleted = errors.New("not all tasks are completed")
	// ErrConfirmInFlight is returned by MarkAllCompleted while another
	// confirmation for the day is still waiting on the server.
	ErrConfirmInFlight = errors.New("confirmation already in flight")
	// ErrClosed is returned by operations on a closed controller.
	ErrClosed = errors.New("daily view closed")
)

// Banner texts.
const (
	MsgLoadFailed     = "Failed to load tasks. Please refresh."
	MsgToggleFailed   = "Failed to update task"
	MsgCompleteFirst  = "⚠️ Please complete all tasks first"
	MsgStreakFallback = "Unable to update streak"
	MsgConfirmFailed  = "Failed to update. Please try again."
)

type Phase int

const (
	PhaseLoading Phase = iota
	PhaseLoaded
)

func (p Phase) String() string {
	if p == PhaseLoaded {
		return "loaded"
	}
	return "loading"
}

type BannerKind int

const (
	BannerNone BannerKind = iota
	BannerSuccess
	BannerError
)

// Banner is the single transient message shown above the task list.
type Banner struct {
	Kind BannerKind
	Text string
}

// Snapshot is an immutable copy of the view state.
type Snapshot struct {
	Phase           Phase
	Today           string
	Tasks           []api.Task
	AllCompleted    bool
	ServerConfirmed bool
	ConfirmInFlight bool
	Banner          Banner
}

// Progress returns completed and total counts and the whole-number percentage.
func (s Snapshot) Progress() (completed, total, percent int) {
	completed = api.CountCompleted(s.Tasks)
	total = len(s.Tasks)
	return completed, total, Percent(completed, total)
}

// Percent returns part/total as a rounded percentage, 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
