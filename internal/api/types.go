package api

import (
	"sort"
	"strings"
)

type Category string

const (
	CategoryDiet     Category = "Diet"
	CategoryExercise Category = "Exercise"
	CategoryPosture  Category = "Posture"
	CategoryWater    Category = "Water"
	CategorySunlight Category = "Sunlight"
)

// Categories lists the known categories in display order.
var Categories = []Category{CategoryDiet, CategoryExercise, CategoryPosture, CategoryWater, CategorySunlight}

func (c Category) IsValid() bool {
	switch c {
	case CategoryDiet, CategoryExercise, CategoryPosture, CategoryWater, CategorySunlight:
		return true
	default:
		return false
	}
}

// ParseCategory matches input case-insensitively. Unknown input is returned as-is
// so categories added server-side still round-trip.
func ParseCategory(input string) Category {
	s := strings.TrimSpace(input)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c
		}
	}
	return Category(s)
}

const (
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)

type User struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	Role          string `json:"role,omitempty"`
	CurrentStreak int    `json:"currentStreak"`
	LongestStreak int    `json:"longestStreak"`
}

func (u User) IsAdmin() bool {
	return strings.EqualFold(u.Role, RoleAdmin)
}

type Task struct {
	ID          string   `json:"id"`
	Category    Category `json:"category"`
	Emoji       string   `json:"emoji"`
	Instruction string   `json:"instruction"`
	Completed   bool     `json:"completed"`
}

// AllCompleted reports whether every task is completed. An empty list is not
// considered complete.
func AllCompleted(tasks []Task) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// CountCompleted returns the number of completed tasks.
func CountCompleted(tasks []Task) int {
	n := 0
	for _, t := range tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

type TeacherSummary struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	CompletedToday bool   `json:"completedToday"`
	CurrentStreak  int    `json:"currentStreak"`
	LongestStreak  int    `json:"longestStreak"`
}

type DayRecord struct {
	Date         string `json:"date"`
	AllCompleted bool   `json:"allCompleted"`
	Tasks        []Task `json:"tasks"`
}

// History maps a YYYY-MM-DD date to that day's record.
type History map[string]DayRecord

// Days returns the records newest first.
func (h History) Days() []DayRecord {
	out := make([]DayRecord, 0, len(h))
	for _, d := range h {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// DailyTasks is today's task set as returned by the server.
type DailyTasks struct {
	Tasks []Task
	// ServerConfirmed is the server's own all-complete flag for today, when it sends one.
	ServerConfirmed bool
}

// CompletionResult is the outcome of the all-complete confirmation. Exactly one
// of the OK or rejected shapes applies: when OK is false, Error holds the
// server's reason.
type CompletionResult struct {
	OK            bool
	Streak        int
	LongestStreak int
	Message       string
	Error         string
}

// AuthResult is a successful login or registration.
type AuthResult struct {
	Token string
	User  User
}
