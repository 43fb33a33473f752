package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/deepak75500/welledapp-freelance/internal/api"
)

// Welled theme (CLI + TUI).

const (
	IconApp      = "🌿"
	IconStreak   = "🔥"
	IconDone     = "✅"
	IconTodo     = "⬜"
	IconTrophy   = "🏆"
	IconParty    = "🎉"
	IconInfo     = "ℹ️"
	IconWarn     = "⚠️"
	IconError    = "🧨"
	IconUser     = "👤"
	IconCalendar = "📅"
	IconChart    = "📊"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("35")  // teal
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
	cSky     = lipgloss.Color("39")  // light blue
	cPink    = lipgloss.Color("205") // magenta
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BannerSuccess = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cGood).Foreground(cGood).Padding(0, 1)
	BannerError   = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cBad).Foreground(cBad).Padding(0, 1)
)

var categoryColors = map[api.Category]lipgloss.Color{
	api.CategoryDiet:     cGood,
	api.CategoryExercise: cWarn,
	api.CategoryPosture:  cPink,
	api.CategoryWater:    cSky,
	api.CategorySunlight: cGold,
}

var categoryIcons = map[api.Category]string{
	api.CategoryDiet:     "🥗",
	api.CategoryExercise: "🏃",
	api.CategoryPosture:  "🧘",
	api.CategoryWater:    "💧",
	api.CategorySunlight: "☀️",
}

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// DoneText renders a task's completion state.
func DoneText(completed bool) string {
	if completed {
		return Good.Render("done")
	}
	return Warn.Render("todo")
}

func Category(cat api.Category) string {
	c, ok := categoryColors[cat]
	if !ok {
		return Muted.Render(string(cat))
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c).Render(string(cat))
}

// TaskIcon prefers the server's emoji and falls back to the category's.
func TaskIcon(t api.Task) string {
	if e := strings.TrimSpace(t.Emoji); e != "" {
		return e
	}
	if e, ok := categoryIcons[t.Category]; ok {
		return e
	}
	return IconTodo
}

func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	filled := value * width / total
	return "[" + Good.Render(strings.Repeat("█", filled)) + Dim.Render(strings.Repeat("░", width-filled)) + "]"
}

// Medal returns the podium icon for ranks 1-3 and "#n" otherwise.
func Medal(rank int) string {
	switch rank {
	case 1:
		return "🥇"
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return fmt.Sprintf("#%d", rank)
	}
}

func Days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func Streak(n int) string {
	if n == 0 {
		return Muted.Render("no streak")
	}
	return Gold.Render(IconStreak + " " + Days(n))
}
