package devserver

import (
	"time"

	"github.com/google/uuid"

	"github.com/deepak75500/welledapp-freelance/internal/api"
)

type taskTemplate struct {
	emoji       string
	instruction string
}

var catalogue = map[api.Category][]taskTemplate{
	api.CategoryDiet: {
		{"🥗", "Eat a serving of vegetables with lunch"},
		{"🍎", "Swap one snack for a piece of fruit"},
		{"🥣", "Have a protein-rich breakfast"},
	},
	api.CategoryExercise: {
		{"🚶", "Take a 15 minute walk"},
		{"🧘", "Do 10 minutes of stretching"},
		{"🏃", "Climb the stairs instead of the lift"},
	},
	api.CategoryPosture: {
		{"🪑", "Check your sitting posture every hour"},
		{"🧍", "Stand while teaching one full lesson"},
		{"🙆", "Do five shoulder rolls between classes"},
	},
	api.CategoryWater: {
		{"💧", "Drink 8 glasses of water"},
		{"🥤", "Keep a filled bottle on your desk"},
		{"🫖", "Replace one coffee with herbal tea"},
	},
	api.CategorySunlight: {
		{"☀️", "Spend 10 minutes outside in daylight"},
		{"🌤️", "Take your break by a window"},
		{"🌳", "Eat lunch outdoors"},
	},
}

// dayTasks returns one task per category for day, rotated by date so every
// user sees the same instructions on a given day. IDs are fresh per call.
func dayTasks(day time.Time) []api.Task {
	n := day.Year()*366 + day.YearDay()
	out := make([]api.Task, 0, len(api.Categories))
	for _, cat := range api.Categories {
		opts := catalogue[cat]
		tpl := opts[n%len(opts)]
		out = append(out, api.Task{
			ID:          uuid.NewString(),
			Category:    cat,
			Emoji:       tpl.emoji,
			Instruction: tpl.instruction,
		})
	}
	return out
}
