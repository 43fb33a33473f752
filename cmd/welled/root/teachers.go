package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepak75500/welledapp-freelance/internal/leaderboard"
	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

func newTeachersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "teachers",
		Short: "Show the teacher leaderboard (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openClientApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			u, err := a.requireUser()
			if err != nil {
				return err
			}
			if !u.IsAdmin() {
				return errors.New("the leaderboard is only available to admins")
			}

			board, err := leaderboard.NewView(a.client, a.log).Load(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := board.Stats
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Teacher leaderboard"))
			fmt.Fprintln(out, ui.LabelValue("Teachers", st.Total))
			fmt.Fprintln(out, ui.LabelValue("Active today", fmt.Sprintf("%d %s", st.ActiveToday, ui.ProgressBar(st.ActiveToday, st.Total, 20))))
			fmt.Fprintln(out, ui.LabelValue("Completion rate", fmt.Sprintf("%d%%", st.CompletionPercent())))
			fmt.Fprintln(out, ui.LabelValue("Total streak days", st.TotalStreaks))
			fmt.Fprintln(out, "")

			if len(board.Entries) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No teachers yet."))
				return nil
			}
			for _, e := range board.Entries {
				today := ui.Muted.Render("pending")
				if e.Teacher.CompletedToday {
					today = ui.Good.Render("done today")
				}
				fmt.Fprintf(out, "%-4s %-20s %s  %s  %s\n",
					ui.Medal(e.Rank),
					e.Teacher.Username,
					ui.Streak(e.Teacher.CurrentStreak),
					today,
					ui.Muted.Render("best "+ui.Days(e.Teacher.LongestStreak)),
				)
			}
			return nil
		},
	}

	return cmd
}
