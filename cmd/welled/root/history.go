package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepak75500/welledapp-freelance/internal/api"
	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past days",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openClientApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := a.requireUser(); err != nil {
				return err
			}
			h, err := a.client.History(ctx)
			if err != nil {
				return err
			}
			days := h.Days()
			if limit > 0 && len(days) > limit {
				days = days[:limit]
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconCalendar, "History"))
			if len(days) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No history yet."))
				return nil
			}
			for _, d := range days {
				status := ui.Warn.Render("partial")
				if d.AllCompleted {
					status = ui.Good.Render(ui.IconDone + " complete")
				}
				fmt.Fprintf(out, "- %s  %d/%d  %s\n", d.Date, api.CountCompleted(d.Tasks), len(d.Tasks), status)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 14, "number of days to show (0 for all)")

	return cmd
}
