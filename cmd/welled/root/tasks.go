package root

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/deepak75500/welledapp-freelance/internal/daily"
	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

// loadToday runs the day check once and returns the controller with today's
// tasks loaded. The caller closes it.
func (a *clientApp) loadToday(ctx context.Context) (*daily.Controller, error) {
	if _, err := a.requireUser(); err != nil {
		return nil, err
	}
	ctrl := a.newDaily()
	ctrl.CheckDay(ctx)
	snap := ctrl.Snapshot()
	if snap.Banner.Kind == daily.BannerError && snap.Banner.Text == daily.MsgLoadFailed {
		ctrl.Close()
		return nil, errors.New(daily.MsgLoadFailed)
	}
	return ctrl, nil
}

func printSnapshot(out io.Writer, snap daily.Snapshot) {
	done, total, pct := snap.Progress()
	fmt.Fprintln(out, ui.Heading(ui.IconApp, "Today's wellness")+" "+ui.Muted.Render(snap.Today))
	fmt.Fprintf(out, "%s %d/%d (%d%%)\n\n", ui.ProgressBar(done, total, 30), done, total, pct)
	if total == 0 {
		fmt.Fprintln(out, ui.Muted.Render("No tasks today."))
	}
	for i, t := range snap.Tasks {
		mark := ui.IconTodo
		if t.Completed {
			mark = ui.IconDone
		}
		fmt.Fprintf(out, "%d. %s %s %s  %s %s\n", i+1, mark, ui.TaskIcon(t), ui.Category(t.Category), t.Instruction, ui.Muted.Render("("+t.ID+")"))
	}
	fmt.Fprintln(out, "")
	switch {
	case snap.ServerConfirmed:
		fmt.Fprintln(out, ui.Good.Render(ui.IconParty+" Today is complete."))
	case snap.AllCompleted:
		fmt.Fprintln(out, ui.Warn.Render("All done. Run `welled complete` to confirm."))
	}
}

func printBanner(out io.Writer, b daily.Banner) {
	switch b.Kind {
	case daily.BannerSuccess:
		fmt.Fprintln(out, ui.BannerSuccess.Render(b.Text))
	case daily.BannerError:
		fmt.Fprintln(out, ui.BannerError.Render(b.Text))
	}
}

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Show today's tasks and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openClientApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ctrl, err := a.loadToday(ctx)
			if err != nil {
				return err
			}
			defer ctrl.Close()

			snap := ctrl.Snapshot()
			printBanner(cmd.OutOrStdout(), snap.Banner)
			printSnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	}

	return cmd
}
