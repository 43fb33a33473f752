package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepak75500/welledapp-freelance/internal/daily"
	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

func newCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Confirm today as fully completed",
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
			if snap.ServerConfirmed {
				// Loading may have confirmed the day automatically.
				if snap.Banner.Kind == daily.BannerSuccess {
					printBanner(cmd.OutOrStdout(), snap.Banner)
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconParty+" Today is already confirmed."))
				return nil
			}

			res, err := ctrl.MarkAllCompleted(ctx)
			switch {
			case errors.Is(err, daily.ErrNotAllCompleted):
				return errors.New(daily.MsgCompleteFirst)
			case err != nil:
				return errors.New(daily.MsgConfirmFailed)
			case !res.OK:
				return errors.New(ctrl.Snapshot().Banner.Text)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.BannerSuccess.Render(daily.SuccessMessage(res)))
			return nil
		},
	}

	return cmd
}
