package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

func newLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openClientApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := a.session.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Logged out."))
			return nil
		},
	}

	return cmd
}
