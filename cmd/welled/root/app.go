package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/deepak75500/welledapp-freelance/internal/tui"
)

func newAppCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "app",
		Short: "Open the full-screen app",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openClientApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			return tui.Run(ctx, a.tuiDeps(), cmd.OutOrStdout())
		},
	}

	return cmd
}
