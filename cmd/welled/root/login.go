package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepak75500/welledapp-freelance/internal/authflow"
	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openClientApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if email, err = p.ask("Email", email); err != nil {
				return err
			}
			if password, err = p.ask("Password", password); err != nil {
				return err
			}

			u, err := a.auth.Login(ctx, authflow.LoginForm{Email: email, Password: password})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Logged in as "+u.Username))
			if u.IsAdmin() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Admin account: try `welled teachers`."))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")

	return cmd
}
