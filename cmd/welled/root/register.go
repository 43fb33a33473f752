package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepak75500/welledapp-freelance/internal/authflow"
	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

func newRegisterCmd() *cobra.Command {
	var form authflow.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a teacher account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, cleanup, err := openClientApp(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if form.Username, err = p.ask("Username", form.Username); err != nil {
				return err
			}
			if form.Email, err = p.ask("Email", form.Email); err != nil {
				return err
			}
			if form.Password, err = p.ask("Password", form.Password); err != nil {
				return err
			}
			if form.ConfirmPassword, err = p.ask("Confirm password", form.ConfirmPassword); err != nil {
				return err
			}

			u, err := a.auth.Register(ctx, form)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconDone+" Welcome, "+u.Username+"!"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&form.Username, "username", "u", "", "display name")
	cmd.Flags().StringVarP(&form.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&form.Password, "password", "p", "", "password, at least 6 characters")
	cmd.Flags().StringVar(&form.ConfirmPassword, "confirm", "", "repeat the password")

	return cmd
}
