package root

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

func newWhoamiCmd() *cobra.Command {
	var offline bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user and session expiry",
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
			if !offline {
				u = a.session.RefreshUser(ctx)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconUser, u.Username))
			fmt.Fprintln(out, ui.LabelValue("Email", u.Email))
			if u.Role != "" {
				fmt.Fprintln(out, ui.LabelValue("Role", u.Role))
			}
			fmt.Fprintln(out, ui.LabelValue("Current streak", ui.Streak(u.CurrentStreak)))
			fmt.Fprintln(out, ui.LabelValue("Longest streak", ui.Days(u.LongestStreak)))
			fmt.Fprintln(out, ui.LabelValue("Session", tokenExpiry(a.session.Token(), time.Now())))
			fmt.Fprintln(out, ui.LabelValue("Backend", a.client.BaseURL()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&offline, "offline", false, "show the stored profile without contacting the backend")

	return cmd
}

// tokenExpiry reads the exp claim without verifying the signature; the client
// never holds the signing key.
func tokenExpiry(token string, now time.Time) string {
	if token == "" {
		return ui.Muted.Render("no token")
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ui.Muted.Render("opaque token")
	}
	if claims.ExpiresAt == nil {
		return ui.Muted.Render("no expiry")
	}
	exp := claims.ExpiresAt.Time
	if !exp.After(now) {
		return ui.Bad.Render("expired " + exp.Local().Format("2006-01-02 15:04"))
	}
	return fmt.Sprintf("expires %s %s", exp.Local().Format("2006-01-02 15:04"), ui.Muted.Render("(in "+exp.Sub(now).Round(time.Minute).String()+")"))
}
