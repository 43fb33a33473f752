package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/deepak75500/welledapp-freelance/internal/ui"
)

const Version = "0.1.0"

var (
	flagAPI string
	flagDB  string
)

var rootCmd = &cobra.Command{
	Use:           "welled",
	Short:         "Welled: daily wellness tasks for teachers",
	Long:          "Welled tracks a teacher's daily wellness tasks, confirms completed days and keeps streaks. Admins get a leaderboard of every teacher.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "backend base URL (overrides WELLED_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "local database path (overrides WELLED_DB_PATH)")

	rootCmd.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newTasksCmd(),
		newDoneCmd(),
		newCompleteCmd(),
		newHistoryCmd(),
		newTeachersCmd(),
		newAppCmd(),
		newDevserverCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
