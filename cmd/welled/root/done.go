package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepak75500/welledapp-freelance/internal/api"
	"github.com/deepak75500/welledapp-freelance/internal/daily"
)

// resolveTask matches ref against a task id, a 1-based position or a
// category name.
func resolveTask(tasks []api.Task, ref string) (api.Task, error) {
	ref = strings.TrimSpace(ref)
	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(tasks) {
		return tasks[n-1], nil
	}
	cat := api.ParseCategory(ref)
	for _, t := range tasks {
		if t.Category == cat {
			return t, nil
		}
	}
	return api.Task{}, fmt.Errorf("no task matches %q", ref)
}

func newDoneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "done <task>",
		Short: "Complete a task by id, list position or category",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("task is required")
			}
			return nil
		},
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

			t, err := resolveTask(ctrl.Snapshot().Tasks, args[0])
			if err != nil {
				return err
			}
			if err := ctrl.Toggle(ctx, t.ID); err != nil {
				if errors.Is(err, daily.ErrTaskCompleted) {
					return fmt.Errorf("%s is already done", t.Category)
				}
				return errors.New(daily.MsgToggleFailed)
			}

			snap := ctrl.Snapshot()
			printBanner(cmd.OutOrStdout(), snap.Banner)
			printSnapshot(cmd.OutOrStdout(), snap)
			return nil
		},
	}

	return cmd
}
