package cli

import (
	"context"
	"fmt"

	"dayboard/internal/cli/formatter"
	"dayboard/internal/daykey"
	"github.com/spf13/cobra"
)

func newGoalCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
	}

	cmd.AddCommand(
		newGoalListCmd(app),
		newGoalAddCmd(app),
		newGoalDoneCmd(app),
		newGoalReopenCmd(app),
	)

	return cmd
}

func newGoalListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List goals by target date",
		RunE: func(cmd *cobra.Command, args []string) error {
			goals, err := app.Queries.Goals(context.Background())
			if err != nil {
				return err
			}
			if len(goals) == 0 {
				fmt.Println("No goals found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatGoalList(goals))
			return nil
		},
	}
}

func newGoalAddCmd(app *App) *cobra.Command {
	var text, target string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				if err := goalForm(&text, &target).Run(); err != nil {
					return err
				}
			}
			targetDate, err := daykey.ParseKey(target)
			if err != nil {
				return fmt.Errorf("invalid target date %q: use YYYY-MM-DD", target)
			}

			return app.Mutations.AddGoal(context.Background(), text, targetDate.Instant())
		},
	}

	cmd.Flags().StringVar(&text, "text", "", "Goal text")
	cmd.Flags().StringVar(&target, "target", "", "Target date (YYYY-MM-DD)")

	return cmd
}

func newGoalDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done TEXT",
		Short: "Mark a goal as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Mutations.ToggleGoal(context.Background(), args[0], true)
		},
	}
}

func newGoalReopenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reopen TEXT",
		Short: "Reopen a completed goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Mutations.ToggleGoal(context.Background(), args[0], false)
		},
	}
}
