package cli

import (
	"context"
	"fmt"
	"strings"

	"dayboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDailyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Manage the daily checklist",
	}

	cmd.AddCommand(
		newDailyListCmd(app),
		newDailyAddCmd(app),
		newDailyToggleCmd(app),
	)

	return cmd
}

func newDailyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the daily checklist",
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := app.Queries.Dailies(context.Background())
			if err != nil {
				return err
			}
			if len(items) == 0 {
				fmt.Println("No checklist items.")
				return nil
			}
			fmt.Printf("%s\n%s", formatter.Header("Daily Checklist"), formatter.FormatChecklist(items))
			return nil
		},
	}
}

func newDailyAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a checklist item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Mutations.AddDaily(context.Background(), strings.Join(args, " "))
		},
	}
}

func newDailyToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle TEXT...",
		Short: "Toggle a checklist item",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Mutations.ToggleDaily(context.Background(), strings.Join(args, " "))
		},
	}
}
