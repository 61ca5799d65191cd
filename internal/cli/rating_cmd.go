package cli

import (
	"context"
	"fmt"
	"strconv"

	"dayboard/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newRatingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rating",
		Short: "Show or set the daily performance rating",
	}

	cmd.AddCommand(
		newRatingShowCmd(app),
		newRatingSetCmd(app),
	)

	return cmd
}

func newRatingShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [DATE]",
		Short: "Show the rating for a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateFromArgs(args)
			if err != nil {
				return err
			}
			rating, err := app.Queries.Rating(context.Background(), date)
			if err != nil {
				return err
			}
			if r, ok := rating.Get(); ok {
				fmt.Printf("%s  %s\n", formatter.HumanDate(date), formatter.ScoreBadge(r.Score))
			} else {
				fmt.Printf("%s  %s\n", formatter.HumanDate(date), formatter.Dim("not rated"))
			}
			return nil
		},
	}
}

func newRatingSetCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "set [SCORE]",
		Short: "Rate a day from 1 to 10 (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateFromArgs([]string{dateFlag})
			if err != nil {
				return err
			}

			var scoreStr string
			if len(args) == 1 {
				scoreStr = args[0]
			} else if err := scoreForm(&scoreStr).Run(); err != nil {
				return err
			}
			score, err := strconv.Atoi(scoreStr)
			if err != nil {
				return fmt.Errorf("invalid score %q: enter a number", scoreStr)
			}

			return app.Mutations.SetPerformanceRating(context.Background(), date, score)
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to rate (YYYY-MM-DD, default today)")

	return cmd
}
