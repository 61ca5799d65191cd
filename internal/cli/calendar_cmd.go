package cli

import (
	"context"
	"fmt"

	"dayboard/internal/cli/formatter"
	"dayboard/internal/daykey"
	"github.com/spf13/cobra"
)

func newCalendarCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show the month calendar with day markers",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, month, err := monthFromArgs(args)
			if err != nil {
				return err
			}
			days, err := app.Index.Month(context.Background(), year, month)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatMonth(year, month, days))
			return nil
		},
	}
}

func newDayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "day [DATE]",
		Short: "Show the full board for a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateFromArgs(args)
			if err != nil {
				return err
			}
			data, err := loadDayData(context.Background(), app, date)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.FormatDay(data))
			return nil
		},
	}
}

// loadDayData gathers everything shown for one day. Checklist items are
// global rather than day-scoped, so they appear on every day's board.
func loadDayData(ctx context.Context, app *App, date daykey.Date) (formatter.DayData, error) {
	data := formatter.DayData{Date: date}

	tasksDue, err := app.Index.TasksDue(ctx, date)
	if err != nil {
		return data, err
	}
	checklist, err := app.Queries.Dailies(ctx)
	if err != nil {
		return data, err
	}
	rating, err := app.Queries.Rating(ctx, date)
	if err != nil {
		return data, err
	}
	reflection, err := app.Queries.Reflection(ctx, date)
	if err != nil {
		return data, err
	}

	data.TasksDue = tasksDue
	data.Checklist = checklist
	data.Rating = rating
	data.Reflection = reflection
	return data, nil
}
