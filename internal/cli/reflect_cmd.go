package cli

import (
	"context"
	"fmt"

	"dayboard/internal/cli/formatter"
	"dayboard/internal/domain"
	"github.com/spf13/cobra"
)

func newReflectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reflect",
		Short: "Show or edit the daily reflection",
	}

	cmd.AddCommand(
		newReflectShowCmd(app),
		newReflectEditCmd(app),
	)

	return cmd
}

func newReflectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [DATE]",
		Short: "Show the reflection for a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateFromArgs(args)
			if err != nil {
				return err
			}
			reflection, err := app.Queries.Reflection(context.Background(), date)
			if err != nil {
				return err
			}
			fmt.Printf("%s\n", formatter.Header(formatter.HumanDate(date)))
			if r, ok := reflection.Get(); ok && r.Content != "" {
				fmt.Println(r.Content)
			} else {
				fmt.Println(formatter.Dim("No reflection yet."))
			}
			return nil
		},
	}
}

func newReflectEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit [DATE]",
		Short: "Edit the reflection for a day (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			date, err := dateFromArgs(args)
			if err != nil {
				return err
			}

			current, err := app.Queries.Reflection(ctx, date)
			if err != nil {
				return err
			}
			content := current.OrZero().Content

			if err := reflectionForm(&content).Run(); err != nil {
				return err
			}

			return app.Mutations.SaveReflection(ctx, date, content)
		},
	}
}

func newJournalCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "journal",
		Short: "List all reflections",
		RunE: func(cmd *cobra.Command, args []string) error {
			reflections, err := app.Queries.AllReflections(context.Background())
			if err != nil {
				return err
			}
			if len(reflections) == 0 {
				fmt.Println("No reflections yet.")
				return nil
			}
			// Newest first for reading back through the journal. Copy so
			// the cached slice keeps its order.
			newest := make([]domain.Reflection, len(reflections))
			for i, r := range reflections {
				newest[len(reflections)-1-i] = r
			}
			fmt.Printf("%s\n", formatter.FormatJournal(newest))
			return nil
		},
	}
}
