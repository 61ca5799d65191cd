package cli

import (
	"context"
	"fmt"

	"dayboard/internal/cli/formatter"
	"dayboard/internal/daykey"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskAddCmd(app),
		newTaskToggleCmd(app),
	)

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Queries.Tasks(context.Background())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks found.")
				return nil
			}
			fmt.Printf("%s\n", formatter.FormatTaskList(tasks))
			return nil
		},
	}
}

func newTaskAddCmd(app *App) *cobra.Command {
	var title, description, due string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				if due == "" {
					due = daykey.Today().Key()
				}
				if err := taskForm(&title, &description, &due).Run(); err != nil {
					return err
				}
			}
			if due == "" {
				due = daykey.Today().Key()
			}
			dueDate, err := daykey.ParseKey(due)
			if err != nil {
				return fmt.Errorf("invalid due date %q: use YYYY-MM-DD", due)
			}

			return app.Mutations.AddTask(context.Background(), title, description, dueDate.Instant())
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&description, "desc", "", "Task description")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD, default today)")

	return cmd
}

func newTaskToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle TITLE",
		Short: "Toggle a task between open and done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Mutations.ToggleTaskStatus(context.Background(), args[0])
		},
	}
}
