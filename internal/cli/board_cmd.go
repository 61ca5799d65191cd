package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board [DATE]",
		Short: "Interactive day board (default today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := dateFromArgs(args)
			if err != nil {
				return err
			}
			p := tea.NewProgram(newBoardModel(app, date), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return err
			}
			// Make sure a trailing reflection edit lands before exit.
			app.Saver.Flush()
			return nil
		},
	}
}
