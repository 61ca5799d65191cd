package cli

import (
	"net/http"

	"dayboard/internal/dateindex"
	"dayboard/internal/mutation"
	"dayboard/internal/queries"
	"dayboard/internal/remote"
	"github.com/spf13/cobra"
)

// App holds the wired collaborators used by CLI commands: the cached read
// side, the mutation coordinator, the calendar index, and the session.
type App struct {
	Queries   *queries.Queries
	Mutations *mutation.Coordinator
	Index     *dateindex.Index
	Session   *remote.Session
	Saver     *mutation.ReflectionSaver

	// Backend is the local HTTP handler for the serve command. Nil when the
	// CLI is pointed at a remote server.
	Backend http.Handler
	Addr    string
}

// NewRootCmd creates the top-level "dayboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "dayboard",
		Short: "Daily task, goal, and reflection tracker",
	}

	root.AddCommand(
		newDayCmd(app),
		newTaskCmd(app),
		newDailyCmd(app),
		newGoalCmd(app),
		newRatingCmd(app),
		newReflectCmd(app),
		newJournalCmd(app),
		newCalendarCmd(app),
		newBoardCmd(app),
		newServeCmd(app),
	)

	return root
}
