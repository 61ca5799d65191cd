package cli

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

const defaultAddr = ":8173"

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local backend over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Backend == nil {
				return errors.New("no local backend: serve requires a local database, not a remote URL")
			}
			if addr == "" {
				addr = app.Addr
			}
			if addr == "" {
				addr = defaultAddr
			}
			fmt.Printf("Listening on %s\n", addr)
			return http.ListenAndServe(addr, app.Backend)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default "+defaultAddr+")")

	return cmd
}
