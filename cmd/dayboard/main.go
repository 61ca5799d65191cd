package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"dayboard/internal/backend"
	"dayboard/internal/cli"
	"dayboard/internal/dateindex"
	"dayboard/internal/mutation"
	"dayboard/internal/queries"
	"dayboard/internal/querycache"
	"dayboard/internal/remote"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	logging := os.Getenv("DAYBOARD_LOG") != ""

	// Backend: a remote server when DAYBOARD_REMOTE is set, otherwise the
	// local SQLite store.
	var client remote.Client
	var handler http.Handler

	if base := os.Getenv("DAYBOARD_REMOTE"); base != "" {
		client = remote.NewHTTPClient(remote.HTTPConfig{BaseURL: base})
	} else {
		dbPath := os.Getenv("DAYBOARD_DB")
		if dbPath == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}
			dbPath = filepath.Join(home, ".dayboard", "dayboard.db")
		}

		database, err := backend.OpenDB(dbPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		store := backend.NewStore(database)
		client = store

		var srvLogger *slog.Logger
		if logging {
			srvLogger = slog.New(slog.NewTextHandler(os.Stderr, nil))
		}
		handler = backend.NewServer(store, srvLogger)
	}

	// The local single-user setup is always logged in; the session exists so
	// the gate behaves the same here as against a shared server.
	principal := os.Getenv("DAYBOARD_USER")
	if principal == "" {
		principal = "local"
	}
	session := remote.NewSession()
	session.Login(principal)
	gated := remote.Gated(client, session)

	cache := querycache.NewStore()
	q := queries.New(cache, gated)

	// Toasts only on an interactive terminal; piped output stays clean.
	var notifier mutation.Notifier = mutation.NoopNotifier{}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		notifier = cli.NewToastNotifier(os.Stdout, os.Stderr)
	}

	var observer mutation.Observer = mutation.NoopObserver{}
	if logging {
		observer = mutation.NewLogObserver(os.Stderr)
	}

	coord := mutation.NewCoordinator(cache, gated, notifier, observer)
	saver := mutation.NewReflectionSaver(coord.SaveReflection, mutation.DefaultSaveDelay)
	defer saver.Close()

	app := &cli.App{
		Queries:   q,
		Mutations: coord,
		Index:     dateindex.New(q),
		Session:   session,
		Saver:     saver,
		Backend:   handler,
		Addr:      os.Getenv("DAYBOARD_ADDR"),
	}

	return cli.NewRootCmd(app).Execute()
}
