package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"tablero-cli/internal/format"
	"tablero-cli/internal/model"
	"tablero-cli/internal/perm"
	"tablero-cli/internal/store"
	"tablero-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	ActorID    string
	Today      string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "tablero",
		Short:        "Tablero (local-first) project board CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive board
  tablero

  # Scriptable commands
  tablero tasks list
  tablero stats --pretty

  # Fix "today" for reproducible progress output
  tablero tasks show task-abc --today 2026-09-01
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("TABLERO_DIR", ""), "Path to store dir (advanced: overrides workspace resolution; use for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("TABLERO_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().StringVar(&app.ActorID, "actor", envOr("TABLERO_ACTOR", ""), "Profile id acting on this command (overrides currentProfileId)")
	cmd.PersistentFlags().StringVar(&app.Today, "today", envOr("TABLERO_TODAY", ""), "Override today's date (YYYY-MM-DD) for progress/stats/timeline")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("TABLERO_FORMAT", "json"), "Output format (json|csv)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))
	cmd.AddCommand(newIdentityCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newTimelineCmd(app))
	cmd.AddCommand(newEventsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	db, s, err := loadDB(app)
	if err != nil {
		return err
	}
	today, err := appToday(app)
	if err != nil {
		return err
	}
	return tui.Run(tui.Options{
		Store:   s,
		DB:      db,
		ActorID: app.ActorID,
		Today:   today,
	})
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		// Resolution order:
		// 1. --workspace
		// 2. project-local .tablero discovered upward from the cwd
		// 3. ~/.tablero/config.json currentWorkspace
		// 4. default workspace ("default")
		switch {
		case app.Workspace != "":
			d, err := store.WorkspaceDir(app.Workspace)
			if err != nil {
				return nil, store.Store{}, err
			}
			dir = d
		default:
			if cwd, err := os.Getwd(); err == nil {
				if found, ok := store.DiscoverDir(cwd); ok {
					dir = found
				}
			}
			if dir == "" {
				name := "default"
				if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
					name = cfg.CurrentWorkspace
				}
				d, err := store.WorkspaceDir(name)
				if err != nil {
					return nil, store.Store{}, err
				}
				app.Workspace = name
				dir = d
			}
		}
		app.Dir = dir
	}

	s := store.Store{Dir: dir}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

func currentProfileID(app *App, db *store.DB) (string, error) {
	if app.ActorID != "" {
		return app.ActorID, nil
	}
	if db.CurrentProfileID != "" {
		return db.CurrentProfileID, nil
	}
	return "", errors.New("no current profile; run `tablero identity create ... --use` or `tablero identity use <profile-id>` (or pass --actor)")
}

// appToday resolves the clock: --today when given, else the wall clock.
func appToday(app *App) (model.Date, error) {
	if strings.TrimSpace(app.Today) == "" {
		return model.Today(), nil
	}
	d, err := model.ParseDate(app.Today)
	if err != nil {
		return model.Date{}, fmt.Errorf("--today: %w", err)
	}
	return d, nil
}

func policy() perm.Policy {
	return perm.DefaultPolicy()
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
