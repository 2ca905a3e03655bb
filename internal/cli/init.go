package cli

import (
	"path/filepath"

	"tablero-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage (workspace-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if db.Version == 0 {
				db.Version = 1
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}

			// First init sets the current workspace when none is chosen yet.
			if app.Workspace != "" {
				cfg, err := store.LoadConfig()
				if err == nil && cfg.CurrentWorkspace == "" {
					cfg.CurrentWorkspace = app.Workspace
					_ = store.SaveConfig(cfg)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":        app.Dir,
					"workspace":  app.Workspace,
					"sqlitePath": filepath.Join(app.Dir, "tablero.sqlite"),
				},
			})
		},
	}
	return cmd
}
