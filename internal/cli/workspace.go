package cli

import (
	"os"
	"path/filepath"
	"sort"

	"tablero-cli/internal/store"

	"github.com/spf13/cobra"
)

func newWorkspaceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage named workspaces under ~/.tablero/workspaces",
	}
	cmd.AddCommand(newWorkspaceListCmd(app))
	cmd.AddCommand(newWorkspaceUseCmd(app))
	return cmd
}

func newWorkspaceListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			base, err := store.ConfigDir()
			if err != nil {
				return writeErr(cmd, err)
			}
			names := []string{}
			entries, err := os.ReadDir(filepath.Join(base, "workspaces"))
			if err == nil {
				for _, e := range entries {
					if e.IsDir() {
						names = append(names, e.Name())
					}
				}
			}
			sort.Strings(names)
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"currentWorkspace": cfg.CurrentWorkspace,
					"workspaces":       names,
				},
			})
		},
	}
	return cmd
}

func newWorkspaceUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <name>",
		Short: "Set the current workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := store.NormalizeWorkspaceName(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.CurrentWorkspace = name
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"currentWorkspace": name},
			})
		},
	}
	return cmd
}
