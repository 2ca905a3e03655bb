package cli

import (
	"strings"
	"time"

	"tablero-cli/internal/model"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Project commands",
	}
	cmd.AddCommand(newProjectsCreateCmd(app))
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsArchiveCmd(app))
	return cmd
}

func newProjectsCreateCmd(app *App) *cobra.Command {
	var name string
	var client string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			actorID, err := currentProfileID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := db.FindProfile(actorID); !ok {
				return writeErr(cmd, errNotFound("profile", actorID))
			}

			p := model.Project{
				ID:        s.NextID(db, "proj"),
				Name:      strings.TrimSpace(name),
				Client:    strings.TrimSpace(client),
				CreatedBy: actorID,
				CreatedAt: time.Now().UTC(),
			}
			db.Projects = append(db.Projects, p)
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(actorID, "project.create", p.ID, map[string]any{"name": p.Name, "client": p.Client})
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	var includeArchived bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			projects := db.Projects
			if !includeArchived {
				projects = nil
				for _, p := range db.Projects {
					if !p.Archived {
						projects = append(projects, p)
					}
				}
			}
			return writeOut(cmd, app, map[string]any{"data": projects})
		},
	}
	cmd.Flags().BoolVar(&includeArchived, "all", false, "Include archived projects")
	return cmd
}

func newProjectsArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive <project-id>",
		Short: "Archive a project (tasks stay but drop out of listings)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			actorID, err := currentProfileID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, ok := db.FindProject(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("project", args[0]))
			}
			if !p.Archived {
				p.Archived = true
				if err := s.Save(db); err != nil {
					return writeErr(cmd, err)
				}
				_ = s.AppendEvent(actorID, "project.archive", p.ID, map[string]any{"archived": true})
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
	return cmd
}
