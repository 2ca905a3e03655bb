package cli

import (
	"strings"
	"time"

	"tablero-cli/internal/model"

	"github.com/spf13/cobra"
)

func newIdentityCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Manage local Tablero identities (profiles)",
	}

	cmd.AddCommand(newIdentityCreateCmd(app))
	cmd.AddCommand(newIdentityUseCmd(app))
	cmd.AddCommand(newIdentityListCmd(app))
	cmd.AddCommand(newIdentityWhoamiCmd(app))

	return cmd
}

func newIdentityCreateCmd(app *App) *cobra.Command {
	var name string
	var role string
	var avatar string
	var use bool

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new identity (profile)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			r := model.Role(strings.ToLower(strings.TrimSpace(role)))
			if !model.IsValidRole(r) {
				return writeErr(cmd, errInvalidRole(role))
			}

			p := model.Profile{
				ID:          s.NextID(db, "prof"),
				DisplayName: strings.TrimSpace(name),
				Role:        r,
				Avatar:      strings.TrimSpace(avatar),
				CreatedAt:   time.Now().UTC(),
			}
			db.Profiles = append(db.Profiles, p)
			if use {
				db.CurrentProfileID = p.ID
				app.ActorID = p.ID
			}
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(p.ID, "identity.create", p.ID, map[string]any{"name": p.DisplayName, "role": string(p.Role), "use": use})
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&role, "role", "member", "Role (admin|manager|member|director)")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar URL or initials")
	cmd.Flags().BoolVar(&use, "use", false, "Set as current profile")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newIdentityUseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "use <profile-id>",
		Short: "Set the current profile for this workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id := args[0]
			if _, ok := db.FindProfile(id); !ok {
				return writeErr(cmd, errNotFound("profile", id))
			}
			db.CurrentProfileID = id
			app.ActorID = id
			if err := s.Save(db); err != nil {
				return writeErr(cmd, err)
			}
			_ = s.AppendEvent(id, "identity.use", id, map[string]any{"profileId": id})
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"currentProfileId": id}})
		},
	}
	return cmd
}

func newIdentityListCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List identities (profiles)",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"currentProfileId": db.CurrentProfileID,
					"profiles":         db.Profiles,
				},
			})
		},
	}
	return cmd
}

func newIdentityWhoamiCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, _, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := currentProfileID(app, db)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, ok := db.FindProfile(id)
			if !ok {
				return writeErr(cmd, errNotFound("profile", id))
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}
	return cmd
}
