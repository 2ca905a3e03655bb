package cli

import (
	"github.com/spf13/cobra"
)

func newEventsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Event log commands",
	}
	cmd.AddCommand(newEventsListCmd(app))
	return cmd
}

func newEventsListCmd(app *App) *cobra.Command {
	var entity string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded mutation events, oldest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := loadDB(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			events, err := s.ReadEvents()
			if err != nil {
				return writeErr(cmd, err)
			}
			if entity != "" {
				filtered := events[:0]
				for _, ev := range events {
					if ev.EntityID == entity {
						filtered = append(filtered, ev)
					}
				}
				events = filtered
			}
			if limit > 0 && len(events) > limit {
				events = events[len(events)-limit:]
			}
			return writeOut(cmd, app, map[string]any{"data": events})
		},
	}

	cmd.Flags().StringVar(&entity, "entity", "", "Filter by entity id (task, project or profile)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Keep only the most recent N events")
	return cmd
}
