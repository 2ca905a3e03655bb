package cli

import (
	"fmt"
	"strconv"

	"tablero-cli/internal/mutate"
	"tablero-cli/internal/perm"
	"tablero-cli/internal/store"

	"github.com/spf13/cobra"
)

type moneyOp func(db *store.DB, policy perm.Policy, actorID, taskID string, amount float64) (mutate.MoneyResult, error)

func moneyRunE(app *App, eventType string, op moneyOp) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, s, err := loadDB(app)
		if err != nil {
			return writeErr(cmd, err)
		}
		actorID, err := currentProfileID(app, db)
		if err != nil {
			return writeErr(cmd, err)
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return writeErr(cmd, fmt.Errorf("invalid amount %q", args[1]))
		}
		res, err := op(db, policy(), actorID, args[0], amount)
		if err != nil {
			return writeErr(cmd, err)
		}
		if err := saveAndLog(s, db, res.Changed, actorID, eventType, args[0], res.EventPayload); err != nil {
			return writeErr(cmd, err)
		}
		return mutationOut(cmd, app, res.Task, res.Changed)
	}
}

func activeRunE(app *App, eventType string, active bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		db, s, err := loadDB(app)
		if err != nil {
			return writeErr(cmd, err)
		}
		actorID, err := currentProfileID(app, db)
		if err != nil {
			return writeErr(cmd, err)
		}
		res, err := mutate.SetTaskActive(db, policy(), actorID, args[0], active)
		if err != nil {
			return writeErr(cmd, err)
		}
		if err := saveAndLog(s, db, res.Changed, actorID, eventType, args[0], res.EventPayload); err != nil {
			return writeErr(cmd, err)
		}
		return mutationOut(cmd, app, res.Task, res.Changed)
	}
}
