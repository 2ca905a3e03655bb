package mutate

import (
	"tablero-cli/internal/model"
	"tablero-cli/internal/perm"
	"tablero-cli/internal/store"
)

type MoneyResult struct {
	Task         *model.Task
	Changed      bool
	EventPayload map[string]any
}

// SetActualCost records what has been spent on a task so far. Money fields
// are privileged-role only; being the assignee is not enough.
func SetActualCost(db *store.DB, policy perm.Policy, actorID, taskID string, amount float64) (MoneyResult, error) {
	return setMoney(db, policy, actorID, taskID, amount, "actualCost")
}

// SetBudget sets the planned spend for a task. Same role gate as SetActualCost.
func SetBudget(db *store.DB, policy perm.Policy, actorID, taskID string, amount float64) (MoneyResult, error) {
	return setMoney(db, policy, actorID, taskID, amount, "budget")
}

func setMoney(db *store.DB, policy perm.Policy, actorID, taskID string, amount float64, field string) (MoneyResult, error) {
	if db == nil {
		return MoneyResult{}, nil
	}
	if amount < 0 {
		return MoneyResult{}, ErrNegativeAmount
	}

	actor, t, err := resolve(db, actorID, taskID)
	if err != nil {
		return MoneyResult{}, err
	}
	if !t.Active {
		return MoneyResult{}, ErrTaskInactive
	}
	if !perm.CanEditBudget(actor, policy) {
		return MoneyResult{}, UnauthorizedError{ActorID: actor.ID, TaskID: t.ID}
	}

	target := &t.ActualCost
	if field == "budget" {
		target = &t.Budget
	}
	if *target != nil && **target == amount {
		return MoneyResult{Task: t, Changed: false}, nil
	}

	var prev any
	if *target != nil {
		prev = **target
	}
	*target = &amount
	touch(t)
	return MoneyResult{
		Task:    t,
		Changed: true,
		EventPayload: map[string]any{
			"field": field,
			"from":  prev,
			"to":    amount,
		},
	}, nil
}
