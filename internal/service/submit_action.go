package service

import (
	"errors"

	"github.com/Chloelee05/ElevateTM/internal/game"
)

var (
	ErrActionsLocked     = errors.New("actions are locked; start the round first")
	ErrUnknownActionType = errors.New("unknown action type")
	ErrInsufficientFunds = errors.New("insufficient balance for this action")
)

// SubmitAction stores the human's optional catalog action for the current
// round. The action may precede or follow the bid, so it is accepted during
// both the bidding and action phases; only the confirm gate requires a bid.
// Passing game.ActionNone records an explicit skip. Affordability is
// re-checked at resolve time because the maintenance levy lands in between.
func SubmitAction(repo ContestRepo, contestID uint, contestantUUID string, action game.ActionType, catalog game.Catalog) (*game.Contest, error) {
	g, err := repo.GetContestByID(contestID)
	if err != nil || g == nil {
		return nil, ErrContestNotFound
	}
	if g.Status != game.StatusInProgress {
		return nil, ErrContestNotRunning
	}
	if g.Phase != game.PhaseBidding && g.Phase != game.PhaseActions {
		return nil, ErrActionsLocked
	}

	c := g.ByUUID(contestantUUID)
	if c == nil {
		return nil, ErrContestantNotFound
	}
	if c.Kind == game.KindMachine {
		return nil, ErrOpponentManaged
	}
	if c.HasAction {
		return nil, ErrAlreadySubmitted
	}

	if action != game.ActionNone {
		spec, ok := catalog[action]
		if !ok {
			return nil, ErrUnknownActionType
		}
		if spec.Cost > c.Balance {
			return nil, ErrInsufficientFunds
		}
	}

	c.HasAction = true
	c.PendingAction = action
	if action == game.ActionNone {
		g.Message = "Action skipped. Confirm to resolve the round."
	} else {
		g.Message = "Action sealed. Confirm to resolve the round."
	}

	if err := repo.UpdateContest(g); err != nil {
		return nil, err
	}
	return g, nil
}
