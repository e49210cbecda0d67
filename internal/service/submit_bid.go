package service

import (
	"errors"

	"github.com/Chloelee05/ElevateTM/internal/game"
)

var (
	ErrContestantNotFound = errors.New("contestant not in contest")
	ErrOpponentManaged    = errors.New("the machine contestant is managed by the server")
	ErrBidsLocked         = errors.New("bids are locked; start the round first")
	ErrAlreadySubmitted   = errors.New("already submitted for this round")
	ErrInvalidAmount      = errors.New("bid must be between 0 and the current balance")
)

// SubmitBid stores the human's sealed bid for the current round and advances
// the contest into the action phase. The machine's bid is produced by the
// decision provider during processing, never through this path.
func SubmitBid(repo ContestRepo, contestID uint, contestantUUID string, amount int) (*game.Contest, error) {
	g, err := repo.GetContestByID(contestID)
	if err != nil || g == nil {
		return nil, ErrContestNotFound
	}
	if g.Status != game.StatusInProgress {
		return nil, ErrContestNotRunning
	}
	if g.Phase != game.PhaseBidding && g.Phase != game.PhaseActions {
		return nil, ErrBidsLocked
	}

	c := g.ByUUID(contestantUUID)
	if c == nil {
		return nil, ErrContestantNotFound
	}
	if c.Kind == game.KindMachine {
		return nil, ErrOpponentManaged
	}
	if c.HasBid {
		return nil, ErrAlreadySubmitted
	}
	if amount < 0 || amount > c.Balance {
		return nil, ErrInvalidAmount
	}

	c.HasBid = true
	c.PendingBid = amount
	g.Phase = game.PhaseActions
	g.Message = "Bid sealed. Choose an action or confirm to resolve the round."

	if err := repo.UpdateContest(g); err != nil {
		return nil, err
	}
	return g, nil
}
