package service

import (
	"context"
	"errors"
	"sync"

	"github.com/Chloelee05/ElevateTM/internal/engine"
	"github.com/Chloelee05/ElevateTM/internal/game"
)

var (
	ErrBidRequired    = errors.New("a bid is required before confirming")
	ErrNothingPending = errors.New("no round is awaiting confirmation")
)

// contestLocks serializes processing per contest so a confirm call and the
// sweeper can never resolve the same round twice.
var contestLocks sync.Map // contest ID -> *sync.Mutex

func lockContest(id uint) *sync.Mutex {
	mu, _ := contestLocks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ConfirmRound is the external signal that closes the human's turn and runs
// the processing phase. A missing action submission counts as a skip; a
// missing bid is an error (the sweeper auto-bids zero instead).
func ConfirmRound(ctx context.Context, repo ContestRepo, contestID uint, rules game.Rules, catalog game.Catalog, provider engine.DecisionProvider) (*game.Contest, *game.RoundResult, error) {
	mu := lockContest(contestID)
	mu.Lock()
	defer mu.Unlock()

	g, err := repo.GetContestByID(contestID)
	if err != nil || g == nil {
		return nil, nil, ErrContestNotFound
	}
	if g.Status != game.StatusInProgress {
		return nil, nil, ErrContestNotRunning
	}
	if g.Phase != game.PhaseBidding && g.Phase != game.PhaseActions {
		return nil, nil, ErrNothingPending
	}

	human := g.Human()
	if human == nil || !human.HasBid {
		return nil, nil, ErrBidRequired
	}
	if !human.HasAction {
		human.HasAction = true
		human.PendingAction = game.ActionNone
	}

	res := engine.ResolveRound(ctx, g, rules, catalog, provider)
	if err := repo.UpdateContest(g); err != nil {
		return nil, nil, err
	}
	return g, res, nil
}
