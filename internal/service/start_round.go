package service

import (
	"errors"
	"strconv"
	"time"

	"github.com/Chloelee05/ElevateTM/internal/game"
)

var ErrRoundAlreadyStarted = errors.New("the current round has already started")

// StartRound moves a waiting contest into the bidding phase and arms the
// confirm deadline that bounds the whole bid/action/confirm window. The
// sweeper auto-confirms once the deadline passes.
func StartRound(repo ContestRepo, contestID uint, rules game.Rules) (*game.Contest, error) {
	g, err := repo.GetContestByID(contestID)
	if err != nil || g == nil {
		return nil, ErrContestNotFound
	}
	if g.Status != game.StatusInProgress {
		return nil, ErrContestNotRunning
	}
	if g.Phase != game.PhaseWaiting {
		return nil, ErrRoundAlreadyStarted
	}

	g.Phase = game.PhaseBidding
	g.ConfirmDeadline = time.Now().Add(rules.ConfirmTimeout())
	g.Message = "Round " + strconv.Itoa(g.RoundNumber) + ": place your bid"

	if err := repo.UpdateContest(g); err != nil {
		return nil, err
	}
	return g, nil
}
