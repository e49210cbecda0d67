package service

import (
	"context"

	"github.com/Chloelee05/ElevateTM/internal/engine"
	"github.com/Chloelee05/ElevateTM/internal/game"
	"github.com/Chloelee05/ElevateTM/internal/logging"
)

// HandleTimedOutContest applies timeout resolution for one contest whose
// confirm deadline has passed. Behavior:
//   - no bid submitted -> a zero bid is recorded on the human's behalf
//   - then the round is confirmed exactly as if the human had done so
func HandleTimedOutContest(ctx context.Context, repo ContestRepo, gg *game.Contest, rules game.Rules, catalog game.Catalog, provider engine.DecisionProvider) error {
	if gg.Status != game.StatusInProgress {
		return nil
	}
	if gg.Phase != game.PhaseBidding && gg.Phase != game.PhaseActions {
		return nil
	}

	mu := lockContest(gg.ID)
	mu.Lock()

	// Reload under the lock; a racing confirm may have resolved the round.
	g, err := repo.GetContestByID(gg.ID)
	if err != nil || g == nil {
		mu.Unlock()
		return ErrContestNotFound
	}
	if g.Status != game.StatusInProgress || (g.Phase != game.PhaseBidding && g.Phase != game.PhaseActions) {
		mu.Unlock()
		return nil
	}

	human := g.Human()
	if human != nil && !human.HasBid {
		logging.Info("auto-bidding zero for inactive contestant", logging.Fields{"contest_id": g.ID, "round": g.RoundNumber})
		human.HasBid = true
		human.PendingBid = 0
	}
	if err := repo.UpdateContest(g); err != nil {
		mu.Unlock()
		return err
	}
	mu.Unlock()

	_, _, err = ConfirmRound(ctx, repo, g.ID, rules, catalog, provider)
	return err
}
