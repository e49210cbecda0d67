package opponent

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/Chloelee05/ElevateTM/internal/game"
)

// aggression maps a personality to the share of spendable balance the
// heuristic is willing to burn on one bid.
var aggression = map[string]int{
	"cautious":   20,
	"balanced":   35,
	"aggressive": 50,
	"ruthless":   65,
}

// HeuristicProvider is the offline fallback strategy. It never errors: it
// reserves the next maintenance fee, bids a personality-sized share of what
// remains, and occasionally buys a cheap catalog action. Decisions are
// deterministic for a given snapshot.
type HeuristicProvider struct{}

func NewHeuristicProvider() *HeuristicProvider { return &HeuristicProvider{} }

func (p *HeuristicProvider) Decide(ctx context.Context, snap game.DecisionSnapshot) (game.Decision, error) {
	rng := rand.New(rand.NewSource(int64(snap.Round)*1_000_003 + int64(snap.OwnBalance)))
	reasons := []string{"heuristic strategy engaged"}

	share, ok := aggression[snap.Personality]
	if !ok {
		share = aggression["balanced"]
	}

	// Keep the next round's fee in reserve so maintenance never bankrupts us.
	reserve := snap.MaintenanceOutlook["next_round"]
	spendable := snap.OwnBalance - reserve
	if spendable < 0 {
		spendable = 0
	}
	if reserve > 0 {
		reasons = append(reasons, fmt.Sprintf("reserving %d for the next maintenance fee", reserve))
	}

	// When the opponent is one well-modified pool away from the target, spend
	// everything: losing the round loses the contest anyway.
	doomed := snap.TargetScore > 0 && snap.TargetScore-snap.OpponentScore <= maxRoundSwing
	if doomed {
		spendable = snap.OwnBalance
		share = 100
		reasons = append(reasons, "opponent is about to win; bidding without reserve")
	}

	bid := spendable * share / 100
	if bid > 0 && !doomed {
		// Small jitter so the bid is not trivially predictable round to round.
		bid += rng.Intn(3) - 1
		if bid < 0 {
			bid = 0
		}
	}
	if bid > snap.OwnBalance {
		bid = snap.OwnBalance
	}
	reasons = append(reasons, fmt.Sprintf("bidding %d of %d spendable", bid, spendable))

	action := p.pickAction(rng, snap, snap.OwnBalance-bid, share, &reasons)
	return game.Decision{Bid: bid, Action: action, Reasons: reasons}, nil
}

// pickAction chooses a cheap affordable catalog action with a probability
// scaled by aggression. Remaining is the balance left after the bid.
func (p *HeuristicProvider) pickAction(rng *rand.Rand, snap game.DecisionSnapshot, remaining, share int, reasons *[]string) game.ActionType {
	if len(snap.AvailableActions) == 0 || remaining <= 0 {
		return game.ActionNone
	}
	if rng.Intn(100) >= share {
		*reasons = append(*reasons, "holding the action this round")
		return game.ActionNone
	}

	affordable := make([]game.ActionSpec, 0, len(snap.AvailableActions))
	for _, spec := range snap.AvailableActions {
		// Never spend more than a third of the remaining balance on an action.
		if spec.Cost <= remaining/3 {
			affordable = append(affordable, spec)
		}
	}
	if len(affordable) == 0 {
		return game.ActionNone
	}
	sort.Slice(affordable, func(i, j int) bool { return affordable[i].Cost < affordable[j].Cost })

	chosen := affordable[rng.Intn(len(affordable))]
	*reasons = append(*reasons, fmt.Sprintf("playing %s for %d", chosen.Name, chosen.Cost))
	return chosen.Key
}

// maxRoundSwing is the largest single-round score swing the default catalog
// allows: a ranged pool of 5 plus a win bonus of 2.
const maxRoundSwing = 7
