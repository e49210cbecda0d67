package engine

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Chloelee05/ElevateTM/internal/game"
	"github.com/Chloelee05/ElevateTM/internal/logging"
)

// ResolveRound is the processing phase of the round state machine. It runs
// the full, non-interruptible sequence for the round in flight: maintenance
// (possibly terminal), the opponent decision request, the conflict resolver,
// auction settlement, the win-condition evaluator, and round-end bookkeeping.
// The caller must have validated that a human bid exists.
func ResolveRound(ctx context.Context, g *game.Contest, rules game.Rules, catalog game.Catalog, provider DecisionProvider) *game.RoundResult {
	if len(g.Contestants) != 2 {
		return nil
	}
	g.Phase = game.PhaseProcessing
	rc := newRoundContext(g, rules, catalog)

	human := g.Human()
	machine := g.Machine()
	humanBefore := human.Balance
	machineBefore := machine.Balance

	// Effect state is rebuilt from scratch every round.
	human.ResetEffects()
	machine.ResetEffects()

	// Maintenance comes first; an unpayable levy ends the contest before the
	// opponent decision is even requested.
	if terminal, winner, reason := rc.applyMaintenance(); terminal {
		finishContest(g, winner, reason)
		rc.appendRecord(humanBefore, machineBefore, "")
		human.ClearSubmissions()
		machine.ClearSubmissions()
		g.ConfirmDeadline = time.Time{}
		return rc.buildResult(winnerName(winner))
	}

	// Request the machine decision now that post-maintenance balances are
	// known. Provider failures are recovered with a zero decision; the
	// wrapper in internal/opponent normally substitutes a heuristic first.
	dec := rc.requestDecision(ctx, provider)
	machine.HasBid = true
	machine.PendingBid = dec.Bid
	machine.HasAction = true
	machine.PendingAction = dec.Action

	rc.resolveActions()
	rc.lastResult = rc.settle()
	rc.appendRecord(humanBefore, machineBefore, winnerName(rc.lastResult.winner))

	if ended, winner, reason := evaluateWin(g, rules); ended {
		finishContest(g, winner, reason)
	} else {
		g.RoundNumber++
		g.Phase = game.PhaseWaiting
		g.Message = "Round " + strconv.Itoa(g.RoundNumber) + ": waiting to start"
	}

	human.ClearSubmissions()
	machine.ClearSubmissions()
	g.ConfirmDeadline = time.Time{}

	return rc.buildResult(winnerName(rc.lastResult.winner))
}

// requestDecision builds the round snapshot and asks the provider, bounding
// the call and sanitizing the answer: the bid is clamped to the machine's
// balance and unknown or unaffordable actions are dropped.
func (rc *roundContext) requestDecision(ctx context.Context, provider DecisionProvider) game.Decision {
	machine := rc.g.Machine()
	human := rc.g.Human()

	snap := game.DecisionSnapshot{
		Round:              rc.g.RoundNumber,
		MaintenanceFee:     rc.fee,
		MaintenanceOutlook: rc.maintenanceOutlook(),
		OwnBalance:         machine.Balance,
		OpponentBalance:    human.Balance,
		OwnScore:           machine.Score,
		OpponentScore:      human.Score,
		TargetScore:        rc.rules.TargetScore,
		Personality:        rc.g.Personality,
		RecentRoundHistory: recentHistory(rc.g, 6),
		AvailableActions:   affordableActions(rc.catalog, machine.Balance),
	}

	callCtx, cancel := context.WithTimeout(ctx, rc.rules.DecisionTimeout())
	defer cancel()

	dec, err := provider.Decide(callCtx, snap)
	if err != nil {
		// The provider contract makes failures recoverable; never abort the
		// round because the opponent brain is unreachable.
		logging.Error("decision provider failed; using zero decision", err, logging.Fields{"round": rc.g.RoundNumber})
		dec = game.Decision{Reasons: []string{"provider unavailable: " + err.Error(), "defaulting to a zero bid"}}
	}

	if dec.Bid < 0 {
		dec.Bid = 0
	}
	if dec.Bid > machine.Balance {
		dec.Bid = machine.Balance
	}
	if dec.Action != game.ActionNone {
		spec, known := rc.catalog[dec.Action]
		if !known {
			dec.Reasons = append(dec.Reasons, "requested unknown action '"+string(dec.Action)+"'; dropped")
			dec.Action = game.ActionNone
		} else if spec.Cost > machine.Balance {
			dec.Reasons = append(dec.Reasons, "cannot afford "+spec.Name+"; action dropped")
			dec.Action = game.ActionNone
		}
	}

	rc.reasons = dec.Reasons
	return dec
}

func affordableActions(catalog game.Catalog, balance int) []game.ActionSpec {
	specs := make([]game.ActionSpec, 0, len(catalog))
	for _, spec := range catalog {
		if spec.Cost <= balance {
			specs = append(specs, spec)
		}
	}
	sort.Slice(specs, func(i, j int) bool { return specs[i].Key < specs[j].Key })
	return specs
}

func recentHistory(g *game.Contest, n int) []game.RoundRecord {
	if len(g.Records) <= n {
		return g.Records
	}
	return g.Records[len(g.Records)-n:]
}

func winnerName(c *game.Contestant) string {
	if c == nil {
		return ""
	}
	return c.DisplayName
}

func finishContest(g *game.Contest, winner *game.Contestant, reason string) {
	g.Status = game.StatusFinished
	g.Phase = game.PhaseResolved
	g.Winner = winnerName(winner)
	g.EndReason = reason
	if winner != nil {
		g.Message = "Contest over: " + reason
	} else {
		g.Message = "Contest over in a tie: " + reason
	}
}

func (rc *roundContext) appendRecord(humanBefore, machineBefore int, winner string) {
	human := rc.g.Human()
	machine := rc.g.Machine()
	rec := game.RoundRecord{
		ContestID:            rc.g.ID,
		Round:                rc.g.RoundNumber,
		Fee:                  rc.fee,
		HumanBid:             human.PendingBid,
		MachineBid:           machine.PendingBid,
		HumanAction:          string(human.PendingAction),
		MachineAction:        string(machine.PendingAction),
		Winner:               winner,
		PoolAwarded:          rc.lastResult.poolAwarded,
		HumanBalanceBefore:   humanBefore,
		MachineBalanceBefore: machineBefore,
		HumanBalanceAfter:    human.Balance,
		MachineBalanceAfter:  machine.Balance,
		HumanScoreAfter:      human.Score,
		MachineScoreAfter:    machine.Score,
		Summary:              rc.joinSummary(),
		Reasons:              strings.Join(rc.reasons, "\n"),
	}
	rc.g.Records = append(rc.g.Records, rec)
	rc.g.LastRoundSummary = rec.Summary
}

func (rc *roundContext) buildResult(winner string) *game.RoundResult {
	human := rc.g.Human()
	machine := rc.g.Machine()
	return &game.RoundResult{
		ContestID:   rc.g.ID,
		Round:       roundOfLastRecord(rc.g),
		Fee:         rc.fee,
		Winner:      winner,
		PoolAwarded: rc.lastResult.poolAwarded,
		Effects:     rc.events,
		BalancesAfter: map[string]int{
			human.DisplayName:   human.Balance,
			machine.DisplayName: machine.Balance,
		},
		ScoresAfter: map[string]int{
			human.DisplayName:   human.Score,
			machine.DisplayName: machine.Score,
		},
		Reasons:     rc.reasons,
		ContestOver: rc.g.Status == game.StatusFinished,
		EndReason:   rc.g.EndReason,
	}
}

func roundOfLastRecord(g *game.Contest) int {
	if len(g.Records) == 0 {
		return g.RoundNumber
	}
	return g.Records[len(g.Records)-1].Round
}
