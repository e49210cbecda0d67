package engine

import (
	"strconv"

	"github.com/Chloelee05/ElevateTM/internal/game"
)

type settlement struct {
	winner      *game.Contestant
	loser       *game.Contestant
	poolAwarded int
}

// effectiveBid applies opponent-imposed debuffs to a submitted bid.
func effectiveBid(c *game.Contestant) int {
	bid := c.PendingBid
	if c.BidHalved {
		bid /= 2
	}
	return bid
}

// settle runs the all-pay auction: compares effective bids, charges both
// original bids, awards the (possibly modified) pool to the winner adjusted
// by bonus/sabotage flags, pays the loser's safety net, rolls steal
// attempts, and clears every effect flag.
func (rc *roundContext) settle() settlement {
	human := rc.g.Human()
	machine := rc.g.Machine()

	effH := effectiveBid(human)
	effM := effectiveBid(machine)
	if human.BidHalved {
		rc.add("debuff", human.DisplayName+"'s bid counts as "+strconv.Itoa(effH)+" (halved)")
	}
	if machine.BidHalved {
		rc.add("debuff", machine.DisplayName+"'s bid counts as "+strconv.Itoa(effM)+" (halved)")
	}

	var winner *game.Contestant
	switch {
	case effH > effM:
		winner = human
	case effM > effH:
		winner = machine
	case effH == 0:
		// Equal zero bids: nobody contested the pool.
		rc.add("settlement", "both bids were zero; the pool goes unclaimed")
	case human.PriorityActive != machine.PriorityActive:
		if human.PriorityActive {
			winner = human
		} else {
			winner = machine
		}
		rc.add("settlement", winner.DisplayName+" wins the tie on priority")
	default:
		// Neither or both hold priority: uniform coin flip.
		if rc.rng.Intn(2) == 0 {
			winner = human
		} else {
			winner = machine
		}
		rc.add("settlement", "tied bids; coin flip favors "+winner.DisplayName)
	}

	// All-pay: both contestants forfeit their original submitted bid.
	human.Balance -= human.PendingBid
	if human.Balance < 0 {
		human.Balance = 0
	}
	machine.Balance -= machine.PendingBid
	if machine.Balance < 0 {
		machine.Balance = 0
	}

	res := settlement{winner: winner}
	if winner != nil {
		loser := rc.g.Opponent(winner)
		res.loser = loser

		award := rc.pool + winner.BonusOnWin - winner.SabotagePenalty
		if winner.BonusOnWin > 0 {
			rc.add("bonus", winner.DisplayName+"'s win bonus adds "+strconv.Itoa(winner.BonusOnWin))
		}
		if winner.SabotagePenalty > 0 {
			rc.add("debuff", winner.DisplayName+"'s payout is sabotaged by "+strconv.Itoa(winner.SabotagePenalty))
		}
		if award < 0 {
			award = 0
		}
		winner.Score += award
		res.poolAwarded = award
		rc.add("settlement", winner.DisplayName+" wins the round and takes "+strconv.Itoa(award))

		if loser.SafetyNetActive {
			net := rc.pool / 2
			if net > 0 {
				loser.Score += net
				rc.add("safety_net", loser.DisplayName+"'s safety net recovers "+strconv.Itoa(net))
			}
		}
	}

	// Steal attempts resolve independently after the base award.
	for _, c := range []*game.Contestant{human, machine} {
		if c.StealChancePercent <= 0 {
			continue
		}
		opp := rc.g.Opponent(c)
		if rc.rng.Intn(100) < c.StealChancePercent {
			if opp.Score >= 1 {
				opp.Score--
				c.Score++
				rc.add("steal", c.DisplayName+" steals 1 score from "+opp.DisplayName)
			} else {
				rc.add("steal", c.DisplayName+"'s steal succeeds but "+opp.DisplayName+" has nothing to take")
			}
		} else {
			rc.add("steal", c.DisplayName+"'s steal attempt fails")
		}
	}

	human.ResetEffects()
	machine.ResetEffects()
	return res
}
