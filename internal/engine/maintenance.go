package engine

import (
	"strconv"

	"github.com/Chloelee05/ElevateTM/internal/game"
)

// FeeForRound computes the maintenance levy for a round: a non-decreasing
// step function of the round number, independent of contest history.
func FeeForRound(round int, rules game.Rules) int {
	multiplier := (round - 1) / rules.MaintenanceInterval
	if multiplier < 0 {
		multiplier = 0
	}
	return multiplier * rules.MaintenanceIncrement
}

// applyMaintenance levies the fee on both contestants at the start of
// processing, before the opponent decision is requested. When one or both
// sides cannot pay, the round never reaches settlement: the contest ends on
// the spot (walkover or score comparison). Returns terminal=true in that
// case together with the winning contestant (nil for a tie) and a
// human-readable reason.
func (rc *roundContext) applyMaintenance() (terminal bool, winner *game.Contestant, reason string) {
	human := rc.g.Human()
	machine := rc.g.Machine()
	fee := FeeForRound(rc.g.RoundNumber, rc.rules)
	rc.fee = fee

	humanCanPay := human.Balance >= fee
	machineCanPay := machine.Balance >= fee

	switch {
	case humanCanPay && machineCanPay:
		if fee > 0 {
			human.Balance -= fee
			machine.Balance -= fee
			rc.add("maintenance", "Both contestants paid the $"+strconv.Itoa(fee)+" maintenance fee")
			rc.g.MaintenanceRecords = append(rc.g.MaintenanceRecords, game.MaintenanceRecord{
				ContestID:        rc.g.ID,
				Round:            rc.g.RoundNumber,
				Fee:              fee,
				AmountPaidByEach: fee,
			})
		}
		return false, nil, ""
	case !humanCanPay && !machineCanPay:
		rc.add("maintenance", "Neither contestant could pay the $"+strconv.Itoa(fee)+" maintenance fee")
		switch {
		case human.Score > machine.Score:
			return true, human, "neither contestant could afford maintenance; " + human.DisplayName + " wins on score"
		case machine.Score > human.Score:
			return true, machine, "neither contestant could afford maintenance; " + machine.DisplayName + " wins on score"
		default:
			return true, nil, "neither contestant could afford maintenance; scores tied"
		}
	case !humanCanPay:
		rc.add("maintenance", human.DisplayName+" could not pay the $"+strconv.Itoa(fee)+" maintenance fee")
		return true, machine, machine.DisplayName + " wins by walkover: opponent could not afford maintenance"
	default:
		rc.add("maintenance", machine.DisplayName+" could not pay the $"+strconv.Itoa(fee)+" maintenance fee")
		return true, human, human.DisplayName + " wins by walkover: opponent could not afford maintenance"
	}
}

// maintenanceOutlook returns the fees for the next three rounds so the
// decision provider can plan liquidity.
func (rc *roundContext) maintenanceOutlook() map[string]int {
	r := rc.g.RoundNumber
	return map[string]int{
		"next_round":  FeeForRound(r+1, rc.rules),
		"in_2_rounds": FeeForRound(r+2, rc.rules),
		"in_3_rounds": FeeForRound(r+3, rc.rules),
	}
}
