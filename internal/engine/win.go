package engine

import "github.com/Chloelee05/ElevateTM/internal/game"

// evaluateWin checks the victory/elimination paths after a settled round, in
// order: target score, double bankruptcy, single bankruptcy (walkover), and
// the round limit. ended=true with winner=nil means a tie.
func evaluateWin(g *game.Contest, rules game.Rules) (ended bool, winner *game.Contestant, reason string) {
	human := g.Human()
	machine := g.Machine()

	higherScore := func() *game.Contestant {
		switch {
		case human.Score > machine.Score:
			return human
		case machine.Score > human.Score:
			return machine
		default:
			return nil
		}
	}

	if human.Score >= rules.TargetScore || machine.Score >= rules.TargetScore {
		if w := higherScore(); w != nil {
			return true, w, w.DisplayName + " reached the target score"
		}
		return true, nil, "both contestants reached the target score together"
	}

	if human.Balance == 0 && machine.Balance == 0 {
		if w := higherScore(); w != nil {
			return true, w, "both contestants are bankrupt; " + w.DisplayName + " wins on score"
		}
		return true, nil, "both contestants are bankrupt with tied scores"
	}

	if human.Balance == 0 {
		return true, machine, machine.DisplayName + " wins by walkover: opponent is bankrupt"
	}
	if machine.Balance == 0 {
		return true, human, human.DisplayName + " wins by walkover: opponent is bankrupt"
	}

	if g.RoundNumber >= rules.RoundLimit {
		if w := higherScore(); w != nil {
			return true, w, "round limit reached; " + w.DisplayName + " wins on score"
		}
		return true, nil, "round limit reached with tied scores"
	}

	return false, nil, ""
}
