package engine

import (
	"testing"
)

func TestWinTargetScore(t *testing.T) {
	g := testContest(1)
	g.Human().Score = 20
	g.Machine().Score = 5

	ended, winner, _ := evaluateWin(g, testRules())
	if !ended || winner == nil || winner.Kind != "human" {
		t.Errorf("ended=%v winner=%v, want human win on target score", ended, winner)
	}
}

func TestWinTargetScoreSimultaneousHigherWins(t *testing.T) {
	g := testContest(1)
	g.Human().Score = 21
	g.Machine().Score = 20

	ended, winner, _ := evaluateWin(g, testRules())
	if !ended || winner == nil || winner.Kind != "human" {
		t.Error("when both cross the target the higher score wins")
	}
}

func TestWinTargetScoreSimultaneousTie(t *testing.T) {
	g := testContest(1)
	g.Human().Score = 20
	g.Machine().Score = 20

	ended, winner, _ := evaluateWin(g, testRules())
	if !ended || winner != nil {
		t.Error("equal scores at the target is a tie")
	}
}

func TestWinDoubleBankruptcy(t *testing.T) {
	g := testContest(1)
	g.Human().Balance = 0
	g.Human().Score = 3
	g.Machine().Balance = 0
	g.Machine().Score = 7

	ended, winner, _ := evaluateWin(g, testRules())
	if !ended || winner == nil || winner.Kind != "machine" {
		t.Error("double bankruptcy should fall back to a score comparison")
	}
}

func TestWinWalkover(t *testing.T) {
	g := testContest(1)
	g.Machine().Balance = 0
	// Even a lower score wins by walkover.
	g.Human().Score = 1
	g.Machine().Score = 9

	ended, winner, reason := evaluateWin(g, testRules())
	if !ended || winner == nil || winner.Kind != "human" {
		t.Errorf("expected human walkover, got ended=%v winner=%v (%s)", ended, winner, reason)
	}
}

func TestWinRoundLimit(t *testing.T) {
	g := testContest(1)
	g.RoundNumber = 20
	g.Human().Score = 4
	g.Machine().Score = 6

	ended, winner, _ := evaluateWin(g, testRules())
	if !ended || winner == nil || winner.Kind != "machine" {
		t.Error("round limit should end the contest on score")
	}
}

func TestWinRoundLimitTie(t *testing.T) {
	g := testContest(1)
	g.RoundNumber = 20

	ended, winner, _ := evaluateWin(g, testRules())
	if !ended || winner != nil {
		t.Error("round limit with tied scores is a tie")
	}
}

func TestWinContestContinues(t *testing.T) {
	g := testContest(1)
	g.RoundNumber = 5
	g.Human().Score = 10
	g.Machine().Score = 12

	ended, _, _ := evaluateWin(g, testRules())
	if ended {
		t.Error("contest should continue with balances, rounds and scores in range")
	}
}

func TestWinOrderScoreBeatsWalkover(t *testing.T) {
	// A bankrupt contestant that reached the target first still wins: the
	// score path is evaluated before the bankruptcy paths.
	g := testContest(1)
	g.Human().Balance = 0
	g.Human().Score = 20
	g.Machine().Score = 2

	ended, winner, _ := evaluateWin(g, testRules())
	if !ended || winner == nil || winner.Kind != "human" {
		t.Error("target score must take precedence over bankruptcy")
	}
}
