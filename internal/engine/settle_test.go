package engine

import (
	"testing"
)

func TestSettleHigherBidWinsAllPay(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 10, "")
	submit(g.Machine(), 8, "")

	st := rc.settle()

	if st.winner == nil || st.winner.Kind != "human" {
		t.Fatalf("expected the human to win, got %+v", st.winner)
	}
	if g.Human().Balance != 90 || g.Machine().Balance != 92 {
		t.Errorf("all-pay balances = %d/%d, want 90/92", g.Human().Balance, g.Machine().Balance)
	}
	if g.Human().Score != 1 || st.poolAwarded != 1 {
		t.Errorf("winner score = %d, awarded = %d, want 1/1", g.Human().Score, st.poolAwarded)
	}
	if g.Machine().Score != 0 {
		t.Errorf("loser score = %d, want 0", g.Machine().Score)
	}
}

func TestSettleBothZeroBidsUnclaimed(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 0, "")
	submit(g.Machine(), 0, "")

	st := rc.settle()

	if st.winner != nil {
		t.Fatalf("no winner expected on double zero bids, got %s", st.winner.DisplayName)
	}
	if g.Human().Score != 0 || g.Machine().Score != 0 {
		t.Error("nobody may score when the pool goes unclaimed")
	}
	if g.Human().Balance != 100 || g.Machine().Balance != 100 {
		t.Error("zero bids must not cost anything")
	}
}

func TestSettleHalvedBidLoses(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 10, "")
	submit(g.Machine(), 6, "")
	g.Human().BidHalved = true // effective 5 vs 6

	st := rc.settle()

	if st.winner == nil || st.winner.Kind != "machine" {
		t.Fatal("halved bid should lose the comparison")
	}
	// The original bid is still what gets paid.
	if g.Human().Balance != 90 {
		t.Errorf("halved bidder still pays the full bid, balance = %d", g.Human().Balance)
	}
}

func TestSettlePriorityBreaksTie(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 7, "")
	submit(g.Machine(), 7, "")
	g.Machine().PriorityActive = true

	st := rc.settle()

	if st.winner == nil || st.winner.Kind != "machine" {
		t.Fatal("priority holder must win a tie")
	}
}

func TestSettleCoinFlipIsRoughlyFair(t *testing.T) {
	humanWins := 0
	const trials = 2000
	for seed := int64(0); seed < trials; seed++ {
		g := testContest(seed)
		rc := newRoundContext(g, testRules(), testCatalog())
		submit(g.Human(), 7, "")
		submit(g.Machine(), 7, "")
		if st := rc.settle(); st.winner != nil && st.winner.Kind == "human" {
			humanWins++
		}
	}
	if humanWins < trials*40/100 || humanWins > trials*60/100 {
		t.Errorf("coin flip looks biased: human won %d of %d", humanWins, trials)
	}
}

func TestSettleCoinFlipIsDeterministicPerSeed(t *testing.T) {
	run := func() string {
		g := testContest(42)
		rc := newRoundContext(g, testRules(), testCatalog())
		submit(g.Human(), 7, "")
		submit(g.Machine(), 7, "")
		st := rc.settle()
		if st.winner == nil {
			return ""
		}
		return st.winner.Kind
	}
	if run() != run() {
		t.Error("same seed and round must replay the same coin flip")
	}
}

func TestSettleBonusAndSabotageAdjustAward(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 10, "")
	submit(g.Machine(), 2, "")
	g.Human().BonusOnWin = 2
	g.Human().SabotagePenalty = 1

	st := rc.settle()

	// pool 1 + bonus 2 - sabotage 1 = 2
	if st.poolAwarded != 2 || g.Human().Score != 2 {
		t.Errorf("awarded = %d, score = %d, want 2/2", st.poolAwarded, g.Human().Score)
	}
}

func TestSettleAwardNeverNegative(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 10, "")
	submit(g.Machine(), 2, "")
	g.Human().SabotagePenalty = 5 // exceeds the pool

	st := rc.settle()

	if st.poolAwarded != 0 || g.Human().Score != 0 {
		t.Errorf("awarded = %d, score = %d, want 0/0", st.poolAwarded, g.Human().Score)
	}
}

func TestSettleSafetyNetPaysLoser(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	rc.pool = 4
	submit(g.Human(), 10, "")
	submit(g.Machine(), 2, "")
	g.Machine().SafetyNetActive = true

	rc.settle()

	if g.Machine().Score != 2 {
		t.Errorf("safety net should pay pool/2 = 2, got %d", g.Machine().Score)
	}
	if g.Human().Score != 4 {
		t.Errorf("winner takes the full pool, got %d", g.Human().Score)
	}
}

func TestSettleStealMovesOneScore(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 2, "")
	submit(g.Machine(), 10, "")
	g.Human().StealChancePercent = 100
	g.Machine().Score = 3

	rc.settle()

	// Machine won the round (+1), then the guaranteed steal moves 1 back.
	if g.Machine().Score != 3 || g.Human().Score != 1 {
		t.Errorf("scores = %d/%d, want machine 3 / human 1", g.Machine().Score, g.Human().Score)
	}
}

func TestSettleStealAgainstZeroScoreTakesNothing(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 0, "")
	submit(g.Machine(), 0, "")
	g.Human().StealChancePercent = 100

	rc.settle()

	if g.Human().Score != 0 || g.Machine().Score != 0 {
		t.Error("a steal against zero score must move nothing")
	}
}

func TestSettleClearsEffectFlags(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 10, "")
	submit(g.Machine(), 2, "")
	g.Human().BonusOnWin = 2
	g.Machine().ShieldActive = true
	g.Machine().BidHalved = true
	g.Machine().PriorityActive = true

	rc.settle()

	for _, c := range g.Contestants {
		if c.BonusOnWin != 0 || c.ShieldActive || c.BidHalved || c.PriorityActive ||
			c.SafetyNetActive || c.SabotagePenalty != 0 || c.StealChancePercent != 0 {
			t.Errorf("%s still carries effect flags after settlement", c.DisplayName)
		}
	}
}
