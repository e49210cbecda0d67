package engine

import (
	"testing"

	"github.com/Chloelee05/ElevateTM/internal/game"
)

func TestSelfBuffsAlwaysApply(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 5, "shield")
	submit(g.Machine(), 5, "windfall")

	rc.resolveActions()

	if !g.Human().ShieldActive {
		t.Error("shield flag not set")
	}
	if g.Machine().BonusOnWin != 2 {
		t.Errorf("bonus flag = %d, want 2", g.Machine().BonusOnWin)
	}
	if g.Human().Balance != 94 || g.Machine().Balance != 90 {
		t.Errorf("costs not charged: balances %d/%d", g.Human().Balance, g.Machine().Balance)
	}
}

func TestConflictHigherBidWinsWithRefund(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 10, "double_pool")
	submit(g.Machine(), 4, "double_pool")

	rc.resolveActions()

	if rc.pool != 2 {
		t.Errorf("pool = %d, want 2 (doubled once)", rc.pool)
	}
	// Machine paid 15, then got 50% back on losing the conflict.
	if g.Machine().Balance != 100-15+7 {
		t.Errorf("loser balance = %d, want %d", g.Machine().Balance, 100-15+7)
	}
	if g.Human().Balance != 85 {
		t.Errorf("winner balance = %d, want 85", g.Human().Balance)
	}
}

func TestConflictEqualBidsFallBackToCostThenOrder(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 6, "sabotage")
	submit(g.Machine(), 6, "sabotage")

	rc.resolveActions()

	// Same bid, same cost: the earlier submission (the human) prevails, so
	// the penalty lands on the machine.
	if g.Machine().SabotagePenalty != 1 {
		t.Errorf("machine penalty = %d, want 1", g.Machine().SabotagePenalty)
	}
	if g.Human().SabotagePenalty != 0 {
		t.Errorf("human penalty = %d, want 0", g.Human().SabotagePenalty)
	}
	// Loser recovers 25% of the 9 cost.
	if g.Machine().Balance != 100-9+2 {
		t.Errorf("loser balance = %d, want %d", g.Machine().Balance, 100-9+2)
	}
}

func TestPriorityConflictEqualBidsFailsBoth(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 6, "priority")
	submit(g.Machine(), 6, "priority")

	rc.resolveActions()

	if g.Human().PriorityActive || g.Machine().PriorityActive {
		t.Error("equal-bid priority conflict must fail both sides")
	}
	// Both paid 5 and recovered 50%.
	if g.Human().Balance != 97 || g.Machine().Balance != 97 {
		t.Errorf("balances = %d/%d, want 97/97", g.Human().Balance, g.Machine().Balance)
	}
}

func TestStealConflictBothStand(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 3, "pickpocket")
	submit(g.Machine(), 9, "pickpocket")

	rc.resolveActions()

	if g.Human().StealChancePercent != 50 || g.Machine().StealChancePercent != 50 {
		t.Errorf("both steal attempts should stand: %d/%d",
			g.Human().StealChancePercent, g.Machine().StealChancePercent)
	}
}

func TestShieldBlocksFirstHostileAction(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 5, "shield")
	submit(g.Machine(), 5, "undercut")

	rc.resolveActions()

	if g.Human().BidHalved {
		t.Error("shield should have blocked the undercut")
	}
	if g.Human().ShieldActive {
		t.Error("shield must be consumed by the block")
	}
	if !hasEventType(rc.events, "blocked") {
		t.Error("expected a blocked event")
	}
}

func TestCancelRemovesPendingAction(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 8, "cancel")
	submit(g.Machine(), 5, "undercut")

	rc.resolveActions()

	if g.Human().BidHalved {
		t.Error("cancelled undercut must not apply")
	}
	if !hasEventType(rc.events, "cancel") {
		t.Error("expected a cancel event")
	}
	// The cancelled side keeps the cost minus nothing: cancellation by the
	// opponent is not a same-type conflict, no refund applies.
	if g.Machine().Balance != 88 {
		t.Errorf("cancelled actor balance = %d, want 88", g.Machine().Balance)
	}
}

func TestCancelAgainstShieldConsumesShield(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 8, "cancel")
	submit(g.Machine(), 5, "shield")

	rc.resolveActions()

	if g.Machine().ShieldActive {
		t.Error("shield must be consumed absorbing the cancellation")
	}
	if !hasEventType(rc.events, "blocked") {
		t.Error("expected a blocked event for the absorbed cancellation")
	}
	if hasEventType(rc.events, "cancel") {
		t.Error("an absorbed cancellation must not report a cancel outcome")
	}
}

func TestCancelCannotTouchAppliedSelfBuff(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 8, "cancel")
	submit(g.Machine(), 5, "windfall")

	rc.resolveActions()

	// Self-buffs apply before cancellations run; nothing is left to cancel.
	if g.Machine().BonusOnWin != 2 {
		t.Error("self-buff should have survived the cancel attempt")
	}
	if !hasEventType(rc.events, "cancel") {
		t.Error("expected a fizzle event for the cancel")
	}
}

func TestPoolModificationIsIdempotent(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 10, "double_pool")
	submit(g.Machine(), 4, "jackpot")

	rc.resolveActions()

	// Different keys, so no conflict; the human's modifier runs first and the
	// jackpot finds the pool already modified.
	if rc.pool != 2 {
		t.Errorf("pool = %d, want 2", rc.pool)
	}
	if !rc.poolModified {
		t.Error("poolModified flag not set")
	}
}

func TestJackpotPoolStaysInRange(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		g := testContest(seed)
		rc := newRoundContext(g, testRules(), testCatalog())
		submit(g.Human(), 10, "jackpot")

		rc.resolveActions()

		if rc.pool < 3 || rc.pool > 5 {
			t.Fatalf("seed %d: jackpot pool = %d, want within [3,5]", seed, rc.pool)
		}
	}
}

func TestUnaffordableActionForfeitedWithoutCharge(t *testing.T) {
	g := testContest(1)
	g.Machine().Balance = 4 // below the cost of every catalog action
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Machine(), 2, "windfall")

	rc.resolveActions()

	if g.Machine().Balance != 4 {
		t.Errorf("forfeited action must not be charged, balance = %d", g.Machine().Balance)
	}
	if g.Machine().BonusOnWin != 0 {
		t.Error("forfeited action must not apply")
	}
	if !hasEventType(rc.events, "forfeited") {
		t.Error("expected a forfeited event")
	}
}

func TestNoActionsIsANoop(t *testing.T) {
	g := testContest(1)
	rc := newRoundContext(g, testRules(), testCatalog())
	submit(g.Human(), 5, game.ActionNone)
	submit(g.Machine(), 5, game.ActionNone)

	rc.resolveActions()

	if len(rc.events) != 0 {
		t.Errorf("expected no events, got %v", rc.events)
	}
}
