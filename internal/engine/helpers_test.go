package engine

import (
	"github.com/Chloelee05/ElevateTM/internal/game"
)

func testRules() game.Rules {
	return game.Rules{
		StartingBalance:        100,
		TargetScore:            20,
		RoundLimit:             20,
		MaintenanceInterval:    2,
		MaintenanceIncrement:   5,
		BasePool:               1,
		ConfirmTimeoutSeconds:  90,
		DecisionTimeoutSeconds: 30,
	}
}

func testCatalog() game.Catalog {
	specs := []game.ActionSpec{
		{Key: "windfall", Name: "Windfall", Cost: 10, Effect: game.ActionEffect{BonusOnWin: 2}},
		{Key: "safety_net", Name: "Safety Net", Cost: 8, Effect: game.ActionEffect{SafetyNetOnLoss: true}},
		{Key: "shield", Name: "Shield", Cost: 6, Effect: game.ActionEffect{Shield: true}},
		{Key: "undercut", Name: "Undercut", Cost: 12, ConflictRefundPercent: 25, Effect: game.ActionEffect{HalveOpponentBid: true}},
		{Key: "sabotage", Name: "Sabotage", Cost: 9, ConflictRefundPercent: 25, Effect: game.ActionEffect{SabotagePenalty: 1}},
		{Key: "priority", Name: "Priority Claim", Cost: 5, ConflictRefundPercent: 50, Effect: game.ActionEffect{TieBreakPriority: true}},
		{Key: "double_pool", Name: "Double Pool", Cost: 15, ConflictRefundPercent: 50, Effect: game.ActionEffect{PoolMultiplier: 2}},
		{Key: "jackpot", Name: "Jackpot", Cost: 20, ConflictRefundPercent: 50, Effect: game.ActionEffect{PoolRangeMin: 3, PoolRangeMax: 5}},
		{Key: "cancel", Name: "Cancellation", Cost: 7, ConflictRefundPercent: 25, Effect: game.ActionEffect{CancelOpponent: true}},
		{Key: "pickpocket", Name: "Pickpocket", Cost: 10, ConflictRefundPercent: 0, Effect: game.ActionEffect{StealChancePercent: 50}},
	}
	catalog := make(game.Catalog, len(specs))
	for _, s := range specs {
		catalog[s.Key] = s
	}
	return catalog
}

func testContest(seed int64) *game.Contest {
	return &game.Contest{
		Name:        "test contest",
		Status:      game.StatusInProgress,
		Phase:       game.PhaseActions,
		RoundNumber: 1,
		Seed:        seed,
		Contestants: []game.Contestant{
			{ContestantUUID: "uuid-human", DisplayName: "Alice", Kind: game.KindHuman, Balance: 100},
			{ContestantUUID: "uuid-machine", DisplayName: "Rival", Kind: game.KindMachine, Balance: 100},
		},
	}
}

func submit(c *game.Contestant, bid int, action game.ActionType) {
	c.HasBid = true
	c.PendingBid = bid
	if action != game.ActionNone {
		c.HasAction = true
		c.PendingAction = action
	}
}

func hasEventType(events []game.EffectEvent, typ string) bool {
	for _, ev := range events {
		if ev.Type == typ {
			return true
		}
	}
	return false
}
