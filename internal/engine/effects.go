package engine

import (
	"strconv"

	"github.com/Chloelee05/ElevateTM/internal/game"
)

// --- Pending action model ----------------------------------------------
type pendingAction struct {
	actor *game.Contestant
	opp   *game.Contestant
	spec  game.ActionSpec
	// bidPower is the actor's submitted bid, used to break same-type
	// conflicts.
	bidPower int
	// order is the submission order (human submissions always precede the
	// machine decision, which arrives at processing time).
	order     int
	cancelled bool
}

func isSelfBuff(spec game.ActionSpec) bool {
	e := spec.Effect
	return e.Shield || e.BonusOnWin > 0 || e.SafetyNetOnLoss
}

// categoryRank orders the application of surviving non-self-buff actions:
// cancellations first (so they can still remove unapplied effects), then
// pool modifiers, tie-break priority, opponent debuffs, and steal flags.
func categoryRank(spec game.ActionSpec) int {
	e := spec.Effect
	switch {
	case e.CancelOpponent:
		return 0
	case e.PoolMultiplier > 0 || e.PoolRangeMax > 0:
		return 1
	case e.TieBreakPriority:
		return 2
	case e.HalveOpponentBid || e.SabotagePenalty > 0:
		return 3
	default:
		return 4
	}
}

// resolveActions is the conflict resolver. It charges action costs, applies
// self-buffs unconditionally, settles same-type conflicts, and applies the
// surviving effects in category order. Effect flags left on the contestants
// are consumed by settlement.
func (rc *roundContext) resolveActions() {
	human := rc.g.Human()
	machine := rc.g.Machine()

	pendings := make([]*pendingAction, 0, 2)
	for order, c := range []*game.Contestant{human, machine} {
		if c.PendingAction == game.ActionNone {
			continue
		}
		spec, ok := rc.catalog[c.PendingAction]
		if !ok {
			// Unknown keys are rejected at submission; a stale catalog is the
			// only way to get here.
			rc.add("invalid_action", c.DisplayName+" submitted an unknown action and forfeits it")
			continue
		}
		// Affordability was checked at submission time, but maintenance has
		// been levied since; an action the actor can no longer fund is
		// forfeited without charge.
		if c.Balance < spec.Cost {
			rc.add("forfeited", c.DisplayName+" can no longer afford "+spec.Name+" after maintenance")
			continue
		}
		c.Balance -= spec.Cost
		pendings = append(pendings, &pendingAction{
			actor:    c,
			opp:      rc.g.Opponent(c),
			spec:     spec,
			bidPower: c.PendingBid,
			order:    order,
		})
	}

	// Self-buffs first: they only touch the actor's own state and cannot
	// fail from conflicts.
	remaining := make([]*pendingAction, 0, 2)
	for _, pa := range pendings {
		if isSelfBuff(pa.spec) {
			rc.applySelfBuff(pa)
			continue
		}
		remaining = append(remaining, pa)
	}

	rc.settleConflicts(remaining)

	// Apply survivors in category order, submission order within a category.
	for rank := 0; rank <= 4; rank++ {
		for _, pa := range remaining {
			if pa.cancelled || categoryRank(pa.spec) != rank {
				continue
			}
			rc.applyAction(pa, remaining)
		}
	}
}

func (rc *roundContext) applySelfBuff(pa *pendingAction) {
	e := pa.spec.Effect
	if e.Shield {
		pa.actor.ShieldActive = true
		rc.add("shield", pa.actor.DisplayName+" raises a shield against the first hostile action")
	}
	if e.BonusOnWin > 0 {
		pa.actor.BonusOnWin = e.BonusOnWin
		rc.add("bonus", pa.actor.DisplayName+" primes a +"+strconv.Itoa(e.BonusOnWin)+" bonus on winning the round")
	}
	if e.SafetyNetOnLoss {
		pa.actor.SafetyNetActive = true
		rc.add("safety_net", pa.actor.DisplayName+" deploys a safety net against losing the round")
	}
}

// settleConflicts resolves same-type invocations. Generic rule: compare
// (bidPower desc, cost desc, submission order asc); the loser's action is
// cancelled with a partial refund at the catalog's reduced rate. Two types
// have bespoke rules: tie-break priority goes strictly to the higher bidder
// (equal bids fail both sides), and probabilistic steal permits both
// invocations to apply.
func (rc *roundContext) settleConflicts(pendings []*pendingAction) {
	if len(pendings) != 2 {
		return
	}
	a, b := pendings[0], pendings[1]
	if a.spec.Key != b.spec.Key {
		return
	}

	e := a.spec.Effect
	switch {
	case e.StealChancePercent > 0:
		// Both invocations stand; each rolls independently at settlement.
		rc.add("conflict", "both contestants attempt "+a.spec.Name+"; both attempts stand")
		return
	case e.TieBreakPriority:
		switch {
		case a.bidPower > b.bidPower:
			rc.cancelWithRefund(b, "outbid")
		case b.bidPower > a.bidPower:
			rc.cancelWithRefund(a, "outbid")
		default:
			rc.cancelWithRefund(a, "equal bids")
			rc.cancelWithRefund(b, "equal bids")
		}
		return
	default:
		loser := b
		switch {
		case a.bidPower != b.bidPower:
			if a.bidPower < b.bidPower {
				loser = a
			}
		case a.spec.Cost != b.spec.Cost:
			if a.spec.Cost < b.spec.Cost {
				loser = a
			}
		default:
			// Final tiebreak: earlier submission wins.
			if a.order > b.order {
				loser = a
			}
		}
		rc.cancelWithRefund(loser, "lost the conflict")
	}
}

func (rc *roundContext) cancelWithRefund(pa *pendingAction, why string) {
	pa.cancelled = true
	refund := pa.spec.Cost * pa.spec.ConflictRefundPercent / 100
	if refund > 0 {
		pa.actor.Balance += refund
		rc.add("conflict", pa.actor.DisplayName+"'s "+pa.spec.Name+" fails ("+why+"); $"+strconv.Itoa(refund)+" refunded")
		return
	}
	rc.add("conflict", pa.actor.DisplayName+"'s "+pa.spec.Name+" fails ("+why+")")
}

// blockedByShield consumes the victim's shield when active. Each hostile
// effect checks this before applying.
func (rc *roundContext) blockedByShield(victim *game.Contestant, what string) bool {
	if !victim.ShieldActive {
		return false
	}
	victim.ShieldActive = false
	rc.add("blocked", victim.DisplayName+"'s shield absorbs "+what)
	return true
}

func (rc *roundContext) applyAction(pa *pendingAction, all []*pendingAction) {
	e := pa.spec.Effect

	if e.CancelOpponent {
		// A raised shield absorbs the cancellation itself, even though the
		// shield buff has already been applied.
		if rc.blockedByShield(pa.opp, pa.spec.Name) {
			return
		}
		var target *pendingAction
		for _, other := range all {
			if other != pa && other.actor == pa.opp && !other.cancelled {
				target = other
				break
			}
		}
		if target == nil {
			rc.add("cancel", pa.actor.DisplayName+"'s "+pa.spec.Name+" finds no pending action to cancel")
			return
		}
		target.cancelled = true
		rc.add("cancel", pa.actor.DisplayName+" cancels "+pa.opp.DisplayName+"'s "+target.spec.Name)
		return
	}

	if e.PoolMultiplier > 0 || e.PoolRangeMax > 0 {
		if rc.poolModified {
			rc.add("pool", pa.actor.DisplayName+"'s "+pa.spec.Name+" has no effect; the pool was already modified")
			return
		}
		rc.poolModified = true
		if e.PoolRangeMax > 0 {
			rc.pool = e.PoolRangeMin + rc.rng.Intn(e.PoolRangeMax-e.PoolRangeMin+1)
			rc.add("pool", pa.actor.DisplayName+" forces the pool into a guaranteed high range: now "+strconv.Itoa(rc.pool))
		} else {
			rc.pool *= e.PoolMultiplier
			rc.add("pool", pa.actor.DisplayName+" multiplies the pool by "+strconv.Itoa(e.PoolMultiplier)+": now "+strconv.Itoa(rc.pool))
		}
		return
	}

	if e.TieBreakPriority {
		pa.actor.PriorityActive = true
		rc.add("priority", pa.actor.DisplayName+" claims tie-break priority")
		return
	}

	if e.HalveOpponentBid {
		if rc.blockedByShield(pa.opp, pa.spec.Name) {
			return
		}
		pa.opp.BidHalved = true
		rc.add("debuff", pa.actor.DisplayName+" halves "+pa.opp.DisplayName+"'s effective bid")
		return
	}

	if e.SabotagePenalty > 0 {
		if rc.blockedByShield(pa.opp, pa.spec.Name) {
			return
		}
		pa.opp.SabotagePenalty = e.SabotagePenalty
		rc.add("debuff", pa.actor.DisplayName+" sabotages "+pa.opp.DisplayName+"'s payout by "+strconv.Itoa(e.SabotagePenalty))
		return
	}

	if e.StealChancePercent > 0 {
		if rc.blockedByShield(pa.opp, pa.spec.Name) {
			return
		}
		pa.actor.StealChancePercent = e.StealChancePercent
		rc.add("steal", pa.actor.DisplayName+" lines up a "+strconv.Itoa(e.StealChancePercent)+"% steal attempt")
		return
	}
}
