package engine

import (
	"math/rand"
	"strings"

	"github.com/Chloelee05/ElevateTM/internal/game"
)

// --- Round context and helpers ----------------------------------------
type roundContext struct {
	g       *game.Contest
	rules   game.Rules
	catalog game.Catalog
	rng     *rand.Rand

	fee          int
	pool         int
	poolModified bool

	events  []game.EffectEvent
	reasons []string

	// lastResult is filled by settle() for record/result building.
	lastResult settlement
}

func newRoundContext(g *game.Contest, rules game.Rules, catalog game.Catalog) *roundContext {
	// One random stream per round, derived from the contest seed, so a
	// contest replays identically for a given seed.
	rng := rand.New(rand.NewSource(g.Seed + int64(g.RoundNumber)))
	return &roundContext{
		g:       g,
		rules:   rules,
		catalog: catalog,
		rng:     rng,
		pool:    rules.BasePool,
		events:  make([]game.EffectEvent, 0, 16),
	}
}

func (rc *roundContext) add(typ, msg string) {
	rc.events = append(rc.events, game.EffectEvent{Type: typ, Message: msg})
}

// joinSummary returns the accumulated event messages as a single string.
func (rc *roundContext) joinSummary() string {
	parts := make([]string, 0, len(rc.events))
	for _, ev := range rc.events {
		parts = append(parts, ev.Message)
	}
	return strings.Join(parts, "\n")
}
