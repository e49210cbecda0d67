package engine

import (
	"context"

	"github.com/Chloelee05/ElevateTM/internal/game"
)

// DecisionProvider produces the machine contestant's bid/action pair for a
// round. Implementations live in internal/opponent; the engine assumes
// nothing about how the decision is made, only the response shape and that
// failures are recoverable (a failed provider is substituted with a zero
// decision and the error is logged into the round reasons).
type DecisionProvider interface {
	Decide(ctx context.Context, snap game.DecisionSnapshot) (game.Decision, error)
}

// DecisionProviderFunc adapts a plain function to the DecisionProvider
// interface, mostly for tests.
type DecisionProviderFunc func(ctx context.Context, snap game.DecisionSnapshot) (game.Decision, error)

func (f DecisionProviderFunc) Decide(ctx context.Context, snap game.DecisionSnapshot) (game.Decision, error) {
	return f(ctx, snap)
}
