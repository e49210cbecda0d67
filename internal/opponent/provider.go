package opponent

import (
	"context"

	"github.com/Chloelee05/ElevateTM/internal/constants"
	"github.com/Chloelee05/ElevateTM/internal/engine"
	"github.com/Chloelee05/ElevateTM/internal/game"
	"github.com/Chloelee05/ElevateTM/internal/logging"
	"github.com/Chloelee05/ElevateTM/internal/metrics"
)

type fallbackProvider struct {
	primary  engine.DecisionProvider
	fallback engine.DecisionProvider
}

// WithFallback chains two providers: when the primary fails, the fallback
// answers instead and the substitution is noted in the decision's reasons.
// The fallback's own error (the heuristic never errors) is returned as-is.
func WithFallback(primary, fallback engine.DecisionProvider) engine.DecisionProvider {
	return &fallbackProvider{primary: primary, fallback: fallback}
}

func (p *fallbackProvider) Decide(ctx context.Context, snap game.DecisionSnapshot) (game.Decision, error) {
	dec, err := p.primary.Decide(ctx, snap)
	if err == nil {
		return dec, nil
	}
	logging.Error("primary decision provider failed; using fallback", err, logging.Fields{constants.LogFieldRound: snap.Round})
	metrics.ProviderFallbacks.Inc()

	dec, ferr := p.fallback.Decide(ctx, snap)
	if ferr != nil {
		return game.Decision{}, ferr
	}
	dec.Reasons = append([]string{"primary provider failed: " + err.Error()}, dec.Reasons...)
	return dec, nil
}

// NewDefault returns the production provider: OpenAI-backed with the
// deterministic heuristic as fallback.
func NewDefault() engine.DecisionProvider {
	return WithFallback(NewOpenAIProvider(), NewHeuristicProvider())
}
