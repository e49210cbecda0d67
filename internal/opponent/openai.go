package opponent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Chloelee05/ElevateTM/internal/constants"
	"github.com/Chloelee05/ElevateTM/internal/dedupe"
	"github.com/Chloelee05/ElevateTM/internal/game"
	"github.com/Chloelee05/ElevateTM/internal/logging"
)

// decisionPromptTemplate can be set at application startup to customize the
// prompt used when requesting a bidding decision from OpenAI. Use the token
// "{{snapshot}}" where the serialized round snapshot should be substituted.
var decisionPromptTemplate string

// SetDecisionPromptTemplate sets a custom prompt template. Call from main
// after loading configuration.
func SetDecisionPromptTemplate(t string) {
	decisionPromptTemplate = strings.TrimSpace(t)
}

const defaultDecisionPrompt = `You are the machine contestant in a two-player sealed-bid all-pay auction contest. Both bids are forfeited every round and the higher bid takes the score pool. A maintenance fee rises over time and a contestant who cannot pay it loses immediately, so keep enough balance in reserve. The current round snapshot is: {{snapshot}}. Personality to play: {{personality}}. Reply with a single JSON object, no prose: {"bid": <integer within your balance>, "action": "<catalog key or empty string>", "reasons": ["..."]}.`

// OpenAIProvider asks the OpenAI Chat Completions API for a round decision.
// It implements engine.DecisionProvider.
type OpenAIProvider struct {
	client *http.Client
}

func NewOpenAIProvider() *OpenAIProvider {
	return &OpenAIProvider{client: &http.Client{Timeout: 30 * time.Second}}
}

func (p *OpenAIProvider) Decide(ctx context.Context, snap game.DecisionSnapshot) (game.Decision, error) {
	apiKey := os.Getenv(constants.EnvOpenAIAPIKey)
	if apiKey == "" {
		return game.Decision{}, fmt.Errorf("%s not set", constants.EnvOpenAIAPIKey)
	}

	snapJSON, err := json.Marshal(snap)
	if err != nil {
		return game.Decision{}, err
	}

	// Deduplicate concurrent requests for the same snapshot (a confirm call
	// racing the sweeper) using singleflight keyed by the serialized state.
	sfKey := string(snapJSON)
	ch := dedupe.DecisionGroup.DoChan(sfKey, func() (interface{}, error) {
		return p.callOpenAI(ctx, apiKey, snap, snapJSON)
	})

	select {
	case r := <-ch:
		if r.Err != nil {
			return game.Decision{}, r.Err
		}
		dec, ok := r.Val.(game.Decision)
		if !ok {
			return game.Decision{}, fmt.Errorf("unexpected result type from singleflight")
		}
		return dec, nil
	case <-ctx.Done():
		return game.Decision{}, ctx.Err()
	}
}

func (p *OpenAIProvider) callOpenAI(ctx context.Context, apiKey string, snap game.DecisionSnapshot, snapJSON []byte) (game.Decision, error) {
	prompt := decisionPromptTemplate
	if prompt == "" {
		prompt = defaultDecisionPrompt
	}
	prompt = strings.ReplaceAll(prompt, "{{snapshot}}", string(snapJSON))
	prompt = strings.ReplaceAll(prompt, "{{personality}}", snap.Personality)

	payload := map[string]interface{}{
		"model": constants.OpenAIChatModel,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a disciplined auction strategist. Answer with JSON only."},
			{"role": "user", "content": prompt},
		},
		"max_completion_tokens": 3100,
		"service_tier":          "default",
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", constants.OpenAIBaseURL+constants.OpenAIChatCompletionsPath, bytes.NewBuffer(b))
	if err != nil {
		return game.Decision{}, err
	}
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+apiKey)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	resp, err := p.client.Do(req)
	if err != nil {
		return game.Decision{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return game.Decision{}, fmt.Errorf("openai error: %d %s", resp.StatusCode, string(body))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return game.Decision{}, err
	}
	if len(out.Choices) == 0 {
		return game.Decision{}, fmt.Errorf("empty response from OpenAI")
	}

	dec, err := parseDecision(out.Choices[0].Message.Content)
	if err != nil {
		logging.Error("opponent decision parse failed", err, logging.Fields{constants.LogFieldRound: snap.Round})
		return game.Decision{}, err
	}
	return dec, nil
}

// parseDecision extracts the JSON decision object from the model reply,
// tolerating markdown code fences and surrounding prose.
func parseDecision(content string) (game.Decision, error) {
	s := strings.TrimSpace(content)
	if start := strings.Index(s, "{"); start >= 0 {
		if end := strings.LastIndex(s, "}"); end > start {
			s = s[start : end+1]
		}
	}
	var dec game.Decision
	if err := json.Unmarshal([]byte(s), &dec); err != nil {
		return game.Decision{}, fmt.Errorf("model reply is not a decision object: %w", err)
	}
	return dec, nil
}
