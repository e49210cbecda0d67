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
)

const reportPrompt = `You are a concise game analyst. Review the structured contest summary and produce a formatted capital profile block (text-only).
Use finance analogies (maintenance = inflation/carry; bids = position sizing; cash = liquidity; score = returns).
Use ASCII only.

Include exactly these sections/labels:

Your Capital Profile
Risk Posture: <descriptor> (what this captures)
Capital Efficiency: <descriptor> ($X / point) (how cost per point reflects efficiency)
Emotional Discipline: <descriptor> (tilt/impulse control)
Liquidity Management: <descriptor> (cash preservation vs depletion)
Adaptability: <descriptor> (response to opponent shifts)

Overall Archetype:
<archetype name>

Key Takeaway:
<one or two sentences>

Player Suggestions:
- <bullet 1>
- <bullet 2>
- <bullet 3>

Contest context:
{{context}}`

// GenerateReport asks the chat model for a post-contest capital profile based
// on the structured summary. The caller decides what to do when the model is
// unreachable (the API returns the raw context instead).
func GenerateReport(ctx context.Context, reportContext interface{}) (string, error) {
	apiKey := os.Getenv(constants.EnvOpenAIAPIKey)
	if apiKey == "" {
		return "", fmt.Errorf("%s not set", constants.EnvOpenAIAPIKey)
	}

	ctxJSON, err := json.Marshal(reportContext)
	if err != nil {
		return "", err
	}
	prompt := strings.ReplaceAll(reportPrompt, "{{context}}", string(ctxJSON))

	payload := map[string]interface{}{
		"model": constants.OpenAIChatModel,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"max_completion_tokens": 3100,
		"service_tier":          "default",
	}

	b, _ := json.Marshal(payload)
	req, err := http.NewRequestWithContext(ctx, "POST", constants.OpenAIBaseURL+constants.OpenAIChatCompletionsPath, bytes.NewBuffer(b))
	if err != nil {
		return "", err
	}
	req.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+apiKey)
	req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)

	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("openai error: %d %s", resp.StatusCode, string(body))
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
