package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

// OpenRouter asks a hosted chat model for a sentiment label. It is slower and
// costs money per call, but needs nothing installed locally.
type OpenRouter struct {
	apiKey   string
	model    string
	endpoint string
	client   *http.Client
}

func NewOpenRouter(apiKey, model string) *OpenRouter {
	return &OpenRouter{
		apiKey:   apiKey,
		model:    model,
		endpoint: openRouterURL,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (o *OpenRouter) Predict(ctx context.Context, text string) (Prediction, error) {
	prompt := fmt.Sprintf(`Classify the sentiment of this social media post:

"%s"

Respond in JSON format only:
{
  "label": "POSITIVE|NEGATIVE|NEUTRAL",
  "score": 0.0-1.0
}`, text)

	reqBody := map[string]any{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return Prediction{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, bytes.NewReader(body))
	if err != nil {
		return Prediction{}, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return Prediction{}, errors.Wrap(err, "openrouter request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Prediction{}, errors.Newf("openrouter API error: %d", resp.StatusCode)
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return Prediction{}, errors.Wrap(err, "decode openrouter response")
	}

	if len(apiResp.Choices) == 0 {
		return Prediction{}, errors.New("no response from LLM")
	}

	return parseResponse(apiResp.Choices[0].Message.Content)
}

func parseResponse(content string) (Prediction, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var result struct {
		Label string  `json:"label"`
		Score float64 `json:"score"`
	}

	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return Prediction{}, errors.Wrapf(err, "unparseable LLM answer %q", content)
	}
	if !(result.Score >= 0 && result.Score <= 1) {
		return Prediction{}, errors.Newf("LLM score %v outside [0,1]", result.Score)
	}

	return Prediction{Label: result.Label, Score: result.Score}, nil
}
