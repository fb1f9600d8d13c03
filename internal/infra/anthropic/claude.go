package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"interview-agent/internal/domain"
	"interview-agent/internal/infra"
)

// ClaudeClient judges transcribed answers through the Anthropic messages
// endpoint. It is an alternate classification provider to the OpenAI one.
type ClaudeClient struct {
	apiKey      string
	httpClient  *http.Client
	baseURL     string
	model       string
	temperature float64
}

func NewClaudeClient(apiKey, model string, temperature float64) *ClaudeClient {
	return NewClaudeClientWithURL(apiKey, model, temperature, "https://api.anthropic.com/v1")
}

func NewClaudeClientWithURL(apiKey, model string, temperature float64, baseURL string) *ClaudeClient {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}
	return &ClaudeClient{
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model       string    `json:"model"`
	MaxTokens   int       `json:"max_tokens"`
	Temperature float64   `json:"temperature"`
	System      string    `json:"system"`
	Messages    []message `json:"messages"`
}

type response struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *ClaudeClient) Classify(ctx context.Context, transcript string, question domain.Question) (domain.Classification, error) {
	reqBody := request{
		Model:       c.model,
		MaxTokens:   1024,
		Temperature: c.temperature,
		System:      infra.ClassificationSystemPrompt,
		Messages: []message{
			{Role: "user", Content: infra.ClassificationPrompt(question, transcript)},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("marshaling request: %w", err)
	}

	var result response
	retryErr := infra.WithRetry(ctx, infra.DefaultRetryConfig(), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/messages", bytes.NewReader(bodyBytes))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", c.apiKey)
		req.Header.Set("anthropic-version", "2023-06-01")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(resp.Body)
			if infra.IsRetryableHTTPStatus(resp.StatusCode) {
				return fmt.Errorf("claude API error %d: %s (retryable)", resp.StatusCode, string(respBody))
			}
			return fmt.Errorf("claude API error %d: %s", resp.StatusCode, string(respBody))
		}

		if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}

		return nil
	})

	if retryErr != nil {
		return domain.Classification{}, retryErr
	}

	if len(result.Content) == 0 {
		return domain.Classification{}, fmt.Errorf("empty response from claude")
	}

	return infra.DecodeClassification(result.Content[0].Text)
}
