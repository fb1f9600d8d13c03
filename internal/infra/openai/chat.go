package openai

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

// ChatClassifier judges transcribed answers through the OpenAI chat
// completions endpoint.
type ChatClassifier struct {
	apiKey      string
	httpClient  *http.Client
	baseURL     string
	model       string
	temperature float64
}

func NewChatClassifier(apiKey, model string, temperature float64) *ChatClassifier {
	return NewChatClassifierWithURL(apiKey, model, temperature, "https://api.openai.com/v1")
}

func NewChatClassifierWithURL(apiKey, model string, temperature float64, baseURL string) *ChatClassifier {
	if model == "" {
		model = "gpt-4"
	}
	return &ChatClassifier{
		apiKey:      apiKey,
		httpClient:  &http.Client{Timeout: 60 * time.Second},
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *ChatClassifier) Classify(ctx context.Context, transcript string, question domain.Question) (domain.Classification, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: infra.ClassificationSystemPrompt},
			{Role: "user", Content: infra.ClassificationPrompt(question, transcript)},
		},
		Temperature: c.temperature,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return domain.Classification{}, fmt.Errorf("marshaling request: %w", err)
	}

	var result chatResponse
	retryErr := infra.WithRetry(ctx, infra.DefaultRetryConfig(), func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(bodyBytes))
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(resp.Body)
			if infra.IsRetryableHTTPStatus(resp.StatusCode) {
				return fmt.Errorf("openai API error %d: %s (retryable)", resp.StatusCode, string(respBody))
			}
			return fmt.Errorf("openai API error %d: %s", resp.StatusCode, string(respBody))
		}

		if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}

		return nil
	})

	if retryErr != nil {
		return domain.Classification{}, retryErr
	}

	if len(result.Choices) == 0 {
		return domain.Classification{}, fmt.Errorf("empty response from openai")
	}

	return infra.DecodeClassification(result.Choices[0].Message.Content)
}
