package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"interview-agent/internal/application"
	"interview-agent/internal/infra"
)

// WhisperClient transcribes recorded answers through the OpenAI speech
// recognition endpoint.
type WhisperClient struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

func NewWhisperClient(apiKey string) *WhisperClient {
	return NewWhisperClientWithURL(apiKey, "https://api.openai.com/v1")
}

func NewWhisperClientWithURL(apiKey, baseURL string) *WhisperClient {
	return &WhisperClient{
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
	}
}

type transcriptionResponse struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

// Transcribe uploads the audio file requesting verbose output so the
// detected language comes back alongside the text. The temporary audio file
// is removed on every exit path.
func (c *WhisperClient) Transcribe(ctx context.Context, audioPath, languageHint string) (application.Transcript, error) {
	defer os.Remove(audioPath)

	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return application.Transcript{}, fmt.Errorf("reading audio file: %w", err)
	}

	var result transcriptionResponse

	retryErr := infra.WithRetry(ctx, infra.DefaultRetryConfig(), func() error {
		body := &bytes.Buffer{}
		writer := multipart.NewWriter(body)

		part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
		if err != nil {
			return fmt.Errorf("creating form file: %w", err)
		}

		if _, err = part.Write(audio); err != nil {
			return fmt.Errorf("writing audio: %w", err)
		}

		if err = writer.WriteField("model", "whisper-1"); err != nil {
			return fmt.Errorf("writing model field: %w", err)
		}

		if err = writer.WriteField("response_format", "verbose_json"); err != nil {
			return fmt.Errorf("writing response_format field: %w", err)
		}

		if languageHint != "" && languageHint != application.LanguageAuto {
			if err = writer.WriteField("language", languageHint); err != nil {
				return fmt.Errorf("writing language field: %w", err)
			}
		}

		if err = writer.Close(); err != nil {
			return fmt.Errorf("closing writer: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", body)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}

		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("sending request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			respBody, _ := io.ReadAll(resp.Body)
			if infra.IsRetryableHTTPStatus(resp.StatusCode) {
				return fmt.Errorf("whisper API error %d: %s (retryable)", resp.StatusCode, string(respBody))
			}
			return fmt.Errorf("whisper API error %d: %s", resp.StatusCode, string(respBody))
		}

		if err = json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}

		return nil
	})

	if retryErr != nil {
		return application.Transcript{}, retryErr
	}

	language := result.Language
	if language == "" {
		language = "unknown"
	}

	return application.Transcript{Text: result.Text, Language: language}, nil
}
