package anthropic_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"interview-agent/internal/domain"
	"interview-agent/internal/infra/anthropic"
)

func TestClaudeClient_Classify(t *testing.T) {
	var gotReq struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/messages" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		json.NewDecoder(r.Body).Decode(&gotReq)

		response := map[string]any{
			"content": []map[string]string{
				{"text": `{"extracted_info":"left in 2021 via Turkey","adequately_answered":true,"concerns":[],"follow_up_needed":false,"confidence_level":8,"summary":"Timeline provided."}`},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := anthropic.NewClaudeClientWithURL("test-key", "claude-test", 0.3, server.URL)

	q := domain.Question{ID: "timeline_1", Category: "timeline", Prompt: "When did you leave?"}
	cls, err := client.Classify(context.Background(), "I left in 2021 and travelled through Turkey", q)
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}

	if gotReq.Model != "claude-test" {
		t.Errorf("model: got %q", gotReq.Model)
	}
	if gotReq.Temperature != 0.3 {
		t.Errorf("temperature: got %v, want 0.3", gotReq.Temperature)
	}
	if !cls.AdequatelyAnswered {
		t.Error("AdequatelyAnswered: got false, want true")
	}
	if cls.ConfidenceLevel != 8 {
		t.Errorf("ConfidenceLevel: got %d, want 8", cls.ConfidenceLevel)
	}
	if cls.ExtractedInfo != "left in 2021 via Turkey" {
		t.Errorf("ExtractedInfo: got %q", cls.ExtractedInfo)
	}
}

func TestClaudeClient_ClassifyFencedReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"content": []map[string]string{
				{"text": "```json\n{\"extracted_info\":\"no documents\",\"adequately_answered\":false,\"concerns\":[\"vague\"],\"follow_up_needed\":true,\"suggested_follow_up\":\"Why not?\",\"confidence_level\":4,\"summary\":\"Needs detail.\"}\n```"},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := anthropic.NewClaudeClientWithURL("test-key", "claude-test", 0.2, server.URL)

	q := domain.Question{ID: "documentation", Category: "evidence", Prompt: "Do you have documents?"}
	cls, err := client.Classify(context.Background(), "not really", q)
	if err != nil {
		t.Fatalf("Classify error: %v", err)
	}

	if cls.AdequatelyAnswered {
		t.Error("AdequatelyAnswered: got true, want false")
	}
	if cls.SuggestedFollowUp != "Why not?" {
		t.Errorf("SuggestedFollowUp: got %q", cls.SuggestedFollowUp)
	}
}

func TestClaudeClient_ClassifyInvalidSchema(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]any{
			"content": []map[string]string{
				{"text": `{"confidence_level": 99}`},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := anthropic.NewClaudeClientWithURL("test-key", "claude-test", 0.2, server.URL)

	q := domain.Question{ID: "q1", Category: "origin", Prompt: "Where from?"}
	if _, err := client.Classify(context.Background(), "text", q); err == nil {
		t.Fatal("expected schema rejection error")
	}
}
