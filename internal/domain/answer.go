package domain

import (
	"fmt"
	"time"
)

// Classification is the structured judgment the language model returns for a
// single transcribed answer.
type Classification struct {
	ExtractedInfo      string   `json:"extracted_info"`
	AdequatelyAnswered bool     `json:"adequately_answered"`
	Concerns           []string `json:"concerns"`
	FollowUpNeeded     bool     `json:"follow_up_needed"`
	SuggestedFollowUp  string   `json:"suggested_follow_up,omitempty"`
	ConfidenceLevel    int      `json:"confidence_level"`
	Summary            string   `json:"summary"`
}

// FallbackClassification is the pessimistic judgment used when the
// classifier call or its JSON output fails. It keeps the retry loop moving
// instead of surfacing the error.
func FallbackClassification(transcript string, err error) Classification {
	return Classification{
		ExtractedInfo:      transcript,
		AdequatelyAnswered: false,
		Concerns:           []string{fmt.Sprintf("Processing error: %v", err)},
		FollowUpNeeded:     true,
		ConfidenceLevel:    1,
		Summary:            fmt.Sprintf("Raw response: %s", transcript),
	}
}

// FollowUpAnswer holds the single optional follow-up exchange attached to a
// main answer. Follow-ups are never classified or retried.
type FollowUpAnswer struct {
	Question  string    `json:"question"`
	Response  string    `json:"response"`
	Language  string    `json:"language,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Answer is the stored record for one question. Retries overwrite it in
// place; whatever attempt terminated the loop is what survives, including a
// final failed attempt once retries run out.
type Answer struct {
	Question    string          `json:"question"`
	Category    string          `json:"category"`
	RawResponse string          `json:"raw_response"`
	Processed   Classification  `json:"processed_info"`
	Language    string          `json:"language,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Attempt     int             `json:"attempt"`
	FollowUp    *FollowUpAnswer `json:"follow_up,omitempty"`
}
