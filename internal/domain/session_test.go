package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"interview-agent/internal/domain"
)

func TestSession_SetAnswerOverwrites(t *testing.T) {
	s := domain.NewSession()

	s.SetAnswer("q1", domain.Answer{RawResponse: "first try", Attempt: 1})
	s.SetAnswer("q1", domain.Answer{RawResponse: "second try", Attempt: 2})

	a, ok := s.Answer("q1")
	require.True(t, ok)
	assert.Equal(t, "second try", a.RawResponse)
	assert.Equal(t, 2, a.Attempt)
	assert.Equal(t, 1, s.Answered())
	assert.Equal(t, []string{"q1"}, s.QuestionIDs())
}

func TestSession_LanguageSet(t *testing.T) {
	s := domain.NewSession()

	s.RecordLanguage("english")
	s.RecordLanguage("arabic")
	s.RecordLanguage("english")
	s.RecordLanguage("")
	s.RecordLanguage("unknown")

	assert.Equal(t, []string{"arabic", "english"}, s.Languages())
}

func TestSession_AttachFollowUp(t *testing.T) {
	s := domain.NewSession()

	fu := domain.FollowUpAnswer{Question: "which region?", Response: "the north", Timestamp: time.Now()}
	assert.False(t, s.AttachFollowUp("missing", fu), "attach to unanswered question must fail")

	s.SetAnswer("origin_1", domain.Answer{RawResponse: "Syria"})
	require.True(t, s.AttachFollowUp("origin_1", fu))

	a, _ := s.Answer("origin_1")
	require.NotNil(t, a.FollowUp)
	assert.Equal(t, "the north", a.FollowUp.Response)
}

func TestSession_MarshalPreservesOrder(t *testing.T) {
	s := domain.NewSession()
	for _, id := range []string{"zeta", "alpha", "mid"} {
		s.SetAnswer(id, domain.Answer{Question: id})
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded map[string]domain.Answer
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 3)

	// Insertion order, not lexical order.
	wantPrefix := `{"zeta":`
	assert.Equal(t, wantPrefix, string(data[:len(wantPrefix)]))
}

func TestDefaultQuestions(t *testing.T) {
	qs := domain.DefaultQuestions()
	require.Len(t, qs, 8)

	seen := make(map[string]bool)
	for _, q := range qs {
		assert.False(t, seen[q.ID], "duplicate question id %s", q.ID)
		seen[q.ID] = true
		assert.NotEmpty(t, q.Prompt)
		assert.NotEmpty(t, q.Category)
	}

	assert.Equal(t, "personal_info_1", qs[0].ID)
	assert.Empty(t, qs[2].FollowUp, "language question has no follow-up")
}

func TestFallbackClassification(t *testing.T) {
	c := domain.FallbackClassification("my answer", assert.AnError)

	assert.False(t, c.AdequatelyAnswered)
	assert.True(t, c.FollowUpNeeded)
	assert.Equal(t, 1, c.ConfidenceLevel)
	assert.Equal(t, "my answer", c.ExtractedInfo)
	assert.Equal(t, "Raw response: my answer", c.Summary)
	require.Len(t, c.Concerns, 1)
	assert.Contains(t, c.Concerns[0], "Processing error:")
}
