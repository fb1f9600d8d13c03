package domain

import (
	"bytes"
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Session accumulates one interview run: answers keyed by question ID in
// question order, plus every distinct language heard across the run. It is
// only ever touched by the single interview goroutine.
type Session struct {
	ID        string
	StartedAt time.Time

	order     []string
	answers   map[string]Answer
	languages map[string]struct{}
}

func NewSession() *Session {
	return &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
		answers:   make(map[string]Answer),
		languages: make(map[string]struct{}),
	}
}

// SetAnswer stores or overwrites the answer for a question. Insertion order
// is remembered so persisted output lists questions in interview order.
func (s *Session) SetAnswer(questionID string, a Answer) {
	if _, seen := s.answers[questionID]; !seen {
		s.order = append(s.order, questionID)
	}
	s.answers[questionID] = a
}

func (s *Session) Answer(questionID string) (Answer, bool) {
	a, ok := s.answers[questionID]
	return a, ok
}

// AttachFollowUp adds the follow-up exchange to an already stored answer.
// It reports false when no answer exists for the question.
func (s *Session) AttachFollowUp(questionID string, fu FollowUpAnswer) bool {
	a, ok := s.answers[questionID]
	if !ok {
		return false
	}
	a.FollowUp = &fu
	s.answers[questionID] = a
	return true
}

// RecordLanguage adds a detected language tag to the session set. Empty and
// "unknown" tags are ignored.
func (s *Session) RecordLanguage(lang string) {
	if lang == "" || lang == "unknown" {
		return
	}
	s.languages[lang] = struct{}{}
}

// Languages returns the distinct detected languages, sorted for stable
// output.
func (s *Session) Languages() []string {
	langs := make([]string, 0, len(s.languages))
	for l := range s.languages {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

// QuestionIDs returns the answered question IDs in interview order.
func (s *Session) QuestionIDs() []string {
	ids := make([]string, len(s.order))
	copy(ids, s.order)
	return ids
}

// Answered returns how many questions have a stored answer.
func (s *Session) Answered() int {
	return len(s.answers)
}

// MarshalJSON renders the answers as a JSON object keyed by question ID,
// preserving interview order rather than Go's randomized map order.
func (s *Session) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range s.order {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(s.answers[id])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
