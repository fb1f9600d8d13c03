package application

import (
	"context"

	"interview-agent/internal/domain"
)

// Classifier asks a language model whether a transcribed answer adequately
// addresses the question and extracts the structured judgment.
type Classifier interface {
	Classify(ctx context.Context, transcript string, question domain.Question) (domain.Classification, error)
}
