package application

import "context"

type Priority string

const (
	PriorityNormal    Priority = "normal"
	PriorityImportant Priority = "important"
)

// Speaker renders text as audible speech and blocks until playback
// completes. Implementations prefix important messages with a fixed
// attention clause.
type Speaker interface {
	Speak(ctx context.Context, text string, priority Priority) error
}

// NoopSpeaker is used when speech output is disabled; prompts still appear
// in the log.
type NoopSpeaker struct{}

func (n *NoopSpeaker) Speak(_ context.Context, _ string, _ Priority) error {
	return nil
}
