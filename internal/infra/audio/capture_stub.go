//go:build !portaudio
// +build !portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"interview-agent/internal/application"
)

// Capture stub when portaudio is not available.
type Capture struct {
	logger *slog.Logger
}

func NewCapture(_ application.AudioFormat, logger *slog.Logger) *Capture {
	return &Capture{logger: logger}
}

func (c *Capture) Record(_ context.Context, _ time.Duration) (string, error) {
	return "", fmt.Errorf("microphone capture not available: rebuild with -tags portaudio")
}
