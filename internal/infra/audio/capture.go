//go:build portaudio
// +build portaudio

package audio

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gordonklaus/portaudio"

	"interview-agent/internal/application"
)

// Capture records one bounded sample from the default input device. The
// portaudio subsystem and stream are acquired and released within Record, on
// every exit path.
type Capture struct {
	format application.AudioFormat
	logger *slog.Logger
}

func NewCapture(format application.AudioFormat, logger *slog.Logger) *Capture {
	return &Capture{format: format, logger: logger}
}

func (c *Capture) Record(ctx context.Context, duration time.Duration) (string, error) {
	if err := portaudio.Initialize(); err != nil {
		return "", fmt.Errorf("initializing portaudio: %w", err)
	}
	defer portaudio.Terminate()

	devices, err := portaudio.Devices()
	if err != nil {
		return "", fmt.Errorf("listing audio devices: %w", err)
	}
	inputs := 0
	for _, d := range devices {
		if d.MaxInputChannels > 0 {
			inputs++
		}
	}
	if inputs == 0 {
		return "", fmt.Errorf("no audio input devices found")
	}

	buffer := make([]int16, c.format.ChunkSize*c.format.Channels)
	stream, err := portaudio.OpenDefaultStream(
		c.format.Channels,
		0,
		float64(c.format.SampleRate),
		c.format.ChunkSize,
		buffer,
	)
	if err != nil {
		return "", fmt.Errorf("opening stream: %w", err)
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return "", fmt.Errorf("starting stream: %w", err)
	}
	defer stream.Stop()

	c.logger.Info("recording", "seconds", duration.Seconds(), "inputDevices", inputs)

	chunks := int(float64(c.format.SampleRate)*duration.Seconds()) / c.format.ChunkSize
	samples := make([]int16, 0, chunks*len(buffer))

	for i := 0; i < chunks; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if err := stream.Read(); err != nil {
			// Keep whatever was captured before the device failed.
			c.logger.Warn("audio read failed, keeping partial buffer", "error", err, "chunks", i)
			break
		}
		samples = append(samples, buffer...)
	}

	if len(samples) == 0 {
		return "", fmt.Errorf("no audio captured")
	}

	return writeTempWAV(samples, c.format.SampleRate, c.format.Channels)
}
