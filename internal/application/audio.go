package application

import (
	"context"
	"time"
)

// Recorder captures one bounded-duration audio sample from the input device
// and returns the path of a freshly written WAV file. The audio stream and
// device handle are acquired and released within the call, on every exit
// path.
type Recorder interface {
	Record(ctx context.Context, duration time.Duration) (string, error)
}

type AudioFormat struct {
	SampleRate int
	Channels   int
	ChunkSize  int
}

func DefaultAudioFormat() AudioFormat {
	return AudioFormat{
		SampleRate: 44100,
		Channels:   1,
		ChunkSize:  1024,
	}
}
