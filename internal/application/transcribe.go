package application

import "context"

// LanguageAuto asks the transcription service to detect the spoken language
// instead of being given a hint.
const LanguageAuto = "auto"

type Transcript struct {
	Text     string
	Language string
}

// Transcriber converts a recorded audio file into text plus a best-guess
// language tag. Implementations remove the audio file before returning,
// success or failure.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath, languageHint string) (Transcript, error)
}
