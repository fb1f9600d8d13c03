package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"interview-agent/config"
	"interview-agent/internal/application"
	"interview-agent/internal/domain"
	"interview-agent/internal/infra/anthropic"
	"interview-agent/internal/infra/audio"
	"interview-agent/internal/infra/gemini"
	"interview-agent/internal/infra/openai"
	"interview-agent/internal/infra/pushover"
	"interview-agent/internal/infra/report"
	"interview-agent/internal/infra/tts"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	// A .env is optional; the config file expands whatever is set.
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	logger := setupLogger(cfg.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutting down")
		cancel()
	}()

	recorder := createRecorder(cfg.Audio, logger)
	speaker := createSpeaker(cfg.TTS, logger)
	transcriber := openai.NewWhisperClient(cfg.OpenAI.APIKey)

	classifier, err := createClassifier(cfg.Classifier)
	if err != nil {
		logger.Error("configuring classifier", "error", err)
		os.Exit(1)
	}

	recordDuration := parseDuration(cfg.Audio.RecordDuration, 15*time.Second, logger)
	followUpDuration := parseDuration(cfg.Audio.FollowUpDuration, 10*time.Second, logger)

	var questionTimeout time.Duration
	if cfg.Interview.QuestionTimeout != "" {
		questionTimeout = parseDuration(cfg.Interview.QuestionTimeout, 0, logger)
	}

	questions := domain.DefaultQuestions()

	interviewer := application.NewInterviewer(
		speaker,
		recorder,
		transcriber,
		classifier,
		questions,
		application.InterviewConfig{
			MaxRetries:       cfg.Interview.MaxRetries,
			RecordDuration:   recordDuration,
			FollowUpDuration: followUpDuration,
			QuestionTimeout:  questionTimeout,
			LanguageHint:     cfg.OpenAI.Language,
		},
		logger,
	)

	logger.Info("starting interview",
		"audio_source", cfg.Audio.Source,
		"classifier", cfg.Classifier.Provider,
		"questions", len(questions),
	)

	session, runErr := interviewer.Run(ctx)
	if !shouldPersist(runErr, logger) {
		os.Exit(1)
	}

	writer := report.NewWriter(cfg.Output.Dir, cfg.Output.Prefix, logger)
	meta := report.Metadata{
		TotalQuestions:  len(questions),
		MaxRetries:      cfg.Interview.MaxRetries,
		RecordDuration:  recordDuration,
		DefaultLanguage: cfg.OpenAI.Language,
	}

	sessionPath, err := writer.SaveSession(session, meta)
	if err != nil {
		logger.Error("saving session", "error", err)
		os.Exit(1)
	}
	summaryPath, err := writer.SaveSummary(session, meta)
	if err != nil {
		logger.Error("saving summary", "error", err)
		os.Exit(1)
	}

	notifier := createNotifier(cfg.Pushover)
	message := fmt.Sprintf("Interview %s finished: %d/%d questions answered", session.ID, session.Answered(), len(questions))
	if err := notifier.Notify(context.Background(), message); err != nil {
		logger.Warn("notification failed", "error", err)
	}

	logger.Info("interview complete",
		"answered", session.Answered(),
		"total", len(questions),
		"session_file", sessionPath,
		"summary_file", summaryPath,
	)
}

// shouldPersist decides whether the run may be written out. An interrupted
// run saves nothing: no session file, no summary, no notification.
func shouldPersist(runErr error, logger *slog.Logger) bool {
	if runErr == nil {
		return true
	}
	if errors.Is(runErr, context.Canceled) {
		logger.Warn("interview interrupted, discarding partial results")
	} else {
		logger.Error("interview error", "error", runErr)
	}
	return false
}

func createRecorder(cfg config.AudioConfig, logger *slog.Logger) application.Recorder {
	format := application.AudioFormat{
		SampleRate: cfg.SampleRate,
		Channels:   cfg.Channels,
		ChunkSize:  cfg.ChunkSize,
	}

	switch cfg.Source {
	case "file":
		return audio.NewFileRecorder(cfg.FileDir)
	case "microphone":
		return audio.NewCapture(format, logger)
	default:
		logger.Warn("unknown audio source, using microphone", "source", cfg.Source)
		return audio.NewCapture(format, logger)
	}
}

func createSpeaker(cfg config.TTSConfig, logger *slog.Logger) application.Speaker {
	if !cfg.Enabled {
		logger.Info("speech output disabled, prompts go to the log only")
		return &application.NoopSpeaker{}
	}
	return tts.New(tts.Config{Engine: cfg.Engine, Rate: cfg.Rate, Volume: cfg.Volume}, logger)
}

func createClassifier(cfg config.ClassifierConfig) (application.Classifier, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewChatClassifier(cfg.APIKey, cfg.Model, cfg.Temperature), nil
	case "anthropic":
		return anthropic.NewClaudeClient(cfg.APIKey, cfg.Model, cfg.Temperature), nil
	case "gemini":
		return gemini.NewClient(cfg.APIKey, cfg.Model, cfg.Temperature), nil
	default:
		return nil, fmt.Errorf("unknown classifier provider %q", cfg.Provider)
	}
}

func createNotifier(cfg config.PushoverConfig) application.Notifier {
	if cfg.Enabled {
		return pushover.NewClient(cfg.Token, cfg.UserKey)
	}
	return &application.NoopNotifier{}
}

func parseDuration(value string, fallback time.Duration, logger *slog.Logger) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		logger.Warn("invalid duration, using default", "error", err, "value", value, "default", fallback)
		return fallback
	}
	return d
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
