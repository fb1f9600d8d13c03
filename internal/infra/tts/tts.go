package tts

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"interview-agent/internal/application"
)

const importantPrefix = "Please listen carefully. "

// preferredVoices is tried in order: exact name match first, then substring,
// then whatever the host offers first.
var preferredVoices = []string{"Emma", "Samantha", "Karen", "Moira", "Alice"}

type Config struct {
	Engine string  // "say" or "espeak"; empty picks by platform
	Rate   int     // words per minute
	Volume float64 // 0.0 - 1.0
}

type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Engine speaks through the host speech command. Voice selection happens
// once at construction; any failure there is logged and the host default
// voice is used instead.
type Engine struct {
	cfg    Config
	voice  string
	run    runner
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Engine {
	if cfg.Engine == "" {
		if runtime.GOOS == "darwin" {
			cfg.Engine = "say"
		} else {
			cfg.Engine = "espeak"
		}
	}
	e := &Engine{cfg: cfg, run: runCommand, logger: logger}
	e.configure(context.Background())
	return e
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

func (e *Engine) configure(ctx context.Context) {
	voices, err := e.listVoices(ctx)
	if err != nil {
		e.logger.Warn("voice enumeration failed, using host default voice", "error", err)
		return
	}
	if len(voices) == 0 {
		e.logger.Warn("no voices reported, using host default voice")
		return
	}
	e.voice = selectVoice(voices)
	e.logger.Info("speech configured", "engine", e.cfg.Engine, "voice", e.voice, "rate", e.cfg.Rate, "volume", e.cfg.Volume)
}

func selectVoice(voices []string) string {
	for _, pref := range preferredVoices {
		for _, v := range voices {
			if strings.EqualFold(v, pref) {
				return v
			}
		}
	}
	for _, pref := range preferredVoices {
		for _, v := range voices {
			if strings.Contains(strings.ToLower(v), strings.ToLower(pref)) {
				return v
			}
		}
	}
	return voices[0]
}

func (e *Engine) listVoices(ctx context.Context) ([]string, error) {
	switch e.cfg.Engine {
	case "say":
		out, err := e.run(ctx, "say", "-v", "?")
		if err != nil {
			return nil, fmt.Errorf("listing voices: %w", err)
		}
		return parseSayVoices(string(out)), nil
	default:
		out, err := e.run(ctx, "espeak", "--voices")
		if err != nil {
			return nil, fmt.Errorf("listing voices: %w", err)
		}
		return parseEspeakVoices(string(out)), nil
	}
}

// parseSayVoices reads `say -v ?` output: the voice name is the column
// before the first run of two spaces.
func parseSayVoices(out string) []string {
	var voices []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, " \r")
		if line == "" {
			continue
		}
		idx := strings.Index(line, "  ")
		if idx <= 0 {
			continue
		}
		voices = append(voices, strings.TrimSpace(line[:idx]))
	}
	return voices
}

// parseEspeakVoices reads `espeak --voices` output: the voice name is the
// fourth column, after a header line.
func parseEspeakVoices(out string) []string {
	var voices []string
	lines := strings.Split(out, "\n")
	for i, line := range lines {
		if i == 0 {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		voices = append(voices, fields[3])
	}
	return voices
}

// Speak blocks until playback finishes. Important messages get the fixed
// attention clause prepended.
func (e *Engine) Speak(ctx context.Context, text string, priority application.Priority) error {
	if priority == application.PriorityImportant {
		text = importantPrefix + text
	}

	var bin string
	var args []string
	switch e.cfg.Engine {
	case "say":
		bin = "say"
		args = []string{"-r", strconv.Itoa(e.cfg.Rate)}
		if e.voice != "" {
			args = append(args, "-v", e.voice)
		}
		// say has no volume flag; use an embedded speech command instead.
		args = append(args, fmt.Sprintf("[[volm %.2f]] %s", e.cfg.Volume, text))
	default:
		bin = "espeak"
		args = []string{"-s", strconv.Itoa(e.cfg.Rate), "-a", strconv.Itoa(int(e.cfg.Volume * 200))}
		if e.voice != "" {
			args = append(args, "-v", e.voice)
		}
		args = append(args, text)
	}

	if out, err := e.run(ctx, bin, args...); err != nil {
		return fmt.Errorf("%s playback: %w (%s)", bin, err, strings.TrimSpace(string(out)))
	}
	return nil
}
