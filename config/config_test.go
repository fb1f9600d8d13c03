package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "openai:\n  api_key: test-key\n"))
	require.NoError(t, err)

	assert.Equal(t, "microphone", cfg.Audio.Source)
	assert.Equal(t, 1024, cfg.Audio.ChunkSize)
	assert.Equal(t, 1, cfg.Audio.Channels)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, "15s", cfg.Audio.RecordDuration)
	assert.Equal(t, "10s", cfg.Audio.FollowUpDuration)
	assert.Equal(t, "auto", cfg.OpenAI.Language)
	assert.Equal(t, "openai", cfg.Classifier.Provider)
	assert.Equal(t, 0.2, cfg.Classifier.Temperature)
	assert.Equal(t, 175, cfg.TTS.Rate)
	assert.Equal(t, 0.9, cfg.TTS.Volume)
	assert.Equal(t, 3, cfg.Interview.MaxRetries)
	assert.Equal(t, "./interviews", cfg.Output.Dir)
	assert.Equal(t, "asylum_interview_", cfg.Output.Prefix)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_OPENAI_KEY", "sk-from-env")

	cfg, err := Load(writeConfig(t, "openai:\n  api_key: ${TEST_OPENAI_KEY}\n"))
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", cfg.OpenAI.APIKey)
}

func TestLoad_ExplicitValuesWin(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
audio:
  source: file
  file_dir: ./answers
  record_duration: 20s
classifier:
  provider: anthropic
  model: claude-sonnet-4-20250514
interview:
  max_retries: 5
  question_timeout: 2m
tts:
  enabled: true
  engine: espeak
  rate: 150
`))
	require.NoError(t, err)

	assert.Equal(t, "file", cfg.Audio.Source)
	assert.Equal(t, "./answers", cfg.Audio.FileDir)
	assert.Equal(t, "20s", cfg.Audio.RecordDuration)
	assert.Equal(t, "anthropic", cfg.Classifier.Provider)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.Classifier.Model)
	assert.Equal(t, 5, cfg.Interview.MaxRetries)
	assert.Equal(t, "2m", cfg.Interview.QuestionTimeout)
	assert.True(t, cfg.TTS.Enabled)
	assert.Equal(t, "espeak", cfg.TTS.Engine)
	assert.Equal(t, 150, cfg.TTS.Rate)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "audio: [not a mapping"))
	require.Error(t, err)
}
