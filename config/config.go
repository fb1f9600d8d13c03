package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Audio      AudioConfig      `yaml:"audio"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Classifier ClassifierConfig `yaml:"classifier"`
	TTS        TTSConfig        `yaml:"tts"`
	Interview  InterviewConfig  `yaml:"interview"`
	Output     OutputConfig     `yaml:"output"`
	Pushover   PushoverConfig   `yaml:"pushover"`
	Log        LogConfig        `yaml:"log"`
}

type AudioConfig struct {
	Source           string `yaml:"source"`
	FileDir          string `yaml:"file_dir"`
	ChunkSize        int    `yaml:"chunk_size"`
	Channels         int    `yaml:"channels"`
	SampleRate       int    `yaml:"sample_rate"`
	RecordDuration   string `yaml:"record_duration"`
	FollowUpDuration string `yaml:"followup_duration"`
}

type OpenAIConfig struct {
	APIKey   string `yaml:"api_key"`
	Language string `yaml:"language"`
}

type ClassifierConfig struct {
	Provider    string  `yaml:"provider"`
	APIKey      string  `yaml:"api_key"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
}

type TTSConfig struct {
	Enabled bool    `yaml:"enabled"`
	Engine  string  `yaml:"engine"`
	Rate    int     `yaml:"rate"`
	Volume  float64 `yaml:"volume"`
}

type InterviewConfig struct {
	MaxRetries      int    `yaml:"max_retries"`
	QuestionTimeout string `yaml:"question_timeout"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix"`
}

type PushoverConfig struct {
	Token   string `yaml:"token"`
	UserKey string `yaml:"user_key"`
	Enabled bool   `yaml:"enabled"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.setDefaults()

	return &cfg, nil
}

func (c *Config) setDefaults() {
	if c.Audio.Source == "" {
		c.Audio.Source = "microphone"
	}
	if c.Audio.FileDir == "" {
		c.Audio.FileDir = "./audio"
	}
	if c.Audio.ChunkSize == 0 {
		c.Audio.ChunkSize = 1024
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = 1
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.RecordDuration == "" {
		c.Audio.RecordDuration = "15s"
	}
	if c.Audio.FollowUpDuration == "" {
		c.Audio.FollowUpDuration = "10s"
	}
	if c.OpenAI.Language == "" {
		c.OpenAI.Language = "auto"
	}
	if c.Classifier.Provider == "" {
		c.Classifier.Provider = "openai"
	}
	if c.Classifier.Temperature == 0 {
		c.Classifier.Temperature = 0.2
	}
	if c.TTS.Rate == 0 {
		c.TTS.Rate = 175
	}
	if c.TTS.Volume == 0 {
		c.TTS.Volume = 0.9
	}
	if c.Interview.MaxRetries == 0 {
		c.Interview.MaxRetries = 3
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./interviews"
	}
	if c.Output.Prefix == "" {
		c.Output.Prefix = "asylum_interview_"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}
