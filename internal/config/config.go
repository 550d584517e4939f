// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"` // audio answer uploads
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type AIConfig struct {
	GeminiKey     string        `yaml:"gemini_key"`
	GeminiURL     string        `yaml:"gemini_url"`
	OpenAIKey     string        `yaml:"openai_key"`
	Model         string        `yaml:"model"`
	Timeout       time.Duration `yaml:"timeout"`
	QuestionCount int           `yaml:"question_count"`
}

type SpeechConfig struct {
	ElevenLabsKey string        `yaml:"elevenlabs_key"`
	BaseURL       string        `yaml:"base_url"`
	VoiceID       string        `yaml:"voice_id"`
	Timeout       time.Duration `yaml:"timeout"`
}

type StoreConfig struct {
	Backend string `yaml:"backend"` // memory | redis
}

type RedisConfig struct {
	URL      string        `yaml:"url"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"` // session document TTL; 0 keeps forever
}

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	AI     AIConfig     `yaml:"ai"`
	Speech SpeechConfig `yaml:"speech"`
	Store  StoreConfig  `yaml:"store"`
	Redis  RedisConfig  `yaml:"redis"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyDefaults()

	if cfg.Store.Backend != "memory" && cfg.Store.Backend != "redis" {
		return nil, fmt.Errorf("store.backend must be memory or redis, got %q", cfg.Store.Backend)
	}
	if cfg.Store.Backend == "redis" && cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required when store.backend=redis")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 30 * time.Second
	}
	if cfg.Server.WriteTimeout <= 0 {
		// TTS responses can be slow to stream out
		cfg.Server.WriteTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}
	if cfg.Server.MaxUploadBytes <= 0 {
		cfg.Server.MaxUploadBytes = 10 << 20
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash"
	}
	if cfg.AI.Timeout <= 0 {
		cfg.AI.Timeout = 30 * time.Second
	}
	if cfg.AI.QuestionCount <= 0 {
		cfg.AI.QuestionCount = 5
	}
	if cfg.Speech.BaseURL == "" {
		cfg.Speech.BaseURL = "https://api.elevenlabs.io"
	}
	if cfg.Speech.Timeout <= 0 {
		cfg.Speech.Timeout = 30 * time.Second
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "memory"
	}
}
