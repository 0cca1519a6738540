package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"jarvis/internal/domain"
)

type Config struct {
	Assistant AssistantConfig `yaml:"assistant"`
	Audio     AudioConfig     `yaml:"audio"`
	OpenAI    OpenAIConfig    `yaml:"openai"`
	TTS       TTSConfig       `yaml:"tts"`
	Wikipedia WikipediaConfig `yaml:"wikipedia"`
	Weather   WeatherConfig   `yaml:"weather"`
	Pushover  PushoverConfig  `yaml:"pushover"`
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
}

type AssistantConfig struct {
	Name             string `yaml:"name"`
	Greeting         string `yaml:"greeting"`
	Language         string `yaml:"language"`
	ListenTimeout    string `yaml:"listen_timeout"`
	PhraseTimeLimit  string `yaml:"phrase_time_limit"`
	AmbientDuration  string `yaml:"ambient_duration"`
	SummarySentences int    `yaml:"summary_sentences"`
}

type AudioConfig struct {
	Source         string   `yaml:"source"`
	HTTPAddr       string   `yaml:"http_addr"`
	FileDir        string   `yaml:"file_dir"`
	SampleRate     int      `yaml:"sample_rate"`
	AuthToken      string   `yaml:"auth_token"`
	TrustedProxies []string `yaml:"trusted_proxies"`
}

type OpenAIConfig struct {
	APIKey   string `yaml:"api_key"`
	Language string `yaml:"language"`
}

type TTSConfig struct {
	Enabled *bool    `yaml:"enabled"`
	Binary  string   `yaml:"binary"`
	Rate    int      `yaml:"rate"`
	Volume  *float64 `yaml:"volume"`
	Voice   string   `yaml:"voice"`
}

// SpeechEnabled defaults to true when the key is absent.
func (t TTSConfig) SpeechEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

// SpeechVolume defaults to full volume when the key is absent. An explicit
// 0 mutes speech.
func (t TTSConfig) SpeechVolume() float64 {
	if t.Volume == nil {
		return defaultVolume
	}
	return *t.Volume
}

type WikipediaConfig struct {
	Language string `yaml:"language"`
	BaseURL  string `yaml:"base_url"`
}

type WeatherConfig struct {
	APIKey  string `yaml:"api_key"`
	City    string `yaml:"city"`
	Units   string `yaml:"units"`
	BaseURL string `yaml:"base_url"`
}

type PushoverConfig struct {
	Token   string `yaml:"token"`
	UserKey string `yaml:"user_key"`
	Enabled bool   `yaml:"enabled"`
}

type HTTPConfig struct {
	Proxy   string `yaml:"proxy"`
	Timeout string `yaml:"timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const (
	defaultListenTimeout   = 4 * time.Second
	defaultPhraseTimeLimit = 10 * time.Second
	defaultAmbientDuration = 600 * time.Millisecond
	defaultHTTPTimeout     = 30 * time.Second
	defaultVolume          = 1.0
)

// LoadEnv loads .env style files into the process environment. Missing files
// are skipped and variables already set are never overridden.
func LoadEnv(files ...string) error {
	for _, file := range files {
		if file == "" {
			continue
		}
		if _, err := os.Stat(file); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("loading env file %s: %w", file, err)
		}
	}
	return nil
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

// Default is the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	if c.Assistant.Name == "" {
		c.Assistant.Name = "Jarvis"
	}
	if c.Assistant.Greeting == "" {
		c.Assistant.Greeting = "Jarvis online. How may I assist you today?"
	}
	if c.Assistant.Language == "" {
		c.Assistant.Language = "en-IN"
	}
	if c.Assistant.SummarySentences <= 0 {
		c.Assistant.SummarySentences = 2
	}
	if c.Audio.Source == "" {
		c.Audio.Source = "microphone"
	}
	if c.Audio.HTTPAddr == "" {
		c.Audio.HTTPAddr = ":8080"
	}
	if c.Audio.FileDir == "" {
		c.Audio.FileDir = "./audio"
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 16000
	}
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.OpenAI.Language == "" {
		c.OpenAI.Language = c.Assistant.Language
	}
	if c.TTS.Rate == 0 {
		c.TTS.Rate = 175
	}
	if c.Wikipedia.Language == "" {
		c.Wikipedia.Language = "en"
	}
	if c.Weather.APIKey == "" {
		c.Weather.APIKey = os.Getenv("OPENWEATHERMAP_API_KEY")
	}
	if c.Weather.City == "" {
		c.Weather.City = "Delhi"
	}
	if c.Weather.Units == "" {
		c.Weather.Units = "metric"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// ListenOptions parses the assistant's capture durations. Unparseable values
// are logged and replaced by their defaults.
func (c *Config) ListenOptions(logger *slog.Logger) domain.ListenOptions {
	return domain.ListenOptions{
		Timeout:         duration(logger, "assistant.listen_timeout", c.Assistant.ListenTimeout, defaultListenTimeout),
		PhraseTimeLimit: duration(logger, "assistant.phrase_time_limit", c.Assistant.PhraseTimeLimit, defaultPhraseTimeLimit),
		AmbientDuration: duration(logger, "assistant.ambient_duration", c.Assistant.AmbientDuration, defaultAmbientDuration),
	}
}

func (c *Config) HTTPTimeout(logger *slog.Logger) time.Duration {
	return duration(logger, "http.timeout", c.HTTP.Timeout, defaultHTTPTimeout)
}

func duration(logger *slog.Logger, key, value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		logger.Warn("invalid duration, using default", "key", key, "value", value, "default", fallback)
		return fallback
	}
	return d
}
