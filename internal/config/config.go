package config

import (
	"fmt"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	OpenAI   OpenAIConfig   `mapstructure:"openai"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	Podcast  PodcastConfig  `mapstructure:"podcast"`
	Lessons  LessonsConfig  `mapstructure:"lessons"`
}

type ServerConfig struct {
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type SpeechConfig struct {
	APIKey       string  `mapstructure:"api_key"`
	VoiceName    string  `mapstructure:"voice_name"`
	LanguageCode string  `mapstructure:"language_code"`
	SpeakingRate float64 `mapstructure:"speaking_rate"`
	// AudioDirectory is where synthesized clips are written; AudioBaseURL is
	// the public prefix under which they are served.
	AudioDirectory string `mapstructure:"audio_directory"`
	AudioBaseURL   string `mapstructure:"audio_base_url"`
}

type PodcastConfig struct {
	SpotifyClientID     string `mapstructure:"spotify_client_id"`
	SpotifyClientSecret string `mapstructure:"spotify_client_secret"`
}

type LessonsConfig struct {
	WordsPerLesson     int `mapstructure:"words_per_lesson"`
	RecentWindowHours  int `mapstructure:"recent_window_hours" validate:"gte=1"`
	FrequencyRankLimit int `mapstructure:"frequency_rank_limit" validate:"gte=1"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/japanese-lessons")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper

	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "local")
	v.SetDefault("database.username", "user")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("speech.voice_name", "ja-JP-Neural2-B")
	v.SetDefault("speech.language_code", "ja-JP")
	v.SetDefault("speech.speaking_rate", 0.85)
	v.SetDefault("speech.audio_directory", "audio")
	v.SetDefault("speech.audio_base_url", "/audio")
	v.SetDefault("lessons.words_per_lesson", 5)
	v.SetDefault("lessons.recent_window_hours", 24)
	v.SetDefault("lessons.frequency_rank_limit", 5000)

	// Bind OpenAI config to environment variables only (not from config file)
	if err := v.BindEnv("openai.api_key", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_API_KEY environment variable: %w", err)
	}
	if err := v.BindEnv("openai.model", "OPENAI_MODEL"); err != nil {
		return nil, fmt.Errorf("failed to bind OPENAI_MODEL environment variable: %w", err)
	}

	// Bind speech synthesis API key to environment variable
	if err := v.BindEnv("speech.api_key", "GOOGLE_TTS_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind GOOGLE_TTS_API_KEY environment variable: %w", err)
	}

	// Bind Spotify credentials to environment variables
	if err := v.BindEnv("podcast.spotify_client_id", "SPOTIFY_CLIENT_ID"); err != nil {
		return nil, fmt.Errorf("failed to bind SPOTIFY_CLIENT_ID environment variable: %w", err)
	}
	if err := v.BindEnv("podcast.spotify_client_secret", "SPOTIFY_CLIENT_SECRET"); err != nil {
		return nil, fmt.Errorf("failed to bind SPOTIFY_CLIENT_SECRET environment variable: %w", err)
	}

	// Bind database password to environment variable
	if err := v.BindEnv("database.password", "DB_PASSWORD"); err != nil {
		return nil, fmt.Errorf("failed to bind DB_PASSWORD environment variable: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("configuration file found but could not be read: %w. Please check the file format and permissions", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}

	if err := loader.validator.Struct(cfg); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMsgs []string
		for _, e := range validationErrors {
			errorMsgs = append(errorMsgs, e.Translate(loader.translator))
		}
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
	}

	return &cfg, nil
}
