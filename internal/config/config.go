package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Log     LogConfig     `yaml:"log"`
	Session SessionConfig `yaml:"session"`
}

// APIConfig holds the backend REST API settings.
type APIConfig struct {
	BaseURL    string        `yaml:"base_url"    env:"API_BASE_URL"    env-default:"http://localhost:8080/api" validate:"required,url"`
	Timeout    time.Duration `yaml:"timeout"     env:"API_TIMEOUT"     env-default:"10s"                       validate:"gt=0"`
	RetryDelay time.Duration `yaml:"retry_delay" env:"API_RETRY_DELAY" env-default:"500ms"                     validate:"gte=0"`
	// Token is the access token issued by the backend at sign-in.
	Token string `yaml:"token" env:"API_TOKEN"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text" validate:"oneof=json text"`
}

// SessionConfig holds study session settings.
type SessionConfig struct {
	AutoplayInterval   time.Duration `yaml:"autoplay_interval"    env:"SESSION_AUTOPLAY_INTERVAL"    env-default:"3s" validate:"gte=100ms"`
	OptionsPerQuestion int           `yaml:"options_per_question" env:"SESSION_OPTIONS_PER_QUESTION" env-default:"4"  validate:"min=2,max=9"`
	// Seed makes shuffles and quizzes reproducible; 0 picks a time-based seed.
	Seed uint64 `yaml:"seed" env:"SESSION_SEED" env-default:"0"`
}
