// internal/config/config.go
//
// Application configuration, loaded from an optional YAML file plus
// environment variables via cleanenv struct tags.

package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root application configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Words  WordsConfig  `yaml:"words"`
	Game   GameConfig   `yaml:"game"`
	Store  StoreConfig  `yaml:"store"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string        `yaml:"host"            env:"SERVER_HOST"            env-default:"0.0.0.0"`
	Port           int           `yaml:"port"            env:"PORT"                   env-default:"5175"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"SERVER_REQUEST_TIMEOUT" env-default:"10s"`
	ClientOrigin   string        `yaml:"client_origin"   env:"CLIENT_ORIGIN"          env-default:"http://localhost:5173"`
}

// WordsConfig holds word-data sources and loader tuning.
// Empty file paths fall back to the embedded defaults.
type WordsConfig struct {
	DictionaryFile string `yaml:"dictionary_file" env:"WORDS_DICTIONARY_FILE"`
	FrequencyFile  string `yaml:"frequency_file"  env:"WORDS_FREQUENCY_FILE"`
	BatchSize      int    `yaml:"batch_size"      env:"WORDS_BATCH_SIZE" env-default:"2000"`
}

// GameConfig holds round-presentation tuning.
type GameConfig struct {
	// RevealDelay is how long clients should animate a row reveal before
	// calling finalize. The server only reports it; it never schedules the
	// finalize itself.
	RevealDelay time.Duration `yaml:"reveal_delay" env:"GAME_REVEAL_DELAY" env-default:"1600ms"`
}

// StoreConfig selects the round store. An empty DSN means in-memory.
type StoreConfig struct {
	SQLiteDSN string `yaml:"sqlite_dsn" env:"STORE_SQLITE_DSN"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from path (when non-empty) and the environment.
func Load(path string) (*Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}
