// Package config loads the tunable game settings. Values come from an
// optional pizzadash.yaml plus PIZZADASH_-prefixed environment variables.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Settings holds the player-adjustable tunables. Engine-internal constants
// (timeouts, caps, reward math) live in the parameter package instead.
type Settings struct {
	// MaxCustomerDistance bounds the customer placement radius in meters
	MaxCustomerDistance float64 `mapstructure:"maxCustomerDistance"`

	// DataDir is where ledger snapshots are persisted
	DataDir string `mapstructure:"dataDir"`

	// Seed fixes the engine RNG; 0 means seed from the clock
	Seed int64 `mapstructure:"seed"`
}

// Default returns the settings used when no file or environment is present
func Default() Settings {
	return Settings{
		MaxCustomerDistance: 500, // meters, original game default
		DataDir:             "./data",
	}
}

// Load reads settings from the given config file path (optional, "" skips
// the file) merged over defaults and environment overrides.
func Load(path string) (Settings, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault("maxCustomerDistance", def.MaxCustomerDistance)
	v.SetDefault("dataDir", def.DataDir)
	v.SetDefault("seed", int64(0))

	v.SetEnvPrefix("PIZZADASH")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("pizzadash")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.pizzadash/")
		// Missing file is fine, defaults apply
		if err := v.ReadInConfig(); err != nil {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return Settings{}, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings no game session can run with
func (s Settings) Validate() error {
	if s.MaxCustomerDistance <= 0 {
		return fmt.Errorf("maxCustomerDistance must be positive, got %v", s.MaxCustomerDistance)
	}
	if s.DataDir == "" {
		return fmt.Errorf("dataDir must not be empty")
	}
	return nil
}
