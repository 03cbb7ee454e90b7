// Package config loads texhash command settings from a config file,
// TEXHASH_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// AppName is the application name used for config files and directories.
	AppName = "texhash"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "TEXHASH"
)

// Config holds the command configuration.
type Config struct {
	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"log_format"`

	Engine    string `mapstructure:"engine"`    // fast or strong
	Algorithm string `mapstructure:"algorithm"` // xxh3, xxh64 or murmur3
	Workers   int    `mapstructure:"workers"`   // 0 = hardware concurrency
	MaxWidth  int    `mapstructure:"max_width"`
	MaxHeight int    `mapstructure:"max_height"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "human")
	v.SetDefault("engine", "strong")
	v.SetDefault("algorithm", "xxh3")
	v.SetDefault("workers", 0)
	v.SetDefault("max_width", 1024)
	v.SetDefault("max_height", 1024)
}

// Load reads configuration into v and decodes it. With an empty file, the
// current directory and $HOME/.config/texhash are searched for texhash.yaml
// and a missing file is not an error.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", AppName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges that decoding cannot.
func (c Config) Validate() error {
	if c.MaxWidth <= 0 || c.MaxHeight <= 0 {
		return fmt.Errorf("max_width and max_height must be positive, got %dx%d", c.MaxWidth, c.MaxHeight)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
