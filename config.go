package qsim

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Shots             int
	Tolerance         float64
	ValidateUnitary   bool
	Workers           int
	LogLevel          string
	SchedulingTimeout time.Duration
}

func NewConfig() *Config {
	return &Config{
		Shots:             1024,
		Tolerance:         1e-6,
		ValidateUnitary:   true,
		Workers:           4,
		LogLevel:          "info",
		SchedulingTimeout: 10 * time.Second,
	}
}

/*
LoadConfig layers, from lowest to highest precedence, the defaults of
NewConfig, an optional config file (any format viper understands) and
QSIM_* environment variables. An empty path skips the file.
*/
func LoadConfig(path string) (*Config, error) {
	defaults := NewConfig()

	v := viper.New()
	v.SetDefault("shots", defaults.Shots)
	v.SetDefault("tolerance", defaults.Tolerance)
	v.SetDefault("validate_unitary", defaults.ValidateUnitary)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("scheduling_timeout", defaults.SchedulingTimeout)

	v.SetEnvPrefix("QSIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	config := &Config{
		Shots:             v.GetInt("shots"),
		Tolerance:         v.GetFloat64("tolerance"),
		ValidateUnitary:   v.GetBool("validate_unitary"),
		Workers:           v.GetInt("workers"),
		LogLevel:          v.GetString("log_level"),
		SchedulingTimeout: v.GetDuration("scheduling_timeout"),
	}

	if config.Shots < 0 {
		return nil, fmt.Errorf("%w: config shots %d", ErrInvalidShots, config.Shots)
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Tolerance <= 0 {
		config.Tolerance = defaults.Tolerance
	}

	return config, nil
}
