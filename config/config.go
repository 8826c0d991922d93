// Package config loads the process-level settings of reductions: the size of
// the shared worker pool, the default grain size, and logging.
//
// Settings are read from environment variables with the REDUCESUM_ prefix
// (for example REDUCESUM_WORKERS), and optionally from a YAML or JSON file.
// Environment variables take precedence over the file.
package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of all environment variables read by this package.
const EnvPrefix = "REDUCESUM"

// Config holds the settings of a process that performs reductions.
type Config struct {
	// Number of workers in the shared pool. Read once, when the pool is
	// created.
	Workers int `mapstructure:"workers" json:"workers" yaml:"workers"`

	// Default grain size; 0 chooses the grain size automatically.
	Grainsize int `mapstructure:"grainsize" json:"grainsize" yaml:"grainsize"`

	// Slices per worker targeted by the automatic grain size.
	Oversubscription int `mapstructure:"oversubscription" json:"oversubscription" yaml:"oversubscription"`

	LogLevel string `mapstructure:"log_level" json:"log_level" yaml:"log_level"`
	LogFile  string `mapstructure:"log_file" json:"log_file" yaml:"log_file"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Workers:          runtime.GOMAXPROCS(0),
		Grainsize:        0,
		Oversubscription: 4,
		LogLevel:         "info",
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	d := Default()
	// Defaults must be registered for every key so that Unmarshal sees
	// values that only come from the environment.
	v.SetDefault("workers", d.Workers)
	v.SetDefault("grainsize", d.Grainsize)
	v.SetDefault("oversubscription", d.Oversubscription)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_file", d.LogFile)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// Load reads the settings from the environment and, if file is not empty,
// from the given configuration file.
func Load(file string) (*Config, error) {
	v := newViper()
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return decode(v)
}

// FromEnv reads the settings from the environment only.
func FromEnv() (*Config, error) {
	return decode(newViper())
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// PoolWorkers returns the number of pool workers needed for Workers
// goroutines in total, since the goroutine that starts a reduction evaluates
// slices too.
func (c *Config) PoolWorkers() int {
	if c.Workers < 1 {
		return 0
	}
	return c.Workers - 1
}

// Validate checks that all settings are in range.
func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative: %v", c.Workers))
	}
	if c.Grainsize < 0 {
		errs = append(errs, fmt.Errorf("grainsize must not be negative: %v", c.Grainsize))
	}
	if c.Oversubscription < 1 {
		errs = append(errs, fmt.Errorf("oversubscription must be positive: %v", c.Oversubscription))
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}
