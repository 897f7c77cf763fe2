// Package config defines the application configuration and loads it from
// YAML and MONEYWIKI_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/iwvelando/moneywiki/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for moneywiki.
type Configuration struct {
	Logging   LoggingConfig   `yaml:"logging,omitempty" mapstructure:"logging"`
	Output    OutputConfig    `yaml:"output,omitempty" mapstructure:"output"`
	Server    ServerConfig    `yaml:"server,omitempty" mapstructure:"server"`
	Policy    PolicyConfig    `yaml:"policy,omitempty" mapstructure:"policy"`
	Cache     CacheConfig     `yaml:"cache,omitempty" mapstructure:"cache"`
	Scheduler SchedulerConfig `yaml:"scheduler,omitempty" mapstructure:"scheduler"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" mapstructure:"level"`           // debug, info, warn, error
	Format     string `yaml:"format,omitempty" mapstructure:"format"`         // json, console
	OutputFile string `yaml:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" mapstructure:"format"` // pretty, csv, json
}

// ServerConfig holds HTTP API options.
type ServerConfig struct {
	Address      string        `yaml:"address,omitempty" mapstructure:"address"`
	MaxBodySize  string        `yaml:"maxBodySize,omitempty" mapstructure:"maxBodySize"` // e.g. 64K
	ReadTimeout  time.Duration `yaml:"readTimeout,omitempty" mapstructure:"readTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout,omitempty" mapstructure:"writeTimeout"`
}

// PolicyConfig selects the policy constants.
type PolicyConfig struct {
	// File overlays extra or replacement policy years on the embedded defaults.
	File string `yaml:"file,omitempty" mapstructure:"file"`
	// Year pins the active policy year; 0 follows the calendar.
	Year int `yaml:"year,omitempty" mapstructure:"year"`
}

// CacheConfig configures the result cache. Redis is used when RedisAddr is
// set, otherwise an in-memory cache of MaxEntries.
type CacheConfig struct {
	RedisAddr  string        `yaml:"redisAddr,omitempty" mapstructure:"redisAddr"`
	TTL        time.Duration `yaml:"ttl,omitempty" mapstructure:"ttl"`
	MaxEntries int           `yaml:"maxEntries,omitempty" mapstructure:"maxEntries"`
}

// SchedulerConfig controls the policy-year rollover job.
type SchedulerConfig struct {
	Enabled  bool   `yaml:"enabled,omitempty" mapstructure:"enabled"`
	Rollover string `yaml:"rollover,omitempty" mapstructure:"rollover"` // cron spec
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", constants.OutputFormatPretty)
	v.SetDefault("server.address", constants.DefaultServerAddress)
	v.SetDefault("server.maxBodySize", fmt.Sprintf("%d", constants.DefaultMaxBodySizeBytes))
	v.SetDefault("server.readTimeout", 10*time.Second)
	v.SetDefault("server.writeTimeout", 30*time.Second)
	v.SetDefault("policy.file", "")
	v.SetDefault("policy.year", 0)
	v.SetDefault("cache.redisAddr", "")
	v.SetDefault("cache.ttl", time.Hour)
	v.SetDefault("cache.maxEntries", constants.DefaultCacheEntries)
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.rollover", constants.DefaultRolloverSchedule)
}

// Default returns the configuration used when no file is present.
func Default() *Configuration {
	conf, err := load(viper.New(), "")
	if err != nil {
		// Defaults alone cannot fail to decode.
		panic(err)
	}
	return conf
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Environment variables such as MONEYWIKI_POLICY_YEAR
// override file values. An empty path, or a missing file at the default
// path, yields the defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	return load(viper.New(), configPath)
}

func load(v *viper.Viper, configPath string) (*Configuration, error) {
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			if !(configPath == constants.DefaultConfigFile && errors.Is(err, os.ErrNotExist)) {
				return nil, fmt.Errorf("error reading config file, %w", err)
			}
		}
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}
