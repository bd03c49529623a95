// Package sgnconfig loads pipeline configuration (queue sizes, subprocess
// join timeouts, SQS endpoints) the way a production CLI typically does:
// a config file plus environment variable overrides, via viper. This is an
// out-of-pack ecosystem choice (config.md/SPEC_FULL.md's ambient stack)
// rather than something grounded on a specific example file - see
// DESIGN.md.
package sgnconfig

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config is the subset of pipeline-wide settings every cmd/sgn-pipeline
// invocation needs: queue sizing for subprocess workers, the supervisor's
// join timeout, and the SQS endpoint/queue names used by elements/sqs.
type Config struct {
	QueueSize         int           `mapstructure:"queue_size"`
	SubprocessTimeout time.Duration `mapstructure:"subprocess_timeout"`
	SQSEndpoint       string        `mapstructure:"sqs_endpoint"`
	SQSRegion         string        `mapstructure:"sqs_region"`
	LogLevel          string        `mapstructure:"log_level"`
}

// defaults are applied before any file or environment value is read.
func defaults() Config {
	return Config{
		QueueSize:         100,
		SubprocessTimeout: 5 * time.Second,
		SQSRegion:         "us-east-1",
		LogLevel:          "info",
	}
}

// Load reads configuration from configPath (if non-empty) merged with
// SGN_-prefixed environment variables (SGN_QUEUE_SIZE,
// SGN_SUBPROCESS_TIMEOUT, SGN_SQS_ENDPOINT, SGN_SQS_REGION,
// SGN_LOG_LEVEL), falling back to the defaults above for anything unset.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	d := defaults()
	v.SetDefault("queue_size", d.QueueSize)
	v.SetDefault("subprocess_timeout", d.SubprocessTimeout)
	v.SetDefault("sqs_endpoint", d.SQSEndpoint)
	v.SetDefault("sqs_region", d.SQSRegion)
	v.SetDefault("log_level", d.LogLevel)

	v.SetEnvPrefix("sgn")
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("sgnconfig: reading %q: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("sgnconfig: unmarshaling configuration: %w", err)
	}
	return &cfg, nil
}
