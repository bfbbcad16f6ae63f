package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const envPrefix = "POLLER"

// env variables recognized without the POLLER_ prefix
var explicitEnvBindings = map[string]string{
	"competition.verification-code": "WOM_VERIFICATION_CODE",
	"ingestion.base-url":            "INGESTION_BASE_URL",
}

type Config struct {
	LogLevel    string            `mapstructure:"log-level"`
	Db          DbConfig          `mapstructure:"db"`
	Competition CompetitionConfig `mapstructure:"competition"`
	Ingestion   IngestionConfig   `mapstructure:"ingestion"`
	Poller      PollerConfig      `mapstructure:"poller"`
	Queue       *QueueConfig      `mapstructure:"queue"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
}

// New loads the yaml config at cfgFile, applies env overrides and validates the result
func New(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(cfgFile)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for key, env := range explicitEnvBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.LogLevel == "" {
		cfg.LogLevel = zerolog.InfoLevel.String()
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log-level: %w", err)
	}

	if err := cfg.Db.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if err := cfg.Competition.Validate(); err != nil {
		return fmt.Errorf("competition: %w", err)
	}
	if err := cfg.Ingestion.Validate(); err != nil {
		return fmt.Errorf("ingestion: %w", err)
	}
	if err := cfg.Poller.Validate(); err != nil {
		return fmt.Errorf("poller: %w", err)
	}
	if err := cfg.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}

	// queue is optional, nil means confirmed contributions are not published
	if cfg.Queue != nil {
		if err := cfg.Queue.Validate(); err != nil {
			return fmt.Errorf("queue: %w", err)
		}
	}

	return nil
}

// ZerologLevel returns the parsed log level, Validate must be called first
func (cfg *Config) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
