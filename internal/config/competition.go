package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/runebound-clan/competition-poller/internal/types"
	"github.com/runebound-clan/competition-poller/internal/utils"
)

const (
	defaultCompetitionBaseURL   = "https://api.wiseoldman.net/v2"
	defaultCompetitionUserAgent = "competition-poller"
	defaultCompetitionTimeout   = 15 * time.Second
	defaultMaxRetryTimes        = 3
	defaultRetryInterval        = 1 * time.Second
)

// CompetitionConfig describes the tracked competition on the ranking provider
type CompetitionConfig struct {
	BaseURL          string                `mapstructure:"base-url"`
	ID               int                   `mapstructure:"id"`
	VerificationCode string                `mapstructure:"verification-code"`
	APIKey           string                `mapstructure:"api-key"`
	UserAgent        string                `mapstructure:"user-agent"`
	Metrics          []types.TrackedMetric `mapstructure:"metrics"`
	Timeout          time.Duration         `mapstructure:"timeout"`
	MaxRetryTimes    uint                  `mapstructure:"max-retry-times"`
	RetryInterval    time.Duration         `mapstructure:"retry-interval"`
}

func (cfg *CompetitionConfig) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultCompetitionBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultCompetitionUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultCompetitionTimeout
	}
	if cfg.MaxRetryTimes == 0 {
		cfg.MaxRetryTimes = defaultMaxRetryTimes
	}
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = defaultRetryInterval
	}
	if len(cfg.Metrics) == 0 {
		cfg.Metrics = append([]types.TrackedMetric(nil), types.DefaultTrackedMetrics...)
	}

	if cfg.ID <= 0 {
		return errors.New("id must be positive")
	}
	if cfg.VerificationCode == "" {
		return errors.New("verification-code is required (set WOM_VERIFICATION_CODE)")
	}

	for i, m := range cfg.Metrics {
		if _, err := types.ParseTrackedMetric(m.String()); err != nil {
			return err
		}
		if utils.Contains(cfg.Metrics[:i], m) {
			return fmt.Errorf("metric %q is listed more than once", m)
		}
	}

	return nil
}
