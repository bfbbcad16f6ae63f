package config

import (
	"errors"
	"net/url"
	"time"
)

const defaultIngestionTimeout = 10 * time.Second

type IngestionConfig struct {
	BaseURL string        `mapstructure:"base-url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func (cfg *IngestionConfig) Validate() error {
	if cfg.BaseURL == "" {
		return errors.New("base-url is required (set INGESTION_BASE_URL)")
	}
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New("base-url must be an absolute url")
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultIngestionTimeout
	}

	return nil
}
