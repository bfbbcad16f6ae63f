package config

import (
	"errors"
	"time"
)

const (
	defaultQueueExchange       = "competition"
	defaultQueuePublishTimeout = 5 * time.Second
)

// QueueConfig is optional, confirmed contributions are published to a topic exchange when present
type QueueConfig struct {
	URL            string        `mapstructure:"url"`
	User           string        `mapstructure:"user"`
	Password       string        `mapstructure:"password"`
	Exchange       string        `mapstructure:"exchange"`
	PublishTimeout time.Duration `mapstructure:"publish-timeout"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.URL == "" {
		return errors.New("url is required")
	}
	if cfg.Exchange == "" {
		cfg.Exchange = defaultQueueExchange
	}
	if cfg.PublishTimeout <= 0 {
		cfg.PublishTimeout = defaultQueuePublishTimeout
	}

	return nil
}
