package config

import (
	"errors"
	"fmt"
	"time"
)

const (
	defaultPollingInterval       = 5 * time.Minute
	defaultInvocationTimeout     = 540 * time.Second
	defaultSubmissionConcurrency = 3
	defaultTimezone              = "UTC"
	// lease outlives the invocation so a killed cycle releases it on expiry
	leaseGracePeriod = time.Minute

	localEventStartLayout = "2006-01-02 15:04:05"
)

type PollerConfig struct {
	Interval              time.Duration `mapstructure:"interval"`
	Timezone              string        `mapstructure:"timezone"`
	EventStart            string        `mapstructure:"event-start"`
	InvocationTimeout     time.Duration `mapstructure:"invocation-timeout"`
	SubmissionConcurrency int           `mapstructure:"submission-concurrency"`
	DisableLease          bool          `mapstructure:"disable-lease"`

	location   *time.Location
	eventStart time.Time
}

func (cfg *PollerConfig) Validate() error {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultPollingInterval
	}
	if cfg.InvocationTimeout <= 0 {
		cfg.InvocationTimeout = defaultInvocationTimeout
	}
	if cfg.SubmissionConcurrency <= 0 {
		cfg.SubmissionConcurrency = defaultSubmissionConcurrency
	}
	if cfg.Timezone == "" {
		cfg.Timezone = defaultTimezone
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	cfg.location = loc

	if cfg.EventStart == "" {
		return errors.New("event-start is required")
	}
	start, err := parseEventStart(cfg.EventStart, loc)
	if err != nil {
		return err
	}
	cfg.eventStart = start

	return nil
}

// EventStartTime is the hard gate of the poller, cycles before it are no-ops
func (cfg *PollerConfig) EventStartTime() time.Time {
	return cfg.eventStart
}

func (cfg *PollerConfig) Location() *time.Location {
	if cfg.location == nil {
		return time.UTC
	}
	return cfg.location
}

func (cfg *PollerConfig) LeaseTTL() time.Duration {
	return cfg.InvocationTimeout + leaseGracePeriod
}

func parseEventStart(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(localEventStartLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("event-start %q must be RFC3339 or %q", value, localEventStartLayout)
	}
	return t, nil
}
