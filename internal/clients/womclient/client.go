package womclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/runebound-clan/competition-poller/internal/clients/client"
	"github.com/runebound-clan/competition-poller/internal/config"
	"github.com/runebound-clan/competition-poller/internal/types"
)

const (
	competitionPath = "/competitions/%d"
	updateAllPath   = "/competitions/%d/update-all"
)

type Client struct {
	httpClient *http.Client
	cfg        *config.CompetitionConfig
}

func NewClient(cfg *config.CompetitionConfig) *Client {
	return &Client{
		httpClient: &http.Client{},
		cfg:        cfg,
	}
}

func (c *Client) GetBaseURL() string {
	return strings.TrimSuffix(c.cfg.BaseURL, "/")
}

func (c *Client) GetDefaultRequestTimeout() time.Duration {
	return c.cfg.Timeout
}

func (c *Client) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *Client) GetDefaultHeaders() map[string]string {
	headers := map[string]string{
		"User-Agent": c.cfg.UserAgent,
	}
	if c.cfg.APIKey != "" {
		headers["x-api-key"] = c.cfg.APIKey
	}
	return headers
}

func (c *Client) RequestRefresh(ctx context.Context) error {
	path := fmt.Sprintf(updateAllPath, c.cfg.ID)
	opts := &client.HttpClientOptions{
		Path:         path,
		TemplatePath: "/competitions/{id}/update-all",
	}

	resp, err := client.SendRequest[updateAllRequest, updateAllResponse](
		ctx, c, http.MethodPost, opts, &updateAllRequest{VerificationCode: c.cfg.VerificationCode},
	)
	if err != nil {
		return fmt.Errorf("failed to request competition refresh: %w", err)
	}

	log.Ctx(ctx).Debug().
		Int("competition_id", c.cfg.ID).
		Int("count", resp.Count).
		Msg("competition refresh requested")
	return nil
}

func (c *Client) GetCompetitionParticipants(
	ctx context.Context, metric types.TrackedMetric,
) ([]types.ParticipantSnapshot, error) {
	callForDetails := func() (*competitionDetails, error) {
		query := url.Values{}
		query.Set("metric", metric.String())

		opts := &client.HttpClientOptions{
			Path:         fmt.Sprintf(competitionPath, c.cfg.ID) + "?" + query.Encode(),
			TemplatePath: "/competitions/{id}",
		}
		return client.SendRequest[struct{}, competitionDetails](ctx, c, http.MethodGet, opts, nil)
	}

	details, err := clientCallWithRetry(ctx, callForDetails, c.cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants for metric %s: %w", metric, err)
	}

	snapshots := make([]types.ParticipantSnapshot, 0, len(details.Participations))
	for _, p := range details.Participations {
		name := p.Player.DisplayName
		if name == "" {
			name = p.Player.Username
		}
		if name == "" {
			log.Ctx(ctx).Warn().
				Int("player_id", p.PlayerID).
				Str("metric", metric.String()).
				Msg("participant without a name, skipping")
			continue
		}

		snapshots = append(snapshots, types.ParticipantSnapshot{
			PlayerName:      name,
			Metric:          metric,
			CumulativeValue: p.Progress.Gained,
		})
	}

	return snapshots, nil
}

func clientCallWithRetry[T any](
	ctx context.Context,
	call retry.RetryableFuncWithData[T],
	cfg *config.CompetitionConfig,
) (T, error) {
	result, err := retry.DoWithData(call,
		retry.Context(ctx),
		retry.Attempts(cfg.MaxRetryTimes),
		retry.Delay(cfg.RetryInterval),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(client.IsRetryable),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Debug().
				Uint("attempt", n+1).
				Uint("max_attempts", cfg.MaxRetryTimes).
				Err(err).
				Msg("competition provider call failed, retrying")
		}))
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
