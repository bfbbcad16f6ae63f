package ingestclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/runebound-clan/competition-poller/internal/clients/client"
	"github.com/runebound-clan/competition-poller/internal/config"
	"github.com/runebound-clan/competition-poller/internal/types"
)

// EventTypeSkill is the ingestion event type of skill progress
const EventTypeSkill = "SKILL"

// EventRequest is the body accepted by the ingestion endpoint
type EventRequest struct {
	RSN        string `json:"rsn"`
	ID         string `json:"id"`
	Trigger    string `json:"trigger"`
	Source     string `json:"source"`
	Quantity   int64  `json:"quantity"`
	TotalValue int64  `json:"totalValue"`
	Type       string `json:"type"`
}

func NewEventRequest(event *types.CandidateEvent) *EventRequest {
	return &EventRequest{
		RSN:        event.PlayerName,
		ID:         event.SubmissionID,
		Trigger:    event.Metric.String(),
		Source:     event.SourceTag,
		Quantity:   event.Delta,
		TotalValue: event.CumulativeValue,
		Type:       EventTypeSkill,
	}
}

type Client struct {
	httpClient *http.Client
	cfg        *config.IngestionConfig
}

func NewClient(cfg *config.IngestionConfig) *Client {
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

// SubmitEvent is not retried, a failed event stays outstanding in the ledger and is recomputed next cycle
func (c *Client) SubmitEvent(ctx context.Context, event *types.CandidateEvent) error {
	opts := &client.HttpClientOptions{
		TemplatePath: "/",
	}

	_, err := client.SendRequest[EventRequest, client.NoContent](ctx, c, http.MethodPost, opts, NewEventRequest(event))
	return err
}
