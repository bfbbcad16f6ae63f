package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/runebound-clan/competition-poller/internal/observability/metrics"
)

// maxErrorBodySize limits how much of a non-2xx response body is kept in Error
const maxErrorBodySize = 4 << 10

type HttpClient interface {
	GetBaseURL() string
	GetDefaultRequestTimeout() time.Duration
	GetHttpClient() *http.Client
}

// HeaderProvider is implemented by clients that attach static headers (auth, user agent)
// to every request
type HeaderProvider interface {
	GetDefaultHeaders() map[string]string
}

type HttpClientOptions struct {
	// Timeout overrides GetDefaultRequestTimeout when positive
	Timeout time.Duration
	// Path is appended to the base url, it may carry a query string
	Path string
	// TemplatePath is the low cardinality path used as metrics label
	TemplatePath string
	Headers      map[string]string
}

// NoContent is used as response type when the response body should be ignored
type NoContent struct{}

// SendRequest sends a JSON encoded input (nil for no body) and decodes a JSON response into R.
// Non-2xx responses are returned as *Error.
func SendRequest[I any, R any](
	ctx context.Context, client HttpClient, method string, opts *HttpClientOptions, input *I,
) (*R, error) {
	timeout := client.GetDefaultRequestTimeout()
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if input != nil {
		payload, err := json.Marshal(input)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	url := client.GetBaseURL() + opts.Path
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if input != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if hp, ok := client.(HeaderProvider); ok {
		for k, v := range hp.GetDefaultHeaders() {
			req.Header.Set(k, v)
		}
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	templatePath := opts.TemplatePath
	if templatePath == "" {
		templatePath = opts.Path
	}
	observe := metrics.StartClientRequestDurationTimer(client.GetBaseURL(), method, templatePath)

	resp, err := client.GetHttpClient().Do(req)
	if err != nil {
		// 0 status code stands for transport level failures
		observe(0)
		return nil, fmt.Errorf("request %s %s failed: %w", method, templatePath, err)
	}
	defer resp.Body.Close()
	observe(resp.StatusCode)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		log.Ctx(ctx).Debug().
			Str("method", method).
			Str("path", templatePath).
			Int("status", resp.StatusCode).
			Msg("request returned non-2xx status")
		return nil, &Error{
			Method:     method,
			Path:       templatePath,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	result := new(R)
	if _, ok := any(result).(*NoContent); ok {
		_, _ = io.Copy(io.Discard, resp.Body)
		return result, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return result, nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return nil, fmt.Errorf("failed to decode response of %s %s: %w", method, templatePath, err)
	}

	return result, nil
}
