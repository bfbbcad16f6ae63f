package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runebound-clan/competition-poller/internal/observability/metrics"
)

type testClient struct {
	baseURL string
	headers map[string]string
}

func (c *testClient) GetBaseURL() string                      { return c.baseURL }
func (c *testClient) GetDefaultRequestTimeout() time.Duration { return time.Second }
func (c *testClient) GetHttpClient() *http.Client             { return &http.Client{} }
func (c *testClient) GetDefaultHeaders() map[string]string    { return c.headers }

type echoRequest struct {
	Name string `json:"name"`
}

type echoResponse struct {
	Name   string `json:"name"`
	Header string `json:"header"`
}

func TestSendRequest(t *testing.T) {
	metrics.Register()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/echo":
			var req echoRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			_ = json.NewEncoder(w).Encode(echoResponse{Name: req.Name, Header: r.Header.Get("x-api-key")})
		case "/empty":
			w.WriteHeader(http.StatusNoContent)
		case "/text":
			_, _ = w.Write([]byte("accepted"))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
		default:
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"message":"invalid"}`))
		}
	}))
	defer server.Close()

	c := &testClient{baseURL: server.URL, headers: map[string]string{"x-api-key": "secret"}}
	ctx := context.Background()

	t.Run("json round trip with default headers", func(t *testing.T) {
		resp, err := SendRequest[echoRequest, echoResponse](ctx, c, http.MethodPost,
			&HttpClientOptions{Path: "/echo"}, &echoRequest{Name: "Zezima"})
		require.NoError(t, err)
		assert.Equal(t, "Zezima", resp.Name)
		assert.Equal(t, "secret", resp.Header)
	})
	t.Run("empty body", func(t *testing.T) {
		resp, err := SendRequest[struct{}, echoResponse](ctx, c, http.MethodGet,
			&HttpClientOptions{Path: "/empty"}, nil)
		require.NoError(t, err)
		assert.Empty(t, resp.Name)
	})
	t.Run("non json body ignored with NoContent", func(t *testing.T) {
		_, err := SendRequest[struct{}, NoContent](ctx, c, http.MethodGet,
			&HttpClientOptions{Path: "/text"}, nil)
		require.NoError(t, err)
	})
	t.Run("non 2xx carries status and body", func(t *testing.T) {
		_, err := SendRequest[struct{}, NoContent](ctx, c, http.MethodGet,
			&HttpClientOptions{Path: "/missing?x=1", TemplatePath: "/missing"}, nil)
		require.Error(t, err)

		var clientErr *Error
		require.True(t, errors.As(err, &clientErr))
		assert.Equal(t, http.StatusUnprocessableEntity, clientErr.StatusCode)
		assert.Contains(t, clientErr.Body, "invalid")
		assert.Equal(t, "/missing", clientErr.Path)
		assert.True(t, IsStatus(err, http.StatusUnprocessableEntity))
		assert.False(t, IsRetryable(err))
	})
	t.Run("timeout override", func(t *testing.T) {
		_, err := SendRequest[struct{}, NoContent](ctx, c, http.MethodGet,
			&HttpClientOptions{Path: "/slow", Timeout: 20 * time.Millisecond}, nil)
		require.Error(t, err)
		assert.Equal(t, 0, StatusCode(err))
		assert.True(t, IsRetryable(err))
	})
}

func TestIsRetryable(t *testing.T) {
	assert.False(t, IsRetryable(nil))
	assert.True(t, IsRetryable(&Error{StatusCode: http.StatusBadGateway}))
	assert.True(t, IsRetryable(&Error{StatusCode: http.StatusTooManyRequests}))
	assert.False(t, IsRetryable(&Error{StatusCode: http.StatusNotFound}))
	assert.Contains(t, (&Error{StatusCode: http.StatusTooManyRequests}).Error(), "rate limit exceeded")
}
