package httpclient

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBreakerClient(cfg CircuitBreakerConfig) *CircuitBreakerClient {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewCircuitBreakerClient(New(testConfig()), cfg, logger)
}

func TestCircuitBreaker_PassThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newBreakerClient(DefaultCircuitBreakerConfig("test-pass"))
	resp, err := c.Post(context.Background(), srv.URL, "application/json", nil)

	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, gobreaker.StateClosed, c.State())
}

func TestCircuitBreaker_TripsAfterFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := CircuitBreakerConfig{
		Name:         "test-trip",
		MaxRequests:  1,
		Interval:     time.Minute,
		Timeout:      time.Minute,
		FailureRatio: 0.5,
		MinRequests:  2,
	}
	c := newBreakerClient(cfg)

	for i := 0; i < 3; i++ {
		_, _ = c.Post(context.Background(), srv.URL, "application/json", nil)
	}

	assert.Equal(t, gobreaker.StateOpen, c.State())

	_, err := c.Post(context.Background(), srv.URL, "application/json", nil)
	assert.ErrorIs(t, err, ErrCircuitOpen)
}
