package assistant

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	"github.com/mousesolnat/saleplugin-sub000/pkg/httpclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, url, apiKey string) *Client {
	t.Helper()
	httpCfg := httpclient.DefaultConfig()
	httpCfg.MaxRetries = 0
	cb := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpCfg),
		httpclient.DefaultCircuitBreakerConfig("assistant-test"),
		testLogger(),
	)
	return New(Config{BaseURL: url, APIKey: apiKey, Model: "test-model", Timeout: 2 * time.Second}, cb, testLogger())
}

func chatServer(t *testing.T, reply string, handler func(r *http.Request)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler != nil {
			handler(r)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": reply}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestClient_Recommend(t *testing.T) {
	var gotAuth string
	var gotBody chatRequest
	srv := chatServer(t, "Try SEO Toolkit.", func(r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	})
	defer srv.Close()

	client := newClient(t, srv.URL, "sk-test")
	products := []domain.Product{{ID: "p1", Name: "SEO Toolkit", Category: "Plugins", Price: 49.99}}

	reply, err := client.Recommend(context.Background(), "I need SEO help", products)
	require.NoError(t, err)
	assert.Equal(t, "Try SEO Toolkit.", reply)

	assert.Equal(t, "Bearer sk-test", gotAuth)
	require.Len(t, gotBody.Messages, 2)
	assert.Contains(t, gotBody.Messages[0].Content, "SEO Toolkit")
	assert.Equal(t, "I need SEO help", gotBody.Messages[1].Content)
}

func TestClient_MissingKeyFallsBack(t *testing.T) {
	client := newClient(t, "http://127.0.0.1:0", "")

	reply, err := client.Recommend(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestClient_ServerErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, "sk-test")
	reply, err := client.Recommend(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestClient_MalformedResponseFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{"))
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, "sk-test")
	reply, err := client.Recommend(context.Background(), "hello", nil)
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, reply)
}

func TestClient_SupersededRequestIsDropped(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": "slow reply"}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	client := newClient(t, srv.URL, "sk-test")

	var wg sync.WaitGroup
	wg.Add(1)
	var slowReply string
	var slowErr error
	go func() {
		defer wg.Done()
		slowReply, slowErr = client.Recommend(context.Background(), "first", nil)
	}()

	// Issue a newer request while the first is blocked in the server.
	time.Sleep(50 * time.Millisecond)
	client.lastIssued.Add(1)
	close(release)
	wg.Wait()

	assert.ErrorIs(t, slowErr, ErrSuperseded)
	assert.Empty(t, slowReply)
}
