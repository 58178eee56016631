// Package assistant calls an OpenAI-compatible chat completion API to
// recommend products from the catalog. The storefront must keep working
// without it: any failure degrades to a canned reply.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/mousesolnat/saleplugin-sub000/internal/domain"
	apperrors "github.com/mousesolnat/saleplugin-sub000/pkg/errors"
	"github.com/mousesolnat/saleplugin-sub000/pkg/httpclient"
)

// FallbackReply is returned whenever the assistant cannot answer.
const FallbackReply = "I'm having trouble reaching the assistant right now. Browse the Plugins, Themes and E-Books categories to find what you need."

// ErrSuperseded reports that a newer request was issued while this one was
// in flight; its reply must be discarded, not shown.
var ErrSuperseded = apperrors.Conflict("assistant reply superseded by a newer request")

// Config holds the assistant connection settings.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client is a staleness-guarded assistant client. Each call gets a
// monotonically increasing id; only the latest id may deliver its reply.
type Client struct {
	cfg    Config
	http   *httpclient.CircuitBreakerClient
	logger *slog.Logger

	lastIssued atomic.Uint64
}

// New creates an assistant client.
func New(cfg Config, client *httpclient.CircuitBreakerClient, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Client{cfg: cfg, http: client, logger: logger}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Recommend asks the assistant for product suggestions grounded in the
// current catalog. A missing API key or any transport failure yields the
// fallback reply with no error; only a superseded request is an error.
func (c *Client) Recommend(ctx context.Context, message string, products []domain.Product) (string, error) {
	id := c.lastIssued.Add(1)

	if c.cfg.APIKey == "" {
		return FallbackReply, nil
	}

	reply, err := c.complete(ctx, message, products)
	if c.lastIssued.Load() != id {
		return "", ErrSuperseded
	}
	if err != nil {
		c.logger.WarnContext(ctx, "assistant request failed", slog.String("error", err.Error()))
		return FallbackReply, nil
	}
	return reply, nil
}

func (c *Client) complete(ctx context.Context, message string, products []domain.Product) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: catalogPrompt(products)},
			{Role: "user", Content: message},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat request: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read chat response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("chat response has no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// catalogPrompt summarizes the catalog so replies only recommend products
// that actually exist.
func catalogPrompt(products []domain.Product) string {
	var b strings.Builder
	b.WriteString("You are a shopping assistant for a digital license store. ")
	b.WriteString("Recommend only from this catalog:\n")
	for _, p := range products {
		fmt.Fprintf(&b, "- %s (%s, $%.2f)\n", p.Name, p.Category, p.Price)
	}
	b.WriteString("Keep replies short and name at most three products.")
	return b.String()
}
