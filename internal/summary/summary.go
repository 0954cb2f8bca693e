// Package summary talks to the external review-summary service. Generation
// itself happens elsewhere; this package only posts inputs, reads the result
// and caches it per review count.
package summary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/MehmetBegun/Product-Review-App-SolarityAI/pkg/httpclient"
)

const serviceName = "summary service"

// Request carries what the summary service needs for one product.
type Request struct {
	ProductID   string   `json:"product_id"`
	ProductName string   `json:"product_name"`
	ReviewCount int      `json:"review_count"`
	Comments    []string `json:"reviews"`
}

// Summarizer produces a short text summary of a product's reviews. An empty
// result with a nil error means no summary is available.
type Summarizer interface {
	Summarize(ctx context.Context, req Request) (string, error)
}

// Doer is the part of httpclient.CircuitBreakerClient the client uses.
type Doer interface {
	PostJSON(ctx context.Context, url string, v any) (*http.Response, error)
}

type response struct {
	Summary string `json:"summary"`
}

// Client calls the summary service over HTTP.
type Client struct {
	http   Doer
	url    string
	logger *slog.Logger
}

// NewClient returns a Client posting to url.
func NewClient(doer Doer, url string, logger *slog.Logger) *Client {
	return &Client{http: doer, url: url, logger: logger}
}

// Summarize posts req and returns the trimmed summary. Products without
// comments are never sent.
func (c *Client) Summarize(ctx context.Context, req Request) (string, error) {
	if len(req.Comments) == 0 {
		return "", nil
	}

	resp, err := c.http.PostJSON(ctx, c.url, req)
	if err != nil {
		return "", fmt.Errorf("call %s: %w", serviceName, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", httpclient.ParseResponseError(resp, serviceName)
	}
	defer func() { _ = resp.Body.Close() }()

	var out response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode %s response: %w", serviceName, err)
	}
	return strings.TrimSpace(out.Summary), nil
}
