// Package remote downloads deck documents published over HTTP.
package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
)

// MaxDocumentBytes bounds the size of a downloaded deck document.
const MaxDocumentBytes = 1 << 20

// Fetcher downloads raw deck documents.
type Fetcher interface {
	FetchDeck(ctx context.Context, rawURL string) ([]byte, error)
}

type Client struct {
	httpClient *http.Client
}

// Ensure Client implements the interface
var _ Fetcher = (*Client)(nil)

func New() *Client {
	return &Client{httpClient: &http.Client{Timeout: 15 * time.Second}}
}

// NewWithHTTPClient uses hc for every request.
func NewWithHTTPClient(hc *http.Client) *Client {
	return &Client{httpClient: hc}
}

// FetchDeck downloads the document at rawURL. Only http and https URLs are accepted.
func (c *Client) FetchDeck(ctx context.Context, rawURL string) ([]byte, error) {
	log := logger.FromContext(ctx).WithPrefix("remote").WithField("url", rawURL)

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errors.NewInvalidArgumentError("url", "must be an absolute http or https URL")
	}

	log.Debug("fetching deck document")
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.NewInvalidArgumentError("url", err.Error())
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("failed to fetch deck: %v", err)
		return nil, errors.NewIOError("fetch", rawURL, err)
	}
	defer resp.Body.Close()

	log.Debug("response received in %v, status=%d", time.Since(start), resp.StatusCode)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		log.Error("deck request failed: status=%d, body=%s", resp.StatusCode, string(body))
		return nil, errors.NewIOError("fetch", rawURL, fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentBytes+1))
	if err != nil {
		return nil, errors.NewIOError("read", rawURL, err)
	}
	if len(data) > MaxDocumentBytes {
		return nil, errors.NewFormatError(fmt.Sprintf("document exceeds %d bytes", MaxDocumentBytes), nil)
	}

	log.Info("fetched %d bytes", len(data))
	return data, nil
}
