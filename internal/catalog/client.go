package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/taperedworks/enquiry-tracker/internal/common"
)

// ErrMultipleMatches is a warning-class error: an exact-name lookup matched more than
// one item and the first one (traversal order) was returned. Callers may treat it as a
// soft success.
var ErrMultipleMatches = errors.New("multiple items matched")

// Client issues GraphQL queries against the remote project-tracking API.
type Client struct {
	cfg  common.CatalogConfig
	http *http.Client
	log  *slog.Logger
}

// NewClient builds a catalog client. Zero-valued config fields fall back to the
// remote system's defaults.
func NewClient(cfg common.CatalogConfig, logger *slog.Logger) *Client {
	if cfg.APIURL == "" {
		cfg.APIURL = "https://api.monday.com/v2/"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.PageLimit <= 0 {
		cfg.PageLimit = 500
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 10
	}
	if cfg.TitleColumn == "" {
		cfg.TitleColumn = "text3__1"
	}
	if cfg.DateColumn == "" {
		cfg.DateColumn = "date9__1"
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}

// apiError is one entry of a GraphQL "errors" array.
type apiError struct {
	Message string `json:"message"`
}

func joinAPIErrors(errs []apiError) string {
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += e.Message
	}
	return msg
}

// send posts a single GraphQL query and returns the raw response body.
func (c *Client) send(ctx context.Context, query string) ([]byte, error) {
	reqID := uuid.New().String()
	start := time.Now()

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	c.log.Debug("catalog.http.request", "req_id", reqID, "content_length", len(body))

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("catalog.http.send_error",
			"req_id", reqID, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		return nil, fmt.Errorf("%w: %v", common.ErrTransport, err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.log.Warn("catalog.http.response_body_close_error", "req_id", reqID, "error", err)
		}
	}(resp.Body)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", common.ErrTransport, err)
	}

	c.log.Debug("catalog.http.response",
		"req_id", reqID,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode/100 != 2 {
		return raw, fmt.Errorf("%w: non-2xx status %d", common.ErrTransport, resp.StatusCode)
	}
	return raw, nil
}
