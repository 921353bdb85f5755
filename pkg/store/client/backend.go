// Package client talks to the remote report backend. Each report type maps
// to its own collection endpoint.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/jaaniles/fcore-ocr/pkg/adapters"
	"github.com/jaaniles/fcore-ocr/pkg/config"
	"github.com/jaaniles/fcore-ocr/pkg/models/domain"
)

var collections = map[domain.ReportType]string{
	domain.ReportMatch:    "match_reports",
	domain.ReportSimMatch: "sim_match_reports",
	domain.ReportPlayer:   "player_reports",
}

type Backend struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewBackend(cfg config.Backend) *Backend {
	timeout := time.Duration(cfg.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Backend{
		baseURL: cfg.URL,
		token:   cfg.Token,
		client:  &http.Client{Timeout: timeout},
	}
}

// Submit posts the report to its type's collection. Implements
// report.Submitter.
func (b *Backend) Submit(ctx context.Context, report *domain.Report) error {
	logger := zerolog.Ctx(ctx)

	collection, ok := collections[report.Type]
	if !ok {
		return fmt.Errorf("no collection for report type %q", report.Type)
	}

	payload, err := json.Marshal(adapters.MapDomainReportToStore(report))
	if err != nil {
		return fmt.Errorf("failed to encode report %s: %w", report.Handle, err)
	}

	url := fmt.Sprintf("%s/%s", b.baseURL, collection)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to submit report %s: %w", report.Handle, err)
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("backend rejected report %s: %s: %s", report.Handle, resp.Status, body)
	}

	logger.Info().
		Str("handle", report.Handle).
		Str("collection", collection).
		Msg("report submitted to backend")
	return nil
}
