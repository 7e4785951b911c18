// Package worklist aggregates pending approval transactions from the
// upstream pending-transactions feed into a normalized, filterable list.
package worklist

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/haricode-hub/dashboard/internal/common/errors"
	"github.com/haricode-hub/dashboard/internal/common/httpclient"
	"github.com/haricode-hub/dashboard/internal/common/logger"
	"github.com/haricode-hub/dashboard/internal/common/metrics"
	"github.com/haricode-hub/dashboard/internal/models"
)

const sourceName = "WORKLIST"

// Filters narrows the worklist. Empty or "all" values match everything;
// comparisons are case-insensitive.
type Filters struct {
	System string
	Module string
	Branch string
	Status string
}

type Config struct {
	PendingURL string
	Timeout    time.Duration
}

func (c *Config) Validate() error {
	if c.PendingURL == "" {
		return fmt.Errorf("pending URL is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}

type Service struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func New(cfg *Config, log logger.Logger) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid worklist configuration: %w", err)
	}
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	return &Service{
		config: cfg,
		client: httpclient.New(httpclient.Options{Timeout: cfg.Timeout}),
		logger: log,
	}, nil
}

// NewWithClient builds a service around an injected HTTP client for tests.
func NewWithClient(cfg *Config, client *httpclient.Client, log logger.Logger) (*Service, error) {
	s, err := New(cfg, log)
	if err != nil {
		return nil, err
	}
	s.client = client
	return s, nil
}

// List fetches the pending feed once, normalizes every item, and applies the
// filters while preserving upstream order. A failed fetch is always reported
// as an error, never as an empty list.
func (s *Service) List(ctx context.Context, f Filters) ([]models.ApprovalRecord, error) {
	start := time.Now()
	resp, err := s.client.Do(ctx, http.MethodGet, s.config.PendingURL, nil, nil)

	status := httpclient.StatusOf(err)
	if resp != nil {
		status = resp.Status
	}
	metrics.ObserveBackendCall(sourceName, "pending", start, status, err)

	if err != nil {
		s.logger.WithError(err).Error("Pending transactions fetch failed", map[string]interface{}{
			"url":    s.config.PendingURL,
			"status": status,
		})
		return nil, errors.NewUpstreamFetchError(sourceName, httpclient.StatusOf(err), httpclient.BodyOf(err))
	}

	var items []models.RawPendingItem
	if err := resp.JSON(&items); err != nil {
		return nil, errors.NewInvalidResponseShapeError(sourceName,
			"pending transactions response is not a JSON array")
	}

	records := make([]models.ApprovalRecord, 0, len(items))
	for _, item := range items {
		rec := Normalize(item)
		if matches(rec, f) {
			records = append(records, rec)
		}
	}

	s.logger.Debug("Worklist assembled", map[string]interface{}{
		"fetched":  len(items),
		"returned": len(records),
	})

	return records, nil
}

func matches(rec models.ApprovalRecord, f Filters) bool {
	return fieldMatches(rec.SourceSystem, f.System) &&
		fieldMatches(rec.Module, f.Module) &&
		fieldMatches(rec.Branch, f.Branch) &&
		fieldMatches(rec.Status, f.Status)
}

func fieldMatches(value, filter string) bool {
	if filter == "" || strings.EqualFold(filter, "all") {
		return true
	}
	return strings.EqualFold(value, filter)
}
