// Package fcubs implements the adapter for the FCUBS core banking backend.
//
// FCUBS uses a stateless single-credential model: every call carries the
// same static service-account headers, there is no per-call token exchange.
package fcubs

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haricode-hub/dashboard/internal/adapters"
	"github.com/haricode-hub/dashboard/internal/common/errors"
	"github.com/haricode-hub/dashboard/internal/common/httpclient"
	"github.com/haricode-hub/dashboard/internal/common/logger"
	"github.com/haricode-hub/dashboard/internal/common/metrics"
)

const System = "FCUBS"

type Adapter struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func New(cfg *Config, log logger.Logger) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for fcubs adapter: %w", err)
	}
	if log == nil {
		log = logger.NewStructured("info", "json")
	}

	client := httpclient.New(httpclient.Options{
		Timeout:            cfg.Timeout,
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	})

	return &Adapter{config: cfg, client: client, logger: log}, nil
}

// NewWithClient builds an adapter around an injected HTTP client. Tests use
// this to supply a mocked transport.
func NewWithClient(cfg *Config, client *httpclient.Client, log logger.Logger) (*Adapter, error) {
	a, err := New(cfg, log)
	if err != nil {
		return nil, err
	}
	a.client = client
	return a, nil
}

// serviceHeaders are the static service-account headers FCUBS expects.
func (a *Adapter) serviceHeaders(branch string) map[string]string {
	return map[string]string{
		"BRANCH": branch,
		"Entity": a.config.Entity,
		"Source": a.config.Source,
		"Userid": a.config.UserID,
	}
}

func (a *Adapter) do(ctx context.Context, op, method, requestURL string, headers map[string]string, body interface{}) (*httpclient.Response, error) {
	start := time.Now()
	resp, err := a.client.Do(ctx, method, requestURL, headers, body)

	status := httpclient.StatusOf(err)
	if resp != nil {
		status = resp.Status
	}
	metrics.ObserveBackendCall(System, op, start, status, err)

	return resp, err
}

// FetchDetails retrieves the full customer-account record for branch+account
// and returns the backend-native payload as-is.
func (a *Adapter) FetchDetails(ctx context.Context, p adapters.Params) (*adapters.Details, error) {
	if p.Branch == "" || p.Account == "" {
		return nil, errors.NewMissingParameterError("brn and acc are required for FCUBS details")
	}

	opID := uuid.NewString()
	queryURL := fmt.Sprintf("%s/brn/%s/acc/%s",
		strings.TrimSuffix(a.config.QueryAccountURL, "/"),
		url.PathEscape(p.Branch),
		url.PathEscape(p.Account),
	)

	a.logger.Info("Fetching FCUBS account details", map[string]interface{}{
		"operationId": opID,
		"branch":      p.Branch,
		"account":     p.Account,
	})

	resp, err := a.do(ctx, "query", http.MethodGet, queryURL, a.serviceHeaders(p.Branch), nil)
	if err != nil {
		return nil, errors.NewUpstreamFetchError(System, httpclient.StatusOf(err), httpclient.BodyOf(err))
	}

	return &adapters.Details{Data: resp.Decoded()}, nil
}

// ExecuteAction dispatches the requested action. Only APPROVE is implemented.
func (a *Adapter) ExecuteAction(ctx context.Context, actionType string, p adapters.Params) (interface{}, error) {
	switch strings.ToUpper(actionType) {
	case adapters.ActionApprove:
		return a.approve(ctx, p)
	default:
		return nil, errors.NewUnsupportedActionError(System, actionType)
	}
}

// approve re-fetches the record, extracts the custaccount object and posts it
// verbatim to the authorize endpoint. Authorization always happens under the
// configured central branch, not the record's originating branch.
func (a *Adapter) approve(ctx context.Context, p adapters.Params) (interface{}, error) {
	opID := uuid.NewString()

	details, err := a.FetchDetails(ctx, p)
	if err != nil {
		return nil, err
	}

	record, ok := details.Data.(map[string]interface{})
	if !ok {
		return nil, errors.NewInvalidResponseShapeError(System, "query response is not a JSON object")
	}

	payload, ok := record["custaccount"]
	if !ok {
		return nil, errors.NewInvalidResponseShapeError(System, "missing custaccount key in query response")
	}

	a.logger.Info("Authorizing FCUBS record", map[string]interface{}{
		"operationId":     opID,
		"requestBranch":   p.Branch,
		"authorizeBranch": a.config.AuthorizeBranch,
		"account":         p.Account,
	})

	resp, err := a.do(ctx, "authorize", http.MethodPost, a.config.AuthorizeAccountURL,
		a.serviceHeaders(a.config.AuthorizeBranch), payload)
	if err != nil {
		return nil, errors.NewUpstreamApprovalError(System, httpclient.StatusOf(err), httpclient.BodyOf(err))
	}

	metrics.AdapterActionsCompleted.WithLabelValues(System, "approve").Inc()
	return resp.Decoded(), nil
}
