// Package obbrn implements the adapter for the OBBRN branch banking backend.
//
// OBBRN uses two-phase, per-call-scoped authentication: every privileged
// call first exchanges the service credentials for a bearer token whose
// capability is determined by the appId scope header presented at login.
// Viewing a journal entry and approving it require separately-scoped tokens,
// so an approval performs two distinct logins. Tokens are acquired fresh per
// purpose and never cached or reused across scopes.
package obbrn

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

const System = "OBBRN"

// actionCashWithdrawal is reserved for a future workflow.
const actionCashWithdrawal = "CASH_WITHDRAWAL"

type Adapter struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func New(cfg *Config, log logger.Logger) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for obbrn adapter: %w", err)
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

// authResult holds one scoped login outcome. The gateway occasionally issues
// a session cookie alongside the token; approval calls forward it.
type authResult struct {
	token  string
	cookie string
}

// authenticate exchanges the service credentials for a bearer token scoped by
// appID and branch. Each call obtains a fresh token.
func (a *Adapter) authenticate(ctx context.Context, appID, branch string) (*authResult, error) {
	headers := map[string]string{
		"appId":      appID,
		"branchCode": branch,
		"userId":     a.config.Username,
		"entityId":   a.config.EntityID,
		"sourceCode": a.config.SourceCode,
	}
	body := map[string]string{
		"username": a.config.Username,
		"password": a.config.Password,
	}

	a.logger.Debug("Authenticating with OBBRN", map[string]interface{}{
		"appId":  appID,
		"branch": branch,
	})

	resp, err := a.do(ctx, "auth", http.MethodPost, a.config.AuthURL, headers, body)
	if err != nil {
		return nil, errors.NewUpstreamAuthError(System, httpclient.StatusOf(err), httpclient.BodyOf(err))
	}

	var authData map[string]interface{}
	if err := resp.JSON(&authData); err != nil {
		return nil, errors.NewUpstreamAuthError(System, resp.Status, string(resp.Body))
	}

	token := firstString(authData, "access_token", "token", "jwt")
	if token == "" {
		return nil, errors.NewUpstreamAuthError(System, resp.Status, string(resp.Body))
	}

	return &authResult{
		token:  token,
		cookie: resp.Header.Get("Set-Cookie"),
	}, nil
}

// FetchDetails authenticates with the view scope and retrieves the journal
// entry for the given log identifier, returning the raw response.
func (a *Adapter) FetchDetails(ctx context.Context, p adapters.Params) (*adapters.Details, error) {
	if p.LogID == "" {
		return nil, errors.NewMissingParameterError("ejLogId is required for OBBRN details")
	}

	opID := uuid.NewString()
	branch := a.branchOrDefault(p.Branch)

	auth, err := a.authenticate(ctx, a.config.AppIDView, branch)
	if err != nil {
		return nil, err
	}

	detailsURL := fmt.Sprintf("%s?EJLogId=%s", a.config.EJLogURL, url.QueryEscape(p.LogID))

	a.logger.Info("Fetching OBBRN journal entry", map[string]interface{}{
		"operationId": opID,
		"ejLogId":     p.LogID,
		"branch":      branch,
	})

	headers := map[string]string{
		"Authorization": "Bearer " + auth.token,
		"Content-Type":  "application/json",
		"appId":         a.config.AppIDView,
		"branchCode":    branch,
		"entityId":      a.config.EntityID,
		"userId":        a.config.Username,
	}

	resp, err := a.do(ctx, "ejlog", http.MethodGet, detailsURL, headers, nil)
	if err != nil {
		return nil, errors.NewUpstreamFetchError(System, httpclient.StatusOf(err), httpclient.BodyOf(err))
	}

	return &adapters.Details{Data: resp.Decoded()}, nil
}

// ExecuteAction dispatches the requested action. Only APPROVE is implemented;
// CASH_WITHDRAWAL is reserved.
func (a *Adapter) ExecuteAction(ctx context.Context, actionType string, p adapters.Params) (interface{}, error) {
	switch strings.ToUpper(actionType) {
	case adapters.ActionApprove:
		return a.approve(ctx, p)
	case actionCashWithdrawal:
		return nil, errors.NewUnsupportedActionError(System, actionType)
	default:
		return nil, errors.NewUnsupportedActionError(System, actionType)
	}
}

// approve walks the full approval sequence: view-scope login and details
// fetch, payload construction, a second approve-scope login, then the
// approval POST. Steps are strictly sequential; the first failure is
// terminal, with no rollback of completed steps (tokens expire naturally).
func (a *Adapter) approve(ctx context.Context, p adapters.Params) (interface{}, error) {
	opID := uuid.NewString()
	branch := a.branchOrDefault(p.Branch)

	details, err := a.FetchDetails(ctx, p)
	if err != nil {
		return nil, err
	}

	logData, err := extractLogRecord(details.Data)
	if err != nil {
		return nil, err
	}

	functionCode := firstString(logData, "functionCode")
	txnRef := firstString(logData, "txnRefNo", "txnRefNumber")
	if functionCode == "" || txnRef == "" {
		return nil, errors.NewInvalidResponseShapeError(System,
			"journal entry missing functionCode or txnRefNumber")
	}

	supervisorID := p.UserID
	if supervisorID == "" {
		supervisorID = a.config.Username
	}

	payload := map[string]interface{}{
		"functionCode":   functionCode,
		"subScreenClass": firstString(logData, "subScreenClass"),
		"ejId":           p.LogID,
		"txnRefNumber":   txnRef,
		"supervisorId":   supervisorID,
	}

	a.logger.Info("Constructed OBBRN approval payload", map[string]interface{}{
		"operationId":  opID,
		"ejLogId":      p.LogID,
		"txnRefNumber": txnRef,
		"supervisorId": supervisorID,
	})

	// Fresh token for the approval scope; the view token grants no approval
	// capability.
	auth, err := a.authenticate(ctx, a.config.AppIDApprove, branch)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{
		"Authorization": "Bearer " + auth.token,
		"appId":         a.config.AppIDApprove,
		"branchCode":    branch,
		"userId":        supervisorID,
		"entityId":      a.config.EntityID,
	}
	if auth.cookie != "" {
		headers["Cookie"] = auth.cookie
	}

	resp, err := a.do(ctx, "approve", http.MethodPost, a.config.ApproveURL, headers, payload)
	if err != nil {
		return nil, errors.NewUpstreamApprovalError(System, httpclient.StatusOf(err), httpclient.BodyOf(err))
	}

	metrics.AdapterActionsCompleted.WithLabelValues(System, "approve").Inc()
	return resp.Decoded(), nil
}

func (a *Adapter) branchOrDefault(branch string) string {
	if branch == "" {
		return a.config.DefaultBranch
	}
	return branch
}

// extractLogRecord unwraps the journal entry: the record lives under a "data"
// key on newer gateway versions and at the root on older ones.
func extractLogRecord(data interface{}) (map[string]interface{}, error) {
	m, ok := data.(map[string]interface{})
	if !ok {
		return nil, errors.NewInvalidResponseShapeError(System, "journal response is not a JSON object")
	}
	if inner, ok := m["data"].(map[string]interface{}); ok {
		return inner, nil
	}
	return m, nil
}

// firstString returns the first non-empty string value among keys.
func firstString(m map[string]interface{}, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
