// internal/adapters/fcubs/adapter_test.go
package fcubs

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haricode-hub/dashboard/internal/adapters"
	"github.com/haricode-hub/dashboard/internal/common/errors"
	"github.com/haricode-hub/dashboard/internal/common/httpclient"
	"github.com/haricode-hub/dashboard/internal/common/logger"
)

const (
	testQueryURL     = "https://fcubs.test/FCUBSAccService/QueryCustAcc"
	testAuthorizeURL = "https://fcubs.test/FCUBSAccService/AuthorizeCustAcc"
)

func createTestConfig() *Config {
	cfg := DefaultConfig()
	cfg.QueryAccountURL = testQueryURL
	cfg.AuthorizeAccountURL = testAuthorizeURL
	return cfg
}

func createTestAdapter(t *testing.T) *Adapter {
	hc := &http.Client{Timeout: 5 * time.Second}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)

	a, err := NewWithClient(createTestConfig(), httpclient.NewWithHTTPClient(hc), logger.NewTestLogger(t))
	require.NoError(t, err)
	return a
}

func TestFetchDetails_MissingParameters(t *testing.T) {
	a := createTestAdapter(t)

	tests := []struct {
		name   string
		params adapters.Params
	}{
		{name: "missing both", params: adapters.Params{}},
		{name: "missing account", params: adapters.Params{Branch: "011"}},
		{name: "missing branch", params: adapters.Params{Account: "0110009"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, err := a.FetchDetails(context.Background(), tt.params)
			assert.Nil(t, details)
			assert.True(t, errors.IsMissingParameter(err))
		})
	}

	// Validation must reject before any backend traffic happens.
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestFetchDetails_Success(t *testing.T) {
	a := createTestAdapter(t)

	httpmock.RegisterResponder(http.MethodGet, testQueryURL+"/brn/011/acc/0110009",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "011", req.Header.Get("BRANCH"))
			assert.Equal(t, "ENTITY_ID1", req.Header.Get("Entity"))
			assert.Equal(t, "FCAT", req.Header.Get("Source"))
			assert.Equal(t, "SYSTEM", req.Header.Get("Userid"))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"custaccount": map[string]interface{}{"ACC": "0110009"},
			})
		})

	details, err := a.FetchDetails(context.Background(), adapters.Params{Branch: "011", Account: "0110009"})
	require.NoError(t, err)

	data, ok := details.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "custaccount")
}

func TestFetchDetails_UpstreamFailure(t *testing.T) {
	a := createTestAdapter(t)

	httpmock.RegisterResponder(http.MethodGet, testQueryURL+"/brn/011/acc/0110009",
		httpmock.NewStringResponder(http.StatusInternalServerError, "ORA-00001 backend down"))

	details, err := a.FetchDetails(context.Background(), adapters.Params{Branch: "011", Account: "0110009"})
	assert.Nil(t, details)
	require.True(t, errors.IsUpstreamFetch(err))

	var appErr *errors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.UpstreamStatus)
	assert.Contains(t, appErr.UpstreamBody, "ORA-00001")
}

func TestApprove_AuthorizesUnderCentralBranch(t *testing.T) {
	a := createTestAdapter(t)

	httpmock.RegisterResponder(http.MethodGet, testQueryURL+"/brn/011/acc/0110009",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{
			"custaccount": map[string]interface{}{"ACC": "0110009", "BRN": "011"},
		}))

	var authorizeBranch string
	httpmock.RegisterResponder(http.MethodPost, testAuthorizeURL,
		func(req *http.Request) (*http.Response, error) {
			authorizeBranch = req.Header.Get("BRANCH")
			return httpmock.NewJsonResponse(http.StatusOK, map[string]interface{}{
				"FCUBS_RES": "SUCCESS",
			})
		})

	result, err := a.ExecuteAction(context.Background(), adapters.ActionApprove,
		adapters.Params{Branch: "011", Account: "0110009"})
	require.NoError(t, err)
	assert.NotNil(t, result)

	// Authorization always runs under the central branch, not the record's
	// originating branch.
	assert.Equal(t, "000", authorizeBranch)
	assert.Equal(t, 2, httpmock.GetTotalCallCount())
}

func TestApprove_MissingCustAccountKey(t *testing.T) {
	a := createTestAdapter(t)

	httpmock.RegisterResponder(http.MethodGet, testQueryURL+"/brn/011/acc/0110009",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{
			"somethingElse": true,
		}))

	result, err := a.ExecuteAction(context.Background(), adapters.ActionApprove,
		adapters.Params{Branch: "011", Account: "0110009"})
	assert.Nil(t, result)
	assert.True(t, errors.IsInvalidShape(err))

	// The authorize endpoint must never be touched on a malformed record.
	info := httpmock.GetCallCountInfo()
	assert.Zero(t, info["POST "+testAuthorizeURL])
}

func TestApprove_AuthorizeFailureSurfacesDiagnostics(t *testing.T) {
	a := createTestAdapter(t)

	httpmock.RegisterResponder(http.MethodGet, testQueryURL+"/brn/011/acc/0110009",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{
			"custaccount": map[string]interface{}{"ACC": "0110009"},
		}))
	httpmock.RegisterResponder(http.MethodPost, testAuthorizeURL,
		httpmock.NewStringResponder(http.StatusConflict, "record already authorized"))

	result, err := a.ExecuteAction(context.Background(), adapters.ActionApprove,
		adapters.Params{Branch: "011", Account: "0110009"})
	assert.Nil(t, result)
	require.True(t, errors.IsUpstreamApproval(err))

	var appErr *errors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusConflict, appErr.UpstreamStatus)
	assert.Contains(t, appErr.UpstreamBody, "already authorized")
}

func TestExecuteAction_UnsupportedAction(t *testing.T) {
	a := createTestAdapter(t)

	result, err := a.ExecuteAction(context.Background(), "REVERSE",
		adapters.Params{Branch: "011", Account: "0110009"})
	assert.Nil(t, result)
	assert.True(t, errors.IsUnsupportedAction(err))
	assert.Equal(t, 0, httpmock.GetTotalCallCount())
}

func TestExecuteAction_ApproveIsCaseInsensitive(t *testing.T) {
	a := createTestAdapter(t)

	httpmock.RegisterResponder(http.MethodGet, testQueryURL+"/brn/011/acc/0110009",
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{
			"custaccount": map[string]interface{}{"ACC": "0110009"},
		}))
	httpmock.RegisterResponder(http.MethodPost, testAuthorizeURL,
		httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]interface{}{"FCUBS_RES": "SUCCESS"}))

	_, err := a.ExecuteAction(context.Background(), "approve",
		adapters.Params{Branch: "011", Account: "0110009"})
	assert.NoError(t, err)
}

func TestConfig_Validate(t *testing.T) {
	cfg := DefaultConfig()
	assert.Error(t, cfg.Validate())

	cfg.QueryAccountURL = testQueryURL
	assert.Error(t, cfg.Validate())

	cfg.AuthorizeAccountURL = testAuthorizeURL
	assert.NoError(t, cfg.Validate())
}
