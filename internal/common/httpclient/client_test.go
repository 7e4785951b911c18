// internal/common/httpclient/client_test.go
package httpclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testURL = "https://backend.test/resource"

func createTestClient(t *testing.T) *Client {
	hc := &http.Client{Timeout: 5 * time.Second}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewWithHTTPClient(hc)
}

func TestDo_EncodesBodyAndHeaders(t *testing.T) {
	c := createTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, testURL,
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
			assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))

			body, _ := io.ReadAll(req.Body)
			var payload map[string]string
			require.NoError(t, json.Unmarshal(body, &payload))
			assert.Equal(t, "value", payload["key"])

			return httpmock.NewJsonResponse(http.StatusCreated, map[string]string{"id": "1"})
		})

	resp, err := c.Do(context.Background(), http.MethodPost, testURL,
		map[string]string{"Authorization": "Bearer tok"},
		map[string]string{"key": "value"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)

	var out map[string]string
	require.NoError(t, resp.JSON(&out))
	assert.Equal(t, "1", out["id"])
}

func TestDo_NonSuccessPreservesStatusAndBody(t *testing.T) {
	c := createTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, testURL,
		httpmock.NewStringResponder(http.StatusBadGateway, "upstream exploded"))

	resp, err := c.Do(context.Background(), http.MethodGet, testURL, nil, nil)
	assert.Nil(t, resp)
	require.Error(t, err)

	assert.Equal(t, http.StatusBadGateway, StatusOf(err))
	assert.Equal(t, "upstream exploded", BodyOf(err))
}

func TestDo_ContextCancellation(t *testing.T) {
	c := createTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, testURL,
		httpmock.NewStringResponder(http.StatusOK, "{}").Delay(200*time.Millisecond))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	resp, err := c.Do(ctx, http.MethodGet, testURL, nil, nil)
	assert.Nil(t, resp)
	require.Error(t, err)

	// Transport errors carry no upstream status.
	assert.Equal(t, 0, StatusOf(err))
	assert.NotEmpty(t, BodyOf(err))
}

func TestResponse_DecodedFallsBackToTextEnvelope(t *testing.T) {
	r := &Response{Status: http.StatusOK, Body: []byte("plain text ack")}

	decoded, ok := r.Decoded().(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "plain text ack", decoded["message"])
}

func TestResponse_DecodedParsesJSON(t *testing.T) {
	r := &Response{Status: http.StatusOK, Body: []byte(`{"a":1}`)}

	decoded, ok := r.Decoded().(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), decoded["a"])
}

func TestStatusHelpers_NonStatusError(t *testing.T) {
	err := context.DeadlineExceeded
	assert.Equal(t, 0, StatusOf(err))
	assert.Equal(t, err.Error(), BodyOf(err))
	assert.Equal(t, "", BodyOf(nil))
}
