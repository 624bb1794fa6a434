package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := logging.SetupLogging("error")
	logger.Out = io.Discard

	store := memory.NewStorage()
	delegator := operator.NewOperatorDelegator(store, 2, logger)
	delegator.Start()
	t.Cleanup(delegator.Stop)

	rest := &Rest{
		Logger:  logger,
		Service: service.NewService(store, delegator),
		Storage: store,
	}
	server := httptest.NewServer(rest.Routes())
	t.Cleanup(server.Close)
	return server
}

func call(t *testing.T, server *httptest.Server, method, path string, userID uuid.UUID, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		payload = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, server.URL+path, payload)
	require.NoError(t, err)
	req.Header.Set("X-User-ID", userID.String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	decoded := map[string]interface{}{}
	if resp.StatusCode != http.StatusNoContent {
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
	}
	return resp, decoded
}

func TestStatus(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/status")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLedgerFlow(t *testing.T) {
	server := newTestServer(t)
	userID := uuid.Must(uuid.NewV4())

	resp, acc := call(t, server, http.MethodPost, "/v1/account", userID, map[string]string{"name": "Checking", "startingBalance": "500"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	accountID := acc["id"].(string)

	resp, g := call(t, server, http.MethodPost, "/v1/goal", userID, map[string]string{
		"accountID":    accountID,
		"name":         "Bike",
		"targetAmount": "1000",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	goalID := g["id"].(string)

	resp, _ = call(t, server, http.MethodPost, "/v1/goal/"+goalID+"/deposit", userID, map[string]string{"amount": "200"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, acc = call(t, server, http.MethodGet, "/v1/account/"+accountID, userID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "300.00", acc["balance"])

	resp, g = call(t, server, http.MethodGet, "/v1/goal/"+goalID, userID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "200.00", g["currentAmount"])

	resp, _ = call(t, server, http.MethodPost, "/v1/account/"+accountID+"/withdraw", userID, map[string]string{"amount": "301"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = call(t, server, http.MethodGet, "/v1/account/"+accountID, uuid.Must(uuid.NewV4()), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, rec := call(t, server, http.MethodGet, "/v1/account/"+accountID+"/reconcile", userID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0.00", rec["drift"])
}
