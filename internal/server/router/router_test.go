package router_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
	"github.com/mamadbah2/phonebooks/internal/repository/memory"
	"github.com/mamadbah2/phonebooks/internal/server/handlers"
	"github.com/mamadbah2/phonebooks/internal/server/router"
	"github.com/mamadbah2/phonebooks/internal/service/records"
)

func newServer(t *testing.T, opts router.Options) *httptest.Server {
	t.Helper()
	svc := records.NewService(memory.NewRepository(), nil)
	engine := router.New(handlers.NewRecordsHandler(svc, nil), opts, nil)
	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRouter_RecordLifecycle(t *testing.T) {
	srv := newServer(t, router.Options{})
	today := time.Now().Format(time.DateOnly)

	resp := do(t, http.MethodPost, srv.URL+"/api/records", map[string]any{
		"type":          "supply",
		"supplierName":  "Accra Wholesale",
		"phoneNames":    "Galaxy A14",
		"quantity":      2,
		"unitPrice":     50,
		"totalAmount":   9999,
		"paymentStatus": "pending",
		"date":          today,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotNil(t, created.TotalAmount)
	assert.Equal(t, 100.0, *created.TotalAmount)
	id := created.ID.Hex()

	resp = do(t, http.MethodPut, srv.URL+"/api/records/"+id, map[string]any{"unitPrice": 75})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated models.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&updated))
	assert.Equal(t, 150.0, *updated.TotalAmount)
	assert.Equal(t, "Accra Wholesale", updated.SupplierName)

	resp = do(t, http.MethodGet, srv.URL+"/api/records?search=accra&range=today", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var listed []models.Record
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&listed))
	assert.Len(t, listed, 1)

	resp = do(t, http.MethodGet, srv.URL+"/api/records/summary", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var summary models.Summary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summary))
	assert.Equal(t, 150.0, summary.TotalExpenses)
	assert.Equal(t, 1, summary.PendingCount)

	resp = do(t, http.MethodDelete, srv.URL+"/api/records/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/api/records/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = do(t, http.MethodDelete, srv.URL+"/api/records/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRouter_CreateRejectsMissingFields(t *testing.T) {
	srv := newServer(t, router.Options{})

	resp := do(t, http.MethodPost, srv.URL+"/api/records", map[string]any{
		"type":          "swap-down",
		"customerName":  "Kofi",
		"paymentStatus": "paid",
		"date":          "2026-10-16",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Fields []models.FieldError `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Fields, 3)
}

func TestRouter_BannerHealthAndRequestID(t *testing.T) {
	srv := newServer(t, router.Options{})

	resp := do(t, http.MethodGet, srv.URL+"/", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", "req-42")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "req-42", resp.Header.Get("X-Request-ID"))
}

func TestRouter_CORS(t *testing.T) {
	srv := newServer(t, router.Options{AllowedOrigins: []string{"http://shop.local"}})

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/records", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://shop.local")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, "http://shop.local", resp.Header.Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "http://evil.local")
	resp2, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp2.StatusCode)
}
