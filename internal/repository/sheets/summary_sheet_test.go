package sheets_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"

	"github.com/mamadbah2/phonebooks/internal/config"
	"github.com/mamadbah2/phonebooks/internal/domain/models"
	"github.com/mamadbah2/phonebooks/internal/repository/sheets"
)

func snapshot() models.DailySummary {
	return models.DailySummary{
		Date: time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		Summary: models.Summary{
			TodayIncome:    100,
			TodayExpenses:  30,
			TodaySwapCount: 1,
			TotalIncome:    450,
			TotalExpenses:  130,
			TotalSwapCount: 4,
			PendingCount:   2,
			TotalOwed:      60,
		},
	}
}

func TestSummarySheet_AppendSummary(t *testing.T) {
	var gotPath, gotInputOption string
	var gotBody struct {
		Values [][]interface{} `json:"values"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotInputOption = r.URL.Query().Get("valueInputOption")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	sheet, err := sheets.NewSummarySheet(context.Background(),
		config.SheetsConfig{SpreadsheetID: "sheet-123", SummaryRange: "Summary!A:I"},
		nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	require.NoError(t, sheet.AppendSummary(context.Background(), snapshot()))

	assert.True(t, strings.Contains(gotPath, "sheet-123"), gotPath)
	assert.True(t, strings.HasSuffix(gotPath, ":append"), gotPath)
	assert.Equal(t, "USER_ENTERED", gotInputOption)
	require.Len(t, gotBody.Values, 1)
	require.Len(t, gotBody.Values[0], 9)
	assert.Equal(t, "2026-10-16", gotBody.Values[0][0])
	assert.Equal(t, 60.0, gotBody.Values[0][8])
}

func TestSummarySheet_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"The caller does not have permission"}}`))
	}))
	defer srv.Close()

	sheet, err := sheets.NewSummarySheet(context.Background(),
		config.SheetsConfig{SpreadsheetID: "sheet-123", SummaryRange: "Summary!A:I"},
		nil,
		option.WithEndpoint(srv.URL+"/"),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)

	assert.Error(t, sheet.AppendSummary(context.Background(), snapshot()))
}

func TestNewSummarySheet_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SheetsConfig
	}{
		{name: "MissingSpreadsheet", cfg: config.SheetsConfig{SummaryRange: "Summary!A:I"}},
		{name: "MissingRange", cfg: config.SheetsConfig{SpreadsheetID: "sheet-123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := sheets.NewSummarySheet(context.Background(), tt.cfg, nil, option.WithoutAuthentication())
			assert.Error(t, err)
		})
	}
}

func TestSummaryRow(t *testing.T) {
	row := sheets.SummaryRow(snapshot())

	assert.Equal(t, []interface{}{"2026-10-16", 100.0, 30.0, 1, 450.0, 130.0, 4, 2, 60.0}, row)
}
