package sheets

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/phonebooks/internal/config"
	"github.com/mamadbah2/phonebooks/internal/domain/models"
)

const dateLayout = "2006-01-02"

// SummarySheet mirrors daily summaries into a Google spreadsheet, one row
// per snapshot.
type SummarySheet struct {
	values        *sheetsapi.SpreadsheetsValuesService
	spreadsheetID string
	summaryRange  string
	logger        *zap.Logger
}

// NewSummarySheet builds a Sheets API backed exporter. Extra client options
// are applied after the credentials taken from cfg.
func NewSummarySheet(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger, extra ...option.ClientOption) (*SummarySheet, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SpreadsheetID == "" {
		return nil, errors.New("spreadsheet id must not be empty")
	}
	if cfg.SummaryRange == "" {
		return nil, errors.New("summary range must not be empty")
	}

	opts := make([]option.ClientOption, 0, len(extra)+2)
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	}
	opts = append(opts, extra...)

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &SummarySheet{
		values:        service.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		summaryRange:  cfg.SummaryRange,
		logger:        logger,
	}, nil
}

// AppendSummary writes the snapshot as a new row below the existing ones.
func (s *SummarySheet) AppendSummary(ctx context.Context, summary models.DailySummary) error {
	payload := &sheetsapi.ValueRange{Values: [][]interface{}{SummaryRow(summary)}}

	_, err := s.values.Append(s.spreadsheetID, s.summaryRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append summary into range %s: %w", s.summaryRange, err)
	}

	s.logger.Debug("summary appended to sheet",
		zap.String("range", s.summaryRange),
		zap.String("date", summary.Date.Format(dateLayout)))
	return nil
}

// SummaryRow lays out a snapshot as: date, today income, today expenses,
// today swaps, total income, total expenses, total swaps, pending, owed.
func SummaryRow(s models.DailySummary) []interface{} {
	return []interface{}{
		s.Date.Format(dateLayout),
		s.TodayIncome,
		s.TodayExpenses,
		s.TodaySwapCount,
		s.TotalIncome,
		s.TotalExpenses,
		s.TotalSwapCount,
		s.PendingCount,
		s.TotalOwed,
	}
}
