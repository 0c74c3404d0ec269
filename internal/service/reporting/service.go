package reporting

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
)

const dateLayout = "2006-01-02"

// RecordLister reads the full record set.
type RecordLister interface {
	ListAll(ctx context.Context) ([]models.Record, error)
}

// SummaryExporter mirrors snapshots to an external destination.
type SummaryExporter interface {
	AppendSummary(ctx context.Context, summary models.DailySummary) error
}

// SummaryStore persists end-of-day snapshots.
type SummaryStore interface {
	SaveDailySummary(ctx context.Context, summary models.DailySummary) error
}

// Service produces daily summary snapshots.
type Service struct {
	records  RecordLister
	store    SummaryStore
	exporter SummaryExporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires a new reporting service instance. exporter may be nil
// when spreadsheet export is disabled.
func NewService(records RecordLister, store SummaryStore, exporter SummaryExporter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		records:  records,
		store:    store,
		exporter: exporter,
		logger:   logger,
		now:      time.Now,
	}
}

// Snapshot summarizes all records as of now, stores the result and, when an
// exporter is configured, mirrors it there.
func (s *Service) Snapshot(ctx context.Context) (models.DailySummary, error) {
	records, err := s.records.ListAll(ctx)
	if err != nil {
		return models.DailySummary{}, fmt.Errorf("load records: %w", err)
	}

	now := s.now()
	snapshot := models.DailySummary{
		Date:        time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()),
		Summary:     Summarize(records, now),
		RecordCount: len(records),
		CreatedAt:   now,
	}

	if err := s.store.SaveDailySummary(ctx, snapshot); err != nil {
		return models.DailySummary{}, fmt.Errorf("save daily summary: %w", err)
	}

	if s.exporter != nil {
		if err := s.exporter.AppendSummary(ctx, snapshot); err != nil {
			s.logger.Warn("failed to export daily summary", zap.Error(err))
		}
	}

	s.logger.Info("daily summary stored",
		zap.String("date", snapshot.Date.Format(dateLayout)),
		zap.Int("records", snapshot.RecordCount),
		zap.Float64("total_income", snapshot.TotalIncome),
		zap.Float64("total_expenses", snapshot.TotalExpenses))

	return snapshot, nil
}
