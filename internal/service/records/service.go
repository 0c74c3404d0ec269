package records

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
	"github.com/mamadbah2/phonebooks/internal/service/reporting"
)

// Service validates, derives and persists records, and answers list and
// summary queries over the stored set.
type Service struct {
	repo   Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewService constructs a records service.
func NewService(repo Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    time.Now,
	}
}

// Create validates the input, derives the total and stores a new record.
func (s *Service) Create(ctx context.Context, in models.RecordInput) (*models.Record, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	rec := models.NewRecord(in)
	models.ComputeTotal(&rec)

	if err := s.repo.Insert(ctx, &rec); err != nil {
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.logger.Info("record created",
		zap.String("id", rec.ID.Hex()),
		zap.String("type", string(rec.Type)),
		zap.String("payment_status", string(rec.PaymentStatus)))

	return &rec, nil
}

// Get fetches a single record.
func (s *Service) Get(ctx context.Context, id string) (*models.Record, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get record %s: %w", id, err)
	}
	return rec, nil
}

// Update shallow-merges the supplied fields onto the stored record. Omitted
// fields keep their stored values; the type tag cannot change.
func (s *Service) Update(ctx context.Context, id string, in models.RecordInput) (*models.Record, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update record %s: %w", id, err)
	}

	if in.Type != nil && *in.Type != existing.Type {
		return nil, models.NewValidationError("type", "cannot be changed")
	}

	merged := existing.Input().Merge(in)
	if err := merged.Validate(); err != nil {
		return nil, err
	}

	derived := models.NewRecord(merged)
	models.ComputeTotal(&derived)

	updated, err := s.repo.Replace(ctx, id, models.RecordPatch{
		RecordInput: in,
		TotalAmount: derived.TotalAmount,
	})
	if err != nil {
		return nil, fmt.Errorf("update record %s: %w", id, err)
	}

	s.logger.Info("record updated", zap.String("id", id), zap.String("type", string(updated.Type)))
	return updated, nil
}

// Remove permanently deletes a record.
func (s *Service) Remove(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return fmt.Errorf("remove record %s: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("remove record %s: %w", id, err)
	}

	s.logger.Info("record removed", zap.String("id", id))
	return nil
}

// List returns the records matching the search text and date range, latest
// date first.
func (s *Service) List(ctx context.Context, search string, dateRange reporting.DateRange) ([]models.Record, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return reporting.Filter(all, search, dateRange, s.now()), nil
}

// Summary aggregates the full record set.
func (s *Service) Summary(ctx context.Context) (models.Summary, error) {
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summarize records: %w", err)
	}
	return reporting.Summarize(all, s.now()), nil
}
