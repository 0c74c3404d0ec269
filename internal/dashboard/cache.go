package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
	"github.com/mamadbah2/phonebooks/internal/service/reporting"
)

// Source is the remote record API the cache mirrors.
type Source interface {
	ListRecords(ctx context.Context, search, dateRange string) ([]models.Record, error)
	CreateRecord(ctx context.Context, in models.RecordInput) (*models.Record, error)
	UpdateRecord(ctx context.Context, id string, in models.RecordInput) (*models.Record, error)
	DeleteRecord(ctx context.Context, id string) error
}

// View is what the dashboard renders: the filtered list and the summary of
// the whole cached set.
type View struct {
	Records []models.Record
	Summary models.Summary
}

// Cache keeps the last fetched record list. Every mutation goes to the
// source first and is followed by a full refresh; a failed call leaves the
// cached list as it was.
type Cache struct {
	source Source
	logger *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	records []models.Record
}

// NewCache builds an empty cache over source.
func NewCache(source Source, logger *zap.Logger) *Cache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cache{
		source: source,
		logger: logger,
		now:    time.Now,
	}
}

// Refresh replaces the cached list with the source's full record set.
func (c *Cache) Refresh(ctx context.Context) error {
	records, err := c.source.ListRecords(ctx, "", "")
	if err != nil {
		return fmt.Errorf("refresh records: %w", err)
	}

	c.mu.Lock()
	c.records = records
	c.mu.Unlock()

	c.logger.Debug("record cache refreshed", zap.Int("records", len(records)))
	return nil
}

// Create submits a new record and refreshes.
func (c *Cache) Create(ctx context.Context, in models.RecordInput) (*models.Record, error) {
	rec, err := c.source.CreateRecord(ctx, in)
	if err != nil {
		return nil, err
	}
	return rec, c.Refresh(ctx)
}

// Update submits a partial update and refreshes.
func (c *Cache) Update(ctx context.Context, id string, in models.RecordInput) (*models.Record, error) {
	rec, err := c.source.UpdateRecord(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return rec, c.Refresh(ctx)
}

// Delete removes a record and refreshes.
func (c *Cache) Delete(ctx context.Context, id string) error {
	if err := c.source.DeleteRecord(ctx, id); err != nil {
		return err
	}
	return c.Refresh(ctx)
}

// Records returns a copy of the cached list.
func (c *Cache) Records() []models.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Record, len(c.records))
	copy(out, c.records)
	return out
}

// View filters the cached list locally and summarizes the unfiltered set.
func (c *Cache) View(search string, dateRange reporting.DateRange) View {
	all := c.Records()
	now := c.now()
	return View{
		Records: reporting.Filter(all, search, dateRange, now),
		Summary: reporting.Summarize(all, now),
	}
}
