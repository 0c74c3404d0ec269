// Package memory provides a process-local record store with the same
// semantics as the MongoDB repository. It backs STORE_DRIVER=memory and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
)

// Repository keeps records in a map keyed by hex id.
type Repository struct {
	mu        sync.RWMutex
	records   map[string]models.Record
	summaries []models.DailySummary
	now       func() time.Time
}

// NewRepository returns an empty store.
func NewRepository() *Repository {
	return &Repository{
		records: make(map[string]models.Record),
		now:     time.Now,
	}
}

func (r *Repository) Insert(_ context.Context, rec *models.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	rec.ID = primitive.NewObjectID()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	r.records[rec.ID.Hex()] = clone(*rec)
	return nil
}

func (r *Repository) ListAll(_ context.Context) ([]models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, clone(rec))
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*models.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}
	out := clone(rec)
	return &out, nil
}

func (r *Repository) Replace(_ context.Context, id string, patch models.RecordPatch) (*models.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, models.ErrRecordNotFound
	}

	rec.Apply(patch)
	rec.UpdatedAt = r.now()
	r.records[id] = rec

	out := clone(rec)
	return &out, nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return models.ErrRecordNotFound
	}
	delete(r.records, id)
	return nil
}

// SaveDailySummary appends a snapshot.
func (r *Repository) SaveDailySummary(_ context.Context, summary models.DailySummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if summary.ID.IsZero() {
		summary.ID = primitive.NewObjectID()
	}
	r.summaries = append(r.summaries, summary)
	return nil
}

// DailySummaries returns the stored snapshots in insertion order.
func (r *Repository) DailySummaries() []models.DailySummary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]models.DailySummary(nil), r.summaries...)
}

// clone detaches the pointer fields so callers cannot mutate stored state.
func clone(rec models.Record) models.Record {
	if rec.Quantity != nil {
		q := *rec.Quantity
		rec.Quantity = &q
	}
	if rec.UnitPrice != nil {
		p := *rec.UnitPrice
		rec.UnitPrice = &p
	}
	if rec.TotalAmount != nil {
		t := *rec.TotalAmount
		rec.TotalAmount = &t
	}
	return rec
}
