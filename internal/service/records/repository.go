package records

import (
	"context"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
)

// Repository is the persistence boundary for records. Implementations return
// models.ErrRecordNotFound for unknown ids and *models.StoreError for
// failures of the underlying store.
//
//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=records
type Repository interface {
	Insert(ctx context.Context, rec *models.Record) error
	ListAll(ctx context.Context) ([]models.Record, error)
	GetByID(ctx context.Context, id string) (*models.Record, error)
	Replace(ctx context.Context, id string, patch models.RecordPatch) (*models.Record, error)
	Delete(ctx context.Context, id string) error
}
