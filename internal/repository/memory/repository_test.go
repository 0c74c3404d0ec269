package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
	"github.com/mamadbah2/phonebooks/internal/repository/memory"
)

func TestRepository_ReplaceIsShallowMerge(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	rec := models.Record{Type: models.TypeSale, CustomerName: "A", AmountPaid: 10, PaymentStatus: models.StatusPaid}
	require.NoError(t, repo.Insert(ctx, &rec))

	paid := 20.0
	got, err := repo.Replace(ctx, rec.ID.Hex(), models.RecordPatch{RecordInput: models.RecordInput{AmountPaid: &paid}})
	require.NoError(t, err)

	assert.Equal(t, "A", got.CustomerName)
	assert.Equal(t, 20.0, got.AmountPaid)
	assert.Equal(t, rec.ID, got.ID)
	assert.False(t, got.UpdatedAt.Before(rec.UpdatedAt))
}

func TestRepository_ListAllSortsByDateDescending(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	for _, day := range []int{3, 10, 1} {
		rec := models.Record{
			Type:          models.TypeSale,
			PaymentStatus: models.StatusPaid,
			Date:          time.Date(2026, 10, day, 0, 0, 0, 0, time.UTC),
		}
		require.NoError(t, repo.Insert(ctx, &rec))
	}

	got, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 10, got[0].Date.Day())
	assert.Equal(t, 3, got[1].Date.Day())
	assert.Equal(t, 1, got[2].Date.Day())
}

func TestRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	rec := models.Record{Type: models.TypeSale, PaymentStatus: models.StatusPaid}
	require.NoError(t, repo.Insert(ctx, &rec))
	require.NoError(t, repo.Delete(ctx, rec.ID.Hex()))

	_, err := repo.GetByID(ctx, rec.ID.Hex())
	assert.ErrorIs(t, err, models.ErrRecordNotFound)

	_, err = repo.Replace(ctx, rec.ID.Hex(), models.RecordPatch{})
	assert.ErrorIs(t, err, models.ErrRecordNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, rec.ID.Hex()), models.ErrRecordNotFound)
}

func TestRepository_ReturnsDetachedCopies(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewRepository()

	qty := 2
	rec := models.Record{Type: models.TypeSupply, Quantity: &qty, PaymentStatus: models.StatusPaid}
	require.NoError(t, repo.Insert(ctx, &rec))

	qty = 99
	got, err := repo.GetByID(ctx, rec.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 2, *got.Quantity)

	*got.Quantity = 7
	again, err := repo.GetByID(ctx, rec.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 2, *again.Quantity)
}

func TestRepository_SaveDailySummary(t *testing.T) {
	repo := memory.NewRepository()

	err := repo.SaveDailySummary(context.Background(), models.DailySummary{RecordCount: 4})
	require.NoError(t, err)

	stored := repo.DailySummaries()
	require.Len(t, stored, 1)
	assert.Equal(t, 4, stored[0].RecordCount)
	assert.False(t, stored[0].ID.IsZero())
}
