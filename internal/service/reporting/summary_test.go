package reporting_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
	"github.com/mamadbah2/phonebooks/internal/service/reporting"
)

func ptr[T any](v T) *T { return &v }

func TestSummarize_SaleAndSupply(t *testing.T) {
	records := []models.Record{
		{Type: models.TypeSale, AmountPaid: 100, Date: at(2026, 10, 16, 10, 0), PaymentStatus: models.StatusPaid},
		{Type: models.TypeSupply, Quantity: ptr(2), UnitPrice: ptr(50.0), TotalAmount: ptr(100.0), Date: at(2026, 10, 16, 11, 0), PaymentStatus: models.StatusPending},
	}

	got := reporting.Summarize(records, now)

	assert.Equal(t, 100.0, got.TodayIncome)
	assert.Equal(t, 100.0, got.TotalIncome)
	assert.Equal(t, 100.0, got.TotalExpenses)
	assert.Equal(t, 100.0, got.TodayExpenses)
	assert.Equal(t, 1, got.PendingCount)
	assert.Equal(t, 0.0, got.TotalOwed)
	assert.Equal(t, 0, got.TotalSwapCount)
}

func TestSummarize_MixedHistory(t *testing.T) {
	records := []models.Record{
		{Type: models.TypeSwapUp, AmountPaid: 80, Date: at(2026, 10, 16, 0, 0), PaymentStatus: models.StatusPartial},
		{Type: models.TypeSwapDown, AmountSellerPaid: 45.5, Date: at(2026, 10, 16, 12, 0), PaymentStatus: models.StatusPaid},
		{Type: models.TypeAndroidSwap, AmountSellerPaid: 20, Date: at(2026, 10, 15, 23, 59), PaymentStatus: models.StatusPending},
		{Type: models.TypeAndroidSwap, Date: at(2026, 10, 14, 9, 0), PaymentStatus: models.StatusPaid},
		{Type: models.TypeSale, AmountPaid: 0.1, Date: at(2026, 10, 2, 9, 0), PaymentStatus: models.StatusNotPaid},
		{Type: models.TypeSale, AmountPaid: 0.2, Date: at(2026, 10, 2, 9, 0), PaymentStatus: models.StatusPaid},
		{Type: models.TypeSupply, TotalAmount: ptr(300.0), AmountSellerPaid: 9, Date: at(2026, 9, 2, 9, 0), PaymentStatus: models.StatusPaid},
	}

	got := reporting.Summarize(records, now)

	assert.Equal(t, models.Summary{
		TodayIncome:    80,
		TodayExpenses:  45.5,
		TodaySwapCount: 2,
		TotalIncome:    80.3,
		TotalExpenses:  365.5,
		TotalSwapCount: 4,
		PendingCount:   3,
		TotalOwed:      80.1,
	}, got)
}

func TestSummarize_FutureDatedCountsAsToday(t *testing.T) {
	records := []models.Record{
		{Type: models.TypeSale, AmountPaid: 10, Date: at(2026, 10, 20, 9, 0), PaymentStatus: models.StatusPaid},
	}

	got := reporting.Summarize(records, now)
	assert.Equal(t, 10.0, got.TodayIncome)
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, models.Summary{}, reporting.Summarize(nil, now))
}
