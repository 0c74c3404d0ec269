package reporting

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
)

// Summarize reduces a record set into dashboard metrics. The "today" subset
// holds records dated at or after the start of now's calendar day.
//
// TotalOwed sums amountPaid over unsettled records. Partial payments are not
// netted out.
func Summarize(records []models.Record, now time.Time) models.Summary {
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var (
		todayIncome, todayExpenses decimal.Decimal
		totalIncome, totalExpenses decimal.Decimal
		owed                       decimal.Decimal
		summary                    models.Summary
	)

	for _, rec := range records {
		today := !rec.Date.Before(startOfDay)
		class := models.Classify(rec)
		amount := decimal.NewFromFloat(class.Amount)

		switch {
		case class.IsIncome:
			totalIncome = totalIncome.Add(amount)
			if today {
				todayIncome = todayIncome.Add(amount)
			}
		case class.IsExpense:
			totalExpenses = totalExpenses.Add(amount)
			if today {
				todayExpenses = todayExpenses.Add(amount)
			}
		}

		if rec.IsSwap() {
			summary.TotalSwapCount++
			if today {
				summary.TodaySwapCount++
			}
		}

		if rec.PaymentStatus.IsPending() {
			summary.PendingCount++
			owed = owed.Add(decimal.NewFromFloat(rec.AmountPaid))
		}
	}

	summary.TodayIncome = todayIncome.InexactFloat64()
	summary.TodayExpenses = todayExpenses.InexactFloat64()
	summary.TotalIncome = totalIncome.InexactFloat64()
	summary.TotalExpenses = totalExpenses.InexactFloat64()
	summary.TotalOwed = owed.InexactFloat64()
	return summary
}
