package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Summary aggregates a record set into the dashboard metrics.
type Summary struct {
	TodayIncome    float64 `bson:"todayIncome" json:"todayIncome"`
	TodayExpenses  float64 `bson:"todayExpenses" json:"todayExpenses"`
	TodaySwapCount int     `bson:"todaySwapCount" json:"todaySwapCount"`
	TotalIncome    float64 `bson:"totalIncome" json:"totalIncome"`
	TotalExpenses  float64 `bson:"totalExpenses" json:"totalExpenses"`
	TotalSwapCount int     `bson:"totalSwapCount" json:"totalSwapCount"`
	PendingCount   int     `bson:"pendingCount" json:"pendingCount"`
	TotalOwed      float64 `bson:"totalOwed" json:"totalOwed"`
}

// DailySummary is the end-of-day snapshot stored by the scheduler.
type DailySummary struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Date        time.Time          `bson:"date" json:"date"`
	Summary     `bson:",inline"`
	RecordCount int       `bson:"recordCount" json:"recordCount"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
}
