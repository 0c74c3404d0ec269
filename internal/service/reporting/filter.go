package reporting

import (
	"fmt"
	"strings"
	"time"

	"github.com/mamadbah2/phonebooks/internal/domain/models"
)

// DateRange selects records relative to the current moment.
type DateRange string

const (
	RangeAll   DateRange = "all"
	RangeToday DateRange = "today"
	RangeWeek  DateRange = "week"
	RangeMonth DateRange = "month"
)

// ParseDateRange maps a query value onto a DateRange. Empty means all.
func ParseDateRange(value string) (DateRange, error) {
	switch DateRange(strings.ToLower(strings.TrimSpace(value))) {
	case "", RangeAll:
		return RangeAll, nil
	case RangeToday:
		return RangeToday, nil
	case RangeWeek:
		return RangeWeek, nil
	case RangeMonth:
		return RangeMonth, nil
	}
	return "", fmt.Errorf("unsupported date range %q", value)
}

// Filter returns the records matching both the date range and the search
// text, preserving input order. Calendar comparisons use now's location.
func Filter(records []models.Record, search string, dateRange DateRange, now time.Time) []models.Record {
	needle := strings.ToLower(search)

	out := make([]models.Record, 0, len(records))
	for _, rec := range records {
		if !inRange(rec.Date, dateRange, now) {
			continue
		}
		if !strings.Contains(searchText(rec), needle) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

func inRange(date time.Time, dateRange DateRange, now time.Time) bool {
	local := date.In(now.Location())

	switch dateRange {
	case RangeToday:
		y, m, d := local.Date()
		ny, nm, nd := now.Date()
		return y == ny && m == nm && d == nd
	case RangeWeek:
		return !date.Before(now.AddDate(0, 0, -7))
	case RangeMonth:
		return local.Year() == now.Year() && local.Month() == now.Month()
	default:
		return true
	}
}

func searchText(rec models.Record) string {
	return strings.ToLower(strings.Join([]string{
		rec.CustomerName,
		rec.SupplierName,
		rec.PhoneGiven,
		rec.PhoneReceived,
		rec.PhoneSold,
	}, " "))
}
