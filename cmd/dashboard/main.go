package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"

	"github.com/mamadbah2/phonebooks/internal/dashboard"
	"github.com/mamadbah2/phonebooks/internal/domain/models"
	"github.com/mamadbah2/phonebooks/internal/service/reporting"
	"github.com/mamadbah2/phonebooks/pkg/clients/records"
	"github.com/mamadbah2/phonebooks/pkg/logger"
)

var _ dashboard.Source = (*records.APIClient)(nil)

type settings struct {
	APIURL   string        `envconfig:"API_URL" default:"http://localhost:5000"`
	Timeout  time.Duration `envconfig:"TIMEOUT" default:"15s"`
	LogLevel string        `envconfig:"LOG_LEVEL" default:"warn"`
}

func main() {
	var env settings
	if err := envconfig.Process("DASHBOARD", &env); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	apiURL := flag.String("api", env.APIURL, "records API base URL")
	search := flag.String("search", "", "case-insensitive text matched against names and phones")
	rangeFlag := flag.String("range", "all", "date range: all, today, week or month")
	deleteID := flag.String("delete", "", "remove the record with this id before rendering")
	flag.Parse()

	log := logger.Must(logger.New(env.LogLevel))
	defer func() { _ = log.Sync() }()

	dateRange, err := reporting.ParseDateRange(*rangeFlag)
	if err != nil {
		log.Fatal("invalid range", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), env.Timeout)
	defer cancel()

	cache := dashboard.NewCache(records.NewClient(*apiURL, env.Timeout), log.Named("dashboard"))
	if *deleteID != "" {
		if err := cache.Delete(ctx, *deleteID); err != nil {
			log.Fatal("failed to delete record", zap.String("id", *deleteID), zap.Error(err))
		}
	} else if err := cache.Refresh(ctx); err != nil {
		log.Fatal("failed to load records", zap.Error(err))
	}

	if err := render(os.Stdout, cache.View(*search, dateRange)); err != nil {
		log.Fatal("failed to render dashboard", zap.Error(err))
	}
}

func render(out io.Writer, view dashboard.View) error {
	s := view.Summary
	fmt.Fprintf(out, "Today:  income %.2f  expenses %.2f  swaps %d\n", s.TodayIncome, s.TodayExpenses, s.TodaySwapCount)
	fmt.Fprintf(out, "Total:  income %.2f  expenses %.2f  swaps %d\n", s.TotalIncome, s.TotalExpenses, s.TotalSwapCount)
	fmt.Fprintf(out, "Pending: %d  owed %.2f\n\n", s.PendingCount, s.TotalOwed)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tTYPE\tPARTY\tDETAILS\tAMOUNT\tSTATUS\tID")
	for _, rec := range view.Records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.2f\t%s\t%s\n",
			rec.Date.Format("2006-01-02"),
			rec.Type,
			party(rec),
			details(rec),
			models.Classify(rec).Amount,
			rec.PaymentStatus,
			rec.ID.Hex())
	}
	return w.Flush()
}

func party(rec models.Record) string {
	if rec.Type == models.TypeSupply {
		return rec.SupplierName
	}
	return rec.CustomerName
}

func details(rec models.Record) string {
	switch rec.Type {
	case models.TypeSale:
		return rec.PhoneSold
	case models.TypeSupply:
		qty := 0
		if rec.Quantity != nil {
			qty = *rec.Quantity
		}
		return fmt.Sprintf("%d x %s", qty, rec.PhoneNames)
	default:
		return rec.PhoneGiven + " -> " + rec.PhoneReceived
	}
}
