package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Classification tells whether a record brings money in or sends it out.
type Classification struct {
	IsIncome  bool
	IsExpense bool
	Amount    float64
}

// ComputeTotal derives TotalAmount from Quantity and UnitPrice. Any
// previously stored total is overwritten; without both inputs it is cleared.
func ComputeTotal(r *Record) {
	if r.Quantity == nil || r.UnitPrice == nil {
		r.TotalAmount = nil
		return
	}

	total := decimal.NewFromInt(int64(*r.Quantity)).
		Mul(decimal.NewFromFloat(*r.UnitPrice)).
		InexactFloat64()
	r.TotalAmount = &total
}

// Classify decides the money direction of a record from its type.
func Classify(r Record) Classification {
	switch r.Type {
	case TypeSale, TypeSwapUp:
		return Classification{IsIncome: true, Amount: r.AmountPaid}
	case TypeSwapDown:
		return Classification{IsExpense: true, Amount: r.AmountSellerPaid}
	case TypeAndroidSwap:
		switch {
		case r.AmountPaid > 0:
			return Classification{IsIncome: true, Amount: r.AmountPaid}
		case r.AmountSellerPaid > 0:
			return Classification{IsExpense: true, Amount: r.AmountSellerPaid}
		}
		return Classification{}
	case TypeSupply:
		var total float64
		if r.TotalAmount != nil {
			total = *r.TotalAmount
		}
		return Classification{IsExpense: true, Amount: total}
	}
	return Classification{}
}

// IsSwap reports whether the record is any of the swap variants.
func (r Record) IsSwap() bool {
	return strings.Contains(string(r.Type), "swap")
}
