package models

import "time"

// Variant is the per-type view of a record input. Each implementation carries
// only the fields relevant to its transaction type, and its validate tags
// list the fields that type makes mandatory.
type Variant interface {
	RecordType() RecordType
}

// Settlement holds the fields every variant requires.
type Settlement struct {
	PaymentStatus *PaymentStatus `json:"paymentStatus" validate:"required"`
	Date          *time.Time     `json:"date" validate:"required"`
}

// Sale is a phone sold to a customer.
type Sale struct {
	CustomerName *string  `json:"customerName" validate:"required,min=1"`
	PhoneSold    *string  `json:"phoneSold" validate:"required,min=1"`
	AmountPaid   *float64 `json:"amountPaid" validate:"required"`
	Settlement
}

// SwapUp is a trade where the customer pays the difference.
type SwapUp struct {
	CustomerName  *string  `json:"customerName" validate:"required,min=1"`
	PhoneGiven    *string  `json:"phoneGiven" validate:"required,min=1"`
	PhoneReceived *string  `json:"phoneReceived" validate:"required,min=1"`
	AmountPaid    *float64 `json:"amountPaid" validate:"required"`
	Settlement
}

// SwapDown is a trade where the shop pays the customer the difference.
type SwapDown struct {
	CustomerName     *string  `json:"customerName" validate:"required,min=1"`
	PhoneGiven       *string  `json:"phoneGiven" validate:"required,min=1"`
	PhoneReceived    *string  `json:"phoneReceived" validate:"required,min=1"`
	AmountSellerPaid *float64 `json:"amountSellerPaid" validate:"required"`
	Settlement
}

// AndroidSwap is a trade outside the iPhone line; the populated amount
// decides the payment direction.
type AndroidSwap struct {
	CustomerName     *string  `json:"customerName" validate:"required,min=1"`
	PhoneGiven       *string  `json:"phoneGiven" validate:"required,min=1"`
	PhoneReceived    *string  `json:"phoneReceived" validate:"required,min=1"`
	AmountPaid       *float64 `json:"amountPaid"`
	AmountSellerPaid *float64 `json:"amountSellerPaid"`
	Settlement
}

// Supply is an inventory intake from a supplier.
type Supply struct {
	SupplierName *string  `json:"supplierName" validate:"required,min=1"`
	PhoneNames   *string  `json:"phoneNames" validate:"required,min=1"`
	Quantity     *int     `json:"quantity" validate:"required"`
	UnitPrice    *float64 `json:"unitPrice" validate:"required"`
	Settlement
}

func (Sale) RecordType() RecordType        { return TypeSale }
func (SwapUp) RecordType() RecordType      { return TypeSwapUp }
func (SwapDown) RecordType() RecordType    { return TypeSwapDown }
func (AndroidSwap) RecordType() RecordType { return TypeAndroidSwap }
func (Supply) RecordType() RecordType      { return TypeSupply }

// Variant projects the input onto the variant named by its type tag.
func (in RecordInput) Variant() (Variant, error) {
	if in.Type == nil || *in.Type == "" {
		return nil, NewValidationError("type", "is required")
	}

	settlement := Settlement{PaymentStatus: in.PaymentStatus}
	if in.Date != nil {
		settlement.Date = &in.Date.Time
	}

	switch *in.Type {
	case TypeSale:
		return Sale{
			CustomerName: in.CustomerName,
			PhoneSold:    in.PhoneSold,
			AmountPaid:   in.AmountPaid,
			Settlement:   settlement,
		}, nil
	case TypeSwapUp:
		return SwapUp{
			CustomerName:  in.CustomerName,
			PhoneGiven:    in.PhoneGiven,
			PhoneReceived: in.PhoneReceived,
			AmountPaid:    in.AmountPaid,
			Settlement:    settlement,
		}, nil
	case TypeSwapDown:
		return SwapDown{
			CustomerName:     in.CustomerName,
			PhoneGiven:       in.PhoneGiven,
			PhoneReceived:    in.PhoneReceived,
			AmountSellerPaid: in.AmountSellerPaid,
			Settlement:       settlement,
		}, nil
	case TypeAndroidSwap:
		return AndroidSwap{
			CustomerName:     in.CustomerName,
			PhoneGiven:       in.PhoneGiven,
			PhoneReceived:    in.PhoneReceived,
			AmountPaid:       in.AmountPaid,
			AmountSellerPaid: in.AmountSellerPaid,
			Settlement:       settlement,
		}, nil
	case TypeSupply:
		return Supply{
			SupplierName: in.SupplierName,
			PhoneNames:   in.PhoneNames,
			Quantity:     in.Quantity,
			UnitPrice:    in.UnitPrice,
			Settlement:   settlement,
		}, nil
	default:
		return nil, NewValidationError("type", "must be one of sale swap-up swap-down android-swap supply")
	}
}
