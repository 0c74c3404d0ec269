package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordType tags the kind of transaction a Record describes.
type RecordType string

const (
	TypeSale        RecordType = "sale"
	TypeSwapUp      RecordType = "swap-up"
	TypeSwapDown    RecordType = "swap-down"
	TypeAndroidSwap RecordType = "android-swap"
	TypeSupply      RecordType = "supply"
)

// PaymentStatus tracks how far a transaction has been settled.
type PaymentStatus string

const (
	StatusPaid    PaymentStatus = "paid"
	StatusPartial PaymentStatus = "partial"
	StatusPending PaymentStatus = "pending"
	StatusNotPaid PaymentStatus = "not-paid"
)

// IsPending reports whether the status belongs to the not-fully-settled set.
func (s PaymentStatus) IsPending() bool {
	switch s {
	case StatusPending, StatusPartial, StatusNotPaid:
		return true
	}
	return false
}

// Record is the persisted document for one logged transaction.
type Record struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Type             RecordType         `bson:"type" json:"type"`
	CustomerName     string             `bson:"customerName,omitempty" json:"customerName,omitempty"`
	SupplierName     string             `bson:"supplierName,omitempty" json:"supplierName,omitempty"`
	PhoneSold        string             `bson:"phoneSold,omitempty" json:"phoneSold,omitempty"`
	PhoneGiven       string             `bson:"phoneGiven,omitempty" json:"phoneGiven,omitempty"`
	PhoneReceived    string             `bson:"phoneReceived,omitempty" json:"phoneReceived,omitempty"`
	AmountPaid       float64            `bson:"amountPaid" json:"amountPaid"`
	AmountSellerPaid float64            `bson:"amountSellerPaid" json:"amountSellerPaid"`
	PhoneNames       string             `bson:"phoneNames,omitempty" json:"phoneNames,omitempty"`
	Quantity         *int               `bson:"quantity,omitempty" json:"quantity,omitempty"`
	UnitPrice        *float64           `bson:"unitPrice,omitempty" json:"unitPrice,omitempty"`
	TotalAmount      *float64           `bson:"totalAmount,omitempty" json:"totalAmount,omitempty"`
	PaymentStatus    PaymentStatus      `bson:"paymentStatus" json:"paymentStatus"`
	Date             time.Time          `bson:"date" json:"date"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// RecordInput carries client-authored fields. A nil pointer means the field
// was not supplied, which drives both mandatory-field checks and the
// shallow-merge update.
type RecordInput struct {
	Type             *RecordType    `json:"type,omitempty" validate:"-"`
	CustomerName     *string        `json:"customerName,omitempty"`
	SupplierName     *string        `json:"supplierName,omitempty"`
	PhoneSold        *string        `json:"phoneSold,omitempty"`
	PhoneGiven       *string        `json:"phoneGiven,omitempty"`
	PhoneReceived    *string        `json:"phoneReceived,omitempty"`
	AmountPaid       *float64       `json:"amountPaid,omitempty" validate:"omitempty,gte=0"`
	AmountSellerPaid *float64       `json:"amountSellerPaid,omitempty" validate:"omitempty,gte=0"`
	PhoneNames       *string        `json:"phoneNames,omitempty"`
	Quantity         *int           `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	UnitPrice        *float64       `json:"unitPrice,omitempty" validate:"omitempty,gte=0"`
	PaymentStatus    *PaymentStatus `json:"paymentStatus,omitempty" validate:"omitempty,oneof=paid partial pending not-paid"`
	Date             *Date          `json:"date,omitempty" validate:"-"`
}

// RecordPatch is the set of fields a repository writes on update: the
// client-supplied fields plus the recomputed total.
type RecordPatch struct {
	RecordInput
	TotalAmount *float64
}

// NewRecord materializes a document from validated input. Monetary fields
// that were not supplied default to zero.
func NewRecord(in RecordInput) Record {
	var rec Record
	rec.Apply(RecordPatch{RecordInput: in})
	return rec
}

// Apply shallow-merges the patch onto the record: supplied fields overwrite,
// absent fields are left untouched.
func (r *Record) Apply(p RecordPatch) {
	if p.Type != nil {
		r.Type = *p.Type
	}
	setString(&r.CustomerName, p.CustomerName)
	setString(&r.SupplierName, p.SupplierName)
	setString(&r.PhoneSold, p.PhoneSold)
	setString(&r.PhoneGiven, p.PhoneGiven)
	setString(&r.PhoneReceived, p.PhoneReceived)
	setString(&r.PhoneNames, p.PhoneNames)
	if p.AmountPaid != nil {
		r.AmountPaid = *p.AmountPaid
	}
	if p.AmountSellerPaid != nil {
		r.AmountSellerPaid = *p.AmountSellerPaid
	}
	if p.Quantity != nil {
		r.Quantity = ptr(*p.Quantity)
	}
	if p.UnitPrice != nil {
		r.UnitPrice = ptr(*p.UnitPrice)
	}
	if p.TotalAmount != nil {
		r.TotalAmount = ptr(*p.TotalAmount)
	}
	if p.PaymentStatus != nil {
		r.PaymentStatus = *p.PaymentStatus
	}
	if p.Date != nil {
		r.Date = p.Date.Time
	}
}

// Input returns the stored document as an input where every populated field
// counts as supplied. Monetary amounts are always populated.
func (r Record) Input() RecordInput {
	in := RecordInput{
		CustomerName:     nonEmpty(r.CustomerName),
		SupplierName:     nonEmpty(r.SupplierName),
		PhoneSold:        nonEmpty(r.PhoneSold),
		PhoneGiven:       nonEmpty(r.PhoneGiven),
		PhoneReceived:    nonEmpty(r.PhoneReceived),
		PhoneNames:       nonEmpty(r.PhoneNames),
		AmountPaid:       ptr(r.AmountPaid),
		AmountSellerPaid: ptr(r.AmountSellerPaid),
		Quantity:         r.Quantity,
		UnitPrice:        r.UnitPrice,
	}
	if r.Type != "" {
		in.Type = ptr(r.Type)
	}
	if r.PaymentStatus != "" {
		in.PaymentStatus = ptr(r.PaymentStatus)
	}
	if !r.Date.IsZero() {
		in.Date = &Date{Time: r.Date}
	}
	return in
}

// Merge overlays the supplied fields of patch onto in.
func (in RecordInput) Merge(patch RecordInput) RecordInput {
	out := in
	if patch.Type != nil {
		out.Type = patch.Type
	}
	if patch.CustomerName != nil {
		out.CustomerName = patch.CustomerName
	}
	if patch.SupplierName != nil {
		out.SupplierName = patch.SupplierName
	}
	if patch.PhoneSold != nil {
		out.PhoneSold = patch.PhoneSold
	}
	if patch.PhoneGiven != nil {
		out.PhoneGiven = patch.PhoneGiven
	}
	if patch.PhoneReceived != nil {
		out.PhoneReceived = patch.PhoneReceived
	}
	if patch.AmountPaid != nil {
		out.AmountPaid = patch.AmountPaid
	}
	if patch.AmountSellerPaid != nil {
		out.AmountSellerPaid = patch.AmountSellerPaid
	}
	if patch.PhoneNames != nil {
		out.PhoneNames = patch.PhoneNames
	}
	if patch.Quantity != nil {
		out.Quantity = patch.Quantity
	}
	if patch.UnitPrice != nil {
		out.UnitPrice = patch.UnitPrice
	}
	if patch.PaymentStatus != nil {
		out.PaymentStatus = patch.PaymentStatus
	}
	if patch.Date != nil {
		out.Date = patch.Date
	}
	return out
}

// Date is a transaction date accepted either as a calendar day
// ("2006-01-02", local midnight) or as an RFC3339 timestamp.
type Date struct {
	time.Time
}

// ParseDate parses the two accepted date layouts.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(time.DateOnly, value, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD or RFC3339", value)
	}
	return t, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}

	t, err := ParseDate(raw)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Time.Format(time.RFC3339))
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func ptr[T any](v T) *T {
	return &v
}
