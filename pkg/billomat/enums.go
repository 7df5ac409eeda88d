package billomat

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// PaymentType is a payment method accepted by the service.
type PaymentType string

// Payment types.
const (
	PaymentInvoiceCorrection PaymentType = "INVOICE_CORRECTION"
	PaymentCreditNote        PaymentType = "CREDIT_NOTE"
	PaymentBankCard          PaymentType = "BANK_CARD"
	PaymentBankTransfer      PaymentType = "BANK_TRANSFER"
	PaymentDebit             PaymentType = "DEBIT"
	PaymentCash              PaymentType = "CASH"
	PaymentCheck             PaymentType = "CHECK"
	PaymentPaypal            PaymentType = "PAYPAL"
	PaymentCreditCard        PaymentType = "CREDIT_CARD"
	PaymentCoupon            PaymentType = "COUPON"
	PaymentMisc              PaymentType = "MISC"
)

// PaymentTypes is a set of payment types. The service sends it as a single
// value, a comma separated string or an array; it is always sent back as an
// array.
type PaymentTypes []PaymentType

// ParsePaymentTypes splits a comma separated list, skipping blanks.
func ParsePaymentTypes(value string) PaymentTypes {
	var types PaymentTypes

	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			types = append(types, PaymentType(part))
		}
	}

	return types
}

// Contains reports whether t is part of the set.
func (p PaymentTypes) Contains(t PaymentType) bool {
	for _, candidate := range p {
		if candidate == t {
			return true
		}
	}

	return false
}

// String renders the set comma separated.
func (p PaymentTypes) String() string {
	return strings.Join(joinValues(p), ",")
}

// InvoiceStatus is the lifecycle state of an invoice.
type InvoiceStatus string

// Invoice states.
const (
	InvoiceDraft    InvoiceStatus = "DRAFT"
	InvoiceOpen     InvoiceStatus = "OPEN"
	InvoiceOverdue  InvoiceStatus = "OVERDUE"
	InvoicePaid     InvoiceStatus = "PAID"
	InvoiceCanceled InvoiceStatus = "CANCELED"
)

// OfferStatus is the lifecycle state of an offer.
type OfferStatus string

// Offer states.
const (
	OfferDraft    OfferStatus = "DRAFT"
	OfferOpen     OfferStatus = "OPEN"
	OfferWon      OfferStatus = "WON"
	OfferLost     OfferStatus = "LOST"
	OfferCanceled OfferStatus = "CANCELED"
	OfferCleared  OfferStatus = "CLEARED"
)

// CreditNoteStatus is the lifecycle state of a credit note.
type CreditNoteStatus string

// Credit note states.
const (
	CreditNoteDraft CreditNoteStatus = "DRAFT"
	CreditNoteOpen  CreditNoteStatus = "OPEN"
	CreditNotePaid  CreditNoteStatus = "PAID"
)

// DeliveryNoteStatus is the lifecycle state of a delivery note.
type DeliveryNoteStatus string

// Delivery note states.
const (
	DeliveryNoteDraft    DeliveryNoteStatus = "DRAFT"
	DeliveryNoteCreated  DeliveryNoteStatus = "CREATED"
	DeliveryNoteCanceled DeliveryNoteStatus = "CANCELED"
)

// ConfirmationStatus is the lifecycle state of a confirmation.
type ConfirmationStatus string

// Confirmation states.
const (
	ConfirmationDraft     ConfirmationStatus = "DRAFT"
	ConfirmationCompleted ConfirmationStatus = "COMPLETED"
	ConfirmationCanceled  ConfirmationStatus = "CANCELED"
	ConfirmationCleared   ConfirmationStatus = "CLEARED"
)

// NetGross tells whether item prices include tax.
type NetGross string

// Price modes.
const (
	PriceNet     NetGross = "NET"
	PriceGross   NetGross = "GROSS"
	PriceSetting NetGross = "SETTINGS"
)

// DiscountType tells how a reduction is expressed.
type DiscountType string

// Discount types.
const (
	DiscountPercentage DiscountType = "PERCENT"
	DiscountAbsolute   DiscountType = "ABSOLUTE"
)

// ItemType separates goods from services.
type ItemType string

// Item types.
const (
	ItemProduct ItemType = "PRODUCT"
	ItemService ItemType = "SERVICE"
)

// PropertyType is the value type of a custom property definition.
type PropertyType string

// Property types.
const (
	PropertyTextfield PropertyType = "TEXTFIELD"
	PropertyTextarea  PropertyType = "TEXTAREA"
	PropertyCheckbox  PropertyType = "CHECKBOX"
)

// Date is a calendar date sent as YYYY-MM-DD.
type Date struct {
	time.Time
}

// NewDate returns the date of t in t's location.
func NewDate(t time.Time) *Date {
	year, month, day := t.Date()

	return &Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD.
func ParseDate(value string) (*Date, error) {
	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", value, err)
	}

	return &Date{Time: parsed}, nil
}

// String renders the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler. Empty strings and null leave the
// date zero.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := string(bytes.Trim(data, `"`))
	if value == "" || value == "null" {
		d.Time = time.Time{}

		return nil
	}

	// Some endpoints append a time of day.
	if len(value) > len(DateLayout) {
		value = value[:len(DateLayout)]
	}

	parsed, err := time.Parse(DateLayout, value)
	if err != nil {
		return fmt.Errorf("parsing date %q: %w", value, err)
	}

	d.Time = parsed

	return nil
}
