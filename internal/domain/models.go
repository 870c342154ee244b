package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Company is the tenant's own business profile. Its state and GSTIN are the
// "from" side of every tax calculation.
type Company struct {
	TenantID     uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Name         string    `db:"name" json:"name"`
	State        string    `db:"state" json:"state"`
	GSTIN        string    `db:"gstin" json:"gstin"`
	BaseCurrency string    `db:"base_currency" json:"base_currency"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Party is a customer or vendor. Read-only to the tax and settlement core.
type Party struct {
	ID        uuid.UUID `db:"id" json:"id"`
	TenantID  uuid.UUID `db:"tenant_id" json:"tenant_id"`
	Kind      PartyKind `db:"kind" json:"kind"`
	Name      string    `db:"name" json:"name"`
	State     string    `db:"state" json:"state"`
	GSTIN     string    `db:"gstin" json:"gstin"`
	Currency  string    `db:"currency" json:"currency"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Document is a quotation, invoice, purchase order, bill, credit note or debit note.
// Totals and line items are recomputed wholesale on every update; AmountPaid,
// BalanceDue and Status are only changed by the settlement engine.
type Document struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	TenantID       uuid.UUID       `db:"tenant_id" json:"tenant_id"`
	DocumentType   DocumentType    `db:"document_type" json:"document_type"`
	DocumentNumber string          `db:"document_number" json:"document_number"`
	PartyID        uuid.UUID       `db:"party_id" json:"party_id"`
	DocumentDate   time.Time       `db:"document_date" json:"document_date"`
	DueDate        *time.Time      `db:"due_date" json:"due_date,omitempty"`
	PlaceOfSupply  string          `db:"place_of_supply" json:"place_of_supply"`
	Subtotal       decimal.Decimal `db:"subtotal" json:"subtotal"`
	DiscountAmount decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	IGSTAmount     decimal.Decimal `db:"igst_amount" json:"igst_amount"`
	CGSTAmount     decimal.Decimal `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount     decimal.Decimal `db:"sgst_amount" json:"sgst_amount"`
	ShippingCharge decimal.Decimal `db:"shipping_charge" json:"shipping_charge"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	AmountPaid     decimal.Decimal `db:"amount_paid" json:"amount_paid"`
	BalanceDue     decimal.Decimal `db:"balance_due" json:"balance_due"`
	Status         DocumentStatus  `db:"status" json:"status"`
	OpenStatus     DocumentStatus  `db:"open_status" json:"open_status,omitempty"`
	Notes          string          `db:"notes" json:"notes"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at" json:"updated_at"`

	LineItems []LineItem `db:"-" json:"line_items,omitempty"`
}

// TaxTotal returns igst + cgst + sgst.
func (d *Document) TaxTotal() decimal.Decimal {
	return d.IGSTAmount.Add(d.CGSTAmount).Add(d.SGSTAmount)
}

// LineItem is one priced row of a Document.
type LineItem struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id" json:"-"`
	DocumentID      uuid.UUID       `db:"document_id" json:"document_id"`
	Position        int             `db:"position" json:"position"`
	Description     string          `db:"description" json:"description"`
	HSNSAC          string          `db:"hsn_sac" json:"hsn_sac"`
	Unit            string          `db:"unit" json:"unit"`
	Quantity        decimal.Decimal `db:"quantity" json:"quantity"`
	Rate            decimal.Decimal `db:"rate" json:"rate"`
	DiscountPercent decimal.Decimal `db:"discount_percent" json:"discount_percent"`
	GSTRate         decimal.Decimal `db:"gst_rate" json:"gst_rate"`
	DiscountAmount  decimal.Decimal `db:"discount_amount" json:"discount_amount"`
	IGSTAmount      decimal.Decimal `db:"igst_amount" json:"igst_amount"`
	CGSTAmount      decimal.Decimal `db:"cgst_amount" json:"cgst_amount"`
	SGSTAmount      decimal.Decimal `db:"sgst_amount" json:"sgst_amount"`
	Amount          decimal.Decimal `db:"amount" json:"amount"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// TaxTotal returns igst + cgst + sgst for the line.
func (li *LineItem) TaxTotal() decimal.Decimal {
	return li.IGSTAmount.Add(li.CGSTAmount).Add(li.SGSTAmount)
}

// Payment is money received from a customer or paid to a vendor. Amount is in
// the company's base currency.
type Payment struct {
	ID             uuid.UUID        `db:"id" json:"id"`
	TenantID       uuid.UUID        `db:"tenant_id" json:"tenant_id"`
	Direction      PaymentDirection `db:"direction" json:"direction"`
	PaymentNumber  string           `db:"payment_number" json:"payment_number"`
	PartyID        uuid.UUID        `db:"party_id" json:"party_id"`
	PaymentDate    time.Time        `db:"payment_date" json:"payment_date"`
	Mode           string           `db:"mode" json:"mode"`
	Reference      string           `db:"reference" json:"reference"`
	Amount         decimal.Decimal  `db:"amount" json:"amount"`
	OriginalAmount decimal.Decimal  `db:"original_amount" json:"original_amount"`
	CurrencyCode   string           `db:"currency_code" json:"currency_code"`
	ExchangeRate   decimal.Decimal  `db:"exchange_rate" json:"exchange_rate"`
	ExcessAmount   decimal.Decimal  `db:"excess_amount" json:"excess_amount"`
	CreatedBy      uuid.UUID        `db:"created_by" json:"created_by"`
	CreatedAt      time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time        `db:"updated_at" json:"updated_at"`

	Allocations []Allocation `db:"-" json:"allocations,omitempty"`
}

// Allocation earmarks part of a Payment against one Document.
type Allocation struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	TenantID        uuid.UUID       `db:"tenant_id" json:"-"`
	PaymentID       uuid.UUID       `db:"payment_id" json:"payment_id"`
	DocumentID      uuid.UUID       `db:"document_id" json:"document_id"`
	AllocatedAmount decimal.Decimal `db:"allocated_amount" json:"allocated_amount"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

// SequenceCounter is the persisted numbering state of one series.
type SequenceCounter struct {
	TenantID      uuid.UUID  `db:"tenant_id" json:"tenant_id"`
	Series        SeriesType `db:"series" json:"series"`
	Prefix        string     `db:"prefix" json:"prefix"`
	Separator     string     `db:"separator" json:"separator"`
	PaddingDigits int        `db:"padding_digits" json:"padding_digits"`
	NextNumber    int64      `db:"next_number" json:"next_number"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updated_at"`
}
