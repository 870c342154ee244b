package domain

// DocumentType identifies a financial document kind.
type DocumentType string

const (
	DocumentTypeQuotation     DocumentType = "quotation"
	DocumentTypeInvoice       DocumentType = "invoice"
	DocumentTypePurchaseOrder DocumentType = "purchase_order"
	DocumentTypeBill          DocumentType = "bill"
	DocumentTypeCreditNote    DocumentType = "credit_note"
	DocumentTypeDebitNote     DocumentType = "debit_note"
)

// Valid reports whether t is a known document type.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeQuotation, DocumentTypeInvoice, DocumentTypePurchaseOrder,
		DocumentTypeBill, DocumentTypeCreditNote, DocumentTypeDebitNote:
		return true
	}
	return false
}

// Series returns the numbering series used by documents of this type.
func (t DocumentType) Series() SeriesType {
	return SeriesType(t)
}

// DefaultOpenStatus is the status a document of this type falls back to once
// every payment against it has been reversed and no prior status was recorded.
func (t DocumentType) DefaultOpenStatus() DocumentStatus {
	switch t {
	case DocumentTypeQuotation, DocumentTypePurchaseOrder:
		return DocumentStatusSent
	default:
		return DocumentStatusFinal
	}
}

// DocumentStatus is the lifecycle status of a document.
type DocumentStatus string

const (
	DocumentStatusDraft     DocumentStatus = "draft"
	DocumentStatusSent      DocumentStatus = "sent"
	DocumentStatusFinal     DocumentStatus = "final"
	DocumentStatusPartial   DocumentStatus = "partial"
	DocumentStatusPaid      DocumentStatus = "paid"
	DocumentStatusOverdue   DocumentStatus = "overdue"
	DocumentStatusCancelled DocumentStatus = "cancelled"
)

// Valid reports whether s is a known status.
func (s DocumentStatus) Valid() bool {
	switch s {
	case DocumentStatusDraft, DocumentStatusSent, DocumentStatusFinal, DocumentStatusPartial,
		DocumentStatusPaid, DocumentStatusOverdue, DocumentStatusCancelled:
		return true
	}
	return false
}

// SeriesType names a numbering series. Every DocumentType is a series; payments
// have their own two series.
type SeriesType string

const (
	SeriesPaymentReceived SeriesType = "payment_received"
	SeriesPaymentMade     SeriesType = "payment_made"
)

// DefaultSeriesPrefix holds the prefix used when a series has no persisted counter.
var DefaultSeriesPrefix = map[SeriesType]string{
	SeriesType(DocumentTypeQuotation):     "QT",
	SeriesType(DocumentTypeInvoice):       "INV",
	SeriesType(DocumentTypePurchaseOrder): "PO",
	SeriesType(DocumentTypeBill):          "BILL",
	SeriesType(DocumentTypeCreditNote):    "CN",
	SeriesType(DocumentTypeDebitNote):     "DN",
	SeriesPaymentReceived:                 "PR",
	SeriesPaymentMade:                     "PM",
}

// Valid reports whether s is a known series.
func (s SeriesType) Valid() bool {
	_, ok := DefaultSeriesPrefix[s]
	return ok
}

// IsPayment reports whether the series numbers payments rather than documents.
func (s SeriesType) IsPayment() bool {
	return s == SeriesPaymentReceived || s == SeriesPaymentMade
}

// PaymentDirection distinguishes money coming in from money going out.
type PaymentDirection string

const (
	PaymentReceived PaymentDirection = "received"
	PaymentMade     PaymentDirection = "made"
)

// Valid reports whether d is a known direction.
func (d PaymentDirection) Valid() bool {
	return d == PaymentReceived || d == PaymentMade
}

// Series returns the numbering series for payments in this direction.
func (d PaymentDirection) Series() SeriesType {
	if d == PaymentMade {
		return SeriesPaymentMade
	}
	return SeriesPaymentReceived
}

// Accepts reports whether a payment in this direction may settle a document of type t.
func (d PaymentDirection) Accepts(t DocumentType) bool {
	switch d {
	case PaymentReceived:
		return t == DocumentTypeInvoice || t == DocumentTypeDebitNote
	case PaymentMade:
		return t == DocumentTypeBill || t == DocumentTypeCreditNote
	}
	return false
}

// PartyKind distinguishes customers from vendors.
type PartyKind string

const (
	PartyCustomer PartyKind = "customer"
	PartyVendor   PartyKind = "vendor"
)

// UserRole defines the role carried in access tokens.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)
