package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/domain"
	"github.com/Jtndrkalyan1/navodita-erp-web-sub005/internal/gst"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the GST register header row.
var columns = []string{
	"Document Number",
	"Document Type",
	"Document Date",
	"Due Date",
	"Party Name",
	"Party GSTIN",
	"Place of Supply",
	"State Code",
	"Supply Type",
	"Taxable Amount",
	"Discount",
	"IGST",
	"CGST",
	"SGST",
	"Shipping",
	"Total",
	"Amount Paid",
	"Balance Due",
	"Status",
}

// Writer wraps csv.Writer for exporting a GST register.
type Writer struct {
	csv  *csv.Writer
	from gst.Jurisdiction
}

// NewWriter creates a Writer that writes CSV to w. from is the company side
// used to label each row inter- or intra-state.
func NewWriter(w io.Writer, from gst.Jurisdiction) *Writer {
	return &Writer{csv: csv.NewWriter(w), from: from}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteDocuments converts a batch of documents to CSV rows and writes them.
// parties is keyed by party id; a missing party leaves its columns empty.
func (w *Writer) WriteDocuments(docs []domain.Document, parties map[uuid.UUID]*domain.Party) error {
	for i := range docs {
		row := w.documentToRow(&docs[i], parties[docs[i].PartyID])
		if err := w.csv.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

func (w *Writer) documentToRow(doc *domain.Document, party *domain.Party) []string {
	row := make([]string, len(columns))

	row[0] = doc.DocumentNumber
	row[1] = string(doc.DocumentType)
	row[2] = doc.DocumentDate.Format("2006-01-02")
	row[3] = formatDate(doc.DueDate)
	row[9] = formatMoney(doc.Subtotal)
	row[10] = formatMoney(doc.DiscountAmount)
	row[11] = formatMoney(doc.IGSTAmount)
	row[12] = formatMoney(doc.CGSTAmount)
	row[13] = formatMoney(doc.SGSTAmount)
	row[14] = formatMoney(doc.ShippingCharge)
	row[15] = formatMoney(doc.TotalAmount)
	row[16] = formatMoney(doc.AmountPaid)
	row[17] = formatMoney(doc.BalanceDue)
	row[18] = string(doc.Status)

	to := gst.Jurisdiction{State: doc.PlaceOfSupply}
	if party != nil {
		row[4] = party.Name
		row[5] = party.GSTIN
		to.GSTIN = party.GSTIN
		if to.State == "" {
			to.State = party.State
		}
	}
	if state, ok := gst.Resolve(to.State, to.GSTIN); ok {
		row[6] = state
		if code, ok := gst.StateCode(state); ok {
			row[6], _ = gst.StateName(code)
			row[7] = code
		}
	}
	row[8] = supplyType(gst.IsInterState(w.from, to))

	return row
}

func supplyType(inter bool) string {
	if inter {
		return "Inter-State"
	}
	return "Intra-State"
}

func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized filename for a register covering
// [from, to]. Format: {name}_{YYYY-MM-DD}_{YYYY-MM-DD}.{ext}
func BuildFilename(name string, from, to time.Time, ext string) string {
	return fmt.Sprintf("%s_%s_%s.%s",
		SanitizeFilename(name), from.Format("2006-01-02"), to.Format("2006-01-02"), ext)
}
