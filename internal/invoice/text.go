// Package invoice builds the printable tax invoice and the e-invoice
// document for a persisted order.
package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/tabletab/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	declaration = "Declaration: We declare that this invoice shows the actual price and that all particulars are true and correct."
	generatedBy = "This is a computer generated invoice."
)

// Renderer lays out the plain-text tax invoice handed to printers.
type Renderer struct {
	seller   domain.SellerProfile
	location *time.Location
}

// NewRenderer creates a renderer. Dates are shown in loc; nil means UTC.
func NewRenderer(seller domain.SellerProfile, loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.UTC
	}
	return &Renderer{seller: seller, location: loc}
}

// Render returns the invoice text for order. It does not modify order.
func (r *Renderer) Render(order *domain.Order) string {
	var b strings.Builder
	w := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	w("%s", r.seller.LegalName)
	if r.seller.Address != "" {
		w("%s", r.seller.Address)
	}
	w("GSTIN: %s   FSSAI: %s", r.seller.GSTIN, r.seller.FSSAILicense)
	w("")
	w("TAX INVOICE")
	w("Invoice No: %s    Date: %s", order.InvoiceNumber, FormatDate(order.InvoiceDate.In(r.location)))
	if order.TableNumber != "" {
		w("Table: %s", order.TableNumber)
	}
	if order.CustomerName != "" {
		w("Customer: %s", order.CustomerName)
	}
	if order.CustomerGSTIN != "" {
		w("Customer GSTIN: %s", order.CustomerGSTIN)
	}
	w("")
	w("Items:")
	for _, l := range order.Lines {
		w(" - %s x%d @ %s = %s", l.Name, l.Quantity, FormatINR(l.Rate), FormatINR(l.Amount))
	}
	w("")
	w("Subtotal: %s", FormatINR(order.Subtotal))
	for _, c := range []struct {
		label  string
		amount decimal.Decimal
	}{
		{"Service Charge", order.ServiceCharge},
		{"CGST", order.CGST},
		{"SGST", order.SGST},
		{"IGST", order.IGST},
	} {
		if !c.amount.IsZero() {
			w("%s: %s", c.label, FormatINR(c.amount))
		}
	}
	w("Grand Total: %s", FormatINR(order.Total))
	w("Amount in words: %s", AmountInWords(order.Total))
	w("")
	w("HSN-wise Summary:")
	for _, h := range TaxableByHSN(order.Lines) {
		w(" HSN %s: Taxable %s", h.HSNCode, FormatINR(h.Taxable))
	}
	w("")
	w("%s", declaration)
	b.WriteString(generatedBy)

	return b.String()
}

// TaxableByHSN sums line amounts per classification code in order of first
// appearance. Tax columns are left zero; per-line tax is not persisted.
func TaxableByHSN(lines []domain.OrderLine) []domain.HSNSummary {
	var out []domain.HSNSummary
	index := make(map[string]int)
	for _, l := range lines {
		code := l.HSNCode
		if code == "" {
			code = domain.DefaultHSNCode
		}
		i, ok := index[code]
		if !ok {
			i = len(out)
			index[code] = i
			out = append(out, domain.HSNSummary{HSNCode: code})
		}
		out[i].Taxable = out[i].Taxable.Add(l.Amount)
	}
	return out
}
