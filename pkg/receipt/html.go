// Package receipt renders printable receipts. Rendering is deterministic:
// the same receipt value always produces the same markup, so a submission's
// receipt can be regenerated and compared.
package receipt

import (
	"fmt"
	"strings"

	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/pkg/money"
)

// RenderHTML produces the receipt markup consumed by the front-end's print
// surface. taxRatePct is only used for the tax line label.
func RenderHTML(r *entity.Receipt, taxRatePct float64) string {
	var b strings.Builder

	b.WriteString("<div class=\"receipt\">\n")
	b.WriteString("  <h2>Receipt</h2>\n")
	fmt.Fprintf(&b, "  <p>Invoice #: %s</p>\n", r.InvoiceNo)
	fmt.Fprintf(&b, "  <p>Date: %s</p>\n", r.Date)

	b.WriteString("  <div class=\"receipt-items\">\n")
	for _, item := range r.Items {
		b.WriteString("    <div class=\"receipt-item\">\n")
		fmt.Fprintf(&b, "      <span>%s x%d</span>\n", item.Name, item.Quantity)
		fmt.Fprintf(&b, "      <span>$%s</span>\n", money.Format(item.Amount))
		b.WriteString("    </div>\n")
	}
	b.WriteString("  </div>\n")

	fmt.Fprintf(&b, "  <p>Subtotal: $%s</p>\n", money.Format(r.SubTotal))
	fmt.Fprintf(&b, "  <p>Tax (%s%%): $%s</p>\n", trimRate(taxRatePct), money.Format(r.Tax))
	fmt.Fprintf(&b, "  <p>Discount: %s</p>\n", r.DiscountLabel)
	fmt.Fprintf(&b, "  <p><strong>Total: $%s</strong></p>\n", money.Format(r.Total))
	b.WriteString("</div>\n")

	return b.String()
}

// DiscountLabel renders the discount description used on receipts, e.g.
// "10%" for a percent discount or "$5.00" for a fixed one.
func DiscountLabel(isPercent bool, value float64) string {
	if isPercent {
		return trimRate(value) + "%"
	}
	return "$" + fmt.Sprintf("%.2f", value)
}

// trimRate formats a percentage without trailing zeros: 7 -> "7", 7.5 -> "7.5".
func trimRate(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimRight(s, ".")
}
