package service

import (
	"fmt"
	"time"

	"github.com/swiftpos/terminal-api/internal/domain/entity"
	"github.com/swiftpos/terminal-api/pkg/money"
	"github.com/swiftpos/terminal-api/pkg/printer"
)

// PrinterService formats receipts as ESC/POS and sends them to the thermal
// printer. It implements gateway.ReceiptSink.
type PrinterService struct {
	printer     printer.Printer
	printerType string
	taxRatePct  float64
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, printerType string, taxRatePct float64) *PrinterService {
	return &PrinterService{
		printer:     p,
		printerType: printerType,
		taxRatePct:  taxRatePct,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintReceipt formats and prints a checkout receipt.
func (s *PrinterService) PrintReceipt(r *entity.Receipt) error {
	data := s.FormatReceipt(r)
	if err := s.printer.Print(data); err != nil {
		return fmt.Errorf("print receipt %s: %w", r.InvoiceNo, err)
	}
	return nil
}

// TestPrint sends a sample receipt to the printer so the operator can check
// paper alignment. The rendered text is returned either way, which is what
// the console shows when the printer type is "none".
func (s *PrinterService) TestPrint() (string, error) {
	sample := &entity.Receipt{
		InvoiceNo: "INV-TEST0000",
		Date:      time.Now().Format("2006-01-02 15:04:05"),
		Items: []entity.ReceiptItem{
			{Name: "Test Item", Quantity: 1, Amount: 100},
		},
		SubTotal:      100,
		Tax:           7,
		DiscountLabel: "0%",
		Total:         107,
		Paid:          107,
		Change:        0,
	}

	data := s.FormatReceipt(sample)
	if err := s.printer.Print(data); err != nil {
		return string(data), fmt.Errorf("test print: %w", err)
	}
	return string(data), nil
}

// FormatReceipt renders a receipt as an ESC/POS byte stream for 58mm paper.
func (s *PrinterService) FormatReceipt(r *entity.Receipt) []byte {
	d := printer.NewDocument(32)

	d.SetAlign(printer.AlignCenter).
		SetFontSize(printer.FontDouble).
		Text("Receipt").
		SetFontSize(printer.FontNormal).
		LineFeed()

	d.SetAlign(printer.AlignLeft).
		Text("Invoice #: " + r.InvoiceNo).
		Text("Date: " + r.Date).
		Separator('-')

	for _, item := range r.Items {
		d.ItemLine(item.Name, item.Quantity, "$"+money.Format(item.Amount))
	}

	d.Separator('-').
		KeyValue("Subtotal", "$"+money.Format(r.SubTotal)).
		KeyValue(fmt.Sprintf("Tax (%.0f%%)", s.taxRatePct), "$"+money.Format(r.Tax)).
		KeyValue("Discount", r.DiscountLabel)

	d.SetBold(true).
		KeyValue("Total", "$"+money.Format(r.Total)).
		SetBold(false).
		KeyValue("Paid", "$"+money.Format(r.Paid)).
		KeyValue("Change", "$"+money.Format(r.Change))

	d.FeedLines(3).Cut()
	return d.Bytes()
}
