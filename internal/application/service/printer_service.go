package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/trexivo/tinova-pos/internal/domain/entity"
	"github.com/trexivo/tinova-pos/pkg/logger"
	"github.com/trexivo/tinova-pos/pkg/printer"
)

// PrinterService composes official receipts from orders and sends them to a
// receipt printer.
type PrinterService struct {
	printer printer.Printer
	ledger  *LedgerService
	header  entity.ReceiptHeader
	log     zerolog.Logger
}

// NewPrinterService creates a new printer service
func NewPrinterService(p printer.Printer, ledger *LedgerService, header entity.ReceiptHeader) *PrinterService {
	return &PrinterService{
		printer: p,
		ledger:  ledger,
		header:  header,
		log:     logger.WithComponent("printer"),
	}
}

// BuildReceipt composes the printable receipt for an order.
func (s *PrinterService) BuildReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	order, err := s.ledger.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return &entity.Receipt{
		Header:      s.header,
		InvoiceCode: order.InvoiceCode,
		Date:        order.CreatedDate.Format("2006-01-02"),
		Client:      order.ClientName,
		Phone:       order.Phone,
		Service:     order.Service,
		Status:      order.WorkStatus.String(),
		Total:       order.GetTotalDecimal(),
		Paid:        order.GetPaidDecimal(),
		Due:         order.GetDueDecimal(),
	}, nil
}

// PrintOrderReceipt composes an order's receipt and prints it.
func (s *PrinterService) PrintOrderReceipt(ctx context.Context, orderID uuid.UUID) (*entity.Receipt, error) {
	receipt, err := s.BuildReceipt(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.printer.Print(FormatReceipt(receipt)); err != nil {
		s.log.Error().Err(err).Str("invoice_code", receipt.InvoiceCode).Msg("Receipt print failed")
		return nil, err
	}

	s.log.Info().Str("invoice_code", receipt.InvoiceCode).Msg("Receipt printed")
	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt) []byte {
	doc := printer.NewDocument(32) // 58mm paper = 32 chars

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Tagline != "" {
		doc.Text(r.Header.Tagline)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Invoice:", r.InvoiceCode).
		KeyValue("Date:", r.Date).
		KeyValue("Billed To:", r.Client)

	if r.Phone != "" {
		doc.KeyValue("Phone:", r.Phone)
	}

	doc.Separator('-')

	// Single service line; the ledger bills one service per order.
	doc.Text(r.Service).
		KeyValue("Status:", r.Status)

	doc.Separator('-')

	doc.KeyValue("Paid:", fmt.Sprintf("%.2f", r.Paid))
	if r.Due > 0 {
		doc.KeyValue("Outstanding Due:", fmt.Sprintf("%.2f", r.Due))
	}
	doc.SetBold(true).
		KeyValue("GRAND TOTAL:", fmt.Sprintf("%.2f", r.Total)).
		SetBold(false)

	doc.Separator('-')

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your business!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
