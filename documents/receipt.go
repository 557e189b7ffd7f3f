package documents

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/yeremiapane/restaurant-frontdesk/models"
	"github.com/yeremiapane/restaurant-frontdesk/utils"
)

// ReceiptNumber formats the printed bill reference, e.g. BILL/20260310/000042.
func ReceiptNumber(bill models.Bill, loc *time.Location) string {
	return fmt.Sprintf("BILL/%s/%06d", bill.IssuedAt.In(loc).Format("20060102"), bill.ID)
}

// WriteBillReceipt renders the bill with its order lines as a PDF.
// bill.Order must be loaded with Items (and Items.MenuItem for dish names).
func WriteBillReceipt(w io.Writer, bill models.Bill, loc *time.Location) error {
	if loc == nil {
		loc = time.UTC
	}

	pdf := fpdf.New("P", "mm", "A5", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(ReceiptNumber(bill, loc), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Receipt", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 5, ReceiptNumber(bill, loc), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 5, bill.IssuedAt.In(loc).Format("02.01.2006 15:04"), "", 1, "C", false, 0, "")
	if bill.Order != nil {
		pdf.CellFormat(0, 5, bill.Order.Label(), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	// header
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(62, 6, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(14, 6, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(26, 6, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(26, 6, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if bill.Order != nil {
		for _, item := range bill.Order.Items {
			pdf.CellFormat(62, 6, tr(itemName(item)), "", 0, "L", false, 0, "")
			pdf.CellFormat(14, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
			pdf.CellFormat(26, 6, item.Price.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(26, 6, item.Subtotal().StringFixed(2), "", 1, "R", false, 0, "")
		}
	}

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(76, 8, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(52, 8, utils.FormatCurrency(bill.Total), "T", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	status := "Not paid"
	if bill.Paid {
		status = "Paid"
		if bill.PaymentMethod != nil {
			status += " (" + tr(*bill.PaymentMethod) + ")"
		}
	}
	pdf.CellFormat(0, 6, status, "", 1, "L", false, 0, "")

	return pdf.Output(w)
}

func itemName(item models.OrderItem) string {
	if item.MenuItem != nil {
		return item.MenuItem.Name
	}
	return fmt.Sprintf("Item #%d", item.ID)
}
