package receipt

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/paothinnapat/sales-tracker/internal/domain"
)

// Render writes a PDF sales ticket for a submitted sale.
// Amounts are labeled THB; the core PDF fonts cannot render the baht sign.
func Render(sub *domain.SaleSubmission, w io.Writer) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Daily Sales Ticket")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, "Date: "+sub.Date)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Store Plant: "+sub.Store)
	pdf.Ln(10)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(70, 8, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Quantity", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	for _, item := range sub.Items {
		pdf.CellFormat(70, 8, item.Product, "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", item.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 8, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d THB", item.Subtotal), "", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(130, 10, "Total", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 10, fmt.Sprintf("%d THB", sub.Total), "T", 1, "R", false, 0, "")

	return pdf.Output(w)
}
