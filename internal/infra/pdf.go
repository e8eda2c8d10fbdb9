package infra

// pdf.go — Stock report generation using go-pdf/fpdf.
// Renders an A4 report for one storage location:
//   - Store and storage header
//   - Generation timestamp
//   - Balance table (product name, quantity on hand, value)
//   - Totals row

import (
	"fmt"
	"io"
	"time"

	"storehub/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// StockReportLine is one row of the report; the product name is resolved by
// the caller so this package stays free of repository dependencies.
type StockReportLine struct {
	ProductName string
	Quantity    decimal.Decimal
	Value       decimal.Decimal
}

// GenerateStockReportPDF writes an A4 stock report for a storage to w.
func GenerateStockReportPDF(storeName string, storage *model.Storage, lines []StockReportLine, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, storeName, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Stock report — %s", storage.Name), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5, time.Now().UTC().Format("2006-01-02 15:04 MST"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Table header ──────────────────────────────────────────────────────────
	col1 := contentW * 0.55 // product name
	col2 := contentW * 0.20 // quantity
	col3 := contentW * 0.25 // value

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Product", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Quantity", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 7, "Value", "B", 1, "R", false, 0, "")

	// ── Rows ──────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	totalQty := decimal.Zero
	totalValue := decimal.Zero
	for _, line := range lines {
		name := line.ProductName
		if len(name) > 48 {
			name = name[:47] + "…"
		}
		pdf.CellFormat(col1, 6, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, line.Quantity.StringFixed(3), "", 0, "R", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+line.Value.StringFixed(2), "", 1, "R", false, 0, "")
		totalQty = totalQty.Add(line.Quantity)
		totalValue = totalValue.Add(line.Value)
	}

	if len(lines) == 0 {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(contentW, 6, "No stock on hand", "", 1, "C", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(col1, 7, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, totalQty.StringFixed(3), "", 0, "R", false, 0, "")
	pdf.CellFormat(col3, 7, "$"+totalValue.StringFixed(2), "", 1, "R", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write report: %w", err)
	}
	return nil
}
