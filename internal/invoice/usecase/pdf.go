package usecase

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
	"github.com/tiendago/ventas-online/internal/model"
)

// RenderPDF draws a printable invoice: header, buyer block, one row per
// line with quantity, unit price and line total, then the grand total.
func RenderPDF(inv *model.Invoice) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Factura %s", inv.ID), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 12, "Factura de compra")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Factura: %s", inv.ID))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Fecha: %s", inv.CreatedAt.Format("2006-01-02 15:04")))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Estado: %s", inv.Status))
	pdf.Ln(6)
	if inv.UserName != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Cliente: %s", *inv.UserName))
		pdf.Ln(6)
	}
	if inv.UserEmail != nil {
		pdf.Cell(0, 6, fmt.Sprintf("Email: %s", *inv.UserEmail))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(90, 8, "Producto", "1", 0, "L", true, 0, "")
	pdf.CellFormat(25, 8, "Cantidad", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Precio unit.", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Subtotal", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		name := item.ProductID
		if item.ProductName != nil {
			name = *item.ProductName
		}
		pdf.CellFormat(90, 8, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("$%.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("$%.2f", item.Price*float64(item.Quantity)), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 10, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 10, fmt.Sprintf("$%.2f", inv.Total), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Gracias por su compra.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
