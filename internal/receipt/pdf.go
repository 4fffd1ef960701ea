// Package receipt renders local PDF tickets for completed sales.
// A7-size thermal receipt layout: header, date, line table, IGV-exclusive
// subtotal, bold total and the payment method.
package receipt

import (
	"fmt"
	"os"
	"path/filepath"

	"farmapos/internal/model"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// Writer saves sale tickets under a storage directory.
type Writer struct {
	storagePath string
}

func NewWriter(storagePath string) *Writer {
	return &Writer{storagePath: storagePath}
}

var payLabels = map[string]string{
	model.PayEfectivo: "Efectivo",
	model.PayYape:     "Yape",
	model.PayPlin:     "Plin",
}

var receiptLabels = map[string]string{
	model.ReceiptBoleta:  "Boleta",
	model.ReceiptFactura: "Factura",
	model.ReceiptTicket:  "Ticket",
}

// WriteSaleTicket renders the ticket and returns the absolute path of
// the generated file.
func (w *Writer) WriteSaleTicket(sale *model.Sale) (string, error) {
	if err := os.MkdirAll(w.storagePath, 0o755); err != nil {
		return "", fmt.Errorf("receipt: create storage dir: %w", err)
	}
	filePath := filepath.Join(w.storagePath, fmt.Sprintf("venta_%s.pdf", sale.ID))

	// 74mm × 105mm ≈ A7, close to thermal receipt paper.
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8

	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(contentW, 7, "FarmaPOS", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 8)
	label := receiptLabels[sale.TypeReceipt]
	if label == "" {
		label = "Comprobante"
	}
	pdf.CellFormat(contentW, 5, label+" de Venta", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, sale.DateCreation, "", 1, "L", false, 0, "")
	if sale.Provider != nil {
		pdf.CellFormat(contentW, 4, "Cliente: "+sale.Provider.Name, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)

	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.52
	col2 := contentW * 0.16
	col3 := contentW * 0.32

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Total", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	subtotal := decimal.Zero
	for _, d := range sale.Details {
		name := d.Product.Name
		if runes := []rune(name); len(runes) > 22 {
			name = string(runes[:21]) + "."
		}
		pdf.CellFormat(col1, 5, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", d.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "S/ "+d.Total.StringFixed(2), "", 1, "R", false, 0, "")
		subtotal = subtotal.Add(d.Subtotal)
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 5, "Subtotal (sin IGV):", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 5, "S/ "+subtotal.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "S/ "+sale.Total.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetFont("Helvetica", "", 7)
	pay := payLabels[sale.TypePay]
	if pay == "" {
		pay = sale.TypePay
	}
	pdf.CellFormat(contentW, 4, "Pago: "+pay, "", 1, "L", false, 0, "")

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("receipt: write file: %w", err)
	}
	return filePath, nil
}
