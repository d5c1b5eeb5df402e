package invoice

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

const (
	marginLeft  = 14.0
	tableTop    = 75.0
	rowHeight   = 8.0
	totalsX     = 140.0
	footerY     = 280.0
	pageCenterX = 105.0
)

var columnWidths = []float64{92, 20, 35, 35}

// Render escreve o PDF A4 da fatura. settings vem de quem chama.
func (inv *Invoice) Render(w io.Writer, settings entity.Settings) error {
	return inv.render(w, settings, true)
}

func (inv *Invoice) render(w io.Writer, settings entity.Settings, compress bool) error {
	if err := inv.Validate(); err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// cabeçalho
	pdf.SetTextColor(40, 40, 40)
	pdf.SetFont("Helvetica", "", 24)
	pdf.Text(160, 20, "INVOICE")

	pdf.SetFont("Helvetica", "", 10)
	pdf.Text(marginLeft, 20, tr(settings.CompanyName))
	pdf.Text(marginLeft, 25, tr(settings.FullName))

	// cobrança
	c := inv.Client
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(marginLeft, 45, "Bill To:")
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(marginLeft, 52, tr(c.Name))
	pdf.Text(marginLeft, 57, tr(c.Address))
	pdf.Text(marginLeft, 62, tr(fmt.Sprintf("%s, %s %s", c.City, c.State, c.Zip)))

	due := c.DueDate
	if due == "" {
		due = "On Receipt"
	}
	pdf.Text(totalsX, 45, tr("Invoice #: "+inv.Number))
	pdf.Text(totalsX, 50, "Date: "+inv.Date.Format("1/2/2006"))
	pdf.Text(totalsX, 55, tr("Due Date: "+due))

	finalY := inv.drawTable(pdf, tr)

	y := finalY + 10
	pdf.SetFont("Helvetica", "", 11)
	pdf.Text(totalsX, y, fmt.Sprintf("Subtotal: $%.2f", inv.Subtotal()))
	pdf.Text(totalsX, y+6, fmt.Sprintf("Tax (%s%%): $%.2f", formatNumber(inv.TaxRate), inv.Tax()))
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Text(totalsX, y+14, fmt.Sprintf("Total: $%.2f", inv.Total()))

	pdf.SetFont("Helvetica", "I", 9)
	footer := "Thank you for your business!"
	pdf.Text(pageCenterX-pdf.GetStringWidth(footer)/2, footerY, footer)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("erro ao gerar pdf: %w", err)
	}
	return pdf.Output(w)
}

// drawTable desenha a grade de itens e devolve o y logo abaixo dela.
func (inv *Invoice) drawTable(pdf *fpdf.Fpdf, tr func(string) string) float64 {
	pdf.SetXY(marginLeft, tableTop)
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(66, 66, 66)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"Description", "Qty", "Rate", "Amount"} {
		pdf.CellFormat(columnWidths[i], rowHeight, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(40, 40, 40)
	pdf.SetFont("Helvetica", "", 10)
	for _, li := range inv.Items {
		pdf.SetX(marginLeft)
		cells := []string{
			tr(li.Description),
			formatNumber(li.Quantity),
			"$" + formatNumber(li.Rate),
			fmt.Sprintf("$%.2f", li.Amount()),
		}
		for i, v := range cells {
			pdf.CellFormat(columnWidths[i], rowHeight, v, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
	return pdf.GetY()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
