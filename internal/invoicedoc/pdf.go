package invoicedoc

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/heavensbakes/pos-backend/internal/modules/ledger"
	"github.com/heavensbakes/pos-backend/internal/modules/settings"
)

const margin = 14.0

// RenderPDF lays out an invoice as a printable A5 ticket: business header,
// zero-padded number, one line per item, total and a footer proverb.
func RenderPDF(inv *ledger.Invoice, cfg *settings.Settings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A5", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*margin
	y := 16.0

	// Header
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(61, 44, 94)
	pdf.SetXY(margin, y)
	pdf.CellFormat(contentW, 6, tr(strings.ToUpper(cfg.BusinessName)), "", 0, "C", false, 0, "")
	y += 6

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(139, 123, 168)
	pdf.SetXY(margin, y)
	pdf.CellFormat(contentW, 4, tr(cfg.Tagline), "", 0, "C", false, 0, "")
	y += 10

	pdf.SetDrawColor(232, 223, 245)
	pdf.SetLineWidth(0.5)
	pdf.Line(margin, y, pageW-margin, y)
	y += 8

	// Invoice info
	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetTextColor(61, 44, 94)
	pdf.SetXY(margin, y)
	pdf.CellFormat(contentW, 5, tr("Facture #"+FormatNumber(inv.Number)), "", 0, "C", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(margin, y)
	pdf.CellFormat(contentW, 4, tr(inv.ClientName), "", 0, "L", false, 0, "")
	pdf.SetXY(margin, y)
	pdf.CellFormat(contentW, 4, tr(frLongDate(inv)), "", 0, "R", false, 0, "")
	y += 10

	pdf.Line(margin, y, pageW-margin, y)
	y += 6

	// Items
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(61, 44, 94)
	for _, item := range inv.Items {
		label := item.Name
		if item.Qty > 1 {
			label = fmt.Sprintf("%s (x%d)", item.Name, item.Qty)
		}
		pdf.SetXY(margin, y)
		pdf.CellFormat(contentW, 4, tr(label), "", 0, "L", false, 0, "")
		pdf.SetXY(margin, y)
		pdf.CellFormat(contentW, 4, tr(FormatAmount(item.Total)+" "+cfg.Currency), "", 0, "R", false, 0, "")
		y += 6
	}

	y += 4
	pdf.Line(margin, y, pageW-margin, y)
	y += 8

	// Total
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(155, 126, 200)
	pdf.SetXY(margin, y)
	pdf.CellFormat(contentW, 5, "Total", "", 0, "L", false, 0, "")
	pdf.SetXY(margin, y)
	pdf.CellFormat(contentW, 5, tr(FormatAmount(inv.Total)+" "+cfg.Currency), "", 0, "R", false, 0, "")
	y += 14

	// Footer proverb
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(139, 123, 168)
	pdf.SetXY(margin, y)
	pdf.MultiCell(contentW, 4, tr(Proverb(inv.Number)), "", "C", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename is the suggested download name for an invoice document.
func Filename(inv *ledger.Invoice) string {
	return "Facture-" + FormatNumber(inv.Number) + ".pdf"
}

func frLongDate(inv *ledger.Invoice) string {
	d := inv.Date
	return fmt.Sprintf("%d %s %d", d.Day(), frMonths[int(d.Month())-1], d.Year())
}
