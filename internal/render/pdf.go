package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"invoicer/internal/document"
)

// Ensure PDFRenderer implements Renderer
var _ Renderer = (*PDFRenderer)(nil)

const (
	qrPixels     = 300
	qrSizeFull   = 40.0 // mm
	qrSizeNarrow = 28.0
	qrImageName  = "upi-qr"
)

// PDFRenderer draws documents onto A4 pages with the core fonts.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDF renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// pdfWriter keeps the page and the text translator together.
type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

// text prepares a string for the cp1252 core fonts. The rupee sign has no
// cp1252 code point and is spelled out.
func (w *pdfWriter) text(s string) string {
	return w.tr(strings.ReplaceAll(s, "₹", "Rs. "))
}

// Render implements Renderer.
func (r *PDFRenderer) Render(out io.Writer, doc *document.Document) error {
	const op = "render.PDF"

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	w := &pdfWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	if doc.Layout == document.LayoutCompact {
		w.compactHeader(doc)
	} else {
		w.fullHeader(doc)
	}

	if doc.HasItemTable() {
		w.itemTable(doc)
	} else {
		w.itemList(doc)
	}

	w.totals(doc)
	w.notes(doc)
	if err := w.payment(doc); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	w.footer(doc)

	if err := pdf.Output(out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (w *pdfWriter) red()   { w.pdf.SetTextColor(220, 38, 38) }
func (w *pdfWriter) black() { w.pdf.SetTextColor(0, 0, 0) }
func (w *pdfWriter) grey()  { w.pdf.SetTextColor(102, 102, 102) }

func (w *pdfWriter) line(h float64, s string) {
	w.pdf.CellFormat(0, h, w.text(s), "", 1, "L", false, 0, "")
}

func (w *pdfWriter) fieldLines(fields []document.Field, h float64) {
	for _, f := range fields {
		if f.Label != "" {
			w.line(h, f.Label+" "+f.Value)
			continue
		}
		w.line(h, f.Value)
	}
}

func (w *pdfWriter) rule() {
	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()
	y := w.pdf.GetY()
	w.pdf.SetDrawColor(220, 38, 38)
	w.pdf.SetLineWidth(0.8)
	w.pdf.Line(left, y, pageW-right, y)
	w.pdf.SetLineWidth(0.2)
	w.pdf.Ln(4)
}

func (w *pdfWriter) compactHeader(doc *document.Document) {
	h := doc.Header

	w.red()
	w.pdf.SetFont("Arial", "B", 20)
	w.pdf.CellFormat(0, 10, w.text(h.Title), "", 1, "C", false, 0, "")
	w.black()
	w.pdf.SetFont("Arial", "", 11)
	w.pdf.CellFormat(0, 6, w.text(h.NumberLabel+" "+h.Number), "", 1, "C", false, 0, "")
	w.pdf.Ln(2)
	w.rule()

	for _, party := range []document.Party{doc.Issuer, doc.Recipient} {
		w.red()
		w.pdf.SetFont("Arial", "B", 12)
		w.line(6, party.Heading)
		w.black()
		w.pdf.SetFont("Arial", "B", 11)
		w.line(5, party.Name)
		w.pdf.SetFont("Arial", "", 9)
		w.fieldLines(party.Fields, 4.5)
		w.pdf.Ln(3)
	}

	w.pdf.SetFont("Arial", "", 9)
	w.pdf.CellFormat(90, 5, w.text(h.DateLabel+" "+h.Date), "", 0, "L", false, 0, "")
	w.pdf.CellFormat(0, 5, w.text(h.DueDateLabel+" "+h.DueDate), "", 1, "R", false, 0, "")
	w.pdf.Ln(3)
}

func (w *pdfWriter) fullHeader(doc *document.Document) {
	h := doc.Header
	top := w.pdf.GetY()

	w.black()
	w.pdf.SetFont("Times", "B", 20)
	w.line(10, doc.Issuer.Name)
	w.pdf.SetFont("Times", "", 10)
	w.fieldLines(doc.Issuer.Fields, 5)
	leftEnd := w.pdf.GetY()

	w.pdf.SetXY(110, top)
	w.red()
	w.pdf.SetFont("Times", "B", 28)
	w.pdf.CellFormat(0, 12, w.text(h.Title), "", 2, "R", false, 0, "")
	w.black()
	w.pdf.SetFont("Times", "", 11)
	w.pdf.CellFormat(0, 6, w.text(h.NumberLabel+" "+h.Number), "", 2, "R", false, 0, "")
	w.pdf.SetFont("Times", "", 10)
	w.pdf.CellFormat(0, 5, w.text(h.DateLabel+" "+h.Date), "", 2, "R", false, 0, "")
	w.pdf.CellFormat(0, 5, w.text(h.DueDateLabel+" "+h.DueDate), "", 1, "R", false, 0, "")

	if y := w.pdf.GetY(); y < leftEnd {
		w.pdf.SetY(leftEnd)
	}
	w.pdf.Ln(3)
	w.rule()

	w.red()
	w.pdf.SetFont("Times", "B", 12)
	w.line(7, strings.ToUpper(doc.Recipient.Heading))
	w.black()
	w.pdf.SetFont("Times", "B", 11)
	w.line(6, doc.Recipient.Name)
	w.pdf.SetFont("Times", "", 10)
	w.fieldLines(doc.Recipient.Fields, 5)
	w.pdf.Ln(6)
}

var columnWidths = []float64{95, 20, 32.5, 32.5}
var columnAlign = []string{"L", "C", "R", "R"}

func (w *pdfWriter) itemTable(doc *document.Document) {
	w.pdf.SetFillColor(220, 38, 38)
	w.pdf.SetTextColor(255, 255, 255)
	w.pdf.SetFont("Times", "B", 10)
	for i, col := range doc.Columns {
		ln := 0
		if i == len(doc.Columns)-1 {
			ln = 1
		}
		w.pdf.CellFormat(columnWidths[i], 9, w.text(col), "", ln, columnAlign[i], true, 0, "")
	}

	w.black()
	w.pdf.SetFont("Times", "", 10)
	w.pdf.SetFillColor(250, 250, 250)
	for i, row := range doc.Rows {
		fill := i%2 == 0
		cells := []string{row.Description, row.Quantity, row.Rate, row.Amount}
		for j, cell := range cells {
			ln := 0
			if j == len(cells)-1 {
				ln = 1
			}
			w.pdf.CellFormat(columnWidths[j], 8, w.text(cell), "B", ln, columnAlign[j], fill, 0, "")
		}
	}
	w.pdf.Ln(6)
}

func (w *pdfWriter) itemList(doc *document.Document) {
	w.red()
	w.pdf.SetFont("Arial", "B", 12)
	w.line(7, "Items")
	w.black()

	for _, row := range doc.Rows {
		w.pdf.SetFont("Arial", "B", 10)
		w.line(5, row.Description)
		w.pdf.SetFont("Arial", "", 9)
		w.grey()
		w.pdf.CellFormat(120, 5, w.text(row.Quantity+" x "+row.Rate), "", 0, "L", false, 0, "")
		w.black()
		w.pdf.SetFont("Arial", "B", 9)
		w.pdf.CellFormat(0, 5, w.text(row.Amount), "", 1, "R", false, 0, "")
		w.pdf.Ln(1)
	}
	w.pdf.Ln(4)
}

func (w *pdfWriter) totals(doc *document.Document) {
	family := "Times"
	x := 110.0
	if doc.Layout == document.LayoutCompact {
		family = "Arial"
		x = 15
	}

	for _, t := range doc.Totals {
		w.pdf.SetX(x)
		if t.Kind == document.TotalDue {
			w.red()
			w.pdf.SetFont(family, "B", 13)
			w.pdf.CellFormat(45, 9, w.text(t.Label), "T", 0, "L", false, 0, "")
			w.pdf.CellFormat(0, 9, w.text(t.Value), "T", 1, "R", false, 0, "")
			w.black()
			continue
		}
		w.pdf.SetFont(family, "", 10)
		w.pdf.CellFormat(45, 7, w.text(t.Label), "", 0, "L", false, 0, "")
		w.pdf.SetFont(family, "B", 10)
		w.pdf.CellFormat(0, 7, w.text(t.Value), "", 1, "R", false, 0, "")
	}
	w.pdf.Ln(6)
}

func (w *pdfWriter) notes(doc *document.Document) {
	if doc.Notes == "" {
		return
	}
	w.pdf.SetFont("Arial", "B", 10)
	w.line(6, "Notes:")
	w.pdf.SetFont("Arial", "", 9)
	w.pdf.MultiCell(0, 5, w.text(doc.Notes), "", "L", false)
	w.pdf.Ln(4)
}

func (w *pdfWriter) payment(doc *document.Document) error {
	p := doc.Payment
	if p == nil {
		return nil
	}

	top := w.pdf.GetY()
	w.red()
	w.pdf.SetFont("Arial", "B", 11)
	w.line(7, p.Heading)
	w.black()
	w.pdf.SetFont("Arial", "", 9)
	w.fieldLines(p.Bank, 5)
	end := w.pdf.GetY()

	if p.UPI != nil {
		size := qrSizeFull
		x := 150.0
		y := top
		if doc.Layout == document.LayoutCompact {
			size = qrSizeNarrow
			x = 90 - size/2
			y = end + 2
		}

		if p.UPI.URI != "" {
			img, err := QRCodePNG(p.UPI.URI, qrPixels)
			if err != nil {
				return err
			}
			opts := gofpdf.ImageOptions{ImageType: "PNG"}
			w.pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(img))
			w.pdf.ImageOptions(qrImageName, x, y, size, size, false, opts, 0, "")
			y += size
		}

		w.pdf.SetXY(x-10, y+1)
		w.grey()
		w.pdf.SetFont("Arial", "", 8)
		w.pdf.CellFormat(size+20, 4, w.text(p.UPI.Caption), "", 2, "C", false, 0, "")
		w.pdf.CellFormat(size+20, 4, w.text(p.UPI.ID), "", 1, "C", false, 0, "")
		w.black()

		if after := w.pdf.GetY(); after > end {
			end = after
		}
	}

	w.pdf.SetXY(15, end)
	w.pdf.Ln(6)
	return w.pdf.Error()
}

func (w *pdfWriter) footer(doc *document.Document) {
	w.pdf.SetFont("Arial", "", 10)
	for i, line := range doc.Footer {
		if i > 0 {
			w.pdf.SetFont("Arial", "", 8)
			w.grey()
		}
		w.pdf.CellFormat(0, 6, w.text(line), "", 1, "C", false, 0, "")
	}
	w.black()
}
