package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"invoicer/internal/document"
)

// Ensure TextRenderer implements Renderer
var _ Renderer = (*TextRenderer)(nil)

// TextRenderer writes a plain-text rendition for terminals.
type TextRenderer struct{}

// NewTextRenderer creates a text renderer.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

// Render implements Renderer.
func (r *TextRenderer) Render(out io.Writer, doc *document.Document) error {
	const op = "render.Text"

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	h := doc.Header

	fmt.Fprintf(tw, "%s\n", h.Title)
	fmt.Fprintf(tw, "%s %s\n", h.NumberLabel, h.Number)
	fmt.Fprintf(tw, "%s %s\t%s %s\n\n", h.DateLabel, h.Date, h.DueDateLabel, h.DueDate)

	writeParty(tw, doc.Issuer)
	writeParty(tw, doc.Recipient)

	if doc.HasItemTable() {
		fmt.Fprintln(tw, strings.Join(doc.Columns, "\t"))
		for _, row := range doc.Rows {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", row.Description, row.Quantity, row.Rate, row.Amount)
		}
	} else {
		fmt.Fprintln(tw, "Items")
		for _, row := range doc.Rows {
			fmt.Fprintf(tw, "%s\n  %s x %s\t%s\n", row.Description, row.Quantity, row.Rate, row.Amount)
		}
	}
	fmt.Fprintln(tw)

	for _, t := range doc.Totals {
		fmt.Fprintf(tw, "\t\t%s\t%s\n", t.Label, t.Value)
	}
	fmt.Fprintln(tw)

	if doc.Notes != "" {
		fmt.Fprintf(tw, "Notes:\n%s\n\n", doc.Notes)
	}

	if p := doc.Payment; p != nil {
		fmt.Fprintln(tw, p.Heading)
		for _, f := range p.Bank {
			fmt.Fprintf(tw, "%s\t%s\n", f.Label, f.Value)
		}
		if p.UPI != nil {
			fmt.Fprintf(tw, "%s\t%s\n", p.UPI.Caption, p.UPI.ID)
			if p.UPI.URI != "" {
				fmt.Fprintf(tw, "\t%s\n", p.UPI.URI)
			}
		}
		fmt.Fprintln(tw)
	}

	for _, line := range doc.Footer {
		fmt.Fprintln(tw, line)
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func writeParty(w io.Writer, p document.Party) {
	if p.Heading != "" {
		fmt.Fprintln(w, p.Heading)
	}
	fmt.Fprintln(w, p.Name)
	for _, f := range p.Fields {
		if f.Label != "" {
			fmt.Fprintf(w, "%s %s\n", f.Label, f.Value)
			continue
		}
		fmt.Fprintln(w, f.Value)
	}
	fmt.Fprintln(w)
}
