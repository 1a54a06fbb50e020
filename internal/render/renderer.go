// Package render turns a projected document into a printable artifact.
package render

import (
	"fmt"
	"io"
	"time"

	"invoicer/internal/document"
)

// Renderer writes a document in some output format.
type Renderer interface {
	Render(w io.Writer, doc *document.Document) error
}

// PDFFileName names a PDF export taken at t.
func PDFFileName(t time.Time) string {
	return fmt.Sprintf("invoice_%d.pdf", t.UnixMilli())
}
