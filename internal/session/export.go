package session

import (
	"fmt"
	"io"
	"time"

	"invoicer/internal/store"
)

// ExportFileName names a data export taken at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("invoice_data_%d.json", t.UnixMilli())
}

// Export writes the full snapshot as indented JSON.
func (s *Session) Export(w io.Writer) error {
	const op = "session.Export"

	data, err := store.Encode(s.state)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
