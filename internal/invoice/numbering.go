package invoice

import (
	"fmt"

	"invoicer/pkg/models"
)

// NextInvoiceNumber formats the number the next committed invoice will get:
// the prefix followed by the counter padded to at least four digits.
func NextInvoiceNumber(s models.InvoiceSettings) string {
	return fmt.Sprintf("%s%04d", s.Prefix, s.NextNumber)
}

// Advance consumes the current number. Call it once per committed invoice.
func Advance(s *models.InvoiceSettings) {
	s.NextNumber++
}
