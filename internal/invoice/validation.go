package invoice

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
	"invoicer/pkg/money"
)

// ConsistencyCheck compares stored invoice figures against the calculation
// rules. It only reports; stored invoices are never rewritten.
type ConsistencyCheck struct {
	log zerolog.Logger
}

// NewConsistencyCheck creates a new consistency check
func NewConsistencyCheck() *ConsistencyCheck {
	return &ConsistencyCheck{
		log: logger.WithComponent("consistency-check"),
	}
}

// Discrepancy is a stored figure that does not match its recomputed value.
type Discrepancy struct {
	InvoiceID string
	Number    string
	Field     string // "amount", "taxAmount" or "total"
	ItemID    int64  // Set for "amount"
	Stored    decimal.Decimal
	Expected  decimal.Decimal
}

// Check returns every discrepancy found in invoices.
func (c *ConsistencyCheck) Check(invoices []models.Invoice) []Discrepancy {
	var found []Discrepancy

	for _, inv := range invoices {
		for _, item := range inv.LineItems {
			expected := money.Round2(item.Quantity.Mul(item.Rate))
			if !item.Amount.Equal(expected) {
				found = append(found, Discrepancy{
					InvoiceID: inv.ID,
					Number:    inv.Number,
					Field:     "amount",
					ItemID:    item.ID,
					Stored:    item.Amount,
					Expected:  expected,
				})
			}
		}

		expectedTax := money.Round2(money.Percent(inv.Subtotal, inv.TaxRate))
		if !inv.TaxAmount.Equal(expectedTax) {
			found = append(found, Discrepancy{
				InvoiceID: inv.ID,
				Number:    inv.Number,
				Field:     "taxAmount",
				Stored:    inv.TaxAmount,
				Expected:  expectedTax,
			})
		}

		expectedTotal := money.Round2(inv.Subtotal.Add(inv.TaxAmount).Sub(inv.Discount))
		if !inv.Total.Equal(expectedTotal) {
			found = append(found, Discrepancy{
				InvoiceID: inv.ID,
				Number:    inv.Number,
				Field:     "total",
				Stored:    inv.Total,
				Expected:  expectedTotal,
			})
		}
	}

	for _, d := range found {
		c.log.Warn().
			Str("invoice_id", d.InvoiceID).
			Str("number", d.Number).
			Str("field", d.Field).
			Str("stored", d.Stored.String()).
			Str("expected", d.Expected.String()).
			Msg("Stored invoice figure does not match recalculation")
	}

	if len(found) == 0 {
		c.log.Debug().Int("invoices", len(invoices)).Msg("Stored invoices are consistent")
	}
	return found
}
