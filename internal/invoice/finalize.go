package invoice

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"

	"invoicer/internal/ids"
	"invoicer/pkg/models"
)

// Metadata carries the invoice fields that are not computed from line items.
type Metadata struct {
	Date      civil.Date
	DueDate   civil.Date
	Notes     string
	CreatedAt time.Time
}

// DefaultMetadata dates an invoice on the day of now and makes it due after
// the configured payment terms.
func DefaultMetadata(now time.Time, s models.InvoiceSettings) Metadata {
	today := civil.DateOf(now)
	return Metadata{
		Date:      today,
		DueDate:   today.AddDays(s.PaymentTerms),
		CreatedAt: now,
	}
}

// Finalize commits the draft as a sent invoice. It needs a client and at least
// one billable item; other items are dropped. On error neither the draft nor
// the settings are touched. On success the sequencer is advanced once.
func Finalize(d *Draft, clientID string, settings *models.InvoiceSettings, meta Metadata) (*models.Invoice, error) {
	const op = "invoice.Finalize"

	if clientID == "" {
		return nil, fmt.Errorf("%s: %w", op,
			NewValidationError("clientId", clientID, "select a client", ErrMissingClient))
	}

	items := make([]models.LineItem, 0, len(d.LineItems))
	for _, item := range d.LineItems {
		if item.Billable() {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%s: %w", op,
			NewValidationError("lineItems", len(d.LineItems), "add at least one item with a description and amount", ErrNoValidLineItems))
	}

	return commit(d, items, clientID, settings, meta, models.StatusSent), nil
}

// SaveDraft commits the draft without any validation, keeping every line item.
// The sequencer is advanced just as for a finalized invoice.
func SaveDraft(d *Draft, clientID string, settings *models.InvoiceSettings, meta Metadata) *models.Invoice {
	items := make([]models.LineItem, len(d.LineItems))
	copy(items, d.LineItems)
	return commit(d, items, clientID, settings, meta, models.StatusDraft)
}

// commit snapshots the draft totals. They are frozen from here on and never
// follow later changes to the settings.
func commit(d *Draft, items []models.LineItem, clientID string, settings *models.InvoiceSettings, meta Metadata, status models.Status) *models.Invoice {
	createdAt := meta.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	inv := &models.Invoice{
		ID:        ids.NewString(),
		Number:    NextInvoiceNumber(*settings),
		ClientID:  clientID,
		Date:      meta.Date,
		DueDate:   meta.DueDate,
		LineItems: items,
		Subtotal:  d.Subtotal,
		TaxRate:   d.TaxRate,
		TaxAmount: d.TaxAmount,
		Discount:  d.DiscountAmount,
		Total:     d.Total,
		Notes:     meta.Notes,
		Status:    status,
		CreatedAt: createdAt,
	}
	Advance(settings)
	return inv
}
