package session

import (
	"context"
	"fmt"

	"invoicer/internal/document"
	"invoicer/internal/invoice"
	"invoicer/pkg/models"
)

// BeginDraft starts a new invoice with one empty line item, the default tax
// rate and dates from today and the payment terms.
func (s *Session) BeginDraft() (*invoice.Draft, invoice.Metadata) {
	settings := s.state.Settings.Invoice
	d := invoice.NewDraft(settings.TaxRate)
	d.AddItem()
	return d, invoice.DefaultMetadata(s.now(), settings)
}

// PreviewNumber is the number the next committed invoice will get.
func (s *Session) PreviewNumber() string {
	return invoice.NextInvoiceNumber(s.state.Settings.Invoice)
}

// Commit finalizes the draft and saves. A validation error leaves the state
// untouched. A save failure still returns the committed invoice together
// with the error.
func (s *Session) Commit(ctx context.Context, d *invoice.Draft, clientID string, meta invoice.Metadata) (*models.Invoice, error) {
	const op = "session.Commit"

	inv, err := invoice.Finalize(d, clientID, &s.state.Settings.Invoice, s.stamp(meta))
	if err != nil {
		s.log.Info().Err(err).Msg("Invoice not created")
		return nil, err
	}
	return s.append(ctx, op, inv)
}

// SaveDraft stores the draft as an invoice with status draft, without
// validation.
func (s *Session) SaveDraft(ctx context.Context, d *invoice.Draft, clientID string, meta invoice.Metadata) (*models.Invoice, error) {
	const op = "session.SaveDraft"

	inv := invoice.SaveDraft(d, clientID, &s.state.Settings.Invoice, s.stamp(meta))
	return s.append(ctx, op, inv)
}

func (s *Session) stamp(meta invoice.Metadata) invoice.Metadata {
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = s.now()
	}
	return meta
}

func (s *Session) append(ctx context.Context, op string, inv *models.Invoice) (*models.Invoice, error) {
	s.state.Invoices = append(s.state.Invoices, *inv)
	s.log.Info().
		Str("number", inv.Number).
		Str("status", string(inv.Status)).
		Str("total", inv.Total.String()).
		Msg("Invoice created")

	if err := s.Persist(ctx); err != nil {
		return inv, fmt.Errorf("%s: %w", op, err)
	}
	return inv, nil
}

// Invoices returns all invoices in creation order.
func (s *Session) Invoices() []models.Invoice {
	return s.state.Invoices
}

// FindInvoice looks an invoice up by id or number.
func (s *Session) FindInvoice(ref string) (*models.Invoice, error) {
	for i := range s.state.Invoices {
		inv := &s.state.Invoices[i]
		if inv.ID == ref || inv.Number == ref {
			return inv, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", invoice.ErrInvoiceNotFound, ref)
}

// SetStatus moves an invoice to another status. Totals are never touched.
func (s *Session) SetStatus(ctx context.Context, ref string, status models.Status) (*models.Invoice, error) {
	const op = "session.SetStatus"

	if !status.Valid() {
		return nil, fmt.Errorf("%s: %w: %q", op, invoice.ErrInvalidStatus, status)
	}

	inv, err := s.FindInvoice(ref)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	previous := inv.Status
	inv.Status = status
	s.log.Info().
		Str("number", inv.Number).
		Str("from", string(previous)).
		Str("to", string(status)).
		Msg("Invoice status changed")

	if err := s.Persist(ctx); err != nil {
		return inv, fmt.Errorf("%s: %w", op, err)
	}
	return inv, nil
}

// MarkPaid sets an invoice's status to paid.
func (s *Session) MarkPaid(ctx context.Context, ref string) (*models.Invoice, error) {
	return s.SetStatus(ctx, ref, models.StatusPaid)
}

// Document projects an invoice with its client and the current settings.
func (s *Session) Document(ref string, compact bool) (*document.Document, error) {
	inv, err := s.FindInvoice(ref)
	if err != nil {
		return nil, err
	}

	// A missing client is projected as "Unknown Client".
	client, _ := s.FindClient(inv.ClientID)
	return document.Project(inv, client, s.state.Settings, compact), nil
}
