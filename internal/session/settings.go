package session

import (
	"context"
	"fmt"

	"invoicer/pkg/models"
)

// UpdateProfile replaces the business profile.
func (s *Session) UpdateProfile(ctx context.Context, p models.Profile) error {
	s.state.Settings.Profile = p
	return s.saveSettings(ctx, "session.UpdateProfile", "profile")
}

// UpdatePayment replaces the payment details.
func (s *Session) UpdatePayment(ctx context.Context, p models.Payment) error {
	s.state.Settings.Payment = p
	return s.saveSettings(ctx, "session.UpdatePayment", "payment")
}

// UpdateInvoiceSettings replaces currency, tax rate, prefix and payment
// terms. The number counter is kept so numbers are never reused.
func (s *Session) UpdateInvoiceSettings(ctx context.Context, in models.InvoiceSettings) error {
	in.NextNumber = s.state.Settings.Invoice.NextNumber
	s.state.Settings.Invoice = in
	return s.saveSettings(ctx, "session.UpdateInvoiceSettings", "invoice")
}

// SetDarkMode stores the display preference.
func (s *Session) SetDarkMode(ctx context.Context, on bool) error {
	s.state.Settings.App.DarkMode = on
	return s.saveSettings(ctx, "session.SetDarkMode", "app")
}

func (s *Session) saveSettings(ctx context.Context, op, section string) error {
	s.log.Info().Str("section", section).Msg("Settings updated")
	if err := s.Persist(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
