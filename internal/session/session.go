// Package session owns the in-memory data set and threads it through the
// calculation, statistics and projection packages. Every mutation is
// followed by a full snapshot save.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/store"
	"invoicer/pkg/models"
)

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session is the single owner of the data set. It is not safe for
// concurrent use.
type Session struct {
	state *models.Snapshot
	gw    store.Gateway
	log   zerolog.Logger
	now   func() time.Time
}

// Open loads the stored snapshot. The returned session is always usable:
//   - nothing stored: defaults are used and saved right away
//   - load failure: defaults are used, nothing is overwritten, and the
//     failure is returned
//
// A non-nil error is therefore a warning, not a reason to stop.
func Open(ctx context.Context, gw store.Gateway, opts ...Option) (*Session, error) {
	const op = "session.Open"

	s := &Session{
		gw:  gw,
		log: logger.WithComponent("session"),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := gw.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.log.Info().Str("backend", gw.Backend()).Msg("No saved data found, using defaults")
		s.state = models.NewSnapshot()
		if err := s.Persist(ctx); err != nil {
			return s, fmt.Errorf("%s: %w", op, err)
		}
		return s, nil

	case err != nil:
		s.log.Warn().Err(err).Str("backend", gw.Backend()).Msg("Failed to load saved data, using defaults")
		s.state = models.NewSnapshot()
		return s, fmt.Errorf("%s: %w", op, err)
	}

	s.state = snap
	invoice.NewConsistencyCheck().Check(snap.Invoices)
	s.log.Debug().
		Int("invoices", len(snap.Invoices)).
		Int("clients", len(snap.Clients)).
		Msg("Data loaded successfully")
	return s, nil
}

// Persist saves the full snapshot. On failure the in-memory state stays
// authoritative and the error is returned so the caller can retry.
func (s *Session) Persist(ctx context.Context) error {
	if err := s.gw.Save(ctx, s.state); err != nil {
		s.log.Warn().Err(err).Str("backend", s.gw.Backend()).Msg("Failed to save data")
		return err
	}
	s.log.Debug().Str("backend", s.gw.Backend()).Msg("Data saved successfully")
	return nil
}

// Snapshot exposes the current state. Callers must not modify it.
func (s *Session) Snapshot() *models.Snapshot {
	return s.state
}

// Settings returns a copy of the current settings.
func (s *Session) Settings() models.Settings {
	return s.state.Settings
}

// Now returns the session clock.
func (s *Session) Now() time.Time {
	return s.now()
}
