package session

import (
	"context"
	"fmt"
	"strings"

	"invoicer/internal/ids"
	"invoicer/internal/invoice"
	"invoicer/internal/stats"
	"invoicer/pkg/models"
)

// AddClient stores a new client. ID and CreatedAt are assigned here.
func (s *Session) AddClient(ctx context.Context, c models.Client) (*models.Client, error) {
	const op = "session.AddClient"

	if strings.TrimSpace(c.Name) == "" {
		return nil, fmt.Errorf("%s: %w", op,
			invoice.NewValidationError("name", c.Name, "enter a client name", invoice.ErrMissingClientName))
	}

	c.ID = ids.NewString()
	c.CreatedAt = s.now()
	s.state.Clients = append(s.state.Clients, c)
	added := &s.state.Clients[len(s.state.Clients)-1]

	s.log.Info().Str("client_id", c.ID).Str("name", c.Name).Msg("Client added")
	if err := s.Persist(ctx); err != nil {
		return added, fmt.Errorf("%s: %w", op, err)
	}
	return added, nil
}

// Clients returns all clients in creation order.
func (s *Session) Clients() []models.Client {
	return s.state.Clients
}

// FindClient looks a client up by id.
func (s *Session) FindClient(id string) (*models.Client, error) {
	for i := range s.state.Clients {
		if s.state.Clients[i].ID == id {
			return &s.state.Clients[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", invoice.ErrClientNotFound, id)
}

// ClientName returns the client's name, or "Unknown Client" if it is gone.
func (s *Session) ClientName(id string) string {
	if c, err := s.FindClient(id); err == nil && c.Name != "" {
		return c.Name
	}
	return "Unknown Client"
}

// ClientSummaries returns invoice count and paid revenue per client.
func (s *Session) ClientSummaries() []stats.ClientSummary {
	return stats.ClientSummaries(s.state.Clients, s.state.Invoices)
}
