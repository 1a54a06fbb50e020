package session

import (
	"invoicer/internal/stats"
	"invoicer/pkg/models"
)

// RecentLimit is how many invoices the dashboard lists.
const RecentLimit = 5

// Stats computes the dashboard figures as of now.
func (s *Session) Stats() stats.DashboardStats {
	return stats.Compute(s.state.Invoices, s.now())
}

// Recent returns the newest invoices first.
func (s *Session) Recent(n int) []models.Invoice {
	return stats.Recent(s.state.Invoices, n)
}
