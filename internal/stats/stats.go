// Package stats reduces the invoice collection into dashboard figures.
package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"invoicer/pkg/models"
)

// DashboardStats are derived on demand and never stored.
type DashboardStats struct {
	TotalRevenue         decimal.Decimal `json:"totalRevenue"`
	PaidCount            int             `json:"paidCount"`
	PaidAmount           decimal.Decimal `json:"paidAmount"`
	PendingCount         int             `json:"pendingCount"`
	PendingAmount        decimal.Decimal `json:"pendingAmount"`
	ThisMonthRevenue     decimal.Decimal `json:"thisMonthRevenue"`
	LastMonthRevenue     decimal.Decimal `json:"lastMonthRevenue"`
	RevenueGrowthPercent int64           `json:"revenueGrowthPercent"`
}

// Compute aggregates invoices relative to ref.
//
// Paid invoices count as revenue. Sent and pending invoices are outstanding.
// Drafts are ignored. The monthly buckets compare the month of the year only,
// so a paid invoice from the same month of an earlier year counts as this
// month's revenue.
func Compute(invoices []models.Invoice, ref time.Time) DashboardStats {
	thisMonth := ref.Month()
	lastMonth := thisMonth - 1
	if thisMonth == time.January {
		lastMonth = time.December
	}

	s := DashboardStats{
		TotalRevenue:     decimal.Zero,
		PaidAmount:       decimal.Zero,
		PendingAmount:    decimal.Zero,
		ThisMonthRevenue: decimal.Zero,
		LastMonthRevenue: decimal.Zero,
	}

	for _, inv := range invoices {
		switch {
		case inv.Status == models.StatusPaid:
			s.TotalRevenue = s.TotalRevenue.Add(inv.Total)
			s.PaidAmount = s.PaidAmount.Add(inv.Total)
			s.PaidCount++

			switch inv.Date.Month {
			case thisMonth:
				s.ThisMonthRevenue = s.ThisMonthRevenue.Add(inv.Total)
			case lastMonth:
				s.LastMonthRevenue = s.LastMonthRevenue.Add(inv.Total)
			}
		case inv.Status.IsOpen():
			s.PendingCount++
			s.PendingAmount = s.PendingAmount.Add(inv.Total)
		}
	}

	s.RevenueGrowthPercent = Growth(s.ThisMonthRevenue, s.LastMonthRevenue)
	return s
}

var hundred = decimal.NewFromInt(100)

// Growth is the whole-percent change from last to current, rounding halves
// up. It is 0 when last is not positive.
func Growth(current, last decimal.Decimal) int64 {
	if !last.IsPositive() {
		return 0
	}
	pct := current.Sub(last).Mul(hundred).DivRound(last, 16)
	return pct.Add(decimal.New(5, -1)).Floor().IntPart()
}

// Recent returns up to n invoices, newest first by creation time.
func Recent(invoices []models.Invoice, n int) []models.Invoice {
	out := make([]models.Invoice, len(invoices))
	copy(out, invoices)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
