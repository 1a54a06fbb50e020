package stats

import (
	"github.com/shopspring/decimal"

	"invoicer/pkg/models"
)

// ClientSummary is what a client card shows.
type ClientSummary struct {
	Client       models.Client
	InvoiceCount int
	Revenue      decimal.Decimal // Paid invoices only
}

// ClientSummaries returns one summary per client, in client order. Invoices
// whose client no longer exists are not counted anywhere.
func ClientSummaries(clients []models.Client, invoices []models.Invoice) []ClientSummary {
	index := make(map[string]int, len(clients))
	out := make([]ClientSummary, len(clients))
	for i, c := range clients {
		index[c.ID] = i
		out[i] = ClientSummary{Client: c, Revenue: decimal.Zero}
	}

	for _, inv := range invoices {
		i, ok := index[inv.ClientID]
		if !ok {
			continue
		}
		out[i].InvoiceCount++
		if inv.IsPaid() {
			out[i].Revenue = out[i].Revenue.Add(inv.Total)
		}
	}
	return out
}
