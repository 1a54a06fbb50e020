package sheets

import (
	"invoicer/pkg/models"
)

// RegisterHeaders are the column titles of the invoice register.
var RegisterHeaders = []string{
	"Number", "Date", "Due Date", "Client", "Subtotal",
	"Tax", "Discount", "Total", "Currency", "Status",
}

// RegisterRow is one invoice in the register.
type RegisterRow struct {
	Number   string
	Date     string
	DueDate  string
	Client   string
	Subtotal string
	Tax      string
	Discount string
	Total    string
	Currency string
	Status   string
}

// Values converts the row for the Sheets API, in header order.
func (r RegisterRow) Values() []interface{} {
	return []interface{}{
		r.Number,   // A
		r.Date,     // B
		r.DueDate,  // C
		r.Client,   // D
		r.Subtotal, // E
		r.Tax,      // F
		r.Discount, // G
		r.Total,    // H
		r.Currency, // I
		r.Status,   // J
	}
}

// RegisterRows builds one row per invoice. Invoices whose client is gone are
// listed under "Unknown Client".
func RegisterRows(snap *models.Snapshot) []RegisterRow {
	names := make(map[string]string, len(snap.Clients))
	for _, c := range snap.Clients {
		names[c.ID] = c.Name
	}

	currency := snap.Settings.Invoice.Currency
	rows := make([]RegisterRow, 0, len(snap.Invoices))
	for _, inv := range snap.Invoices {
		client := names[inv.ClientID]
		if client == "" {
			client = "Unknown Client"
		}

		row := RegisterRow{
			Number:   inv.Number,
			Client:   client,
			Subtotal: inv.Subtotal.StringFixed(2),
			Tax:      inv.TaxAmount.StringFixed(2),
			Discount: inv.Discount.StringFixed(2),
			Total:    inv.Total.StringFixed(2),
			Currency: currency,
			Status:   string(inv.Status),
		}
		if !inv.Date.IsZero() {
			row.Date = inv.Date.String()
		}
		if !inv.DueDate.IsZero() {
			row.DueDate = inv.DueDate.String()
		}
		rows = append(rows, row)
	}
	return rows
}
