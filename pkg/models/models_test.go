package models

import (
	"encoding/json"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	s, ok := ParseStatus(" Paid ")
	assert.True(t, ok)
	assert.Equal(t, StatusPaid, s)

	_, ok = ParseStatus("void")
	assert.False(t, ok)

	assert.True(t, StatusSent.IsOpen())
	assert.True(t, StatusPending.IsOpen())
	assert.False(t, StatusDraft.IsOpen())
	assert.False(t, StatusPaid.IsOpen())
}

func TestLineItemBillable(t *testing.T) {
	assert.True(t, LineItem{Description: "Design", Amount: decimal.NewFromInt(1)}.Billable())
	assert.False(t, LineItem{Description: "", Amount: decimal.NewFromInt(1)}.Billable())
	assert.False(t, LineItem{Description: "Free", Amount: decimal.Zero}.Billable())
	assert.False(t, LineItem{Description: "Credit", Amount: decimal.NewFromInt(-5)}.Billable())
}

func TestInvoiceUnmarshalTolerant(t *testing.T) {
	raw := `{
		"id": "1700000000000",
		"number": "INV-0007",
		"clientId": "c1",
		"date": "2024-03-05",
		"dueDate": "2024-04-04T10:00:00Z",
		"lineItems": [{"id": 17, "description": "Work", "quantity": "2", "rate": 100.5, "amount": "abc"}],
		"subtotal": 201,
		"taxRate": "18",
		"taxAmount": null,
		"discount": "",
		"total": "237.18",
		"status": "paid",
		"createdAt": "not a time"
	}`

	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(raw), &inv))

	assert.Equal(t, "INV-0007", inv.Number)
	assert.Equal(t, civil.Date{Year: 2024, Month: 3, Day: 5}, inv.Date)
	assert.Equal(t, civil.Date{Year: 2024, Month: 4, Day: 4}, inv.DueDate)
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(201)))
	assert.True(t, inv.TaxRate.Equal(decimal.NewFromInt(18)))
	assert.True(t, inv.TaxAmount.IsZero())
	assert.True(t, inv.Discount.IsZero())
	assert.True(t, inv.Total.Equal(decimal.RequireFromString("237.18")))
	assert.True(t, inv.CreatedAt.IsZero())
	assert.True(t, inv.IsPaid())
	assert.False(t, inv.IsDraft())

	require.Len(t, inv.LineItems, 1)
	item := inv.LineItems[0]
	assert.Equal(t, int64(17), item.ID)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, item.Rate.Equal(decimal.RequireFromString("100.5")))
	assert.True(t, item.Amount.IsZero())
}

func TestInvoiceUnmarshalMissingLineItems(t *testing.T) {
	var inv Invoice
	require.NoError(t, json.Unmarshal([]byte(`{"id":"x","lineItems":"nope"}`), &inv))
	assert.NotNil(t, inv.LineItems)
	assert.Empty(t, inv.LineItems)
	assert.True(t, inv.Date.IsZero())
}

func TestSnapshotRoundTrip(t *testing.T) {
	snap := NewSnapshot()
	snap.Clients = append(snap.Clients, Client{ID: "c1", Name: "Acme"})
	snap.Invoices = append(snap.Invoices, Invoice{
		ID:        "i1",
		Number:    "INV-0001",
		ClientID:  "c1",
		Date:      civil.Date{Year: 2024, Month: 1, Day: 15},
		DueDate:   civil.Date{Year: 2024, Month: 2, Day: 14},
		LineItems: []LineItem{{ID: 1, Description: "A", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10)}},
		Subtotal:  decimal.NewFromInt(10),
		TaxRate:   decimal.NewFromInt(18),
		TaxAmount: decimal.RequireFromString("1.8"),
		Total:     decimal.RequireFromString("11.8"),
		Status:    StatusSent,
	})

	first, err := json.Marshal(snap)
	require.NoError(t, err)

	var back Snapshot
	require.NoError(t, json.Unmarshal(first, &back))

	second, err := json.Marshal(&back)
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, "₹", s.Invoice.Currency)
	assert.Equal(t, "INV-", s.Invoice.Prefix)
	assert.Equal(t, 30, s.Invoice.PaymentTerms)
	assert.Equal(t, int64(1), s.Invoice.NextNumber)
	assert.True(t, s.Invoice.TaxRate.Equal(decimal.NewFromInt(18)))
}
