package sheets

import (
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/pkg/models"
)

func TestExtractSpreadsheetID(t *testing.T) {
	id, err := extractSpreadsheetID("https://docs.google.com/spreadsheets/d/1AbC-d_9/edit#gid=0")
	require.NoError(t, err)
	assert.Equal(t, "1AbC-d_9", id)

	_, err = extractSpreadsheetID("https://example.com/nothing")
	assert.Error(t, err)
}

func TestColumnSpans(t *testing.T) {
	assert.Equal(t, "A2:J", dataSpan(len(RegisterHeaders)))
	assert.Equal(t, "A1:J1", headerSpan(len(RegisterHeaders)))
}

func TestRegisterRows(t *testing.T) {
	snap := models.NewSnapshot()
	snap.Clients = []models.Client{{ID: "c1", Name: "Globex"}}
	snap.Invoices = []models.Invoice{
		{
			Number:    "INV-0001",
			ClientID:  "c1",
			Date:      civil.Date{Year: 2024, Month: 3, Day: 5},
			DueDate:   civil.Date{Year: 2024, Month: 4, Day: 4},
			Subtotal:  decimal.RequireFromString("200.01"),
			TaxAmount: decimal.RequireFromString("36"),
			Total:     decimal.RequireFromString("236.01"),
			Status:    models.StatusPaid,
		},
		{Number: "INV-0002", ClientID: "gone", Status: models.StatusDraft},
	}

	rows := RegisterRows(snap)
	require.Len(t, rows, 2)
	assert.Equal(t, []interface{}{
		"INV-0001", "2024-03-05", "2024-04-04", "Globex", "200.01",
		"36.00", "0.00", "236.01", "₹", "paid",
	}, rows[0].Values())

	assert.Equal(t, "Unknown Client", rows[1].Client)
	assert.Empty(t, rows[1].Date)
	assert.Len(t, rows[1].Values(), len(RegisterHeaders))
}
