package invoice

import (
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/pkg/models"
)

func billableDraft() *Draft {
	d := NewDraft(dec("18"))
	id := d.AddItem()
	d.UpdateItem(id, FieldDescription, "Design")
	d.UpdateItem(id, FieldRate, "100")
	return d
}

func TestNextInvoiceNumber(t *testing.T) {
	s := models.DefaultSettings().Invoice
	assert.Equal(t, "INV-0001", NextInvoiceNumber(s))

	s.NextNumber = 9999
	assert.Equal(t, "INV-9999", NextInvoiceNumber(s))
	Advance(&s)
	assert.Equal(t, int64(10000), s.NextNumber)
	assert.Equal(t, "INV-10000", NextInvoiceNumber(s))

	s.Prefix = ""
	s.NextNumber = 42
	assert.Equal(t, "0042", NextInvoiceNumber(s))
}

func TestFinalizeMissingClient(t *testing.T) {
	settings := models.DefaultSettings().Invoice
	d := billableDraft()
	before := *d
	beforeItems := append([]models.LineItem(nil), d.LineItems...)

	inv, err := Finalize(d, "", &settings, Metadata{})
	require.Error(t, err)
	assert.Nil(t, inv)
	assert.True(t, errors.Is(err, ErrMissingClient))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "clientId", verr.Field)

	assert.Equal(t, int64(1), settings.NextNumber)
	assert.Equal(t, beforeItems, d.LineItems)
	assert.True(t, before.Total.Equal(d.Total))
}

func TestFinalizeNoValidLineItems(t *testing.T) {
	settings := models.DefaultSettings().Invoice
	d := NewDraft(dec("18"))
	blank := d.AddItem()
	d.UpdateItem(blank, FieldRate, "50")
	free := d.AddItem()
	d.UpdateItem(free, FieldDescription, "Free sample")

	_, err := Finalize(d, "client-1", &settings, Metadata{})
	assert.ErrorIs(t, err, ErrNoValidLineItems)
	assert.Equal(t, int64(1), settings.NextNumber)
	assert.Len(t, d.LineItems, 2)
}

func TestFinalizeDropsInvalidItems(t *testing.T) {
	settings := models.DefaultSettings().Invoice
	d := billableDraft()
	d.AddItem()

	meta := Metadata{
		Date:    civil.Date{Year: 2024, Month: 5, Day: 1},
		DueDate: civil.Date{Year: 2024, Month: 5, Day: 31},
		Notes:   "Thanks",
	}
	inv, err := Finalize(d, "client-1", &settings, meta)
	require.NoError(t, err)

	assert.Equal(t, models.StatusSent, inv.Status)
	assert.Equal(t, "INV-0001", inv.Number)
	assert.Equal(t, "client-1", inv.ClientID)
	assert.Equal(t, meta.Date, inv.Date)
	assert.Equal(t, meta.DueDate, inv.DueDate)
	assert.Equal(t, "Thanks", inv.Notes)
	assert.False(t, inv.CreatedAt.IsZero())
	require.Len(t, inv.LineItems, 1)
	assert.Equal(t, "Design", inv.LineItems[0].Description)

	assert.True(t, inv.Subtotal.Equal(dec("100")))
	assert.True(t, inv.TaxRate.Equal(dec("18")))
	assert.True(t, inv.TaxAmount.Equal(dec("18")))
	assert.True(t, inv.Total.Equal(dec("118")))
	assert.Equal(t, int64(2), settings.NextNumber)
}

func TestFinalizedTotalsAreFrozen(t *testing.T) {
	settings := models.DefaultSettings().Invoice
	d := billableDraft()
	inv, err := Finalize(d, "client-1", &settings, Metadata{})
	require.NoError(t, err)

	settings.TaxRate = dec("28")
	d.SetTaxRate("28")
	d.UpdateItem(d.LineItems[0].ID, FieldRate, "500")

	assert.True(t, inv.TaxRate.Equal(dec("18")))
	assert.True(t, inv.Total.Equal(dec("118")))
	assert.True(t, inv.LineItems[0].Rate.Equal(dec("100")))
}

func TestSaveDraftSkipsValidation(t *testing.T) {
	settings := models.DefaultSettings().Invoice
	d := NewDraft(decimal.Zero)

	inv := SaveDraft(d, "", &settings, Metadata{})
	assert.Equal(t, models.StatusDraft, inv.Status)
	assert.Empty(t, inv.ClientID)
	assert.NotNil(t, inv.LineItems)
	assert.Empty(t, inv.LineItems)
	assert.Equal(t, int64(2), settings.NextNumber)
}

func TestNumbersAreMonotonic(t *testing.T) {
	settings := models.DefaultSettings().Invoice
	prev := int64(0)
	seen := map[string]bool{}

	for i := 0; i < 25; i++ {
		var inv *models.Invoice
		if i%3 == 0 {
			inv = SaveDraft(billableDraft(), "c", &settings, Metadata{})
		} else {
			var err error
			inv, err = Finalize(billableDraft(), "c", &settings, Metadata{})
			require.NoError(t, err)
		}
		// A failed finalize in between must not consume a number.
		_, err := Finalize(NewDraft(decimal.Zero), "c", &settings, Metadata{})
		require.Error(t, err)

		n, err := strconv.ParseInt(strings.TrimPrefix(inv.Number, "INV-"), 10, 64)
		require.NoError(t, err)
		assert.Equal(t, prev+1, n)
		assert.False(t, seen[inv.ID])
		seen[inv.ID] = true
		prev = n
	}
}

func TestDefaultMetadata(t *testing.T) {
	now := time.Date(2024, time.January, 20, 15, 0, 0, 0, time.UTC)
	s := models.DefaultSettings().Invoice

	meta := DefaultMetadata(now, s)
	assert.Equal(t, civil.Date{Year: 2024, Month: 1, Day: 20}, meta.Date)
	assert.Equal(t, civil.Date{Year: 2024, Month: 2, Day: 19}, meta.DueDate)
	assert.Equal(t, now, meta.CreatedAt)
}

func TestConsistencyCheck(t *testing.T) {
	good := models.Invoice{
		ID:        "a",
		Number:    "INV-0001",
		LineItems: []models.LineItem{{ID: 1, Quantity: dec("2"), Rate: dec("5"), Amount: dec("10")}},
		Subtotal:  dec("10"),
		TaxRate:   dec("18"),
		TaxAmount: dec("1.8"),
		Total:     dec("11.8"),
	}
	bad := good
	bad.ID = "b"
	bad.Number = "INV-0002"
	bad.LineItems = []models.LineItem{{ID: 2, Quantity: dec("2"), Rate: dec("5"), Amount: dec("11")}}
	bad.Total = dec("12")

	found := NewConsistencyCheck().Check([]models.Invoice{good, bad})
	require.Len(t, found, 2)
	assert.Equal(t, "amount", found[0].Field)
	assert.Equal(t, int64(2), found[0].ItemID)
	assert.Equal(t, "total", found[1].Field)
	assert.True(t, found[1].Expected.Equal(dec("11.8")))
}
