package invoice

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/pkg/money"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRecalculateHalfAwayFromZero(t *testing.T) {
	d := NewDraft(dec("18"))

	first := d.AddItem()
	d.UpdateItem(first, FieldDescription, "Consulting")
	d.UpdateItem(first, FieldQuantity, "2")
	d.UpdateItem(first, FieldRate, "100.005")

	second := d.AddItem()
	d.UpdateItem(second, FieldDescription, "Hosting")
	d.UpdateItem(second, FieldRate, "50")

	a, _ := d.Item(first)
	b, _ := d.Item(second)
	assert.Equal(t, "200.01", a.Amount.StringFixed(2))
	assert.Equal(t, "50.00", b.Amount.StringFixed(2))

	assert.True(t, d.Subtotal.Equal(dec("250.01")), d.Subtotal.String())
	assert.True(t, d.TaxAmount.Equal(dec("45.00")), d.TaxAmount.String())
	assert.True(t, d.Total.Equal(dec("295.01")), d.Total.String())
}

func TestRecalculateDiscountAfterTax(t *testing.T) {
	d := NewDraft(dec("10"))
	id := d.AddItem()
	d.UpdateItem(id, FieldDescription, "Widget")
	d.UpdateItem(id, FieldRate, "100")
	d.SetDiscount("15.5")

	assert.True(t, d.TaxAmount.Equal(dec("10")))
	assert.True(t, d.Total.Equal(dec("94.5")))
}

func TestRecalculateCoercesBadInput(t *testing.T) {
	d := NewDraft(dec("18"))
	id := d.AddItem()
	d.UpdateItem(id, FieldQuantity, "three")
	d.UpdateItem(id, FieldRate, "100")
	d.SetTaxRate("abc")
	d.SetDiscount("")

	item, ok := d.Item(id)
	require.True(t, ok)
	assert.True(t, item.Quantity.IsZero())
	assert.True(t, item.Amount.IsZero())
	assert.True(t, d.TaxRate.IsZero())
	assert.True(t, d.Total.IsZero())
}

func TestRecalculateIgnoresOutOfRangeExponents(t *testing.T) {
	d := NewDraft(dec("18"))
	id := d.AddItem()
	d.UpdateItem(id, FieldQuantity, "1e100000000")
	d.UpdateItem(id, FieldRate, "100")

	item, ok := d.Item(id)
	require.True(t, ok)
	assert.True(t, item.Quantity.IsZero())
	assert.True(t, d.Total.IsZero())

	d.UpdateItem(id, FieldQuantity, "2")
	d.UpdateItem(id, FieldRate, "1e-100000000")
	d.SetDiscount("1e100000000")
	assert.True(t, d.Total.IsZero())
	assert.True(t, d.Totals().DiscountAmount.IsZero())
}

func TestTotalInvariantHolds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		d := NewDraft(decimal.New(int64(rng.Intn(3000)), -2))
		for i := 0; i < 1+rng.Intn(6); i++ {
			id := d.AddItem()
			d.UpdateItem(id, FieldQuantity, decimal.New(int64(rng.Intn(10000)), -2).String())
			d.UpdateItem(id, FieldRate, decimal.New(int64(rng.Intn(1000000)), -3).String())
		}
		d.SetDiscount(decimal.New(int64(rng.Intn(5000)), -2).String())

		for _, item := range d.LineItems {
			assert.True(t, item.Amount.Equal(money.Round2(item.Quantity.Mul(item.Rate))))
		}
		expected := money.Round2(d.Subtotal.Add(d.TaxAmount).Sub(d.DiscountAmount))
		assert.True(t, d.Total.Equal(expected), "run %d: %s != %s", run, d.Total, expected)
	}
}

func TestLedgerUnknownIDIsNoop(t *testing.T) {
	d := NewDraft(dec("18"))
	id := d.AddItem()
	d.UpdateItem(id, FieldRate, "10")

	d.UpdateItem(id+12345, FieldRate, "99")
	d.UpdateItem(id, Field("colour"), "red")
	d.RemoveItem(id + 12345)

	require.Len(t, d.LineItems, 1)
	assert.True(t, d.LineItems[0].Rate.Equal(dec("10")))
	assert.True(t, d.Subtotal.Equal(dec("10")))
}

func TestLedgerRemoveItemRecalculates(t *testing.T) {
	d := NewDraft(decimal.Zero)
	a := d.AddItem()
	b := d.AddItem()
	d.UpdateItem(a, FieldRate, "30")
	d.UpdateItem(b, FieldRate, "12.5")
	assert.True(t, d.Total.Equal(dec("42.5")))

	d.RemoveItem(a)
	require.Len(t, d.LineItems, 1)
	assert.Equal(t, b, d.LineItems[0].ID)
	assert.True(t, d.Total.Equal(dec("12.5")))
}

func TestAddItemDefaults(t *testing.T) {
	d := NewDraft(decimal.Zero)
	first := d.AddItem()
	second := d.AddItem()
	assert.Greater(t, second, first)

	item, ok := d.Item(first)
	require.True(t, ok)
	assert.True(t, item.Quantity.Equal(decimal.NewFromInt(1)))
	assert.True(t, item.Rate.IsZero())
	assert.True(t, item.Amount.IsZero())
	assert.Empty(t, item.Description)
}
