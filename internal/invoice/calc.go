package invoice

import (
	"github.com/shopspring/decimal"

	"invoicer/pkg/money"
)

// Totals are the computed figures of a draft.
type Totals struct {
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
}

// Recalculate reduces the draft's line items into totals and stores them on
// the draft. Rounding happens at every step in a fixed order:
//
//	subtotal = round2(Σ round2(amount))
//	tax      = round2(subtotal × taxRate / 100)
//	total    = round2(subtotal + tax − discount)
//
// Discount is a flat amount subtracted after tax.
func Recalculate(d *Draft, taxRatePercent, discountAmount decimal.Decimal) Totals {
	sum := decimal.Zero
	for _, item := range d.LineItems {
		sum = sum.Add(money.Round2(item.Amount))
	}

	t := Totals{
		Subtotal:       money.Round2(sum),
		DiscountAmount: discountAmount,
	}
	t.TaxAmount = money.Round2(money.Percent(t.Subtotal, taxRatePercent))
	t.Total = money.Round2(t.Subtotal.Add(t.TaxAmount).Sub(discountAmount))

	d.TaxRate = taxRatePercent
	d.Subtotal = t.Subtotal
	d.TaxAmount = t.TaxAmount
	d.DiscountAmount = t.DiscountAmount
	d.Total = t.Total
	return t
}

// Totals returns the draft's current figures.
func (d *Draft) Totals() Totals {
	return Totals{
		Subtotal:       d.Subtotal,
		TaxAmount:      d.TaxAmount,
		DiscountAmount: d.DiscountAmount,
		Total:          d.Total,
	}
}
