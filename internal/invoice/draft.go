package invoice

import (
	"github.com/shopspring/decimal"

	"invoicer/internal/ids"
	"invoicer/pkg/models"
	"invoicer/pkg/money"
)

// Field names a line item field that can be edited.
type Field string

const (
	FieldDescription Field = "description"
	FieldQuantity    Field = "quantity"
	FieldRate        Field = "rate"
)

// Draft is the invoice being composed. Totals are recalculated after every
// mutation, so they can be read at any time.
type Draft struct {
	LineItems []models.LineItem

	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal

	// TaxRate is the percentage applied on the next recalculation.
	TaxRate decimal.Decimal
}

// NewDraft returns an empty draft taxed at taxRate percent.
func NewDraft(taxRate decimal.Decimal) *Draft {
	d := &Draft{
		LineItems: []models.LineItem{},
		TaxRate:   taxRate,
	}
	d.recalculate()
	return d
}

// AddItem appends an empty line item (quantity 1, rate 0) and returns its id.
func (d *Draft) AddItem() int64 {
	item := models.LineItem{
		ID:       ids.Next(),
		Quantity: decimal.NewFromInt(1),
		Rate:     decimal.Zero,
		Amount:   decimal.Zero,
	}
	d.LineItems = append(d.LineItems, item)
	d.recalculate()
	return item.ID
}

// UpdateItem sets one field of the item with the given id from raw user input.
// Quantity and rate are parsed permissively. Unknown ids and fields are ignored.
func (d *Draft) UpdateItem(id int64, field Field, raw string) {
	item := d.item(id)
	if item == nil {
		return
	}

	switch field {
	case FieldDescription:
		item.Description = raw
	case FieldQuantity:
		item.Quantity = money.ParseAmount(raw)
	case FieldRate:
		item.Rate = money.ParseAmount(raw)
	default:
		return
	}

	item.Amount = money.Round2(item.Quantity.Mul(item.Rate))
	d.recalculate()
}

// RemoveItem drops the item with the given id, if present.
func (d *Draft) RemoveItem(id int64) {
	for i := range d.LineItems {
		if d.LineItems[i].ID == id {
			d.LineItems = append(d.LineItems[:i], d.LineItems[i+1:]...)
			break
		}
	}
	d.recalculate()
}

// SetTaxRate parses a tax percentage; malformed input means 0%.
func (d *Draft) SetTaxRate(raw string) {
	d.TaxRate = money.ParseAmount(raw)
	d.recalculate()
}

// SetDiscount parses a flat discount amount; malformed input means no discount.
func (d *Draft) SetDiscount(raw string) {
	d.DiscountAmount = money.ParseAmount(raw)
	d.recalculate()
}

// Item returns a copy of the item with the given id.
func (d *Draft) Item(id int64) (models.LineItem, bool) {
	if item := d.item(id); item != nil {
		return *item, true
	}
	return models.LineItem{}, false
}

func (d *Draft) item(id int64) *models.LineItem {
	for i := range d.LineItems {
		if d.LineItems[i].ID == id {
			return &d.LineItems[i]
		}
	}
	return nil
}

func (d *Draft) recalculate() {
	Recalculate(d, d.TaxRate, d.DiscountAmount)
}
