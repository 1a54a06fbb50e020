package document

import (
	"net/url"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"invoicer/pkg/models"
	"invoicer/pkg/money"
)

const (
	defaultBusinessName = "Your Business"
	unknownClientName   = "Unknown Client"
	upiPayeeFallback    = "Invoice"

	thanksLine      = "Thank you for your business!"
	computerGenLine = "This is a computer generated invoice and does not require a signature."
)

// Project builds the document for inv. client may be nil.
func Project(inv *models.Invoice, client *models.Client, settings models.Settings, compact bool) *Document {
	layout := LayoutFull
	if compact {
		layout = LayoutCompact
	}
	currency := settings.Invoice.Currency

	doc := &Document{
		Layout:    layout,
		Header:    header(inv, layout),
		Issuer:    issuer(settings.Profile, layout),
		Recipient: recipient(client, layout),
		Rows:      rows(inv.LineItems, currency),
		Totals:    totals(inv, currency, layout),
		Notes:     inv.Notes,
		Payment:   payment(inv, settings, layout),
		Footer:    []string{thanksLine},
	}
	if layout == LayoutFull {
		doc.Columns = []string{"DESCRIPTION", "QTY", "RATE", "AMOUNT"}
		doc.Footer = append(doc.Footer, computerGenLine)
	}
	return doc
}

func header(inv *models.Invoice, layout Layout) Header {
	h := Header{
		Title:        "INVOICE",
		NumberLabel:  "Invoice #:",
		Number:       inv.Number,
		DateLabel:    "Date:",
		Date:         FormatDate(inv.Date),
		DueDateLabel: "Due Date:",
		DueDate:      FormatDate(inv.DueDate),
	}
	if layout == LayoutCompact {
		h.DueDateLabel = "Due:"
	}
	return h
}

func issuer(p models.Profile, layout Layout) Party {
	name := p.Name
	if name == "" {
		name = defaultBusinessName
	}

	party := Party{Name: name}
	if layout == LayoutCompact {
		party.Heading = "From:"
		party.Fields = fields(
			Field{KeyPhone, "", p.Phone},
			Field{KeyEmail, "", p.Email},
			Field{KeyAddress, "", p.Address},
			Field{KeyGST, "GST:", p.GST},
		)
		return party
	}

	party.Fields = fields(
		Field{KeyAddress, "", p.Address},
		Field{KeyPhone, "Phone:", p.Phone},
		Field{KeyEmail, "Email:", p.Email},
		Field{KeyGST, "GST:", p.GST},
	)
	return party
}

func recipient(c *models.Client, layout Layout) Party {
	party := Party{Heading: "Bill To:", Name: unknownClientName}
	if c == nil {
		return party
	}
	if c.Name != "" {
		party.Name = c.Name
	}

	if layout == LayoutCompact {
		party.Fields = fields(
			Field{KeyPhone, "", c.Phone},
			Field{KeyEmail, "", c.Email},
			Field{KeyAddress, "", c.Address},
		)
		return party
	}

	party.Fields = fields(
		Field{KeyAddress, "", c.Address},
		Field{KeyPhone, "Phone:", c.Phone},
		Field{KeyEmail, "Email:", c.Email},
		Field{KeyGST, "GST:", c.GST},
	)
	return party
}

// fields drops empty values.
func fields(all ...Field) []Field {
	out := make([]Field, 0, len(all))
	for _, f := range all {
		if f.Value != "" {
			out = append(out, f)
		}
	}
	return out
}

func rows(items []models.LineItem, currency string) []Row {
	out := make([]Row, 0, len(items))
	for _, item := range items {
		out = append(out, Row{
			Description: item.Description,
			Quantity:    item.Quantity.String(),
			Rate:        money.Format(item.Rate, currency),
			Amount:      money.Format(item.Amount, currency),
		})
	}
	return out
}

func totals(inv *models.Invoice, currency string, layout Layout) []TotalLine {
	lines := []TotalLine{{
		Kind:  TotalSubtotal,
		Label: "Subtotal:",
		Value: money.Format(inv.Subtotal, currency),
	}}

	if inv.TaxRate.IsPositive() {
		lines = append(lines, TotalLine{
			Kind:  TotalTax,
			Label: "Tax (" + inv.TaxRate.String() + "%):",
			Value: money.Format(inv.TaxAmount, currency),
		})
	}

	if inv.Discount.IsPositive() {
		lines = append(lines, TotalLine{
			Kind:  TotalDiscount,
			Label: "Discount:",
			Value: "-" + money.Format(inv.Discount, currency),
		})
	}

	label := "TOTAL DUE:"
	if layout == LayoutCompact {
		label = "TOTAL:"
	}
	return append(lines, TotalLine{
		Kind:  TotalDue,
		Label: label,
		Value: money.Format(inv.Total, currency),
	})
}

func payment(inv *models.Invoice, settings models.Settings, layout Layout) *Payment {
	pay := settings.Payment
	if pay.Bank == "" && pay.UPI == "" {
		return nil
	}

	p := &Payment{Heading: "PAYMENT INFORMATION"}
	bankLabels := [3]string{"Bank Name:", "Account Number:", "IFSC Code:"}
	if layout == LayoutCompact {
		p.Heading = "Payment Details"
		bankLabels = [3]string{"Bank:", "A/C:", "IFSC:"}
	}

	// Account and IFSC are printed even when blank, as long as a bank is named.
	if pay.Bank != "" {
		p.Bank = []Field{
			{Label: bankLabels[0], Value: pay.Bank},
			{Label: bankLabels[1], Value: pay.Account},
			{Label: bankLabels[2], Value: pay.IFSC},
		}
	}

	if pay.UPI != "" {
		p.UPI = &UPI{
			ID:      pay.UPI,
			Caption: "Scan to pay via UPI",
			URI:     UPIURI(pay.UPI, settings.Profile.Name, inv.Total),
		}
	}
	return p
}

// UPIURI builds the UPI payment link. Only the payee name is escaped; the
// result is empty when there is no UPI id or nothing is owed.
func UPIURI(upiID, businessName string, total decimal.Decimal) string {
	if upiID == "" || !total.IsPositive() {
		return ""
	}
	if businessName == "" {
		businessName = upiPayeeFallback
	}
	return "upi://pay?pa=" + upiID +
		"&pn=" + encodeURIComponent(businessName) +
		"&am=" + total.String() +
		"&cu=INR"
}

var uriUnreserved = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeURIComponent escapes everything except letters, digits and -_.!~*'().
func encodeURIComponent(s string) string {
	return uriUnreserved.Replace(url.QueryEscape(s))
}

// FormatDate renders a date like "Jan 2, 2006". The zero date renders empty.
func FormatDate(d civil.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.In(time.UTC).Format("Jan 2, 2006")
}
