package models

import (
	"encoding/json"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"invoicer/pkg/money"
)

// Status is the lifecycle state of a committed invoice.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Statuses lists every accepted status in lifecycle order.
var Statuses = []Status{StatusDraft, StatusSent, StatusPending, StatusPaid}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsOpen reports whether the invoice is awaiting payment.
func (s Status) IsOpen() bool {
	return s == StatusSent || s == StatusPending
}

// ParseStatus normalises user input into a Status. The second return value
// is false for unknown statuses.
func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// LineItem is a single billable row on an invoice.
type LineItem struct {
	// ID is unique in creation order (snowflake).
	ID int64 `json:"id"`

	Description string `json:"description"`

	// Quantity and Rate are the parsed user inputs.
	Quantity decimal.Decimal `json:"quantity"`
	Rate     decimal.Decimal `json:"rate"`

	// Amount is always round2(Quantity × Rate).
	Amount decimal.Decimal `json:"amount"`
}

// Billable reports whether the item survives finalisation: it needs a
// description and a positive amount.
func (li LineItem) Billable() bool {
	return li.Description != "" && li.Amount.IsPositive()
}

// UnmarshalJSON decodes a stored line item, coercing malformed numbers to zero.
func (li *LineItem) UnmarshalJSON(data []byte) error {
	type alias LineItem
	aux := struct {
		*alias
		ID       json.RawMessage `json:"id"`
		Quantity json.RawMessage `json:"quantity"`
		Rate     json.RawMessage `json:"rate"`
		Amount   json.RawMessage `json:"amount"`
	}{alias: (*alias)(li)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	li.ID = money.FromJSON(aux.ID).IntPart()
	li.Quantity = money.FromJSON(aux.Quantity)
	li.Rate = money.FromJSON(aux.Rate)
	li.Amount = money.FromJSON(aux.Amount)
	return nil
}

// Invoice is a committed invoice. Its totals are frozen at commit time and
// TaxRate is a snapshot of the rate used, not a link to the settings.
type Invoice struct {
	// Core identifiers
	ID     string `json:"id"`     // Creation-time derived unique id
	Number string `json:"number"` // Human-readable number from the sequencer

	// ClientID references a Client. The client may no longer exist.
	ClientID string `json:"clientId"`

	// Dates
	Date    civil.Date `json:"date"`
	DueDate civil.Date `json:"dueDate"`

	LineItems []LineItem `json:"lineItems"`

	// Amounts
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"taxRate"` // Percentage
	TaxAmount decimal.Decimal `json:"taxAmount"`
	Discount  decimal.Decimal `json:"discount"` // Flat amount subtracted after tax
	Total     decimal.Decimal `json:"total"`

	Notes     string    `json:"notes"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// IsDraft returns true if the invoice was saved as a draft.
func (inv *Invoice) IsDraft() bool {
	return inv.Status == StatusDraft
}

// IsPaid returns true if the invoice has been marked paid.
func (inv *Invoice) IsPaid() bool {
	return inv.Status == StatusPaid
}

// UnmarshalJSON decodes a stored invoice. Amounts that are not numbers become
// zero and unparseable dates become the zero date, so one damaged field
// never discards the record.
func (inv *Invoice) UnmarshalJSON(data []byte) error {
	type alias Invoice
	aux := struct {
		*alias
		Date      json.RawMessage `json:"date"`
		DueDate   json.RawMessage `json:"dueDate"`
		Subtotal  json.RawMessage `json:"subtotal"`
		TaxRate   json.RawMessage `json:"taxRate"`
		TaxAmount json.RawMessage `json:"taxAmount"`
		Discount  json.RawMessage `json:"discount"`
		Total     json.RawMessage `json:"total"`
		CreatedAt json.RawMessage `json:"createdAt"`
		LineItems json.RawMessage `json:"lineItems"`
	}{alias: (*alias)(inv)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	inv.Date = parseDate(aux.Date)
	inv.DueDate = parseDate(aux.DueDate)
	inv.Subtotal = money.FromJSON(aux.Subtotal)
	inv.TaxRate = money.FromJSON(aux.TaxRate)
	inv.TaxAmount = money.FromJSON(aux.TaxAmount)
	inv.Discount = money.FromJSON(aux.Discount)
	inv.Total = money.FromJSON(aux.Total)
	inv.CreatedAt = parseTimestamp(aux.CreatedAt)

	inv.LineItems = []LineItem{}
	if len(aux.LineItems) > 0 {
		var items []LineItem
		if err := json.Unmarshal(aux.LineItems, &items); err == nil && items != nil {
			inv.LineItems = items
		}
	}
	return nil
}

// parseDate accepts YYYY-MM-DD or an RFC 3339 timestamp.
func parseDate(raw json.RawMessage) civil.Date {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return civil.Date{}
	}
	if d, err := civil.ParseDate(s); err == nil {
		return d
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return civil.DateOf(t)
	}
	return civil.Date{}
}

func parseTimestamp(raw json.RawMessage) time.Time {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
