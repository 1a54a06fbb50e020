package reconciliation

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"invoicer/pkg/models"
)

// BankTransaction represents a row of the bank sheet
type BankTransaction struct {
	Row          int             // Sheet row, 1-based
	Date         civil.Date      // column A
	Description  string          // column B
	Reference    string          // Payment reference - column C
	CounterParty string          // Payer or payee - column D
	Amount       decimal.Decimal // Negative for outgoing, positive for incoming - column E
}

// IsIncoming returns true if this is an incoming transaction (positive amount)
func (bt *BankTransaction) IsIncoming() bool {
	return bt.Amount.IsPositive()
}

// Text is the searchable free text of the transaction.
func (bt *BankTransaction) Text() string {
	return bt.Description + " " + bt.Reference
}

// Match pairs an incoming payment with the open invoice it settles.
type Match struct {
	Transaction BankTransaction
	InvoiceID   string
	Number      string
	Total       decimal.Decimal
}

// Report summarises a reconciliation run.
type Report struct {
	Transactions int // Rows read from the bank sheet
	Incoming     int
	Matches      []Match
	Applied      []*models.Invoice // Empty on a dry run
	DryRun       bool
}

// RangeReader reads cell values from a spreadsheet range.
type RangeReader interface {
	ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error)
}

// PaymentMarker records that an invoice has been paid.
type PaymentMarker interface {
	MarkPaid(ctx context.Context, ref string) (*models.Invoice, error)
}
