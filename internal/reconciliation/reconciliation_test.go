package reconciliation

import (
	"context"
	"errors"
	"testing"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoicer/pkg/models"
)

type fakeSheet struct {
	values [][]interface{}
	err    error
	ranges []string
}

func (f *fakeSheet) ReadRange(ctx context.Context, rangeSpec string) ([][]interface{}, error) {
	f.ranges = append(f.ranges, rangeSpec)
	return f.values, f.err
}

type fakeMarker struct {
	paid []string
}

func (f *fakeMarker) MarkPaid(ctx context.Context, ref string) (*models.Invoice, error) {
	f.paid = append(f.paid, ref)
	return &models.Invoice{ID: ref, Status: models.StatusPaid}, nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestParseBankAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1,180.00", "1180"},
		{"1.180,00", "1180"},
		{"₹ 1180", "1180"},
		{"Rs. 99.5", "99.5"},
		{"-250", "-250"},
		{"12,5", "12.5"},
		{"1,18,000", "118000"},
		{"1.234.567", "1234567"},
		{"-₹1,180.50", "-1180.5"},
		{"", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseBankAmount(tt.in)
			require.NoError(t, err)
			assert.True(t, got.Equal(dec(tt.want)), "got %s", got)
		})
	}

	_, err := parseBankAmount("twelve")
	assert.Error(t, err)
}

func TestParseBankDate(t *testing.T) {
	want := civil.Date{Year: 2024, Month: 3, Day: 5}
	for _, in := range []string{"2024-03-05", "05/03/2024", "5/3/2024", "05-03-2024", "05.03.2024", "Mar 5, 2024", "05 Mar 2024"} {
		got, err := parseBankDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := parseBankDate("")
	assert.Error(t, err)
	_, err = parseBankDate("yesterday")
	assert.Error(t, err)
}

func TestReadBankTransactions(t *testing.T) {
	sheet := &fakeSheet{values: [][]interface{}{
		{"Date", "Description", "Reference", "Counterparty", "Amount"},
		{"2024-03-05", "UPI credit", "INV-0001", "Globex", "1,180.00"},
		{"bad date", "x", "", "", "10"},
		{"2024-03-06", "short row"},
		{"2024-03-07", "Rent", "", "Landlord", "-5000"},
	}}

	reader := NewDataReader(sheet, "Bank")
	txs, err := reader.ReadBankTransactions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Bank!A:E"}, sheet.ranges)

	require.Len(t, txs, 2)
	assert.Equal(t, 2, txs[0].Row)
	assert.Equal(t, "Globex", txs[0].CounterParty)
	assert.True(t, txs[0].Amount.Equal(dec("1180")))
	assert.True(t, txs[0].IsIncoming())
	assert.False(t, txs[1].IsIncoming())
}

func TestReadBankTransactionsErrors(t *testing.T) {
	_, err := NewDataReader(&fakeSheet{}, "Bank").ReadBankTransactions(context.Background())
	assert.Error(t, err)

	boom := errors.New("boom")
	_, err = NewDataReader(&fakeSheet{err: boom}, "Bank").ReadBankTransactions(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestMatchPayments(t *testing.T) {
	invoices := []models.Invoice{
		{ID: "a", Number: "INV-0001", Total: dec("1180"), Status: models.StatusSent},
		{ID: "b", Number: "INV-0002", Total: dec("500"), Status: models.StatusPending},
		{ID: "c", Number: "INV-0003", Total: dec("300"), Status: models.StatusPaid},
		{ID: "d", Number: "INV-0004", Total: dec("75"), Status: models.StatusDraft},
		{ID: "e", Number: "INV-00012", Total: dec("90"), Status: models.StatusSent},
	}
	txs := []BankTransaction{
		{Row: 2, Description: "payment inv-0001 thanks", Amount: dec("1180.00")},
		{Row: 3, Reference: "INV-0002", Amount: dec("250")},  // partial
		{Row: 4, Reference: "INV-0003", Amount: dec("300")},  // already paid
		{Row: 5, Reference: "INV-0004", Amount: dec("75")},   // draft
		{Row: 6, Reference: "INV-0001", Amount: dec("1180")}, // duplicate
		{Row: 7, Reference: "INV-0001", Amount: dec("-1180")},
		{Row: 8, Reference: "INV-00012", Amount: dec("90")},
	}

	matches := MatchPayments(txs, invoices)
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].InvoiceID)
	assert.Equal(t, 2, matches[0].Transaction.Row)
	assert.Equal(t, "e", matches[1].InvoiceID)
}

func TestContainsNumber(t *testing.T) {
	assert.True(t, containsNumber("PAID INV-0001.", "INV-0001"))
	assert.True(t, containsNumber("INV-0001", "INV-0001"))
	assert.False(t, containsNumber("INV-00012", "INV-0001"))
	assert.False(t, containsNumber("XINV-0001", "INV-0001"))
	assert.True(t, containsNumber("INV-00012 INV-0001", "INV-0001"))
	assert.False(t, containsNumber("INV", "INV-0001"))
}

func TestReconcile(t *testing.T) {
	sheet := &fakeSheet{values: [][]interface{}{
		{"Date", "Description", "Reference", "Counterparty", "Amount"},
		{"2024-03-05", "NEFT", "INV-0001", "Globex", "1180"},
		{"2024-03-06", "Fees", "", "Bank", "-10"},
	}}
	invoices := []models.Invoice{{ID: "a", Number: "INV-0001", Total: dec("1180"), Status: models.StatusSent}}

	marker := &fakeMarker{}
	report, err := Reconcile(context.Background(), NewDataReader(sheet, "Bank"), invoices, marker, true)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Transactions)
	assert.Equal(t, 1, report.Incoming)
	assert.Len(t, report.Matches, 1)
	assert.Empty(t, report.Applied)
	assert.Empty(t, marker.paid)

	report, err = Reconcile(context.Background(), NewDataReader(sheet, "Bank"), invoices, marker, false)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, marker.paid)
	require.Len(t, report.Applied, 1)
	assert.True(t, report.Applied[0].IsPaid())
}

type flakyMarker struct {
	fail map[string]error
}

func (f *flakyMarker) MarkPaid(ctx context.Context, ref string) (*models.Invoice, error) {
	if err, ok := f.fail[ref]; ok {
		if err == nil {
			return nil, errors.New("not found")
		}
		return &models.Invoice{ID: ref, Status: models.StatusPaid}, err
	}
	return &models.Invoice{ID: ref, Status: models.StatusPaid}, nil
}

func TestReconcileMarkerFailures(t *testing.T) {
	sheet := &fakeSheet{values: [][]interface{}{
		{"Date", "Description", "Reference", "Counterparty", "Amount"},
		{"2024-03-05", "NEFT", "INV-0001", "Globex", "100"},
		{"2024-03-06", "NEFT", "INV-0002", "Initech", "200"},
	}}
	invoices := []models.Invoice{
		{ID: "a", Number: "INV-0001", Total: dec("100"), Status: models.StatusSent},
		{ID: "b", Number: "INV-0002", Total: dec("200"), Status: models.StatusSent},
	}

	t.Run("trailing save failure is returned with the report", func(t *testing.T) {
		saveErr := errors.New("disk full")
		report, err := Reconcile(context.Background(), NewDataReader(sheet, "Bank"), invoices,
			&flakyMarker{fail: map[string]error{"b": saveErr}}, false)
		assert.ErrorIs(t, err, saveErr)
		require.NotNil(t, report)
		assert.Len(t, report.Applied, 2)
	})

	t.Run("earlier save failure is healed by a later save", func(t *testing.T) {
		report, err := Reconcile(context.Background(), NewDataReader(sheet, "Bank"), invoices,
			&flakyMarker{fail: map[string]error{"a": errors.New("disk full")}}, false)
		assert.NoError(t, err)
		assert.Len(t, report.Applied, 2)
	})

	t.Run("unknown invoice stops the run", func(t *testing.T) {
		report, err := Reconcile(context.Background(), NewDataReader(sheet, "Bank"), invoices,
			&flakyMarker{fail: map[string]error{"a": nil}}, false)
		assert.Error(t, err)
		require.NotNil(t, report)
		assert.Empty(t, report.Applied)
	})
}
