package reconciliation

import (
	"context"
	"fmt"
	"strings"

	"invoicer/internal/logger"
	"invoicer/pkg/models"
)

// MatchPayments pairs incoming transactions with open invoices. A pair needs
// the invoice number in the transaction text and an amount equal to the
// invoice total; partial payments never match. Each transaction and each
// invoice is used at most once, in sheet and invoice order.
func MatchPayments(transactions []BankTransaction, invoices []models.Invoice) []Match {
	used := make(map[string]bool)
	var matches []Match

	for _, tx := range transactions {
		if !tx.IsIncoming() {
			continue
		}
		text := strings.ToUpper(tx.Text())

		for _, inv := range invoices {
			if used[inv.ID] || !inv.Status.IsOpen() || inv.Number == "" {
				continue
			}
			if !tx.Amount.Equal(inv.Total) || !containsNumber(text, strings.ToUpper(inv.Number)) {
				continue
			}

			used[inv.ID] = true
			matches = append(matches, Match{
				Transaction: tx,
				InvoiceID:   inv.ID,
				Number:      inv.Number,
				Total:       inv.Total,
			})
			break
		}
	}
	return matches
}

// containsNumber reports whether number occurs in text as a whole token, so
// INV-0001 is not found inside INV-00012.
func containsNumber(text, number string) bool {
	for start := 0; start <= len(text)-len(number); {
		i := strings.Index(text[start:], number)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(number)

		before := i == 0 || !isAlnum(text[i-1])
		after := end == len(text) || !isAlnum(text[end])
		if before && after {
			return true
		}
		start = i + 1
	}
	return false
}

func isAlnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z'
}

// Reconcile reads the bank sheet, matches payments and, unless dryRun is set,
// marks the matched invoices paid.
func Reconcile(ctx context.Context, reader *DataReader, invoices []models.Invoice, marker PaymentMarker, dryRun bool) (*Report, error) {
	const op = "Reconcile"
	log := logger.WithComponent("reconciliation")

	transactions, err := reader.ReadBankTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	report := &Report{
		Transactions: len(transactions),
		DryRun:       dryRun,
		Matches:      MatchPayments(transactions, invoices),
	}
	for i := range transactions {
		if transactions[i].IsIncoming() {
			report.Incoming++
		}
	}

	// A save failure leaves the invoice paid in memory. The next successful
	// save writes the whole data set, so only a trailing failure is reported.
	var saveErr error
	for _, m := range report.Matches {
		log.Info().
			Str("number", m.Number).
			Str("amount", m.Total.String()).
			Int("row", m.Transaction.Row).
			Str("counterparty", m.Transaction.CounterParty).
			Bool("dry_run", dryRun).
			Msg("Payment matched")

		if dryRun {
			continue
		}
		inv, err := marker.MarkPaid(ctx, m.InvoiceID)
		if inv == nil {
			return report, fmt.Errorf("%s: failed to mark %s paid: %w", op, m.Number, err)
		}
		report.Applied = append(report.Applied, inv)
		saveErr = err
	}

	log.Info().
		Int("transactions", report.Transactions).
		Int("incoming", report.Incoming).
		Int("matched", len(report.Matches)).
		Int("applied", len(report.Applied)).
		Msg("Reconciliation finished")
	if saveErr != nil {
		return report, fmt.Errorf("%s: %w", op, saveErr)
	}
	return report, nil
}
