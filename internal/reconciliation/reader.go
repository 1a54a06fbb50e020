package reconciliation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"invoicer/internal/logger"
)

// DataReader handles reading reconciliation data from Google Sheets
type DataReader struct {
	sheets    RangeReader
	sheetName string
	log       zerolog.Logger
}

// NewDataReader creates a new data reader for the given bank sheet
func NewDataReader(sheets RangeReader, sheetName string) *DataReader {
	return &DataReader{
		sheets:    sheets,
		sheetName: sheetName,
		log:       logger.WithComponent("reconciliation-reader"),
	}
}

// ReadBankTransactions reads bank transactions from the bank sheet.
// Expected columns: A=Date, B=Description, C=Reference, D=Counterparty, E=Amount.
// The first row is a header. Rows that cannot be parsed are logged and skipped.
func (dr *DataReader) ReadBankTransactions(ctx context.Context) ([]BankTransaction, error) {
	const op = "ReadBankTransactions"

	dr.log.Info().Str("sheet", dr.sheetName).Msg("Reading bank transactions")

	values, err := dr.sheets.ReadRange(ctx, dr.sheetName+"!A:E")
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read %s sheet: %w", op, dr.sheetName, err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("%s: %s sheet is empty", op, dr.sheetName)
	}

	var transactions []BankTransaction
	for i, row := range values[1:] {
		rowNum := i + 2 // Account for header and 0-based indexing

		if len(row) < 5 {
			dr.log.Warn().
				Int("row", rowNum).
				Int("columns", len(row)).
				Msg("Skipping bank transaction row with insufficient columns")
			continue
		}

		transaction, err := dr.parseBankTransaction(row, rowNum)
		if err != nil {
			dr.log.Warn().
				Err(err).
				Int("row", rowNum).
				Msg("Failed to parse bank transaction, skipping")
			continue
		}

		transactions = append(transactions, transaction)
	}

	dr.log.Info().
		Int("total_rows", len(values)-1).
		Int("parsed_transactions", len(transactions)).
		Str("sheet", dr.sheetName).
		Msg("Bank transactions read successfully")

	return transactions, nil
}

// parseBankTransaction parses a single bank transaction row
func (dr *DataReader) parseBankTransaction(row []interface{}, rowNum int) (BankTransaction, error) {
	const op = "parseBankTransaction"

	dateStr := getString(row, 0)
	date, err := parseBankDate(dateStr)
	if err != nil {
		return BankTransaction{}, fmt.Errorf("%s: invalid date '%s' in row %d: %w", op, dateStr, rowNum, err)
	}

	amountStr := getString(row, 4)
	amount, err := parseBankAmount(amountStr)
	if err != nil {
		return BankTransaction{}, fmt.Errorf("%s: invalid amount '%s' in row %d: %w", op, amountStr, rowNum, err)
	}

	return BankTransaction{
		Row:          rowNum,
		Date:         date,
		Description:  getString(row, 1),
		Reference:    getString(row, 2),
		CounterParty: getString(row, 3),
		Amount:       amount,
	}, nil
}

// parseBankDate accepts the date layouts banks commonly export.
func parseBankDate(dateStr string) (civil.Date, error) {
	cleaned := strings.TrimSpace(dateStr)
	if cleaned == "" {
		return civil.Date{}, fmt.Errorf("empty date string")
	}

	formats := []string{
		"2006-01-02", // ISO
		"02/01/2006", // DD/MM/YYYY
		"2/1/2006",   // D/M/YYYY
		"02-01-2006", // DD-MM-YYYY
		"02.01.2006", // DD.MM.YYYY
		"2.1.2006",   // D.M.YYYY
		"Jan 2, 2006",
		"02 Jan 2006",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, cleaned); err == nil {
			return civil.DateOf(t), nil
		}
	}

	return civil.Date{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// parseBankAmount parses amounts such as "1,180.00", "1.180,00", "₹ 1180",
// "-250" or "Rs. 99.5". When both separators appear the last one is the
// decimal point. A lone comma followed by at most two digits is a decimal
// comma; otherwise commas group thousands.
func parseBankAmount(amountStr string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amountStr)
	if cleaned == "" {
		return decimal.Zero, nil
	}

	for _, symbol := range []string{"₹", "Rs.", "Rs", "INR", "€", "EUR", "$", "USD", " ", " "} {
		cleaned = strings.ReplaceAll(cleaned, symbol, "")
	}

	negative := strings.HasPrefix(cleaned, "-")
	cleaned = strings.TrimPrefix(cleaned, "-")

	lastDot := strings.LastIndex(cleaned, ".")
	lastComma := strings.LastIndex(cleaned, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case lastComma >= 0:
		parts := strings.Split(cleaned, ",")
		if len(parts) == 2 && len(parts[1]) <= 2 {
			cleaned = strings.ReplaceAll(cleaned, ",", ".")
		} else {
			cleaned = strings.ReplaceAll(cleaned, ",", "")
		}
	case strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unable to parse amount: %s (cleaned: %s)", amountStr, cleaned)
	}

	if negative {
		amount = amount.Neg()
	}
	return amount, nil
}

// getString safely extracts a string value from a row slice
func getString(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", row[index]))
}
