package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"invoicer/internal/logger"
	"invoicer/internal/reconciliation"
	"invoicer/internal/session"
	"invoicer/internal/sheets"
	"invoicer/pkg/money"
)

var (
	_ reconciliation.RangeReader   = (*sheets.Service)(nil)
	_ reconciliation.PaymentMarker = (*session.Session)(nil)
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Mark invoices paid from bank transactions",
	Long: `Reconcile bank transactions with open invoices.

This command reads bank transactions from a worksheet (columns Date,
Description, Reference, Counterparty, Amount) and looks for incoming
payments whose description or reference contains the number of a sent or
pending invoice and whose amount equals the invoice total. Matched invoices
are marked paid. Partial payments are not matched.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string
  GOOGLE_SHEET_URL - Google Sheets URL containing the bank worksheet`,
	Example: `  # Show what would be marked paid
  invoicer reconcile --dry-run

  # Read a different worksheet
  invoicer reconcile --sheet "Bank 2025"`,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)

	reconcileCmd.Flags().Bool("dry-run", false, "Report matches without marking invoices paid")
	reconcileCmd.Flags().String("sheet", "", "Bank worksheet name (default: $GOOGLE_BANK_WORKSHEET)")
	reconcileCmd.Flags().Int("timeout", 60, "Timeout in seconds")
}

func runReconcile(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("reconcile")

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	sheetName, _ := cmd.Flags().GetString("sheet")
	if sheetName == "" {
		sheetName = cfg.GoogleBankWorksheet
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	if err := cfg.RequireSheet(); err != nil {
		return err
	}

	log.Info().
		Bool("dry_run", dryRun).
		Str("sheet", sheetName).
		Msg("Starting bank reconciliation")

	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	ctx, cancel := createCommandContext(cmd.Context(), time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	sheetsService, err := sheets.NewSheetsService(ctx, cfg.GoogleSheetURL)
	if err != nil {
		return fmt.Errorf("failed to initialize Google Sheets service: %w", err)
	}

	dataReader := reconciliation.NewDataReader(sheetsService, sheetName)
	report, err := reconciliation.Reconcile(ctx, dataReader, sess.Invoices(), sess, dryRun)
	if report == nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}
	if err := persisted(cmd, err); err != nil {
		return fmt.Errorf("reconciliation failed: %w", err)
	}

	out := cmd.OutOrStdout()
	currency := sess.Settings().Invoice.Currency
	fmt.Fprintf(out, "%d transactions read, %d incoming, %d matched\n",
		report.Transactions, report.Incoming, len(report.Matches))

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, m := range report.Matches {
		fmt.Fprintf(tw, "row %d\t%s\t%s\t%s\n",
			m.Transaction.Row, m.Number, money.Format(m.Total, currency), m.Transaction.CounterParty)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintln(out, "Dry run: no invoices were changed.")
	} else {
		fmt.Fprintf(out, "%d invoices marked paid.\n", len(report.Applied))
	}
	return nil
}
