package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"invoicer/internal/logger"
	"invoicer/internal/sheets"
)

var sheetsCmd = &cobra.Command{
	Use:   "sheets",
	Short: "Google Sheets integration",
}

var sheetsPushCmd = &cobra.Command{
	Use:   "push",
	Short: "Append the invoice register to a worksheet",
	Long: `Append one row per invoice (number, dates, client, amounts, currency and
status) to a worksheet. The worksheet and its header row are created when
missing.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string
  GOOGLE_SHEET_URL - Google Sheets URL`,
	Example: `  invoicer sheets push
  invoicer sheets push --sheet "Register 2025"`,
	RunE: runSheetsPush,
}

func init() {
	rootCmd.AddCommand(sheetsCmd)
	sheetsCmd.AddCommand(sheetsPushCmd)

	sheetsPushCmd.Flags().String("sheet", "", "Worksheet name (default: $GOOGLE_SHEET_WORKSHEET)")
	sheetsPushCmd.Flags().Int("timeout", 60, "Timeout in seconds")
}

func runSheetsPush(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("sheets-cmd")

	if err := cfg.RequireSheet(); err != nil {
		return err
	}
	sheetName, _ := cmd.Flags().GetString("sheet")
	if sheetName == "" {
		sheetName = cfg.GoogleSheetWorksheet
	}
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")

	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	ctx, cancel := createCommandContext(cmd.Context(), time.Duration(timeoutSecs)*time.Second, log)
	defer cancel()

	svc, err := sheets.NewSheetsService(ctx, cfg.GoogleSheetURL)
	if err != nil {
		return fmt.Errorf("failed to initialize Google Sheets service: %w", err)
	}

	rows := sheets.RegisterRows(sess.Snapshot())
	if err := svc.WriteInvoiceRegister(ctx, rows, sheetName); err != nil {
		return fmt.Errorf("failed to write invoice register: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d invoices to %s\n", len(rows), sheetName)
	return nil
}
