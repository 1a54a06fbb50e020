package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"invoicer/internal/logger"
	"invoicer/internal/session"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the full data set as JSON",
	Long: `Write invoices, clients and settings to invoice_data_<timestamp>.json.
The file has the same shape as the stored data and can be used as a backup.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringP("out", "o", "", "Output directory (default: $INVOICER_OUTPUT_DIR)")
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outDir, session.ExportFileName(sess.Now()))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := sess.Export(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Info().Str("output_file", path).Msg("Data exported")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
