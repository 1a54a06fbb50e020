package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"invoicer/internal/config"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/session"
	"invoicer/internal/store"
)

var version = "1.0.0"

// cfg is set by Execute before any command runs.
var cfg = config.Default()

var rootCmd = &cobra.Command{
	Use:   "invoicer",
	Short: "Invoicer - create, track and export invoices",
	Long: `Invoicer keeps clients, invoices and business settings in a single local
data file (or SQLite database) and turns invoices into PDF documents.

Amounts are calculated with decimal arithmetic and rounded half away from
zero to two places. Invoice numbers are never reused.

Environment variables (also read from .env):
  INVOICER_STORE_BACKEND - file or sqlite (default: file)
  INVOICER_STORE_PATH    - data file or database path
  INVOICER_OUTPUT_DIR    - where PDFs and exports are written
  INVOICER_COMPACT       - use the compact document layout
  GOOGLE_SHEET_URL       - spreadsheet for the register and reconciliation`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with the loaded configuration.
func Execute(c *config.Config) {
	log := logger.WithComponent("cmd")
	if c != nil {
		cfg = c
	}

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("store", "", "Data file or database path (default: $INVOICER_STORE_PATH)")
	rootCmd.PersistentFlags().String("backend", "", "Storage backend: file or sqlite (default: $INVOICER_STORE_BACKEND)")
}

// openSession opens the configured gateway and loads the data set. A load
// warning is reported on stderr and the command continues with defaults.
func openSession(cmd *cobra.Command) (*session.Session, func(), error) {
	log := logger.WithComponent("cmd")

	backend, _ := cmd.Flags().GetString("backend")
	if backend == "" {
		backend = cfg.StoreBackend
	}
	path, _ := cmd.Flags().GetString("store")
	if path == "" {
		path = cfg.StorePath
	}

	gw, err := store.New(backend, path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store at %s: %w", backend, path, err)
	}
	closeFn := func() {
		if err := gw.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close store")
		}
	}

	sess, err := session.Open(cmd.Context(), gw)
	if err != nil {
		warn(cmd, "could not load saved data, starting from defaults: %v", err)
	}

	log.Debug().
		Str("backend", backend).
		Str("path", path).
		Msg("Session opened")
	return sess, closeFn, nil
}

// persisted reports a save failure as a warning. The operation itself
// succeeded in memory.
func persisted(cmd *cobra.Command, err error) error {
	var perr *store.PersistenceError
	if errors.As(err, &perr) {
		warn(cmd, "changes could not be saved: %v", perr)
		return nil
	}
	return err
}

// describeError turns validation failures into the message a user can act on.
func describeError(err error) error {
	var verr *invoice.ValidationError
	if errors.As(err, &verr) {
		return fmt.Errorf("%s", verr.Message)
	}
	return err
}

func warn(cmd *cobra.Command, format string, args ...interface{}) {
	fmt.Fprintf(cmd.ErrOrStderr(), "Warning: "+format+"\n", args...)
}

// createCommandContext creates a context with timeout and signal handling
func createCommandContext(parent context.Context, timeout time.Duration, log zerolog.Logger) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithTimeout(parent, timeout)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling")
			cancel()
		case <-ctx.Done():
			// Context completed normally
		}
	}()

	return ctx, cancel
}
