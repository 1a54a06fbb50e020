package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"invoicer/internal/document"
	"invoicer/internal/invoice"
	"invoicer/internal/logger"
	"invoicer/internal/render"
	"invoicer/internal/session"
	"invoicer/pkg/models"
	"invoicer/pkg/money"
)

var invoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Create, list and export invoices",
}

var invoiceNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an invoice",
	Long: `Create an invoice for a client from one or more line items.

Each --item is "description:quantity:rate". Quantity and rate are read
leniently: anything that is not a number counts as 0. Items without a
description or with a zero amount are dropped when the invoice is issued.

The discount is a flat amount subtracted after tax. The tax rate defaults
to the rate in the invoice settings.`,
	Example: `  # Issue an invoice
  invoicer invoice new --client "Acme Corp" --item "Design work:2:100.005"

  # Several items, custom tax and a discount
  invoicer invoice new --client Acme --item "Hosting:12:15" --item "Setup:1:200" --tax 5 --discount 50

  # Keep it as a draft, no validation
  invoicer invoice new --client Acme --item "Consulting:3:" --draft`,
	RunE: runInvoiceNew,
}

var invoiceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List invoices",
	RunE:  runInvoiceList,
}

var invoiceShowCmd = &cobra.Command{
	Use:   "show <number|id>",
	Short: "Print an invoice document",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoiceShow,
}

var invoicePayCmd = &cobra.Command{
	Use:   "pay <number|id>",
	Short: "Mark an invoice as paid",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeStatus(cmd, args[0], string(models.StatusPaid))
	},
}

var invoiceStatusCmd = &cobra.Command{
	Use:   "status <number|id> <draft|sent|pending|paid>",
	Short: "Change the status of an invoice",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return changeStatus(cmd, args[0], args[1])
	},
}

var invoicePDFCmd = &cobra.Command{
	Use:   "pdf <number|id>",
	Short: "Export an invoice as PDF",
	Args:  cobra.ExactArgs(1),
	RunE:  runInvoicePDF,
}

func init() {
	rootCmd.AddCommand(invoiceCmd)
	invoiceCmd.AddCommand(invoiceNewCmd, invoiceListCmd, invoiceShowCmd, invoicePayCmd, invoiceStatusCmd, invoicePDFCmd)

	invoiceNewCmd.Flags().String("client", "", "Client id or name")
	invoiceNewCmd.Flags().StringArray("item", nil, `Line item as "description:quantity:rate" (repeatable)`)
	invoiceNewCmd.Flags().String("tax", "", "Tax rate in percent (default: from settings)")
	invoiceNewCmd.Flags().String("discount", "", "Flat discount subtracted after tax")
	invoiceNewCmd.Flags().String("notes", "", "Notes printed on the invoice")
	invoiceNewCmd.Flags().String("date", "", "Invoice date, YYYY-MM-DD (default: today)")
	invoiceNewCmd.Flags().String("due", "", "Due date, YYYY-MM-DD (default: date + payment terms)")
	invoiceNewCmd.Flags().Bool("draft", false, "Save as draft without validation")

	invoiceListCmd.Flags().String("status", "", "Only list invoices with this status")

	for _, c := range []*cobra.Command{invoiceShowCmd, invoicePDFCmd} {
		c.Flags().Bool("compact", false, "Use the compact layout (default: $INVOICER_COMPACT)")
	}
	invoicePDFCmd.Flags().StringP("out", "o", "", "Output directory (default: $INVOICER_OUTPUT_DIR)")
}

func runInvoiceNew(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoice-cmd")

	clientRef, _ := cmd.Flags().GetString("client")
	specs, _ := cmd.Flags().GetStringArray("item")
	asDraft, _ := cmd.Flags().GetBool("draft")

	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	clientID := ""
	if clientRef != "" {
		client, err := resolveClient(sess, clientRef)
		if err != nil {
			return err
		}
		clientID = client.ID
	}

	d, meta := sess.BeginDraft()
	if err := fillDraft(cmd, d, specs); err != nil {
		return err
	}
	if err := applyMetadata(cmd, &meta); err != nil {
		return err
	}

	totals := d.Totals()
	log.Debug().
		Int("items", len(d.LineItems)).
		Str("subtotal", totals.Subtotal.String()).
		Str("tax", totals.TaxAmount.String()).
		Str("discount", totals.DiscountAmount.String()).
		Str("total", totals.Total.String()).
		Bool("draft", asDraft).
		Msg("Draft composed")

	var inv *models.Invoice
	if asDraft {
		inv, err = sess.SaveDraft(cmd.Context(), d, clientID, meta)
	} else {
		inv, err = sess.Commit(cmd.Context(), d, clientID, meta)
	}
	if inv == nil {
		return describeError(err)
	}
	if err := persisted(cmd, err); err != nil {
		return err
	}

	currency := sess.Settings().Invoice.Currency
	fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s) for %s: %s\n",
		inv.Number, inv.Status, sess.ClientName(inv.ClientID), money.Format(inv.Total, currency))
	return nil
}

// fillDraft loads the --item specs into the draft's seeded first row and
// any further rows.
func fillDraft(cmd *cobra.Command, d *invoice.Draft, specs []string) error {
	log := logger.WithComponent("invoice-cmd")

	for i, spec := range specs {
		desc, qty, rate, err := parseItemSpec(spec)
		if err != nil {
			return err
		}

		id := d.LineItems[0].ID
		if i > 0 {
			id = d.AddItem()
		}
		d.UpdateItem(id, invoice.FieldDescription, desc)
		d.UpdateItem(id, invoice.FieldQuantity, qty)
		d.UpdateItem(id, invoice.FieldRate, rate)

		if item, ok := d.Item(id); ok && !item.Billable() {
			log.Warn().
				Str("item", spec).
				Str("amount", item.Amount.String()).
				Msg("Line item has no description or amount and is dropped when issued")
		}
	}

	if cmd.Flags().Changed("tax") {
		raw, _ := cmd.Flags().GetString("tax")
		d.SetTaxRate(raw)
	}
	if cmd.Flags().Changed("discount") {
		raw, _ := cmd.Flags().GetString("discount")
		d.SetDiscount(raw)
	}
	return nil
}

// parseItemSpec splits "description:quantity:rate" from the right, so the
// description may itself contain colons.
func parseItemSpec(spec string) (desc, qty, rate string, err error) {
	i := strings.LastIndex(spec, ":")
	if i < 0 {
		return "", "", "", fmt.Errorf("invalid item %q: expected description:quantity:rate", spec)
	}
	rate = spec[i+1:]
	rest := spec[:i]

	j := strings.LastIndex(rest, ":")
	if j < 0 {
		return "", "", "", fmt.Errorf("invalid item %q: expected description:quantity:rate", spec)
	}
	return strings.TrimSpace(rest[:j]), strings.TrimSpace(rest[j+1:]), strings.TrimSpace(rate), nil
}

func applyMetadata(cmd *cobra.Command, meta *invoice.Metadata) error {
	meta.Notes, _ = cmd.Flags().GetString("notes")

	if raw, _ := cmd.Flags().GetString("date"); raw != "" {
		date, err := civil.ParseDate(raw)
		if err != nil {
			return fmt.Errorf("invalid --date %q, use YYYY-MM-DD: %w", raw, err)
		}
		// Keep the payment terms relative to the chosen date.
		terms := meta.DueDate.DaysSince(meta.Date)
		meta.Date = date
		meta.DueDate = date.AddDays(terms)
	}
	if raw, _ := cmd.Flags().GetString("due"); raw != "" {
		due, err := civil.ParseDate(raw)
		if err != nil {
			return fmt.Errorf("invalid --due %q, use YYYY-MM-DD: %w", raw, err)
		}
		meta.DueDate = due
	}
	return nil
}

// resolveClient accepts a client id or a case-insensitive name.
func resolveClient(sess *session.Session, ref string) (*models.Client, error) {
	if c, err := sess.FindClient(ref); err == nil {
		return c, nil
	}

	var found *models.Client
	for i, c := range sess.Clients() {
		if strings.EqualFold(c.Name, ref) {
			if found != nil {
				return nil, fmt.Errorf("client name %q is ambiguous, use the client id", ref)
			}
			found = &sess.Clients()[i]
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", invoice.ErrClientNotFound, ref)
	}
	return found, nil
}

func runInvoiceList(cmd *cobra.Command, args []string) error {
	rawStatus, _ := cmd.Flags().GetString("status")
	var filter models.Status
	if rawStatus != "" {
		status, ok := models.ParseStatus(rawStatus)
		if !ok {
			return fmt.Errorf("%w: %q", invoice.ErrInvalidStatus, rawStatus)
		}
		filter = status
	}

	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	currency := sess.Settings().Invoice.Currency
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NUMBER\tDATE\tDUE\tCLIENT\tTOTAL\tSTATUS")
	for _, inv := range sess.Invoices() {
		if filter != "" && inv.Status != filter {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			inv.Number,
			document.FormatDate(inv.Date),
			document.FormatDate(inv.DueDate),
			sess.ClientName(inv.ClientID),
			money.Format(inv.Total, currency),
			inv.Status)
	}
	return tw.Flush()
}

func runInvoiceShow(cmd *cobra.Command, args []string) error {
	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	doc, err := sess.Document(args[0], compactLayout(cmd))
	if err != nil {
		return err
	}
	return render.NewTextRenderer().Render(cmd.OutOrStdout(), doc)
}

func changeStatus(cmd *cobra.Command, ref, rawStatus string) error {
	status, ok := models.ParseStatus(rawStatus)
	if !ok {
		return fmt.Errorf("%w: %q (use one of draft, sent, pending, paid)", invoice.ErrInvalidStatus, rawStatus)
	}

	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	inv, err := sess.SetStatus(cmd.Context(), ref, status)
	if inv == nil {
		return err
	}
	if err := persisted(cmd, err); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", inv.Number, inv.Status)
	return nil
}

func runInvoicePDF(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("invoice-cmd")

	outDir, _ := cmd.Flags().GetString("out")
	if outDir == "" {
		outDir = cfg.OutputDir
	}

	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	doc, err := sess.Document(args[0], compactLayout(cmd))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(outDir, render.PDFFileName(sess.Now()))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := render.NewPDFRenderer().Render(f, doc); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	log.Info().
		Str("number", doc.Header.Number).
		Str("output_file", path).
		Msg("Invoice PDF written")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func compactLayout(cmd *cobra.Command) bool {
	if cmd.Flags().Changed("compact") {
		compact, _ := cmd.Flags().GetBool("compact")
		return compact
	}
	return cfg.Compact
}
