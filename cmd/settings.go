package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"invoicer/pkg/money"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change business settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings as JSON",
	RunE:  runSettingsShow,
}

var settingsInvoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Change currency, default tax rate, number prefix and payment terms",
	Long: `Change the invoice defaults. Only the flags given are changed.
The next invoice number is never changed here, so numbers are not reused.`,
	Example: `  invoicer settings invoice --prefix "ACME-" --tax 12 --terms 15`,
	RunE:    runSettingsInvoice,
}

var settingsProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Change the business profile printed on invoices",
	RunE:  runSettingsProfile,
}

var settingsPaymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Change the bank and UPI details printed on invoices",
	RunE:  runSettingsPayment,
}

var settingsAppCmd = &cobra.Command{
	Use:   "app",
	Short: "Change display preferences",
	RunE:  runSettingsApp,
}

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd, settingsInvoiceCmd, settingsProfileCmd, settingsPaymentCmd, settingsAppCmd)

	settingsInvoiceCmd.Flags().String("currency", "", "Currency symbol")
	settingsInvoiceCmd.Flags().String("tax", "", "Default tax rate in percent")
	settingsInvoiceCmd.Flags().String("prefix", "", "Invoice number prefix")
	settingsInvoiceCmd.Flags().Int("terms", 0, "Payment terms in days")

	for _, name := range []string{"name", "email", "phone", "address", "gst"} {
		settingsProfileCmd.Flags().String(name, "", "Business "+name)
	}
	settingsPaymentCmd.Flags().String("upi", "", "UPI id, printed as a QR code")
	settingsPaymentCmd.Flags().String("bank", "", "Bank name")
	settingsPaymentCmd.Flags().String("account", "", "Account number")
	settingsPaymentCmd.Flags().String("ifsc", "", "IFSC code")

	settingsAppCmd.Flags().Bool("dark-mode", false, "Dark mode preference")
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	data, err := json.MarshalIndent(sess.Settings(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\nNext invoice: %s\n", data, sess.PreviewNumber())
	return nil
}

func runSettingsInvoice(cmd *cobra.Command, args []string) error {
	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	in := sess.Settings().Invoice
	flags := cmd.Flags()
	if flags.Changed("currency") {
		in.Currency, _ = flags.GetString("currency")
	}
	if flags.Changed("tax") {
		raw, _ := flags.GetString("tax")
		in.TaxRate = money.ParseAmount(raw)
	}
	if flags.Changed("prefix") {
		in.Prefix, _ = flags.GetString("prefix")
	}
	if flags.Changed("terms") {
		terms, _ := flags.GetInt("terms")
		if terms < 0 {
			return fmt.Errorf("payment terms cannot be negative")
		}
		in.PaymentTerms = terms
	}

	if err := persisted(cmd, sess.UpdateInvoiceSettings(cmd.Context(), in)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Invoice settings saved. Next invoice: %s\n", sess.PreviewNumber())
	return nil
}

func runSettingsProfile(cmd *cobra.Command, args []string) error {
	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	p := sess.Settings().Profile
	flags := cmd.Flags()
	for name, field := range map[string]*string{
		"name": &p.Name, "email": &p.Email, "phone": &p.Phone, "address": &p.Address, "gst": &p.GST,
	} {
		if flags.Changed(name) {
			*field, _ = flags.GetString(name)
		}
	}

	if err := persisted(cmd, sess.UpdateProfile(cmd.Context(), p)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Profile saved.")
	return nil
}

func runSettingsPayment(cmd *cobra.Command, args []string) error {
	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	p := sess.Settings().Payment
	flags := cmd.Flags()
	for name, field := range map[string]*string{
		"upi": &p.UPI, "bank": &p.Bank, "account": &p.Account, "ifsc": &p.IFSC,
	} {
		if flags.Changed(name) {
			*field, _ = flags.GetString(name)
		}
	}

	if err := persisted(cmd, sess.UpdatePayment(cmd.Context(), p)); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Payment details saved.")
	return nil
}

func runSettingsApp(cmd *cobra.Command, args []string) error {
	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	darkMode := sess.Settings().App.DarkMode
	if cmd.Flags().Changed("dark-mode") {
		darkMode, _ = cmd.Flags().GetBool("dark-mode")
	}

	if err := persisted(cmd, sess.SetDarkMode(cmd.Context(), darkMode)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Dark mode: %t\n", darkMode)
	return nil
}
