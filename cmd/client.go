package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"invoicer/pkg/models"
	"invoicer/pkg/money"
)

var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage clients",
}

var clientAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a client",
	Example: `  invoicer client add --name "Acme Corp" --email billing@acme.test --gst 29ABCDE1234F1Z5`,
	RunE: runClientAdd,
}

var clientListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients with invoice count and paid revenue",
	RunE:  runClientList,
}

func init() {
	rootCmd.AddCommand(clientCmd)
	clientCmd.AddCommand(clientAddCmd, clientListCmd)

	clientAddCmd.Flags().String("name", "", "Client name (required)")
	clientAddCmd.Flags().String("email", "", "Email address")
	clientAddCmd.Flags().String("phone", "", "Phone number")
	clientAddCmd.Flags().String("address", "", "Postal address")
	clientAddCmd.Flags().String("gst", "", "GST registration number")
}

func runClientAdd(cmd *cobra.Command, args []string) error {
	var c models.Client
	c.Name, _ = cmd.Flags().GetString("name")
	c.Email, _ = cmd.Flags().GetString("email")
	c.Phone, _ = cmd.Flags().GetString("phone")
	c.Address, _ = cmd.Flags().GetString("address")
	c.GST, _ = cmd.Flags().GetString("gst")

	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	added, err := sess.AddClient(cmd.Context(), c)
	if added == nil {
		return describeError(err)
	}
	if err := persisted(cmd, err); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added client %s (%s)\n", added.Name, added.ID)
	return nil
}

func runClientList(cmd *cobra.Command, args []string) error {
	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	currency := sess.Settings().Invoice.Currency
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tINVOICES\tREVENUE")
	for _, s := range sess.ClientSummaries() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
			s.Client.ID, s.Client.Name, s.Client.Email, s.InvoiceCount, money.Format(s.Revenue, currency))
	}
	return tw.Flush()
}
