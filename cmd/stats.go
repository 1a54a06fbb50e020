package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"invoicer/internal/document"
	"invoicer/internal/session"
	"invoicer/pkg/money"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show revenue, outstanding amounts and recent invoices",
	Long: `Show the dashboard figures: total revenue from paid invoices, the count
and amount of paid and outstanding (sent or pending) invoices, this and last
month's revenue with the growth between them, and the five newest invoices.

Months are compared by month of the year only.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	sess, done, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer done()

	currency := sess.Settings().Invoice.Currency
	st := sess.Stats()
	out := cmd.OutOrStdout()

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Total revenue\t%s\n", money.Format(st.TotalRevenue, currency))
	fmt.Fprintf(tw, "Paid\t%d\t%s\n", st.PaidCount, money.Format(st.PaidAmount, currency))
	fmt.Fprintf(tw, "Outstanding\t%d\t%s\n", st.PendingCount, money.Format(st.PendingAmount, currency))
	fmt.Fprintf(tw, "This month\t%s\n", money.Format(st.ThisMonthRevenue, currency))
	fmt.Fprintf(tw, "Last month\t%s\n", money.Format(st.LastMonthRevenue, currency))
	fmt.Fprintf(tw, "Growth\t%+d%%\n", st.RevenueGrowthPercent)
	if err := tw.Flush(); err != nil {
		return err
	}

	recent := sess.Recent(session.RecentLimit)
	if len(recent) == 0 {
		fmt.Fprintln(out, "\nNo invoices yet.")
		return nil
	}

	fmt.Fprintln(out, "\nRecent invoices")
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, inv := range recent {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			inv.Number,
			document.FormatDate(inv.Date),
			sess.ClientName(inv.ClientID),
			money.Format(inv.Total, currency),
			inv.Status)
	}
	return tw.Flush()
}
