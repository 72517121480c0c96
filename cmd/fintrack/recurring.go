package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cinenz0/finance-tracker/internal/cli"
	"github.com/cinenz0/finance-tracker/internal/recurring"
)

func recurringCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recurring",
		Short: "Manage recurring transaction series",
	}

	cmd.AddCommand(recurringRunCmd())
	cmd.AddCommand(recurringListCmd())

	return cmd
}

func recurringRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Generate this month's recurring transactions",
		Long: `Checks every recurring series and, at most once per calendar month,
adds the current month's occurrence of each. Days past the end of a
short month are clamped to its last day.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			gen := recurring.NewGenerator(kv, ledger, func(message string) {
				fmt.Println(cli.FormatInfo(message))
			})

			count, err := gen.Run(ctx, time.Now())
			if err != nil {
				return err
			}
			if count == 0 {
				fmt.Println(cli.FormatSuccess("Nothing to generate, already up to date"))
			}
			return nil
		},
	}
}

func recurringListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active recurring series",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			// Latest occurrence per series, records are newest first.
			seen := make(map[string]bool)
			var latest []struct {
				id, source, freq, last string
				amount                 float64
			}
			for _, t := range ledger.Transactions() {
				if !t.IsRecurring || t.RecurringID == "" || seen[t.RecurringID] {
					continue
				}
				seen[t.RecurringID] = true
				latest = append(latest, struct {
					id, source, freq, last string
					amount                 float64
				}{shortID(t.RecurringID), t.Source, t.Frequency, t.Date.String(), t.Amount})
			}

			if len(latest) == 0 {
				fmt.Println(cli.InfoStyle.Render("No recurring series. Add one with 'fintrack tx add --recurring'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "SERIES\tSOURCE\tAMOUNT\tFREQUENCY\tLAST")
			for _, s := range latest {
				fmt.Fprintf(w, "%s\t%s\t%.2f\t%s\t%s\n", s.id, s.source, s.amount, s.freq, s.last)
			}
			return nil
		},
	}
}
