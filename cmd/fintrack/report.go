package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/cinenz0/finance-tracker/internal/cli"
	"github.com/cinenz0/finance-tracker/internal/derive"
	"github.com/cinenz0/finance-tracker/internal/model"
	"github.com/cinenz0/finance-tracker/internal/store"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Derived views over your records",
	}

	cmd.AddCommand(reportTrendCmd())
	cmd.AddCommand(reportBreakdownCmd())
	cmd.AddCommand(reportSummaryCmd())
	cmd.AddCommand(reportPortfolioCmd())

	return cmd
}

func reportTrendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trend",
		Short: "Monthly net savings across the calendar year",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			fmt.Println(cli.FormatTitle("Savings Trend"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			for _, point := range derive.SavingsTrend(ledger.Transactions()) {
				style := cli.IncomeStyle
				if point.Net < 0 {
					style = cli.ExpenseStyle
				}
				fmt.Fprintf(w, "%s\t%s\n", point.Month, style.Render(fmt.Sprintf("%10.2f", point.Net)))
			}
			return nil
		},
	}
}

func reportBreakdownCmd() *cobra.Command {
	var income bool

	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Spending (or income) grouped by tag",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			ledger, err := store.OpenLedger(ctx, kv)
			if err != nil {
				return err
			}

			typ := model.TypeExpense
			title := "Expense Breakdown"
			if income {
				typ = model.TypeIncome
				title = "Income Breakdown"
			}

			slices := derive.Breakdown(ledger.Transactions(), typ)
			if len(slices) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions to break down."))
				return nil
			}

			var total float64
			for _, s := range slices {
				total += s.Amount
			}

			fmt.Println(cli.FormatTitle(title))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			for _, s := range slices {
				swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("●")
				fmt.Fprintf(w, "%s %s\t%10.2f\t%5.1f%%\n", swatch, s.Name, s.Amount, s.Amount/total*100)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&income, "income", false, "break down income instead of expenses")

	return cmd
}

func reportSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Income, expenses, and net per month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			summaries := derive.MonthlySummaries(ledger.Transactions())
			if len(summaries) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions yet."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Monthly Summary"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSES\tNET")
			for _, m := range summaries {
				netStyle := cli.IncomeStyle
				if m.Net < 0 {
					netStyle = cli.ExpenseStyle
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					m.Name,
					cli.IncomeStyle.Render(fmt.Sprintf("%10.2f", m.Income)),
					cli.ExpenseStyle.Render(fmt.Sprintf("%10.2f", m.Expenses)),
					netStyle.Render(fmt.Sprintf("%10.2f", m.Net)))
			}
			return nil
		},
	}
}

func reportPortfolioCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "portfolio",
		Short: "Investments grouped by type",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			ledger, err := store.OpenLedger(ctx, kv)
			if err != nil {
				return err
			}
			registry, err := store.OpenRegistry(ctx, kv)
			if err != nil {
				return err
			}

			slices := derive.PortfolioBreakdown(ledger.Investments())
			if len(slices) == 0 {
				fmt.Println(cli.InfoStyle.Render("No investments yet."))
				return nil
			}

			var total float64
			for _, s := range slices {
				total += s.Amount
			}

			fmt.Println(cli.FormatTitle("Portfolio"))

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			for _, s := range slices {
				color := "default"
				if it, ok := registry.InvestmentTypeByName(s.Name); ok {
					color = it.Color
				}
				pair := registry.ResolveColor(color)
				swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(pair.Background)).Render("●")
				fmt.Fprintf(w, "%s %s\t%10.2f\t%5.1f%%\n", swatch, s.Name, s.Amount, s.Amount/total*100)
			}
			fmt.Fprintf(w, "  Total\t%10.2f\t\n", total)
			return nil
		},
	}
}
