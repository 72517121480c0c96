package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cinenz0/finance-tracker/internal/cli"
	"github.com/cinenz0/finance-tracker/internal/model"
	"github.com/cinenz0/finance-tracker/internal/store"
)

func investmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "investments",
		Aliases: []string{"inv"},
		Short:   "Manage investment holdings",
	}

	cmd.AddCommand(addInvestmentCmd())
	cmd.AddCommand(listInvestmentsCmd())
	cmd.AddCommand(updateInvestmentCmd())
	cmd.AddCommand(deleteInvestmentCmd())
	cmd.AddCommand(investmentTypesCmd())

	return cmd
}

func addInvestmentCmd() *cobra.Command {
	var (
		invType  string
		rate     string
		start    string
		maturity string
	)

	cmd := &cobra.Command{
		Use:   "add <name> <amount>",
		Short: "Add an investment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			draft := store.InvestmentDraft{
				Name:   args[0],
				Amount: args[1],
				Type:   invType,
				Rate:   rate,
			}
			if start != "" {
				parsed, err := model.ParseDate(start)
				if err != nil {
					return err
				}
				draft.StartDate = parsed
			}
			if maturity != "" {
				parsed, err := model.ParseDate(maturity)
				if err != nil {
					return err
				}
				draft.MaturityDate = &parsed
			}

			inv, err := ledger.AddInvestment(ctx, draft)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added investment %q (%.2f)", inv.Name, inv.Amount)))
			return nil
		},
	}

	cmd.Flags().StringVar(&invType, "type", "", "investment type name (e.g. CDB, Stock)")
	cmd.Flags().StringVar(&rate, "rate", "", "rate description (e.g. '100% CDI')")
	cmd.Flags().StringVar(&start, "start", "", "start date (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&maturity, "maturity", "", "maturity date (YYYY-MM-DD)")

	return cmd
}

func listInvestmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List investments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			investments := ledger.Investments()
			if len(investments) == 0 {
				fmt.Println(cli.InfoStyle.Render("No investments yet. Use 'fintrack investments add'."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tNAME\tTYPE\tAMOUNT\tRATE\tSTART\tMATURITY")
			for _, inv := range investments {
				maturity := "-"
				if inv.MaturityDate != nil {
					maturity = inv.MaturityDate.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\t%s\t%s\t%s\n",
					shortID(inv.ID), inv.Name, inv.Type, inv.Amount, inv.Rate, inv.StartDate, maturity)
			}
			return nil
		},
	}
}

func updateInvestmentCmd() *cobra.Command {
	var (
		name    string
		amount  string
		invType string
		rate    string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of an investment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			var patch model.InvestmentPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("amount") {
				value, err := strconv.ParseFloat(amount, 64)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amount, err)
				}
				patch.Amount = &value
			}
			if cmd.Flags().Changed("type") {
				patch.Type = &invType
			}
			if cmd.Flags().Changed("rate") {
				patch.Rate = &rate
			}

			inv, err := ledger.UpdateInvestment(ctx, resolveInvestmentID(ledger, args[0]), patch)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated investment %q", inv.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&amount, "amount", "", "amount")
	cmd.Flags().StringVar(&invType, "type", "", "investment type name")
	cmd.Flags().StringVar(&rate, "rate", "", "rate description")

	return cmd
}

func deleteInvestmentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an investment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			ledger.DeleteInvestment(ctx, resolveInvestmentID(ledger, args[0]))
			fmt.Println(cli.FormatSuccess("Deleted (if it existed)"))
			return nil
		},
	}
}

// resolveInvestmentID expands an id prefix to the full investment id
// when the prefix is unique; otherwise the input passes through.
func resolveInvestmentID(ledger *store.Ledger, prefix string) string {
	var match string
	for _, inv := range ledger.Investments() {
		if inv.ID == prefix {
			return inv.ID
		}
		if len(prefix) >= 4 && len(inv.ID) >= len(prefix) && inv.ID[:len(prefix)] == prefix {
			if match != "" {
				return prefix
			}
			match = inv.ID
		}
	}
	if match == "" {
		return prefix
	}
	return match
}

func investmentTypesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "types",
		Short: "Manage investment types",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List investment types",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tNAME\tCOLOR")
			for _, it := range registry.InvestmentTypes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", it.ID, it.Name, it.Color)
			}
			return nil
		},
	})

	var color string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an investment type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			it, err := registry.AddInvestmentType(ctx, args[0], color)
			if err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added investment type %q", it.Name)))
			return nil
		},
	}
	addCmd.Flags().StringVar(&color, "color", "default", "palette key or hex color")
	cmd.AddCommand(addCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an investment type",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, registry, err := openRegistry(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			registry.DeleteInvestmentType(ctx, args[0])
			fmt.Println(cli.FormatSuccess("Deleted (if it existed)"))
			return nil
		},
	})

	return cmd
}
