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

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
		Long:  `Add, list, update, and delete income and expense transactions.`,
	}

	cmd.AddCommand(addTxCmd())
	cmd.AddCommand(listTxCmd())
	cmd.AddCommand(updateTxCmd())
	cmd.AddCommand(deleteTxCmd())

	return cmd
}

func addTxCmd() *cobra.Command {
	var (
		txType    string
		date      string
		tags      []string
		icon      string
		recurring bool
	)

	cmd := &cobra.Command{
		Use:   "add <source> <amount>",
		Short: "Add a transaction",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			draft := store.TransactionDraft{
				Source:      args[0],
				Amount:      args[1],
				Type:        model.TransactionType(txType),
				Tags:        tags,
				Icon:        icon,
				IsRecurring: recurring,
			}
			if date != "" {
				parsed, err := model.ParseDate(date)
				if err != nil {
					return err
				}
				draft.Date = parsed
			}

			txn, err := ledger.AddTransaction(ctx, draft)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s transaction %q (%.2f) on %s",
				txn.Type, txn.Source, txn.Amount, txn.Date)))
			if txn.IsRecurring {
				fmt.Println(cli.SubtleStyle.Render("  recurring series: " + txn.RecurringID))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&txType, "type", "expense", "transaction type (income, expense)")
	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD, default today)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "tag names")
	cmd.Flags().StringVar(&icon, "icon", "file-text", "icon key")
	cmd.Flags().BoolVar(&recurring, "recurring", false, "repeat this transaction monthly")

	return cmd
}

func listTxCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			txns := ledger.Transactions()
			if len(txns) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions yet. Use 'fintrack tx add' or 'fintrack quick'."))
				return nil
			}
			if limit > 0 && len(txns) > limit {
				txns = txns[:limit]
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tTAG\tSOURCE")
			for _, t := range txns {
				amount := strconv.FormatFloat(t.Amount, 'f', 2, 64)
				if t.Type == model.TypeIncome {
					amount = cli.IncomeStyle.Render("+" + amount)
				} else {
					amount = cli.ExpenseStyle.Render("-" + amount)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					shortID(t.ID), t.Date, t.Type, amount, t.FirstTag(), t.Source)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many transactions")

	return cmd
}

func updateTxCmd() *cobra.Command {
	var (
		source string
		amount string
		txType string
		date   string
		tags   []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update fields of a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			var patch model.TransactionPatch
			if cmd.Flags().Changed("source") {
				patch.Source = &source
			}
			if cmd.Flags().Changed("amount") {
				value, err := strconv.ParseFloat(amount, 64)
				if err != nil {
					return fmt.Errorf("invalid amount %q: %w", amount, err)
				}
				patch.Amount = &value
			}
			if cmd.Flags().Changed("type") {
				t := model.TransactionType(txType)
				patch.Type = &t
			}
			if cmd.Flags().Changed("date") {
				parsed, err := model.ParseDate(date)
				if err != nil {
					return err
				}
				patch.Date = &parsed
			}
			if cmd.Flags().Changed("tags") {
				patch.Tags = &tags
			}

			id, err := resolveTxID(ledger, args[0])
			if err != nil {
				return err
			}

			txn, err := ledger.UpdateTransaction(ctx, id, patch)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated transaction %q", txn.Source)))
			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "display label")
	cmd.Flags().StringVar(&amount, "amount", "", "amount")
	cmd.Flags().StringVar(&txType, "type", "", "transaction type (income, expense)")
	cmd.Flags().StringVar(&date, "date", "", "transaction date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "tag names")

	return cmd
}

func deleteTxCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			id, err := resolveTxID(ledger, args[0])
			if err != nil {
				return err
			}

			ledger.DeleteTransaction(ctx, id)
			fmt.Println(cli.FormatSuccess("Deleted (if it existed)"))
			return nil
		},
	}
}
