package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cinenz0/finance-tracker/internal/cli"
	"github.com/cinenz0/finance-tracker/internal/common"
	"github.com/cinenz0/finance-tracker/internal/model"
	"github.com/cinenz0/finance-tracker/internal/quickentry"
	"github.com/cinenz0/finance-tracker/internal/store"
)

func quickCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "quick <text...>",
		Short: "Add a transaction from a free-text line",
		Long: `Parses a free-text line into a transaction. The first number becomes
the amount, income keywords (income, deposit, salary, receita,
deposito, or a leading +) flip the type, and a known tag name found in
the text tags the entry.

Examples:
  fintrack quick 50 Coffee with friends
  fintrack quick + 3000 Salary`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			kv, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			registry, err := store.OpenRegistry(ctx, kv)
			if err != nil {
				return err
			}

			line := strings.Join(args, " ")
			draft := quickentry.Parse(line, registry.Tags())
			if draft == nil || draft.Amount == 0 {
				return common.NewUserError(fmt.Sprintf("No amount found in %q, include a number like '50 Coffee'", line), nil)
			}

			tagName := "-"
			var tags []string
			if draft.Tag != nil {
				tagName = draft.Tag.Name
				tags = []string{draft.Tag.Name}
			}

			amountStyle := cli.ExpenseStyle
			if draft.Type == model.TypeIncome {
				amountStyle = cli.IncomeStyle
			}
			fmt.Printf("%s %s  %s  [%s]\n",
				amountStyle.Render(fmt.Sprintf("%.2f", draft.Amount)),
				string(draft.Type), draft.Description, tagName)

			if dryRun {
				fmt.Println(cli.FormatInfo("Dry run, nothing saved"))
				return nil
			}

			ledger, err := store.OpenLedger(ctx, kv)
			if err != nil {
				return err
			}

			_, err = ledger.AddTransaction(ctx, store.TransactionDraft{
				Source: draft.Description,
				Amount: strconv.FormatFloat(draft.Amount, 'f', -1, 64),
				Type:   draft.Type,
				Date:   draft.Date,
				Tags:   tags,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("Transaction added"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and preview without saving")

	return cmd
}
