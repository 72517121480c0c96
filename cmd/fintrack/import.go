package main

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/cinenz0/finance-tracker/internal/cli"
	"github.com/cinenz0/finance-tracker/internal/importer"
	"github.com/cinenz0/finance-tracker/internal/model"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import transactions from bank statements",
	}

	cmd.AddCommand(importCSVCmd())
	cmd.AddCommand(importOFXCmd())

	return cmd
}

// readStatement loads a statement file with a byte progress bar.
func readStatement(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	bar := progressbar.DefaultBytes(info.Size(), "Reading statement")
	var buf bytes.Buffer
	if _, err := io.Copy(io.MultiWriter(&buf, bar), f); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return buf.Bytes(), nil
}

func reportImport(batch []model.Transaction, result importer.Result) {
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transaction(s)", result.Total)))
	fmt.Printf("  %s %d income, %s %d expense\n",
		cli.IncomeStyle.Render("+"), result.Income,
		cli.ExpenseStyle.Render("-"), result.Expense)

	tagged := 0
	for _, t := range batch {
		if len(t.Tags) > 0 {
			tagged++
		}
	}
	if tagged > 0 {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Auto-tagged %d transaction(s)", tagged)))
	}
}

func importCSVCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Import a CSV statement",
		Long: `Imports a comma-separated statement. Lines with two fields are read
as description,amount; longer lines as date,description,...,amount.
Amounts in Brazilian format (1.234,56) are handled, negative values
become expenses, and descriptions matching known merchant keywords are
tagged automatically.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			content, err := readStatement(args[0])
			if err != nil {
				return err
			}

			batch, result, err := importer.ParseCSV(string(content))
			if err != nil {
				return err
			}

			if dryRun {
				previewImport(batch)
				return nil
			}

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			ledger.InsertTransactions(ctx, batch)
			reportImport(batch, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and preview without saving")

	return cmd
}

func importOFXCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "ofx <file>",
		Short: "Import an OFX/QFX statement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			content, err := readStatement(args[0])
			if err != nil {
				return err
			}

			batch, result, err := importer.ParseOFX(bytes.NewReader(content))
			if err != nil {
				return err
			}

			if dryRun {
				previewImport(batch)
				return nil
			}

			kv, ledger, err := openLedger(ctx)
			if err != nil {
				return err
			}
			defer kv.Close()

			ledger.InsertTransactions(ctx, batch)
			reportImport(batch, result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "parse and preview without saving")

	return cmd
}

func previewImport(batch []model.Transaction) {
	for _, t := range batch {
		style := cli.ExpenseStyle
		if t.Type == model.TypeIncome {
			style = cli.IncomeStyle
		}
		fmt.Printf("%s  %s  %s  %v\n",
			t.Date, style.Render(fmt.Sprintf("%10.2f", t.Amount)), t.Source, t.Tags)
	}
	fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run, %d transaction(s) not saved", len(batch))))
}
