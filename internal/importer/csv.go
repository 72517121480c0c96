package importer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cinenz0/finance-tracker/internal/common"
	"github.com/cinenz0/finance-tracker/internal/model"
)

// Result counts a completed import batch.
type Result struct {
	Total   int
	Income  int
	Expense int
}

// amountReplacer strips currency symbols, whitespace, and quotes from a
// raw amount field.
var amountReplacer = strings.NewReplacer("R$", "", "$", "", " ", "", "\t", "", `"`, "")

// normalizeAmount parses a statement amount that may use Brazilian
// formatting. A comma without a period is a decimal separator; with
// both present, periods are thousands separators and the comma is the
// decimal separator.
func normalizeAmount(raw string) (float64, error) {
	clean := amountReplacer.Replace(strings.TrimSpace(raw))

	hasComma := strings.Contains(clean, ",")
	hasPeriod := strings.Contains(clean, ".")
	switch {
	case hasComma && !hasPeriod:
		clean = strings.Replace(clean, ",", ".", 1)
	case hasComma && hasPeriod:
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// ParseCSV parses a raw bank-export CSV blob into a transaction batch.
// The format is ad hoc: optional header row, comma-separated, 2 or more
// columns. Malformed lines are dropped silently; a blob yielding no
// transactions at all fails with an import error and zero counts.
//
// Every imported row is stamped with today's date. Bank exports carry a
// date column, but its format varies too much to trust; the source
// date is intentionally discarded.
func ParseCSV(content string) ([]model.Transaction, Result, error) {
	var result Result

	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(content) == "" {
		return nil, result, fmt.Errorf("%w: statement is empty", common.ErrImport)
	}

	// Header heuristic: skip the first line only when it names columns.
	start := 0
	firstLower := strings.ToLower(lines[0])
	if strings.Contains(firstLower, "date") || strings.Contains(firstLower, "description") {
		start = 1
	}

	today := model.Today()
	var batch []model.Transaction

	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 2 {
			continue
		}

		var description, rawAmount string
		if len(parts) == 2 {
			description = parts[0]
			rawAmount = parts[1]
		} else {
			// Positional heuristic tuned for Date,Description,Value
			// exports: description in the second column, amount last.
			description = parts[1]
			rawAmount = parts[len(parts)-1]
		}

		description = strings.TrimSpace(strings.ReplaceAll(description, `"`, ""))

		amount, err := normalizeAmount(rawAmount)
		if err != nil {
			slog.Debug("Skipping unparseable statement line", "line", i+1, "amount", rawAmount)
			continue
		}

		if description == "" {
			description = "Imported Transaction"
		}

		txn := model.Transaction{
			ID:        uuid.NewString(),
			Source:    description,
			Amount:    amount,
			Type:      model.TypeIncome,
			Date:      today,
			CreatedAt: time.Now().UTC(),
		}
		if amount < 0 {
			txn.Type = model.TypeExpense
			txn.Amount = -amount
		}
		if tag := autoTag(description); tag != "" {
			txn.Tags = []string{tag}
		}

		if txn.Type == model.TypeIncome {
			result.Income++
		} else {
			result.Expense++
		}
		batch = append(batch, txn)
	}

	if len(batch) == 0 {
		return nil, Result{}, fmt.Errorf("%w: no parseable rows", common.ErrImport)
	}

	result.Total = len(batch)
	return batch, result, nil
}
