package importer

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"
	"github.com/google/uuid"

	"github.com/cinenz0/finance-tracker/internal/common"
	"github.com/cinenz0/finance-tracker/internal/model"
)

var (
	severityPattern = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	openTagPattern  = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// preprocessOFX fixes common formatting issues in bank OFX exports:
// stray leading whitespace, mixed-case SEVERITY values, and SGML-style
// opening tags missing their closing bracket.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")
	content = severityPattern.ReplaceAllStringFunc(content, strings.ToUpper)
	content = openTagPattern.ReplaceAllString(content, "$1>")
	return content
}

// ParseOFX parses an OFX/QFX statement into a transaction batch. Bank
// and credit-card statements are both handled; each statement
// transaction keeps its posted date and runs through the same
// auto-tagger as CSV imports.
func ParseOFX(reader io.Reader) ([]model.Transaction, Result, error) {
	var result Result

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, result, fmt.Errorf("%w: reading statement: %v", common.ErrImport, err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, result, fmt.Errorf("%w: parsing OFX: %v", common.ErrImport, err)
	}

	var batch []model.Transaction

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok && stmt.BankTranList != nil {
			for _, ofxTx := range stmt.BankTranList.Transactions {
				batch = append(batch, convertOFXTransaction(ofxTx, &result))
			}
		}
	}
	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok && stmt.BankTranList != nil {
			for _, ofxTx := range stmt.BankTranList.Transactions {
				batch = append(batch, convertOFXTransaction(ofxTx, &result))
			}
		}
	}

	if len(batch) == 0 {
		return nil, Result{}, fmt.Errorf("%w: statement has no transactions", common.ErrImport)
	}

	result.Total = len(batch)
	slog.Info("Parsed OFX statement", "transactions", result.Total)
	return batch, result, nil
}

// convertOFXTransaction maps one OFX statement transaction into the
// finance model. OFX uses negative amounts for debits.
func convertOFXTransaction(ofxTx ofxgo.Transaction, result *Result) model.Transaction {
	amount, _ := ofxTx.TrnAmt.Float64()

	description := extractDescription(ofxTx)
	posted := ofxTx.DtPosted.Time

	txn := model.Transaction{
		ID:        uuid.NewString(),
		Source:    description,
		Amount:    amount,
		Type:      model.TypeIncome,
		Date:      model.NewDate(posted.Year(), posted.Month(), posted.Day()),
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
	return txn
}

// extractDescription prefers the payee name over the raw NAME field,
// with MEMO as a fallback when NAME is empty.
func extractDescription(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}
	name := strings.TrimSpace(string(tx.Name))
	if name == "" {
		name = strings.TrimSpace(string(tx.Memo))
	}
	if name == "" {
		name = "Imported Transaction"
	}
	return name
}
