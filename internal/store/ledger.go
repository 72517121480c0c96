package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cinenz0/finance-tracker/internal/common"
	"github.com/cinenz0/finance-tracker/internal/model"
)

// Ledger is the record store for transactions and investments. Records
// are held most-recent-first; that ordering is a display convenience,
// not a stored invariant.
type Ledger struct {
	adapter      Adapter
	transactions []model.Transaction
	investments  []model.Investment
}

// OpenLedger loads the persisted transaction and investment lists.
func OpenLedger(ctx context.Context, adapter Adapter) (*Ledger, error) {
	l := &Ledger{adapter: adapter}
	if err := loadList(ctx, adapter, KeyTransactions, &l.transactions); err != nil {
		return nil, err
	}
	if err := loadList(ctx, adapter, KeyInvestments, &l.investments); err != nil {
		return nil, err
	}
	return l, nil
}

// TransactionDraft is the caller-supplied shape for a new transaction.
// Amount is textual; it is validated and parsed on add.
type TransactionDraft struct {
	Source      string
	Amount      string
	Type        model.TransactionType
	Date        model.Date
	Tags        []string
	Icon        string
	IsRecurring bool
	RecurringID string
	Frequency   string
}

// parseAmount validates and parses a non-negative textual amount.
func parseAmount(raw string) (float64, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: amount %q is not a number", common.ErrValidation, raw)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("%w: amount %q is negative", common.ErrValidation, raw)
	}
	return d.InexactFloat64(), nil
}

// AddTransaction validates the draft, assigns identity, and prepends
// the record. A recurring draft without a series id gets a fresh one;
// a non-recurring draft has its series fields cleared.
func (l *Ledger) AddTransaction(ctx context.Context, draft TransactionDraft) (*model.Transaction, error) {
	amount, err := parseAmount(draft.Amount)
	if err != nil {
		return nil, err
	}
	if !draft.Type.IsValid() {
		return nil, fmt.Errorf("%w: unknown transaction type %q", common.ErrValidation, draft.Type)
	}

	date := draft.Date
	if date.IsZero() {
		date = model.Today()
	}

	txn := model.Transaction{
		ID:          uuid.NewString(),
		Source:      draft.Source,
		Amount:      amount,
		Type:        draft.Type,
		Date:        date,
		Tags:        append([]string(nil), draft.Tags...),
		Icon:        draft.Icon,
		IsRecurring: draft.IsRecurring,
		RecurringID: draft.RecurringID,
		Frequency:   draft.Frequency,
		CreatedAt:   time.Now().UTC(),
	}

	if txn.IsRecurring {
		if txn.RecurringID == "" {
			txn.RecurringID = uuid.NewString()
		}
		if txn.Frequency == "" {
			txn.Frequency = "monthly"
		}
	} else {
		txn.RecurringID = ""
		txn.Frequency = ""
	}

	l.transactions = append([]model.Transaction{txn}, l.transactions...)
	persistList(ctx, l.adapter, KeyTransactions, l.transactions)
	return &txn, nil
}

// InsertTransactions prepends a prepared batch in one mutation with a
// single persistence write. Used by the statement importer and the
// recurring generator.
func (l *Ledger) InsertTransactions(ctx context.Context, batch []model.Transaction) {
	if len(batch) == 0 {
		return
	}
	l.transactions = append(append([]model.Transaction(nil), batch...), l.transactions...)
	persistList(ctx, l.adapter, KeyTransactions, l.transactions)
}

// UpdateTransaction merges the patch over the existing record. Fields
// absent from the patch are retained.
func (l *Ledger) UpdateTransaction(ctx context.Context, id string, patch model.TransactionPatch) (*model.Transaction, error) {
	idx := -1
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: transaction %s", common.ErrNotFound, id)
	}

	// Merge onto a copy so a rejected patch leaves the record untouched.
	txn := l.transactions[idx]
	if patch.Source != nil {
		txn.Source = *patch.Source
	}
	if patch.Amount != nil {
		if *patch.Amount < 0 {
			return nil, fmt.Errorf("%w: amount is negative", common.ErrValidation)
		}
		txn.Amount = *patch.Amount
	}
	if patch.Type != nil {
		if !patch.Type.IsValid() {
			return nil, fmt.Errorf("%w: unknown transaction type %q", common.ErrValidation, *patch.Type)
		}
		txn.Type = *patch.Type
	}
	if patch.Date != nil {
		txn.Date = *patch.Date
	}
	if patch.Tags != nil {
		txn.Tags = append([]string(nil), (*patch.Tags)...)
	}
	if patch.Icon != nil {
		txn.Icon = *patch.Icon
	}
	if patch.IsRecurring != nil {
		txn.IsRecurring = *patch.IsRecurring
	}
	if patch.RecurringID != nil {
		txn.RecurringID = *patch.RecurringID
	}
	if patch.Frequency != nil {
		txn.Frequency = *patch.Frequency
	}
	if !txn.IsRecurring {
		txn.RecurringID = ""
		txn.Frequency = ""
	}

	l.transactions[idx] = txn
	persistList(ctx, l.adapter, KeyTransactions, l.transactions)
	result := txn
	return &result, nil
}

// DeleteTransaction removes the record by id. Deleting an absent id is
// a no-op, not an error.
func (l *Ledger) DeleteTransaction(ctx context.Context, id string) {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			l.transactions = append(l.transactions[:i], l.transactions[i+1:]...)
			persistList(ctx, l.adapter, KeyTransactions, l.transactions)
			return
		}
	}
}

// Transactions returns a copy of the current transaction list,
// most-recent-first.
func (l *Ledger) Transactions() []model.Transaction {
	return append([]model.Transaction(nil), l.transactions...)
}

// InvestmentDraft is the caller-supplied shape for a new investment.
type InvestmentDraft struct {
	Name         string
	Amount       string
	Type         string
	Rate         string
	StartDate    model.Date
	MaturityDate *model.Date
}

// AddInvestment validates the draft and prepends the record.
func (l *Ledger) AddInvestment(ctx context.Context, draft InvestmentDraft) (*model.Investment, error) {
	amount, err := parseAmount(draft.Amount)
	if err != nil {
		return nil, err
	}

	start := draft.StartDate
	if start.IsZero() {
		start = model.Today()
	}

	inv := model.Investment{
		ID:           uuid.NewString(),
		Name:         draft.Name,
		Amount:       amount,
		Type:         draft.Type,
		Rate:         draft.Rate,
		StartDate:    start,
		MaturityDate: draft.MaturityDate,
		CreatedAt:    time.Now().UTC(),
	}

	l.investments = append([]model.Investment{inv}, l.investments...)
	persistList(ctx, l.adapter, KeyInvestments, l.investments)
	return &inv, nil
}

// UpdateInvestment merges the patch over the existing record.
func (l *Ledger) UpdateInvestment(ctx context.Context, id string, patch model.InvestmentPatch) (*model.Investment, error) {
	idx := -1
	for i := range l.investments {
		if l.investments[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: investment %s", common.ErrNotFound, id)
	}

	inv := l.investments[idx]
	if patch.Name != nil {
		inv.Name = *patch.Name
	}
	if patch.Amount != nil {
		if *patch.Amount < 0 {
			return nil, fmt.Errorf("%w: amount is negative", common.ErrValidation)
		}
		inv.Amount = *patch.Amount
	}
	if patch.Type != nil {
		inv.Type = *patch.Type
	}
	if patch.Rate != nil {
		inv.Rate = *patch.Rate
	}
	if patch.StartDate != nil {
		inv.StartDate = *patch.StartDate
	}
	if patch.MaturityDate != nil {
		inv.MaturityDate = *patch.MaturityDate
	}

	l.investments[idx] = inv
	persistList(ctx, l.adapter, KeyInvestments, l.investments)
	result := inv
	return &result, nil
}

// DeleteInvestment removes the record by id; absent ids are a no-op.
func (l *Ledger) DeleteInvestment(ctx context.Context, id string) {
	for i := range l.investments {
		if l.investments[i].ID == id {
			l.investments = append(l.investments[:i], l.investments[i+1:]...)
			persistList(ctx, l.adapter, KeyInvestments, l.investments)
			return
		}
	}
}

// Investments returns a copy of the current investment list.
func (l *Ledger) Investments() []model.Investment {
	return append([]model.Investment(nil), l.investments...)
}
