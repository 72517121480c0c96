package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinenz0/finance-tracker/internal/common"
	"github.com/cinenz0/finance-tracker/internal/model"
	"github.com/cinenz0/finance-tracker/internal/testutil"
)

func TestAddTransaction(t *testing.T) {
	ctx := context.Background()
	ledger, err := OpenLedger(ctx, testutil.NewMemAdapter())
	require.NoError(t, err)

	txn, err := ledger.AddTransaction(ctx, TransactionDraft{
		Source: "Coffee",
		Amount: "12.50",
		Type:   model.TypeExpense,
		Tags:   []string{"Dining Out"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, txn.ID)
	assert.Equal(t, "Coffee", txn.Source)
	assert.InDelta(t, 12.50, txn.Amount, 0.001)
	assert.Equal(t, model.TypeExpense, txn.Type)
	assert.False(t, txn.Date.IsZero(), "zero date defaults to today")
	assert.Empty(t, txn.RecurringID, "non-recurring has no series id")
	assert.Empty(t, txn.Frequency)
}

func TestAddTransactionValidation(t *testing.T) {
	ctx := context.Background()
	ledger, err := OpenLedger(ctx, testutil.NewMemAdapter())
	require.NoError(t, err)

	tests := []struct {
		name  string
		draft TransactionDraft
	}{
		{name: "negative amount", draft: TransactionDraft{Source: "x", Amount: "-5", Type: model.TypeExpense}},
		{name: "non-numeric amount", draft: TransactionDraft{Source: "x", Amount: "lots", Type: model.TypeExpense}},
		{name: "unknown type", draft: TransactionDraft{Source: "x", Amount: "5", Type: "transfer"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.AddTransaction(ctx, tt.draft)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
	assert.Empty(t, ledger.Transactions())
}

func TestAddTransactionRecurringMintsSeriesID(t *testing.T) {
	ctx := context.Background()
	ledger, err := OpenLedger(ctx, testutil.NewMemAdapter())
	require.NoError(t, err)

	txn, err := ledger.AddTransaction(ctx, TransactionDraft{
		Source:      "Rent",
		Amount:      "1500",
		Type:        model.TypeExpense,
		IsRecurring: true,
	})
	require.NoError(t, err)

	assert.NotEmpty(t, txn.RecurringID)
	assert.NotEqual(t, txn.ID, txn.RecurringID)
	assert.Equal(t, "monthly", txn.Frequency, "frequency defaults when omitted")
}

func TestTransactionsMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	ledger, err := OpenLedger(ctx, testutil.NewMemAdapter())
	require.NoError(t, err)

	first, err := ledger.AddTransaction(ctx, TransactionDraft{Source: "first", Amount: "1", Type: model.TypeExpense})
	require.NoError(t, err)
	second, err := ledger.AddTransaction(ctx, TransactionDraft{Source: "second", Amount: "2", Type: model.TypeExpense})
	require.NoError(t, err)

	txns := ledger.Transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, second.ID, txns[0].ID)
	assert.Equal(t, first.ID, txns[1].ID)
}

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()
	ledger, err := OpenLedger(ctx, testutil.NewMemAdapter())
	require.NoError(t, err)

	txn, err := ledger.AddTransaction(ctx, TransactionDraft{
		Source: "Cofee", Amount: "10", Type: model.TypeExpense, Icon: "mug",
	})
	require.NoError(t, err)

	source := "Coffee"
	amount := 12.0
	updated, err := ledger.UpdateTransaction(ctx, txn.ID, model.TransactionPatch{
		Source: &source,
		Amount: &amount,
	})
	require.NoError(t, err)

	assert.Equal(t, "Coffee", updated.Source)
	assert.InDelta(t, 12.0, updated.Amount, 0.001)
	assert.Equal(t, "mug", updated.Icon, "unpatched fields are retained")
	assert.Equal(t, txn.ID, updated.ID)
}

func TestUpdateTransactionClearsSeriesWhenNotRecurring(t *testing.T) {
	ctx := context.Background()
	ledger, err := OpenLedger(ctx, testutil.NewMemAdapter())
	require.NoError(t, err)

	txn, err := ledger.AddTransaction(ctx, TransactionDraft{
		Source: "Rent", Amount: "1500", Type: model.TypeExpense, IsRecurring: true,
	})
	require.NoError(t, err)
	require.NotEmpty(t, txn.RecurringID)

	recurring := false
	updated, err := ledger.UpdateTransaction(ctx, txn.ID, model.TransactionPatch{IsRecurring: &recurring})
	require.NoError(t, err)

	assert.False(t, updated.IsRecurring)
	assert.Empty(t, updated.RecurringID)
	assert.Empty(t, updated.Frequency)
}

func TestUpdateTransactionRejectedPatchLeavesRecordUntouched(t *testing.T) {
	ctx := context.Background()
	adapter := testutil.NewMemAdapter()
	ledger, err := OpenLedger(ctx, adapter)
	require.NoError(t, err)

	txn, err := ledger.AddTransaction(ctx, TransactionDraft{
		Source: "Original", Amount: "10", Type: model.TypeExpense,
	})
	require.NoError(t, err)

	source := "Mutated"
	negative := -5.0
	_, err = ledger.UpdateTransaction(ctx, txn.ID, model.TransactionPatch{
		Source: &source,
		Amount: &negative,
	})
	require.ErrorIs(t, err, common.ErrValidation)

	got := ledger.Transactions()[0]
	assert.Equal(t, "Original", got.Source, "a rejected patch must not apply any field")
	assert.InDelta(t, 10.0, got.Amount, 0.001)

	badType := model.TransactionType("transfer")
	_, err = ledger.UpdateTransaction(ctx, txn.ID, model.TransactionPatch{
		Source: &source,
		Type:   &badType,
	})
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Equal(t, "Original", ledger.Transactions()[0].Source)

	// The untouched record survives a reload too.
	reloaded, err := OpenLedger(ctx, adapter)
	require.NoError(t, err)
	assert.Equal(t, "Original", reloaded.Transactions()[0].Source)
}

func TestUpdateTransactionNotFound(t *testing.T) {
	ctx := context.Background()
	ledger, err := OpenLedger(ctx, testutil.NewMemAdapter())
	require.NoError(t, err)

	_, err = ledger.UpdateTransaction(ctx, "missing", model.TransactionPatch{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()
	ledger, err := OpenLedger(ctx, testutil.NewMemAdapter())
	require.NoError(t, err)

	txn, err := ledger.AddTransaction(ctx, TransactionDraft{Source: "x", Amount: "1", Type: model.TypeExpense})
	require.NoError(t, err)

	ledger.DeleteTransaction(ctx, txn.ID)
	assert.Empty(t, ledger.Transactions())

	// Absent ids are silently ignored.
	ledger.DeleteTransaction(ctx, txn.ID)
	ledger.DeleteTransaction(ctx, "never-existed")
}

func TestInsertTransactionsSingleWrite(t *testing.T) {
	ctx := context.Background()
	adapter := testutil.NewMemAdapter()
	ledger, err := OpenLedger(ctx, adapter)
	require.NoError(t, err)

	before := adapter.SetCount()
	ledger.InsertTransactions(ctx, []model.Transaction{
		{ID: "a", Source: "one", Amount: 1, Type: model.TypeExpense, Date: model.NewDate(2024, time.January, 1)},
		{ID: "b", Source: "two", Amount: 2, Type: model.TypeExpense, Date: model.NewDate(2024, time.January, 2)},
	})

	assert.Equal(t, before+1, adapter.SetCount(), "batch insert persists once")
	txns := ledger.Transactions()
	require.Len(t, txns, 2)
	assert.Equal(t, "a", txns[0].ID, "batch order is preserved at the front")

	ledger.InsertTransactions(ctx, nil)
	assert.Equal(t, before+1, adapter.SetCount(), "empty batch does not persist")
}

func TestLedgerPersistenceRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := testutil.NewMemAdapter()

	ledger, err := OpenLedger(ctx, adapter)
	require.NoError(t, err)
	txn, err := ledger.AddTransaction(ctx, TransactionDraft{
		Source: "Groceries", Amount: "89.90", Type: model.TypeExpense,
		Date: model.NewDate(2024, time.March, 10), Tags: []string{"Groceries"},
	})
	require.NoError(t, err)
	_, err = ledger.AddInvestment(ctx, InvestmentDraft{Name: "CDB 2027", Amount: "1000", Type: "CDB"})
	require.NoError(t, err)

	reloaded, err := OpenLedger(ctx, adapter)
	require.NoError(t, err)

	txns := reloaded.Transactions()
	require.Len(t, txns, 1)
	assert.Equal(t, txn.ID, txns[0].ID)
	assert.Equal(t, []string{"Groceries"}, txns[0].Tags)
	assert.Equal(t, "2024-03-10", txns[0].Date.String())

	invs := reloaded.Investments()
	require.Len(t, invs, 1)
	assert.Equal(t, "CDB 2027", invs[0].Name)
}

func TestLedgerWriteFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	adapter := testutil.NewMemAdapter()
	ledger, err := OpenLedger(ctx, adapter)
	require.NoError(t, err)

	adapter.FailWrites()

	txn, err := ledger.AddTransaction(ctx, TransactionDraft{Source: "x", Amount: "1", Type: model.TypeIncome})
	require.NoError(t, err, "persistence failures do not surface")
	assert.Equal(t, txn.ID, ledger.Transactions()[0].ID)
}

func TestUpdateInvestment(t *testing.T) {
	ctx := context.Background()
	ledger, err := OpenLedger(ctx, testutil.NewMemAdapter())
	require.NoError(t, err)

	inv, err := ledger.AddInvestment(ctx, InvestmentDraft{Name: "Tesouro", Amount: "500", Type: "Treasury"})
	require.NoError(t, err)
	assert.False(t, inv.StartDate.IsZero(), "start date defaults to today")

	amount := 750.0
	maturity := model.NewDate(2030, time.June, 1)
	maturityPtr := &maturity
	updated, err := ledger.UpdateInvestment(ctx, inv.ID, model.InvestmentPatch{
		Amount:       &amount,
		MaturityDate: &maturityPtr,
	})
	require.NoError(t, err)

	assert.InDelta(t, 750.0, updated.Amount, 0.001)
	require.NotNil(t, updated.MaturityDate)
	assert.Equal(t, "2030-06-01", updated.MaturityDate.String())

	_, err = ledger.UpdateInvestment(ctx, "missing", model.InvestmentPatch{})
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateInvestmentRejectedPatchLeavesRecordUntouched(t *testing.T) {
	ctx := context.Background()
	ledger, err := OpenLedger(ctx, testutil.NewMemAdapter())
	require.NoError(t, err)

	inv, err := ledger.AddInvestment(ctx, InvestmentDraft{Name: "Original", Amount: "500", Type: "CDB"})
	require.NoError(t, err)

	name := "Mutated"
	negative := -1.0
	_, err = ledger.UpdateInvestment(ctx, inv.ID, model.InvestmentPatch{
		Name:   &name,
		Amount: &negative,
	})
	require.ErrorIs(t, err, common.ErrValidation)

	got := ledger.Investments()[0]
	assert.Equal(t, "Original", got.Name, "a rejected patch must not apply any field")
	assert.InDelta(t, 500.0, got.Amount, 0.001)
}
