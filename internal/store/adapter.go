// Package store owns the finance records and their invariants: the
// transaction/investment ledger and the tag, budget-group, and
// investment-type registry. Mutations apply in memory first and then
// persist through a key-value Adapter; a failed persistence write is
// logged and the in-memory state remains the source of truth for the
// session.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cinenz0/finance-tracker/internal/common"
)

// Adapter is the durable key-value persistence capability the store
// reads and writes through. Implementations are synchronous from the
// store's point of view.
type Adapter interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Persisted state keys. The names match the original on-disk layout so
// existing data and backups stay readable.
const (
	KeyTransactions    = "finance_app_transactions"
	KeyInvestments     = "finance_app_investments"
	KeyBudgetGroups    = "finance_app_budget_groups"
	KeyTags            = "finance_app_tags"
	KeyInvestmentTypes = "finance_app_investment_types"
	KeyAccountName     = "finance_app_account_name"
	KeyProfileImage    = "finance_app_profile_image"
	KeyTheme           = "finance_app_theme"
	KeyRecurringCheck  = "finance_app_recurring_check"
)

// AllKeys lists every persisted key owned by this system, in backup
// snapshot order.
func AllKeys() []string {
	return []string{
		KeyTransactions,
		KeyInvestments,
		KeyBudgetGroups,
		KeyTags,
		KeyInvestmentTypes,
		KeyAccountName,
		KeyProfileImage,
		KeyTheme,
		KeyRecurringCheck,
	}
}

// loadList reads a JSON array stored under key into out. An absent key
// leaves out untouched. An unreadable blob is logged and skipped: the
// session starts from the empty state rather than failing.
func loadList(ctx context.Context, adapter Adapter, key string, out any) error {
	raw, ok, err := adapter.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", common.ErrPersistence, key, err)
	}
	if !ok || raw == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		common.LogError(err, "Stored state is unreadable, starting empty", common.Fields{"key": key})
	}
	return nil
}

// persistList writes v as a JSON array under key. Failures are logged,
// not propagated: the in-memory mutation already committed.
func persistList(ctx context.Context, adapter Adapter, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		common.LogError(err, "Failed to encode state", common.Fields{"key": key})
		return
	}
	if err := adapter.Set(ctx, key, string(data)); err != nil {
		common.LogError(err, "Failed to persist state", common.Fields{"key": key})
	}
}
