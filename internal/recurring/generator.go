// Package recurring materializes missing monthly occurrences of
// recurring transactions.
package recurring

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cinenz0/finance-tracker/internal/common"
	"github.com/cinenz0/finance-tracker/internal/model"
	"github.com/cinenz0/finance-tracker/internal/store"
)

// markerFormat is the persisted idempotency marker: the last month the
// generator ran, e.g. "2026-08". Persisting the marker (instead of an
// in-memory session latch) keeps the run-once guarantee across process
// restarts within the same month.
const markerFormat = "2006-01"

// Notifier receives the one user-visible message a generation run
// emits.
type Notifier func(message string)

// Generator scans recurring series and appends the current month's
// missing occurrences.
type Generator struct {
	adapter  store.Adapter
	ledger   *store.Ledger
	notifier Notifier
}

// NewGenerator wires a generator. A nil notifier drops notifications.
func NewGenerator(adapter store.Adapter, ledger *store.Ledger, notifier Notifier) *Generator {
	if notifier == nil {
		notifier = func(string) {}
	}
	return &Generator{adapter: adapter, ledger: ledger, notifier: notifier}
}

// Run generates at most one catch-up occurrence per recurring series
// for the month containing now, then records the month in the
// idempotency marker. A second run in the same month is a no-op.
// Multi-month gaps are not backfilled; only the current month is
// synthesized.
func (g *Generator) Run(ctx context.Context, now time.Time) (int, error) {
	currentMarker := now.Format(markerFormat)

	marker, ok, err := g.adapter.Get(ctx, store.KeyRecurringCheck)
	if err != nil {
		return 0, fmt.Errorf("%w: reading recurring marker: %v", common.ErrPersistence, err)
	}
	if ok && marker == currentMarker {
		return 0, nil
	}

	// Latest occurrence per series.
	latest := make(map[string]model.Transaction)
	for _, txn := range g.ledger.Transactions() {
		if !txn.IsRecurring || txn.RecurringID == "" {
			continue
		}
		prev, seen := latest[txn.RecurringID]
		if !seen || txn.Date.After(prev.Date) {
			latest[txn.RecurringID] = txn
		}
	}

	var batch []model.Transaction
	for _, last := range latest {
		if last.Date.Year() == now.Year() && last.Date.Month() == now.Month() {
			continue
		}
		batch = append(batch, synthesize(last, now))
	}

	if len(batch) > 0 {
		g.ledger.InsertTransactions(ctx, batch)
		g.notifier(fmt.Sprintf("Generated %d recurring transaction(s) for %s", len(batch), now.Format("January 2006")))
		common.LogInfo("Generated recurring occurrences", common.Fields{"count": len(batch), "month": currentMarker})
	}

	if err := g.adapter.Set(ctx, store.KeyRecurringCheck, currentMarker); err != nil {
		common.LogError(err, "Failed to persist recurring marker", common.Fields{"key": store.KeyRecurringCheck})
	}

	return len(batch), nil
}

// synthesize copies the latest occurrence into the current month with a
// fresh identity. The day of month clamps to the month's length, so a
// Jan-31 series lands on Feb-28 (or Feb-29 in a leap year).
func synthesize(last model.Transaction, now time.Time) model.Transaction {
	day := last.Date.Day()
	if max := model.DaysInMonth(now.Year(), now.Month()); day > max {
		day = max
	}

	next := last
	next.ID = uuid.NewString()
	next.Date = model.NewDate(now.Year(), now.Month(), day)
	next.CreatedAt = time.Now().UTC()
	next.Tags = append([]string(nil), last.Tags...)
	return next
}
