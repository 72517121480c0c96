// Package derive computes the read-side views of the finance data:
// savings trend, category breakdowns, monthly summaries, and portfolio
// allocation. Every function is pure and recomputes from the current
// record lists; record counts are small enough that no caching is
// warranted.
package derive

import (
	"strings"
	"time"

	"github.com/cinenz0/finance-tracker/internal/model"
)

// Uncategorized is the breakdown bucket for untagged transactions.
const Uncategorized = "Uncategorized"

// Chart palettes, cycled by group insertion order.
var (
	incomePalette  = []string{"#59b98c", "#97d6b9"}
	expensePalette = []string{"#ea6b6b", "#f19e9e", "#f5c6c6", "#f9e0e0"}
)

// TrendPoint is one month of the savings trend.
type TrendPoint struct {
	Month string
	Net   float64
}

// SavingsTrend buckets all transactions by calendar month name and
// returns twelve points in calendar order, zero-filled. Months from
// different years collapse into the same bucket; that simplification
// is intentional.
func SavingsTrend(txns []model.Transaction) []TrendPoint {
	byMonth := make(map[time.Month]float64, 12)
	for _, t := range txns {
		if t.Type == model.TypeIncome {
			byMonth[t.Date.Month()] += t.Amount
		} else {
			byMonth[t.Date.Month()] -= t.Amount
		}
	}

	points := make([]TrendPoint, 0, 12)
	for m := time.January; m <= time.December; m++ {
		points = append(points, TrendPoint{
			Month: m.String()[:3],
			Net:   byMonth[m],
		})
	}
	return points
}

// BreakdownSlice is one category's share of a breakdown.
type BreakdownSlice struct {
	Name   string
	Amount float64
	Color  string
}

// Breakdown filters transactions by type and groups them by first tag,
// falling back to the Uncategorized bucket. Slice colors come from a
// fixed per-type palette indexed by insertion order.
func Breakdown(txns []model.Transaction, typ model.TransactionType) []BreakdownSlice {
	totals := make(map[string]float64)
	var order []string

	for _, t := range txns {
		if t.Type != typ {
			continue
		}
		name := t.FirstTag()
		if name == "" {
			name = Uncategorized
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += t.Amount
	}

	colors := expensePalette
	if typ == model.TypeIncome {
		colors = incomePalette
	}

	slices := make([]BreakdownSlice, 0, len(order))
	for i, name := range order {
		slices = append(slices, BreakdownSlice{
			Name:   name,
			Amount: totals[name],
			Color:  colors[i%len(colors)],
		})
	}
	return slices
}

// MonthSummary aggregates one calendar month's activity.
type MonthSummary struct {
	ID       string
	Name     string
	Income   float64
	Expenses float64
	Net      float64
}

// MonthlySummaries groups transactions by calendar month name (years
// collapse, as in the trend) and tracks income, expenses, and net per
// group, in first-seen order.
func MonthlySummaries(txns []model.Transaction) []MonthSummary {
	byMonth := make(map[string]*MonthSummary)
	var order []string

	for _, t := range txns {
		name := t.Date.Month().String()
		id := strings.ToLower(name)
		s, ok := byMonth[id]
		if !ok {
			s = &MonthSummary{ID: id, Name: name}
			byMonth[id] = s
			order = append(order, id)
		}
		if t.Type == model.TypeIncome {
			s.Income += t.Amount
		} else {
			s.Expenses += t.Amount
		}
		s.Net = s.Income - s.Expenses
	}

	summaries := make([]MonthSummary, 0, len(order))
	for _, id := range order {
		summaries = append(summaries, *byMonth[id])
	}
	return summaries
}

// PortfolioSlice is one investment type's share of the portfolio.
type PortfolioSlice struct {
	Name   string
	Amount float64
}

// PortfolioBreakdown groups investments by type, defaulting to "Other"
// when unset. Colors are left to the consumer, which resolves them via
// the investment-type registry.
func PortfolioBreakdown(investments []model.Investment) []PortfolioSlice {
	totals := make(map[string]float64)
	var order []string

	for _, inv := range investments {
		name := inv.Type
		if name == "" {
			name = "Other"
		}
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += inv.Amount
	}

	slices := make([]PortfolioSlice, 0, len(order))
	for _, name := range order {
		slices = append(slices, PortfolioSlice{Name: name, Amount: totals[name]})
	}
	return slices
}
