package derive

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinenz0/finance-tracker/internal/model"
)

func expense(amount float64, date model.Date, tags ...string) model.Transaction {
	return model.Transaction{Type: model.TypeExpense, Amount: amount, Date: date, Tags: tags}
}

func income(amount float64, date model.Date, tags ...string) model.Transaction {
	return model.Transaction{Type: model.TypeIncome, Amount: amount, Date: date, Tags: tags}
}

func TestSavingsTrend(t *testing.T) {
	jan := model.NewDate(2024, time.January, 15)
	mar := model.NewDate(2024, time.March, 2)

	points := SavingsTrend([]model.Transaction{
		income(3000, jan),
		expense(1200, jan),
		expense(50, mar),
	})

	require.Len(t, points, 12)
	assert.Equal(t, "Jan", points[0].Month)
	assert.Equal(t, "Dec", points[11].Month)
	assert.InDelta(t, 1800, points[0].Net, 0.001)
	assert.InDelta(t, 0, points[1].Net, 0.001, "empty months are zero-filled")
	assert.InDelta(t, -50, points[2].Net, 0.001)
}

func TestSavingsTrendCollapsesYears(t *testing.T) {
	points := SavingsTrend([]model.Transaction{
		income(100, model.NewDate(2023, time.June, 1)),
		income(100, model.NewDate(2024, time.June, 1)),
	})

	assert.InDelta(t, 200, points[5].Net, 0.001, "same month of different years shares a bucket")
}

func TestSavingsTrendEmpty(t *testing.T) {
	points := SavingsTrend(nil)
	require.Len(t, points, 12)
	for _, p := range points {
		assert.Zero(t, p.Net)
	}
}

func TestBreakdown(t *testing.T) {
	date := model.NewDate(2024, time.May, 1)
	txns := []model.Transaction{
		expense(30, date, "Dining Out"),
		expense(20, date, "Dining Out", "extra ignored"),
		expense(80, date, "Groceries"),
		expense(15, date),
		income(3000, date, "Salary"),
	}

	slices := Breakdown(txns, model.TypeExpense)
	require.Len(t, slices, 3)

	assert.Equal(t, "Dining Out", slices[0].Name)
	assert.InDelta(t, 50, slices[0].Amount, 0.001, "first tag groups, extra tags are ignored")
	assert.Equal(t, "Groceries", slices[1].Name)
	assert.Equal(t, Uncategorized, slices[2].Name)

	var total float64
	for _, s := range slices {
		total += s.Amount
	}
	assert.InDelta(t, 145, total, 0.001, "breakdown preserves the filtered sum")

	// Colors cycle the per-type palette in insertion order.
	assert.Equal(t, "#ea6b6b", slices[0].Color)
	assert.Equal(t, "#f19e9e", slices[1].Color)

	incomes := Breakdown(txns, model.TypeIncome)
	require.Len(t, incomes, 1)
	assert.Equal(t, "Salary", incomes[0].Name)
	assert.Equal(t, "#59b98c", incomes[0].Color)
}

func TestBreakdownPaletteWraps(t *testing.T) {
	date := model.NewDate(2024, time.May, 1)
	var txns []model.Transaction
	for _, tag := range []string{"a", "b", "c", "d", "e"} {
		txns = append(txns, expense(10, date, tag))
	}

	slices := Breakdown(txns, model.TypeExpense)
	require.Len(t, slices, 5)
	assert.Equal(t, slices[0].Color, slices[4].Color, "fifth slice wraps to the first expense color")
}

func TestMonthlySummaries(t *testing.T) {
	txns := []model.Transaction{
		income(3000, model.NewDate(2024, time.February, 1)),
		expense(500, model.NewDate(2024, time.February, 10)),
		expense(200, model.NewDate(2024, time.January, 5)),
	}

	summaries := MonthlySummaries(txns)
	require.Len(t, summaries, 2)

	assert.Equal(t, "february", summaries[0].ID)
	assert.Equal(t, "February", summaries[0].Name)
	assert.InDelta(t, 3000, summaries[0].Income, 0.001)
	assert.InDelta(t, 500, summaries[0].Expenses, 0.001)
	assert.InDelta(t, 2500, summaries[0].Net, 0.001)

	assert.Equal(t, "january", summaries[1].ID, "buckets appear in first-seen order")
	assert.InDelta(t, -200, summaries[1].Net, 0.001)
}

func TestPortfolioBreakdown(t *testing.T) {
	invs := []model.Investment{
		{Name: "CDB 2027", Type: "CDB", Amount: 1000},
		{Name: "CDB 2029", Type: "CDB", Amount: 500},
		{Name: "PETR4", Type: "Stock", Amount: 300},
		{Name: "mystery", Amount: 100},
	}

	slices := PortfolioBreakdown(invs)
	require.Len(t, slices, 3)

	assert.Equal(t, "CDB", slices[0].Name)
	assert.InDelta(t, 1500, slices[0].Amount, 0.001)
	assert.Equal(t, "Stock", slices[1].Name)
	assert.Equal(t, "Other", slices[2].Name, "untyped investments fall back to Other")
}
