package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirbansen/credit-insight/internal/models"
)

func amount(v float64) *float64 {
	return &v
}

func TestSummarizeDisbursementsNeverMixesCurrencies(t *testing.T) {
	tradelines := []models.Tradeline{
		{ID: "a", AccountType: "Personal Loan", Currency: "USD", DisbursedAmount: amount(10000)},
		{ID: "b", AccountType: "Personal Loan", Currency: "INR", DisbursedAmount: amount(5000)},
	}
	summary := SummarizeDisbursements(tradelines)

	require.Len(t, summary.Currencies, 2)
	assert.Equal(t, "INR", summary.Currencies[0].Currency)
	assert.Equal(t, 5000.0, summary.Currencies[0].Total)
	assert.Equal(t, "USD", summary.Currencies[1].Currency)
	assert.Equal(t, 10000.0, summary.Currencies[1].Total)
	for _, ct := range summary.Currencies {
		assert.NotEqual(t, 15000.0, ct.Total)
	}
}

func TestSummarizeDisbursementsGroupStats(t *testing.T) {
	tradelines := []models.Tradeline{
		{ID: "a", AccountType: "Personal Loan", Currency: "INR", DisbursedAmount: amount(10000)},
		{ID: "b", AccountType: "Personal Loan", Currency: "INR", DisbursedAmount: amount(30000)},
		{ID: "c", AccountType: "Gold Loan", Currency: "INR", DisbursedAmount: amount(7500)},
	}
	summary := SummarizeDisbursements(tradelines)

	require.Len(t, summary.Groups, 2)
	gold := summary.Groups[0]
	personal := summary.Groups[1]

	assert.Equal(t, "Gold Loan", gold.AccountType)
	assert.Equal(t, 1, gold.Count)
	assert.Equal(t, 7500.0, gold.Total)

	assert.Equal(t, "Personal Loan", personal.AccountType)
	assert.Equal(t, 2, personal.Count)
	assert.Equal(t, 40000.0, personal.Total)
	assert.Equal(t, 20000.0, personal.Mean)
	assert.Equal(t, 10000.0, personal.Min)
	assert.Equal(t, 30000.0, personal.Max)

	require.Len(t, summary.Currencies, 1)
	assert.Equal(t, 47500.0, summary.Currencies[0].Total)
}

func TestSummarizeDisbursementsUnknownAmounts(t *testing.T) {
	tradelines := []models.Tradeline{
		{ID: "a", AccountType: "Personal Loan", Currency: "INR", DisbursedAmount: amount(10000)},
		{ID: "b", AccountType: "Personal Loan", Currency: "INR"},
		{ID: "c", AccountType: "Auto Loan", Currency: "INR"},
	}
	summary := SummarizeDisbursements(tradelines)

	assert.Equal(t, 2, summary.UnknownAmount)
	require.Len(t, summary.Groups, 1)
	assert.Equal(t, 1, summary.Groups[0].Count)
	assert.Equal(t, 10000.0, summary.Groups[0].Total)
}

func TestSummarizeDisbursementsEmpty(t *testing.T) {
	summary := SummarizeDisbursements(nil)
	assert.Empty(t, summary.Groups)
	assert.Empty(t, summary.Currencies)
	assert.Zero(t, summary.UnknownAmount)
}
