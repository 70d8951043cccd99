package engine

import (
	"sort"

	"github.com/anirbansen/credit-insight/internal/models"
)

type groupKey struct {
	currency    string
	accountType string
}

type runningStats struct {
	count int
	total float64
	min   float64
	max   float64
}

func (s *runningStats) add(amount float64) {
	if s.count == 0 || amount < s.min {
		s.min = amount
	}
	if s.count == 0 || amount > s.max {
		s.max = amount
	}
	s.count++
	s.total += amount
}

func (s *runningStats) mean() float64 {
	if s.count == 0 {
		return 0
	}
	return s.total / float64(s.count)
}

// SummarizeDisbursements aggregates disbursed amounts across a subject's
// tradelines, grouped by (currency, account type) and rolled up per
// currency. Amounts tagged with different currencies are never summed
// together. Tradelines with no reported amount are excluded from the
// numeric aggregates and counted as unknown.
func SummarizeDisbursements(tradelines []models.Tradeline) models.DisbursementSummary {
	groups := make(map[groupKey]*runningStats)
	currencies := make(map[string]*runningStats)
	unknown := 0

	for _, tl := range tradelines {
		if tl.DisbursedAmount == nil {
			unknown++
			continue
		}
		amount := *tl.DisbursedAmount
		key := groupKey{currency: tl.Currency, accountType: tl.AccountType}
		if groups[key] == nil {
			groups[key] = &runningStats{}
		}
		groups[key].add(amount)
		if currencies[tl.Currency] == nil {
			currencies[tl.Currency] = &runningStats{}
		}
		currencies[tl.Currency].add(amount)
	}

	summary := models.DisbursementSummary{
		Groups:        make([]models.DisbursementGroup, 0, len(groups)),
		Currencies:    make([]models.CurrencyTotal, 0, len(currencies)),
		UnknownAmount: unknown,
	}
	for key, stats := range groups {
		summary.Groups = append(summary.Groups, models.DisbursementGroup{
			Currency:    key.currency,
			AccountType: key.accountType,
			Count:       stats.count,
			Total:       stats.total,
			Mean:        stats.mean(),
			Min:         stats.min,
			Max:         stats.max,
		})
	}
	for currency, stats := range currencies {
		summary.Currencies = append(summary.Currencies, models.CurrencyTotal{
			Currency: currency,
			Count:    stats.count,
			Total:    stats.total,
			Mean:     stats.mean(),
			Min:      stats.min,
			Max:      stats.max,
		})
	}

	sort.Slice(summary.Groups, func(i, j int) bool {
		if summary.Groups[i].Currency != summary.Groups[j].Currency {
			return summary.Groups[i].Currency < summary.Groups[j].Currency
		}
		return summary.Groups[i].AccountType < summary.Groups[j].AccountType
	})
	sort.Slice(summary.Currencies, func(i, j int) bool {
		return summary.Currencies[i].Currency < summary.Currencies[j].Currency
	})

	return summary
}
