package engine

import (
	"sort"

	"github.com/anirbansen/credit-insight/internal/models"
)

// DecodeHistory turns a tradeline's raw period tokens into the canonical
// oldest-first, gap-free PeriodRecord sequence.
//
// Ordering is normalized regardless of the direction the bureau reported.
// Calendar gaps between consecutive periods are filled with synthesized
// NO_DATA records so downstream windowing runs on a contiguous timeline.
// The returned count tallies decode anomalies: unknown status tokens plus
// entries whose period identifier did not parse (those entries are dropped).
//
// A *DecodeError is returned only when not a single period identifier in a
// non-empty history parses; an empty history is valid sparse data.
func DecodeHistory(tradelineID string, raw []models.RawPeriod) ([]models.PeriodRecord, int, error) {
	if len(raw) == 0 {
		return []models.PeriodRecord{}, 0, nil
	}

	type entry struct {
		month models.Month
		raw   models.RawPeriod
	}
	entries := make([]entry, 0, len(raw))
	anomalies := 0
	for _, rp := range raw {
		month, err := models.ParseMonth(rp.Period)
		if err != nil {
			anomalies++
			continue
		}
		entries = append(entries, entry{month: month, raw: rp})
	}
	if len(entries) == 0 {
		return nil, anomalies, &DecodeError{
			TradelineID: tradelineID,
			Reason:      "no parseable period identifiers in payment history",
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].month.Before(entries[j].month)
	})

	// Duplicate periods collapse to the last-ingested entry.
	deduped := entries[:0]
	for _, e := range entries {
		if len(deduped) > 0 && deduped[len(deduped)-1].month == e.month {
			deduped[len(deduped)-1] = e
			continue
		}
		deduped = append(deduped, e)
	}

	records := make([]models.PeriodRecord, 0, len(deduped))
	for i, e := range deduped {
		if i > 0 {
			for gap := deduped[i-1].month.Next(); gap.Before(e.month); gap = gap.Next() {
				records = append(records, models.PeriodRecord{
					Period: gap,
					Status: models.PeriodStatus{Kind: models.KindNoData},
				})
			}
		}
		status, known := resolveToken(e.raw.Token)
		if !known {
			anomalies++
		}
		records = append(records, models.PeriodRecord{
			Period: e.month,
			Token:  e.raw.Token,
			Status: status,
		})
	}

	return records, anomalies, nil
}
