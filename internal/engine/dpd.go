package engine

import "github.com/anirbansen/credit-insight/internal/models"

// SummarizeDPD computes the delinquency metrics for one tradeline from its
// canonical period sequence. It never fails: empty or all-NO_DATA histories
// produce a summary with undefined maxima and a zero ratio, because absent
// data is a legitimate state, not an error.
func SummarizeDPD(tradelineID, accountType string, periods []models.PeriodRecord, windows []int) models.DPDSummary {
	summary := models.DPDSummary{
		TradelineID:  tradelineID,
		AccountType:  accountType,
		TotalPeriods: len(periods),
		WindowMaxima: make(map[int][]models.WindowMax, len(windows)),
	}

	for _, rec := range periods {
		if rec.Status.Terminal() && summary.Terminal == nil {
			summary.Terminal = &models.TerminalEvent{
				Status: rec.Status.Kind,
				Period: rec.Period,
			}
		}
		if !rec.Status.Observed() {
			continue
		}
		summary.ObservedPeriods++
		dpd := rec.Status.DPDValue()
		if dpd > 0 {
			summary.DelinquentPeriods++
		}
		if !summary.MaxDPDDefined || dpd > summary.MaxDPD {
			period := rec.Period
			summary.MaxDPD = dpd
			summary.MaxDPDDefined = true
			summary.MaxDPDPeriod = &period
		}
	}

	if summary.ObservedPeriods > 0 {
		summary.DelinquencyRatio = float64(summary.DelinquentPeriods) / float64(summary.ObservedPeriods)
	}

	for _, w := range windows {
		summary.WindowMaxima[w] = rollingMax(periods, w)
	}

	return summary
}

// rollingMax computes the maximum observed DPD inside the window of up to w
// periods ending at each period. A window with no observed periods is
// reported as undefined rather than 0, so missing data never reads as a
// clean record.
func rollingMax(periods []models.PeriodRecord, w int) []models.WindowMax {
	out := make([]models.WindowMax, len(periods))
	for i := range periods {
		wm := models.WindowMax{Period: periods[i].Period}
		start := i - w + 1
		if start < 0 {
			start = 0
		}
		for j := start; j <= i; j++ {
			if !periods[j].Status.Observed() {
				continue
			}
			dpd := periods[j].Status.DPDValue()
			if !wm.Defined || dpd > wm.Max {
				wm.Max = dpd
				wm.Defined = true
			}
		}
		out[i] = wm
	}
	return out
}
