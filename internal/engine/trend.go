package engine

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/anirbansen/credit-insight/internal/models"
)

const hoursPerYear = 24 * 365.25

// AnalyzeTrend classifies the direction of a subject's score over its
// historical snapshots.
//
// Duplicate pulls for the same bureau and date resolve last-write-wins.
// Scores outside the valid range are excluded from the fit and counted as
// anomalies. Fewer than two distinct pull dates yields INSUFFICIENT_DATA,
// which is a result state, not an error. The slope comes from a linear fit
// over (years since first pull, score), so the stable threshold is in score
// points per year.
func AnalyzeTrend(history []models.ScoreSnapshot, opts Options) models.TrendResult {
	type pullKey struct {
		bureau string
		date   string
	}
	latest := make(map[pullKey]models.ScoreSnapshot, len(history))
	order := make([]pullKey, 0, len(history))
	for _, snap := range history {
		key := pullKey{bureau: snap.Bureau, date: snap.PulledAt.Format("2006-01-02")}
		if _, seen := latest[key]; !seen {
			order = append(order, key)
		}
		latest[key] = snap
	}

	anomalies := 0
	valid := make([]models.ScoreSnapshot, 0, len(order))
	for _, key := range order {
		snap := latest[key]
		if snap.Score < opts.ScoreValidMin || snap.Score > opts.ScoreValidMax {
			anomalies++
			continue
		}
		valid = append(valid, snap)
	}
	sort.SliceStable(valid, func(i, j int) bool {
		return valid[i].PulledAt.Before(valid[j].PulledAt)
	})

	result := models.TrendResult{
		Direction:      models.TrendInsufficientData,
		Snapshots:      len(valid),
		ScoreAnomalies: anomalies,
	}

	distinctDates := 0
	for i, snap := range valid {
		if i == 0 || snap.PulledAt.Format("2006-01-02") != valid[i-1].PulledAt.Format("2006-01-02") {
			distinctDates++
		}
	}
	if distinctDates < 2 {
		return result
	}

	first := valid[0]
	last := valid[len(valid)-1]
	xs := make([]float64, len(valid))
	ys := make([]float64, len(valid))
	for i, snap := range valid {
		xs[i] = snap.PulledAt.Sub(first.PulledAt).Hours() / hoursPerYear
		ys[i] = float64(snap.Score)
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)

	result.Slope = slope
	result.NetChange = last.Score - first.Score
	result.FirstScore = first.Score
	result.LatestScore = last.Score
	switch {
	case slope > opts.TrendStableThreshold:
		result.Direction = models.TrendImproving
	case slope < -opts.TrendStableThreshold:
		result.Direction = models.TrendDeclining
	default:
		result.Direction = models.TrendStable
	}
	return result
}
