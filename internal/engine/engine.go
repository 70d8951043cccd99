package engine

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anirbansen/credit-insight/internal/models"
)

// Options are the recognized engine configuration knobs.
type Options struct {
	WindowSizes          []int   // rolling DPD windows, in months
	TrendStableThreshold float64 // |slope| below this (points/year) reads as STABLE
	ScoreValidMin        int
	ScoreValidMax        int
}

// DefaultOptions returns the standard configuration.
func DefaultOptions() Options {
	return Options{
		WindowSizes:          []int{3, 6, 12, 24},
		TrendStableThreshold: 5.0,
		ScoreValidMin:        300,
		ScoreValidMax:        900,
	}
}

// Validate rejects unusable options with a *ConfigError.
func (o Options) Validate() error {
	seen := make(map[int]bool, len(o.WindowSizes))
	for _, w := range o.WindowSizes {
		if w <= 0 {
			return &ConfigError{Option: "window_sizes", Reason: "window size must be positive"}
		}
		if seen[w] {
			return &ConfigError{Option: "window_sizes", Reason: "duplicate window size"}
		}
		seen[w] = true
	}
	if o.TrendStableThreshold < 0 {
		return &ConfigError{Option: "trend_stable_threshold", Reason: "threshold must not be negative"}
	}
	if o.ScoreValidMin >= o.ScoreValidMax {
		return &ConfigError{Option: "score_valid_range", Reason: "min must be below max"}
	}
	return nil
}

// Engine computes risk metrics for one subject at a time. It holds no state
// between invocations and never mutates its inputs, so callers may run
// subjects concurrently on separate goroutines.
type Engine struct {
	opts Options
	log  *logrus.Logger
}

// New validates the options and builds an engine.
func New(opts Options, log *logrus.Logger) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Engine{opts: opts, log: log}, nil
}

// Analyze produces the full analysis result for one subject.
//
// A tradeline that fails decoding is skipped and recorded in the
// diagnostics; it never aborts the subject. Skipped tradelines are excluded
// from both the DPD output and the disbursement summary.
func (e *Engine) Analyze(subject models.Subject) models.SubjectAnalysisResult {
	result := models.SubjectAnalysisResult{
		SubjectID:   subject.ID,
		GeneratedAt: time.Now().UTC(),
		Tradelines:  make([]models.DPDSummary, 0, len(subject.Tradelines)),
		Diagnostics: models.Diagnostics{Skipped: []models.SkippedTradeline{}},
	}

	kept := make([]models.Tradeline, 0, len(subject.Tradelines))
	totalObserved := 0
	totalDelinquent := 0
	for _, tl := range subject.Tradelines {
		periods, anomalies, err := DecodeHistory(tl.ID, tl.History)
		if err != nil {
			e.log.Warnf("Skipping tradeline %s for subject %s: %v", tl.ID, subject.ID, err)
			result.Diagnostics.Skipped = append(result.Diagnostics.Skipped, models.SkippedTradeline{
				TradelineID: tl.ID,
				Reason:      err.Error(),
			})
			result.Diagnostics.UnknownTokens += anomalies
			continue
		}

		summary := SummarizeDPD(tl.ID, tl.AccountType, periods, e.opts.WindowSizes)
		summary.UnknownTokens = anomalies
		result.Diagnostics.UnknownTokens += anomalies
		result.Tradelines = append(result.Tradelines, summary)
		kept = append(kept, tl)

		totalObserved += summary.ObservedPeriods
		totalDelinquent += summary.DelinquentPeriods
		if summary.MaxDPDDefined && (!result.WorstDPDDefined || summary.MaxDPD > result.WorstDPD) {
			result.WorstDPD = summary.MaxDPD
			result.WorstDPDDefined = true
			result.WorstTradelineID = summary.TradelineID
		}
	}

	if totalObserved > 0 {
		result.OverallDelinquencyRatio = float64(totalDelinquent) / float64(totalObserved)
	}

	result.Disbursements = SummarizeDisbursements(kept)
	result.Trend = AnalyzeTrend(subject.ScoreHistory, e.opts)
	result.Diagnostics.ScoreAnomalies = result.Trend.ScoreAnomalies

	e.log.Debugf("Analyzed subject %s: %d tradelines, %d skipped, trend %s",
		subject.ID, len(result.Tradelines), len(result.Diagnostics.Skipped), result.Trend.Direction)
	return result
}
