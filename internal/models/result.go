package models

import "time"

// WindowMax is the rolling-window maximum DPD for the window ending at Period.
// Defined is false when the window contains no observed periods.
type WindowMax struct {
	Period  Month `json:"period"`
	Max     int   `json:"max"`
	Defined bool  `json:"defined"`
}

// TerminalEvent records the first written-off/settled marker in a history.
type TerminalEvent struct {
	Status StatusKind `json:"status"`
	Period Month      `json:"period"`
}

// DPDSummary holds the delinquency metrics for a single tradeline.
type DPDSummary struct {
	TradelineID       string              `json:"tradeline_id"`
	AccountType       string              `json:"account_type,omitempty"`
	TotalPeriods      int                 `json:"total_periods"`
	ObservedPeriods   int                 `json:"observed_periods"`
	DelinquentPeriods int                 `json:"delinquent_periods"`
	DelinquencyRatio  float64             `json:"delinquency_ratio"`
	MaxDPD            int                 `json:"max_dpd"`
	MaxDPDDefined     bool                `json:"max_dpd_defined"`
	MaxDPDPeriod      *Month              `json:"max_dpd_period,omitempty"`
	Terminal          *TerminalEvent      `json:"terminal,omitempty"`
	WindowMaxima      map[int][]WindowMax `json:"window_maxima"`
	UnknownTokens     int                 `json:"unknown_tokens"`
}

// DisbursementGroup aggregates disbursed amounts for one
// (currency, account type) pair.
type DisbursementGroup struct {
	Currency    string  `json:"currency"`
	AccountType string  `json:"account_type"`
	Count       int     `json:"count"`
	Total       float64 `json:"total"`
	Mean        float64 `json:"mean"`
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
}

// CurrencyTotal aggregates disbursed amounts across all account types of one
// currency. Amounts in different currencies are never combined.
type CurrencyTotal struct {
	Currency string  `json:"currency"`
	Count    int     `json:"count"`
	Total    float64 `json:"total"`
	Mean     float64 `json:"mean"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// DisbursementSummary is the per-subject disbursement breakdown.
type DisbursementSummary struct {
	Groups        []DisbursementGroup `json:"groups"`
	Currencies    []CurrencyTotal     `json:"currencies"`
	UnknownAmount int                 `json:"unknown_amount"` // tradelines with no disbursed amount reported
}

// TrendDirection classifies the movement of a subject's score over time.
type TrendDirection string

const (
	TrendImproving        TrendDirection = "IMPROVING"
	TrendDeclining        TrendDirection = "DECLINING"
	TrendStable           TrendDirection = "STABLE"
	TrendInsufficientData TrendDirection = "INSUFFICIENT_DATA"
)

// TrendResult describes the score trajectory fitted over a subject's
// historical snapshots.
type TrendResult struct {
	Direction      TrendDirection `json:"direction"`
	NetChange      int            `json:"net_change"`
	Slope          float64        `json:"slope"` // score points per year
	Snapshots      int            `json:"snapshots"`
	FirstScore     int            `json:"first_score,omitempty"`
	LatestScore    int            `json:"latest_score,omitempty"`
	ScoreAnomalies int            `json:"score_anomalies"`
}

// SkippedTradeline records a tradeline excluded from analysis and why.
type SkippedTradeline struct {
	TradelineID string `json:"tradeline_id"`
	Reason      string `json:"reason"`
}

// Diagnostics is always present on a result; anomalous input is surfaced
// here rather than silently dropped.
type Diagnostics struct {
	UnknownTokens  int                `json:"unknown_tokens"`
	Skipped        []SkippedTradeline `json:"skipped"`
	ScoreAnomalies int                `json:"score_anomalies"`
}

// SubjectAnalysisResult is the engine's output for one subject. It is built
// once per analysis run and never mutated afterwards.
type SubjectAnalysisResult struct {
	SubjectID               string              `json:"subject_id"`
	GeneratedAt             time.Time           `json:"generated_at"`
	Tradelines              []DPDSummary        `json:"tradelines"`
	Disbursements           DisbursementSummary `json:"disbursements"`
	Trend                   TrendResult         `json:"trend"`
	WorstTradelineID        string              `json:"worst_tradeline_id,omitempty"`
	WorstDPD                int                 `json:"worst_dpd"`
	WorstDPDDefined         bool                `json:"worst_dpd_defined"`
	OverallDelinquencyRatio float64             `json:"overall_delinquency_ratio"`
	Diagnostics             Diagnostics         `json:"diagnostics"`
}
