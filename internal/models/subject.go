package models

import "time"

// Subject is the engine's input unit: one person's tradelines plus their
// historical score pulls across reports.
type Subject struct {
	ID           string          `json:"id"`
	Tradelines   []Tradeline     `json:"tradelines"`
	ScoreHistory []ScoreSnapshot `json:"score_history"`
}

// BureauReport is the parsed content of a single credit-bureau report file.
type BureauReport struct {
	Bureau     string         `json:"bureau"`
	ReportDate time.Time      `json:"report_date"`
	Score      *ScoreSnapshot `json:"score,omitempty"` // nil when the report carries no score block
	Tradelines []Tradeline    `json:"tradelines"`
}
