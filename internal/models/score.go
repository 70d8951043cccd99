package models

import "time"

// ScoreSnapshot is one dated credit-score observation from a bureau.
type ScoreSnapshot struct {
	Bureau   string    `json:"bureau"`
	PulledAt time.Time `json:"pulled_at"`
	Score    int       `json:"score"`
}
