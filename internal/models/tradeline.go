package models

// Tradeline represents a single credit account from a bureau report.
// Constructed by the parser and treated as read-only by the engine.
type Tradeline struct {
	ID               string      `json:"id"`
	AccountType      string      `json:"account_type"`
	AccountStatus    string      `json:"account_status,omitempty"`
	OpenedDate       string      `json:"opened_date,omitempty"`
	ClosedDate       string      `json:"closed_date,omitempty"`
	SanctionedAmount *float64    `json:"sanctioned_amount,omitempty"`
	DisbursedAmount  *float64    `json:"disbursed_amount,omitempty"`
	CurrentBalance   float64     `json:"current_balance"`
	Currency         string      `json:"currency"`
	History          []RawPeriod `json:"history"`
}
