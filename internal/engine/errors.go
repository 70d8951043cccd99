package engine

import "fmt"

// DecodeError marks a tradeline whose payment history could not be ordered.
// It is scoped to that tradeline; analysis of the subject continues without it.
type DecodeError struct {
	TradelineID string
	Reason      string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("tradeline %s: %s", e.TradelineID, e.Reason)
}

// ConfigError rejects invalid engine options. It is fatal for the whole run
// and is raised before any analysis begins.
type ConfigError struct {
	Option string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid option %s: %s", e.Option, e.Reason)
}
