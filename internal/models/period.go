package models

// StatusKind tags the variant of a period status.
type StatusKind string

const (
	KindDPD        StatusKind = "DPD"
	KindCurrent    StatusKind = "CURRENT"
	KindNoData     StatusKind = "NO_DATA"
	KindWrittenOff StatusKind = "WRITTEN_OFF"
	KindSettled    StatusKind = "SETTLED"
)

// PeriodStatus is the resolved status of one reporting period: either a DPD
// bucket or one of the special markers.
type PeriodStatus struct {
	Kind StatusKind `json:"kind"`
	DPD  int        `json:"dpd,omitempty"` // bucket value, meaningful only when Kind is DPD
}

// Observed reports whether the period carries usable delinquency data.
// NO_DATA and terminal markers are excluded from window math.
func (s PeriodStatus) Observed() bool {
	return s.Kind == KindDPD || s.Kind == KindCurrent
}

// DPDValue returns the delinquency bucket for observed periods (CURRENT is 0).
func (s PeriodStatus) DPDValue() int {
	if s.Kind == KindDPD {
		return s.DPD
	}
	return 0
}

// Terminal reports whether the status closes the tradeline's history.
func (s PeriodStatus) Terminal() bool {
	return s.Kind == KindWrittenOff || s.Kind == KindSettled
}

// RawPeriod is one reporting period as delivered by the parser, before
// decoding: the bureau's period identifier and status token, verbatim.
type RawPeriod struct {
	Period string `json:"period"`
	Token  string `json:"token"`
}

// PeriodRecord is one decoded reporting period on the canonical
// oldest-first, gap-free timeline.
type PeriodRecord struct {
	Period Month        `json:"period"`
	Token  string       `json:"token,omitempty"` // empty for synthesized gap records
	Status PeriodStatus `json:"status"`
}
