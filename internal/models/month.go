package models

import (
	"fmt"
	"time"
)

// Month identifies a single reporting period (calendar month).
type Month struct {
	Year int
	Mon  time.Month
}

var monthLayouts = []string{"2006-01", "01-2006", "02-01-2006", "2006-01-02", "Jan-2006"}

// ParseMonth parses a period identifier in any of the formats bureaus use
// (YYYY-MM, MM-YYYY, DD-MM-YYYY, YYYY-MM-DD, Mon-YYYY).
func ParseMonth(s string) (Month, error) {
	for _, layout := range monthLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Month{Year: t.Year(), Mon: t.Month()}, nil
		}
	}
	return Month{}, fmt.Errorf("unrecognized period identifier %q", s)
}

// Index returns the month as a linear count, so adjacent months differ by 1.
func (m Month) Index() int {
	return m.Year*12 + int(m.Mon) - 1
}

// Before reports whether m is earlier than o.
func (m Month) Before(o Month) bool {
	return m.Index() < o.Index()
}

// Next returns the following calendar month.
func (m Month) Next() Month {
	if m.Mon == time.December {
		return Month{Year: m.Year + 1, Mon: time.January}
	}
	return Month{Year: m.Year, Mon: m.Mon + 1}
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Mon))
}

// MarshalJSON renders the month as "YYYY-MM".
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

// UnmarshalJSON parses a "YYYY-MM" string.
func (m *Month) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("month must be a JSON string")
	}
	parsed, err := ParseMonth(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
