package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMonthFormats(t *testing.T) {
	want := Month{Year: 2023, Mon: time.June}
	for _, input := range []string{"2023-06", "06-2023", "15-06-2023", "2023-06-15", "Jun-2023"} {
		got, err := ParseMonth(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := ParseMonth("June twenty-three")
	assert.Error(t, err)
}

func TestMonthOrderingAndNext(t *testing.T) {
	dec := Month{Year: 2022, Mon: time.December}
	jan := Month{Year: 2023, Mon: time.January}

	assert.True(t, dec.Before(jan))
	assert.False(t, jan.Before(dec))
	assert.Equal(t, jan, dec.Next())
	assert.Equal(t, dec.Index()+1, jan.Index())
}

func TestMonthJSONRoundTrip(t *testing.T) {
	m := Month{Year: 2023, Mon: time.March}
	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"2023-03"`, string(data))

	var parsed Month
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, m, parsed)

	assert.Error(t, json.Unmarshal([]byte(`42`), &parsed))
}

func TestPeriodStatusHelpers(t *testing.T) {
	assert.True(t, PeriodStatus{Kind: KindDPD, DPD: 30}.Observed())
	assert.True(t, PeriodStatus{Kind: KindCurrent}.Observed())
	assert.False(t, PeriodStatus{Kind: KindNoData}.Observed())
	assert.False(t, PeriodStatus{Kind: KindWrittenOff}.Observed())

	assert.Equal(t, 30, PeriodStatus{Kind: KindDPD, DPD: 30}.DPDValue())
	assert.Equal(t, 0, PeriodStatus{Kind: KindCurrent}.DPDValue())

	assert.True(t, PeriodStatus{Kind: KindSettled}.Terminal())
	assert.False(t, PeriodStatus{Kind: KindDPD, DPD: 180}.Terminal())
}
