package engine

import (
	"strconv"
	"strings"

	"github.com/anirbansen/credit-insight/internal/models"
)

// codeStatus is the fixed lookup table for bureau status codes. Asset
// classification codes carry their regulatory day counts (SMA 61+, SUB 91+,
// DBT 151+, LSS 181+) already reduced to buckets. XXX means "not reported"
// and maps to NO_DATA, not to an on-time period.
var codeStatus = map[string]models.PeriodStatus{
	"STD":     {Kind: models.KindDPD, DPD: 0},
	"DDD":     {Kind: models.KindDPD, DPD: 0},
	"SMA":     {Kind: models.KindDPD, DPD: 60},
	"SUB":     {Kind: models.KindDPD, DPD: 90},
	"DBT":     {Kind: models.KindDPD, DPD: 150},
	"LSS":     {Kind: models.KindDPD, DPD: 180},
	"XXX":     {Kind: models.KindNoData},
	"CUR":     {Kind: models.KindCurrent},
	"CURRENT": {Kind: models.KindCurrent},
	"WOF":     {Kind: models.KindWrittenOff},
	"WDF":     {Kind: models.KindWrittenOff},
	"SET":     {Kind: models.KindSettled},
	"SETTLED": {Kind: models.KindSettled},
}

// bucketDPD reduces a raw day count to its bucket: 0,30,...,150, with 180+
// as a single open-ended bucket.
func bucketDPD(days int) int {
	if days < 0 {
		days = 0
	}
	if days >= 180 {
		return 180
	}
	return (days / 30) * 30
}

// resolveToken maps a raw status token to a PeriodStatus. Tokens come as a
// plain day count ("030"), a bureau code ("SUB"), or a composite
// "days/code" pair where the numeric part wins. The second return value is
// false for tokens the table does not recognize; those resolve to NO_DATA
// and are tallied as diagnostics by the caller.
func resolveToken(token string) (models.PeriodStatus, bool) {
	tok := strings.ToUpper(strings.TrimSpace(token))
	if tok == "" {
		return models.PeriodStatus{Kind: models.KindNoData}, true
	}

	if dpd, code, found := strings.Cut(tok, "/"); found {
		if days, err := strconv.Atoi(dpd); err == nil {
			return models.PeriodStatus{Kind: models.KindDPD, DPD: bucketDPD(days)}, true
		}
		if status, ok := codeStatus[dpd]; ok {
			return status, true
		}
		if status, ok := codeStatus[code]; ok {
			return status, true
		}
		return models.PeriodStatus{Kind: models.KindNoData}, false
	}

	if days, err := strconv.Atoi(tok); err == nil {
		return models.PeriodStatus{Kind: models.KindDPD, DPD: bucketDPD(days)}, true
	}
	if status, ok := codeStatus[tok]; ok {
		return status, true
	}
	return models.PeriodStatus{Kind: models.KindNoData}, false
}
