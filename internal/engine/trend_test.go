package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirbansen/credit-insight/internal/models"
)

func snapshot(bureau string, date string, score int) models.ScoreSnapshot {
	t, _ := time.Parse("2006-01-02", date)
	return models.ScoreSnapshot{Bureau: bureau, PulledAt: t, Score: score}
}

func TestAnalyzeTrendImproving(t *testing.T) {
	history := []models.ScoreSnapshot{
		snapshot("CRIF", "2024-01-01", 600),
		snapshot("CRIF", "2024-03-31", 650), // 90 days later
	}
	result := AnalyzeTrend(history, DefaultOptions())

	assert.Equal(t, models.TrendImproving, result.Direction)
	assert.Equal(t, 50, result.NetChange)
	assert.Equal(t, 600, result.FirstScore)
	assert.Equal(t, 650, result.LatestScore)
	// 50 points over 90 days is roughly 203 points/year.
	assert.InDelta(t, 202.9, result.Slope, 1.0)
}

func TestAnalyzeTrendDeclining(t *testing.T) {
	history := []models.ScoreSnapshot{
		snapshot("CRIF", "2024-01-01", 720),
		snapshot("CRIF", "2024-07-01", 640),
	}
	result := AnalyzeTrend(history, DefaultOptions())
	assert.Equal(t, models.TrendDeclining, result.Direction)
	assert.Equal(t, -80, result.NetChange)
}

func TestAnalyzeTrendStableWithinThreshold(t *testing.T) {
	history := []models.ScoreSnapshot{
		snapshot("CRIF", "2024-01-01", 700),
		snapshot("CRIF", "2025-01-01", 702), // 2 points/year, below the default 5.0
	}
	result := AnalyzeTrend(history, DefaultOptions())
	assert.Equal(t, models.TrendStable, result.Direction)
}

func TestAnalyzeTrendInsufficientData(t *testing.T) {
	result := AnalyzeTrend(nil, DefaultOptions())
	assert.Equal(t, models.TrendInsufficientData, result.Direction)
	assert.Zero(t, result.Snapshots)

	result = AnalyzeTrend([]models.ScoreSnapshot{snapshot("CRIF", "2024-01-01", 700)}, DefaultOptions())
	assert.Equal(t, models.TrendInsufficientData, result.Direction)
	assert.Equal(t, 1, result.Snapshots)
}

func TestAnalyzeTrendOutOfRangeScoresAreAnomalies(t *testing.T) {
	history := []models.ScoreSnapshot{
		snapshot("CRIF", "2024-01-01", 600),
		snapshot("CRIF", "2024-02-01", -1), // bureau sentinel for "no score"
		snapshot("CRIF", "2024-03-31", 650),
	}
	result := AnalyzeTrend(history, DefaultOptions())

	assert.Equal(t, 1, result.ScoreAnomalies)
	assert.Equal(t, 2, result.Snapshots)
	assert.Equal(t, models.TrendImproving, result.Direction)
}

func TestAnalyzeTrendAllAnomalousIsInsufficient(t *testing.T) {
	history := []models.ScoreSnapshot{
		snapshot("CRIF", "2024-01-01", 10),
		snapshot("CRIF", "2024-02-01", 9999),
	}
	result := AnalyzeTrend(history, DefaultOptions())
	assert.Equal(t, models.TrendInsufficientData, result.Direction)
	assert.Equal(t, 2, result.ScoreAnomalies)
	assert.Zero(t, result.Snapshots)
}

func TestAnalyzeTrendDuplicateDateLastWriteWins(t *testing.T) {
	history := []models.ScoreSnapshot{
		snapshot("CRIF", "2024-01-01", 600),
		snapshot("CRIF", "2024-03-31", 610),
		snapshot("CRIF", "2024-03-31", 650), // later ingest replaces the 610
	}
	result := AnalyzeTrend(history, DefaultOptions())

	assert.Equal(t, 2, result.Snapshots)
	assert.Equal(t, 650, result.LatestScore)
	assert.Equal(t, 50, result.NetChange)
}

func TestAnalyzeTrendSameDateTwoBureaus(t *testing.T) {
	// Two bureaus on one date is one distinct date: not enough for a trend.
	history := []models.ScoreSnapshot{
		snapshot("CRIF", "2024-01-01", 600),
		snapshot("CIBIL", "2024-01-01", 620),
	}
	result := AnalyzeTrend(history, DefaultOptions())
	require.Equal(t, models.TrendInsufficientData, result.Direction)
	assert.Equal(t, 2, result.Snapshots)
}
