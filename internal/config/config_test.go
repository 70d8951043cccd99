package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anirbansen/credit-insight/internal/engine"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, []int{3, 6, 12, 24}, cfg.WindowSizes)
	assert.Equal(t, 5.0, cfg.TrendStableThreshold)
	assert.Equal(t, 300, cfg.ScoreValidMin)
	assert.Equal(t, 900, cfg.ScoreValidMax)
}

func TestNewConfigCustomEngineOptions(t *testing.T) {
	t.Setenv("CI_WINDOW_SIZES", "6, 12")
	t.Setenv("CI_TREND_STABLE_THRESHOLD", "2.5")
	t.Setenv("CI_SCORE_MIN", "350")
	t.Setenv("CI_SCORE_MAX", "850")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, []int{6, 12}, cfg.WindowSizes)
	assert.Equal(t, 2.5, cfg.TrendStableThreshold)
	assert.Equal(t, 350, cfg.ScoreValidMin)
	assert.Equal(t, 850, cfg.ScoreValidMax)
}

func TestNewConfigRejectsBadWindowSizes(t *testing.T) {
	t.Setenv("CI_WINDOW_SIZES", "3,six")
	_, err := NewConfig()
	require.Error(t, err)

	t.Setenv("CI_WINDOW_SIZES", "3,-6")
	_, err = NewConfig()
	require.Error(t, err)
	var cfgErr *engine.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestNewConfigRejectsInvertedScoreRange(t *testing.T) {
	t.Setenv("CI_SCORE_MIN", "900")
	t.Setenv("CI_SCORE_MAX", "300")
	_, err := NewConfig()
	require.Error(t, err)
}

func TestEngineOptionsMapping(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	opts := cfg.EngineOptions()
	assert.Equal(t, cfg.WindowSizes, opts.WindowSizes)
	assert.Equal(t, cfg.TrendStableThreshold, opts.TrendStableThreshold)
	assert.NoError(t, opts.Validate())
}
