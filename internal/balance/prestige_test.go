package balance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWisdomEarned(t *testing.T) {
	m := newTestModel(t)
	p := PrestigeConfig{Divisor: 1000}
	tests := []struct {
		total float64
		want  int64
	}{
		{0, 0},
		{999_999, 0},
		{1_000_000, 1},
		{1e7, 3},
		{1e8, 10},
		{1e9, 31},
	}
	for _, tt := range tests {
		got, err := m.WisdomEarned(tt.total, p)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "total=%v", tt.total)
	}

	_, err := m.WisdomEarned(-1, p)
	assert.ErrorIs(t, err, ErrDomain)
	_, err = m.WisdomEarned(100, PrestigeConfig{Divisor: 0})
	assert.ErrorIs(t, err, ErrDomain)
}

func TestWisdomEarnedBeyondInt64(t *testing.T) {
	m := newTestModel(t)
	p := PrestigeConfig{Divisor: 1000}

	// sqrt(8e43)/1000 is about 8.9e18, still below MaxInt64
	got, err := m.WisdomEarned(8e43, p)
	require.NoError(t, err)
	assert.Positive(t, got)

	for _, total := range []float64{1e60, math.MaxFloat64} {
		got, err := m.WisdomEarned(total, p)
		assert.ErrorIs(t, err, ErrDomain, "total=%v", total)
		assert.Zero(t, got, "total=%v", total)
	}
}

func TestWisdomEarnedIgnoresThreshold(t *testing.T) {
	m := newTestModel(t)
	p := m.Prestige()
	got, err := m.WisdomEarned(4e6, PrestigeConfig{Divisor: p.Divisor, UnlockThreshold: 1e12})
	require.NoError(t, err)
	assert.Equal(t, int64(2), got)
	assert.False(t, m.CanPrestige(4e6, PrestigeConfig{UnlockThreshold: 1e12}))
	assert.True(t, m.CanPrestige(1e6, p))
	assert.False(t, m.CanPrestige(999_999, p))
}

func TestWisdomMultiplier(t *testing.T) {
	m := newTestModel(t)
	p := m.Prestige()

	got, err := m.WisdomMultiplier(0, p, 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got)

	got, err = m.WisdomMultiplier(20, p, 0)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got, 1e-12)

	got, err = m.WisdomMultiplier(20, p, 0.05)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, got, 1e-12)

	_, err = m.WisdomMultiplier(-1, p, 0)
	assert.ErrorIs(t, err, ErrDomain)
}
