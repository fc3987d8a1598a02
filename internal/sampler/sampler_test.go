package sampler

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtding233/idle-balance/internal/balance"
)

func newModel(t *testing.T) *balance.Model {
	t.Helper()
	m, err := balance.New(balance.DefaultTuning())
	require.NoError(t, err)
	return m
}

func TestSampleLinearMatchesCost(t *testing.T) {
	m := newModel(t)
	tier, err := m.Tier("Drone")
	require.NoError(t, err)
	fn := IntArg(func(n int) (float64, error) { return m.Cost(tier, n) })

	pts, err := SampleLinear(fn, 0, 50, 1)
	require.NoError(t, err)
	require.Len(t, pts, 50)
	for i, p := range pts {
		assert.Equal(t, float64(i), p.X)
		want, err := m.Cost(tier, i)
		require.NoError(t, err)
		assert.Equal(t, want, p.Y)
	}
}

func TestSampleLinearHalfOpen(t *testing.T) {
	id := func(x float64) (float64, error) { return x, nil }

	pts, err := SampleLinear(id, 1, 2, 0.25)
	require.NoError(t, err)
	want := []Point{{1, 1}, {1.25, 1.25}, {1.5, 1.5}, {1.75, 1.75}}
	if diff := cmp.Diff(want, pts); diff != "" {
		t.Fatalf("points mismatch (-want +got):\n%s", diff)
	}

	pts, err = SampleLinear(id, 3, 3, 1)
	require.NoError(t, err)
	assert.Empty(t, pts)
}

func TestSampleLinearRejectsBadDomain(t *testing.T) {
	id := func(x float64) (float64, error) { return x, nil }
	tests := []struct {
		name              string
		start, stop, step float64
	}{
		{"zero step", 0, 10, 0},
		{"negative step", 0, 10, -1},
		{"stop before start", 10, 0, 1},
		{"nan", math.NaN(), 10, 1},
		{"too many points", 0, 1e9, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts, err := SampleLinear(id, tt.start, tt.stop, tt.step)
			assert.ErrorIs(t, err, balance.ErrDomain)
			assert.Nil(t, pts)
		})
	}
}

func TestSampleLog(t *testing.T) {
	m := newModel(t)
	p := m.Prestige()
	fn := func(x float64) (float64, error) {
		w, err := m.WisdomEarned(x, p)
		return float64(w), err
	}
	pts, err := SampleLog(fn, 6, 11, 500)
	require.NoError(t, err)
	require.Len(t, pts, 500)
	assert.InEpsilon(t, 1e6, pts[0].X, 1e-12)
	assert.InEpsilon(t, 1e11, pts[499].X, 1e-12)
	assert.Equal(t, 1.0, pts[0].Y)
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].X, pts[i-1].X)
		assert.GreaterOrEqual(t, pts[i].Y, pts[i-1].Y)
	}
	// ratio between neighbours is constant
	r0 := pts[1].X / pts[0].X
	r1 := pts[251].X / pts[250].X
	assert.InDelta(t, r0, r1, 1e-9)

	for _, tc := range []struct {
		a, b float64
		n    int
	}{{6, 11, 1}, {11, 6, 10}, {3, 3, 10}, {0, 400, 10}} {
		_, err := SampleLog(fn, tc.a, tc.b, tc.n)
		assert.ErrorIs(t, err, balance.ErrDomain, "%+v", tc)
	}
}

func TestSampleIndexed(t *testing.T) {
	m := newModel(t)
	l := m.Ladder()
	fn := IntArg(func(v int) (float64, error) { return m.DistillationCost(l, v) })

	pts, err := SampleIndexed(fn, Range(1, l.Len()))
	require.NoError(t, err)
	want := []Point{{1, 100}, {2, 250}, {3, 500}, {4, 1000}, {5, 2000}}
	assert.Equal(t, want, pts)

	_, err = SampleIndexed(fn, Range(0, l.Len()))
	assert.ErrorIs(t, err, balance.ErrDomain, "version 0 has no cost")

	_, err = SampleIndexed(fn, nil)
	assert.ErrorIs(t, err, balance.ErrDomain)
}

func TestSampleFailsWholeCallOnFnError(t *testing.T) {
	boom := errors.New("boom")
	fn := func(x float64) (float64, error) {
		if x == 3 {
			return 0, boom
		}
		return x, nil
	}
	pts, err := SampleLinear(fn, 0, 10, 1)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "x=3")
	assert.Nil(t, pts)
}

func TestIntArgRejectsFractions(t *testing.T) {
	fn := IntArg(func(n int) (float64, error) { return float64(n), nil })
	_, err := fn(1.5)
	assert.ErrorIs(t, err, balance.ErrDomain)
	y, err := fn(7)
	require.NoError(t, err)
	assert.Equal(t, 7.0, y)

	_, err = SampleLinear(fn, 0, 2, 0.5)
	assert.ErrorIs(t, err, balance.ErrDomain)
}

func TestSampleMultiSeries(t *testing.T) {
	m := newModel(t)
	e := m.Economy()
	fns := map[string]Func{}
	for _, exp := range []float64{0.85, 0.75, 0.6, 0.5} {
		exp := exp
		fns[formatExp(exp)] = func(x float64) (float64, error) { return m.Consumption(e, x, exp) }
	}
	d := LinearDomain(1, 101, 1)
	got, err := SampleMultiSeries(fns, d)
	require.NoError(t, err)
	require.Len(t, got, 4)
	for label, pts := range got {
		require.Len(t, pts, 100, label)
	}
	// lower exponent consumes less at every lab count above 1
	for i := 1; i < 100; i++ {
		assert.Less(t, got["0.50"][i].Y, got["0.85"][i].Y)
	}

	fns["0.35"] = func(x float64) (float64, error) { return m.Consumption(e, x, 0.35) }
	_, err = SampleMultiSeries(fns, d)
	assert.ErrorIs(t, err, balance.ErrDomain)
	assert.Contains(t, err.Error(), `curve "0.35"`)

	_, err = SampleMultiSeries(nil, d)
	assert.ErrorIs(t, err, balance.ErrDomain)
}

func formatExp(v float64) string {
	return map[float64]string{0.85: "0.85", 0.75: "0.75", 0.6: "0.60", 0.5: "0.50"}[v]
}

func TestSampleTable(t *testing.T) {
	m := newModel(t)
	l := m.Ladder()
	fn := func(x float64) (map[string]float64, error) { return m.DistillationBonuses(l, int(x)) }

	rows, err := SampleTable(fn, IndexDomain(Range(0, l.Len())...))
	require.NoError(t, err)
	require.Len(t, rows, 6)
	assert.Equal(t, 1.0, rows[0].Values["Cost Mult"])
	assert.Equal(t, 0.9, rows[5].Values["Cost Mult"])
	assert.Equal(t, 2.0, rows[5].Values["All Prod"])

	_, err = SampleTable(fn, IndexDomain(Range(0, l.Len()+1)...))
	assert.ErrorIs(t, err, balance.ErrDomain)
}

func TestSamplingIsRestartable(t *testing.T) {
	m := newModel(t)
	e := m.Economy()
	fn := func(x float64) (float64, error) { return m.ResourceMultiplier(e, x) }
	a, err := SampleLinear(fn, 0, 2001, 1)
	require.NoError(t, err)
	b, err := SampleLinear(fn, 0, 2001, 1)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestUnknownDomainKind(t *testing.T) {
	_, err := Sample(func(x float64) (float64, error) { return x, nil }, Domain{Kind: "spiral"})
	assert.ErrorIs(t, err, balance.ErrDomain)
}

func TestRange(t *testing.T) {
	assert.Equal(t, []int{2, 3, 4}, Range(2, 4))
	assert.Nil(t, Range(4, 2))
}
