package refinance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/projfin/engine"
	"github.com/rustyeddy/projfin/tranche"
)

func flat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// A balloon tranche that gets replaced at maturity with a fresh
// fully-amortizing annuity.
func balloonScenario() engine.Scenario {
	return engine.Scenario{
		Name:         "balloon",
		BaseCurrency: "USD",
		CFADS:        flat(300_000, 12),
		HurdleRate:   0.10,
		Tranches: []tranche.Tranche{
			{
				Name: "senior", Currency: "USD", Principal: 1_000_000,
				Rate: 0.08, TenorPeriods: 5, Style: tranche.Annuity,
				BalloonFraction: 0.30,
			},
		},
	}
}

func TestEvaluateRescalesCandidates(t *testing.T) {
	t.Parallel()

	s := balloonScenario()
	orig, err := engine.Run(s)
	require.NoError(t, err)

	candidate := tranche.Tranche{
		Name: "refi", Currency: "USD", Principal: 1,
		Rate: 0.07, TenorPeriods: 6, Style: tranche.Annuity,
	}

	cmp, err := Evaluate(orig, s, 5, []tranche.Tranche{candidate})
	require.NoError(t, err)

	// Outstanding at start of period 5 is the balloon plus the last
	// amortizing slice; the replacement principal must equal it.
	assert.Equal(t, 5, cmp.Period)
	assert.InDelta(t, orig.Consolidated.OutstandingAt(5), cmp.OutstandingAtRefi, 1e-9)

	require.Len(t, cmp.AltResult.Schedules, 1)
	assert.InDelta(t, cmp.OutstandingAtRefi, cmp.AltResult.Schedules[0].Tranche.Principal, 1e-6)

	// Fully amortizing replacement: no balloon left.
	alt := cmp.AltResult.Consolidated
	assert.InDelta(t, 0, alt.BalanceEnd[alt.Periods-1], 1e-6)
}

func TestEvaluateLeavesOriginalUntouched(t *testing.T) {
	t.Parallel()

	s := balloonScenario()
	orig, err := engine.Run(s)
	require.NoError(t, err)

	before := *orig.Coverage

	candidate := tranche.Tranche{
		Name: "refi", Currency: "USD", Principal: 1,
		Rate: 0.07, TenorPeriods: 6, Style: tranche.Annuity,
	}
	cmp, err := Evaluate(orig, s, 3, []tranche.Tranche{candidate})
	require.NoError(t, err)

	assert.Equal(t, &before, cmp.Original)
	assert.Equal(t, before, *orig.Coverage)
}

func TestEvaluateSplitsAcrossCandidates(t *testing.T) {
	t.Parallel()

	s := balloonScenario()
	orig, err := engine.Run(s)
	require.NoError(t, err)

	// 70/30 proportions, rescaled to the outstanding balance.
	candidates := []tranche.Tranche{
		{Name: "refi-a", Currency: "USD", Principal: 70, Rate: 0.07, TenorPeriods: 6, Style: tranche.Annuity},
		{Name: "refi-b", Currency: "USD", Principal: 30, Rate: 0.09, TenorPeriods: 6, Style: tranche.Annuity},
	}

	cmp, err := Evaluate(orig, s, 4, candidates)
	require.NoError(t, err)

	var total float64
	for _, sched := range cmp.AltResult.Schedules {
		total += sched.Tranche.Principal
	}
	assert.InDelta(t, cmp.OutstandingAtRefi, total, 1e-6)

	a := cmp.AltResult.Schedules[0].Tranche.Principal
	b := cmp.AltResult.Schedules[1].Tranche.Principal
	assert.InDelta(t, 70.0/30.0, a/b, 1e-9)
}

func TestEvaluateBadPeriod(t *testing.T) {
	t.Parallel()

	s := balloonScenario()
	orig, err := engine.Run(s)
	require.NoError(t, err)

	candidate := tranche.Tranche{
		Name: "refi", Currency: "USD", Principal: 1,
		Rate: 0.07, TenorPeriods: 6, Style: tranche.Annuity,
	}

	_, err = Evaluate(orig, s, 0, []tranche.Tranche{candidate})
	assert.Error(t, err)

	_, err = Evaluate(orig, s, 99, []tranche.Tranche{candidate})
	assert.Error(t, err)

	_, err = Evaluate(orig, s, 3, nil)
	assert.Error(t, err)
}
