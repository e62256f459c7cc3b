package allocate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/projfin/tranche"
)

func flat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// Two pro-rata tranches on a 60/40 split of a 10,000,000 base: the
// per-tranche base shares must sum exactly to the consolidated CFADS
// in every period.
func TestProRataSharesSumToCFADS(t *testing.T) {
	t.Parallel()

	senior := tranche.Tranche{
		Name: "senior", Currency: "USD", Principal: 6_000_000,
		Rate: 0.07, TenorPeriods: 10, Style: tranche.Annuity,
	}
	junior := tranche.Tranche{
		Name: "junior", Currency: "USD", Principal: 4_000_000,
		Rate: 0.07, TenorPeriods: 10, Style: tranche.Annuity,
	}

	cfads := flat(1_500_000, 10)
	res, err := Split(Input{
		BaseCurrency: "USD",
		CFADS:        cfads,
		Tranches:     []tranche.Tranche{senior, junior},
		Policy:       ProRata,
	})
	require.NoError(t, err)

	for p := 0; p < 10; p++ {
		sum := res.BaseShares["senior"][p] + res.BaseShares["junior"][p]
		assert.InDelta(t, cfads[p], sum, 1e-6, "period %d", p+1)
	}

	// Same rate, tenor and style: balances stay proportional, so the
	// first-period split is exactly 60/40.
	assert.InDelta(t, 900_000, res.BaseShares["senior"][0], 1e-6)
	assert.InDelta(t, 600_000, res.BaseShares["junior"][0], 1e-6)
}

func TestProRataConvertsCurrency(t *testing.T) {
	t.Parallel()

	usd := tranche.Tranche{
		Name: "usd", Currency: "USD", Principal: 1_000,
		Rate: 0, TenorPeriods: 2, Style: tranche.Annuity,
	}

	// Base LKR at 300 LKR per USD: base share divided by the rate.
	res, err := Split(Input{
		BaseCurrency: "LKR",
		CFADS:        []float64{150_000, 150_000},
		Tranches:     []tranche.Tranche{usd},
		FX:           map[string][]float64{"USD": {300, 300}},
		Policy:       ProRata,
	})
	require.NoError(t, err)

	assert.InDelta(t, 150_000, res.BaseShares["usd"][0], 1e-9)
	assert.InDelta(t, 500, res.PerTranche["usd"][0], 1e-9)
}

func TestWaterfallSeniorFirst(t *testing.T) {
	t.Parallel()

	// Zero-rate annuities make the service obvious: senior consumes
	// 250,000/period, junior sees the residual.
	senior := tranche.Tranche{
		Name: "senior", Currency: "USD", Principal: 500_000,
		Rate: 0, TenorPeriods: 2, Style: tranche.Annuity,
	}
	junior := tranche.Tranche{
		Name: "junior", Currency: "USD", Principal: 400_000,
		Rate: 0, TenorPeriods: 2, Style: tranche.Annuity,
	}

	res, err := Split(Input{
		BaseCurrency: "USD",
		CFADS:        []float64{400_000, 400_000},
		Tranches:     []tranche.Tranche{senior, junior},
		Policy:       Waterfall,
	})
	require.NoError(t, err)

	assert.InDelta(t, 400_000, res.BaseShares["senior"][0], 1e-9)
	assert.InDelta(t, 150_000, res.BaseShares["junior"][0], 1e-9)
}

func TestSplitNoTranches(t *testing.T) {
	t.Parallel()

	_, err := Split(Input{BaseCurrency: "USD", CFADS: flat(1, 5)})
	var cerr *tranche.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "tranches", cerr.Field)
}

func TestSplitCFADSTooShort(t *testing.T) {
	t.Parallel()

	tr := tranche.Tranche{
		Name: "a", Currency: "USD", Principal: 100,
		Rate: 0, TenorPeriods: 8, Style: tranche.Annuity,
	}
	_, err := Split(Input{
		BaseCurrency: "USD",
		CFADS:        flat(10, 5),
		Tranches:     []tranche.Tranche{tr},
	})
	var cerr *tranche.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "cfads", cerr.Field)
}

func TestSplitMissingFX(t *testing.T) {
	t.Parallel()

	usd := tranche.Tranche{
		Name: "usd", Currency: "USD", Principal: 100,
		Rate: 0, TenorPeriods: 4, Style: tranche.Annuity,
	}
	_, err := Split(Input{
		BaseCurrency: "LKR",
		CFADS:        flat(1000, 4),
		Tranches:     []tranche.Tranche{usd},
		FX:           map[string][]float64{"USD": {300, 300}},
	})
	var cerr *tranche.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "exchange_rates", cerr.Field)
}

// Sculpted tranches participate in pro-rata allocation with balances
// advanced by the same recurrence the scheduler uses, so allocating
// and then scheduling agree on the balance path.
func TestProRataSculptedConsistentWithScheduler(t *testing.T) {
	t.Parallel()

	tr := tranche.Tranche{
		Name: "sculpted", Currency: "USD", Principal: 1_000_000,
		Rate: 0.08, TenorPeriods: 4, Style: tranche.Sculpted, TargetDSCR: 1.25,
	}

	cfads := []float64{200_000, 220_000, 250_000, 900_000}
	res, err := Split(Input{
		BaseCurrency: "USD",
		CFADS:        cfads,
		Tranches:     []tranche.Tranche{tr},
		Policy:       ProRata,
	})
	require.NoError(t, err)

	// Sole tranche: gets the entire series.
	for p := 0; p < 4; p++ {
		assert.InDelta(t, cfads[p], res.PerTranche["sculpted"][p], 1e-9)
	}
}
