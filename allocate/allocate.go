// Package allocate splits a consolidated base-currency CFADS series
// across debt tranches, converting each tranche's share into its own
// currency. It is a pure function of its inputs: the per-period
// outstanding balances that drive the split are projected internally
// with the same recurrences the scheduler uses, so the weights track
// the balances the schedules will actually have.
package allocate

import (
	"fmt"

	"github.com/rustyeddy/projfin/tranche"
)

// Policy selects how CFADS is split across tranches.
type Policy string

const (
	// ProRata splits by outstanding principal at the start of each
	// period (measured in base currency). Default.
	ProRata Policy = "pro-rata"

	// Waterfall serves tranches in list order: each senior tranche
	// sees the full residual and consumes its debt service; whatever
	// is left flows to the next.
	Waterfall Policy = "waterfall"
)

// Input is everything the allocator needs. FX maps a currency code to
// its per-period exchange-rate series, quoted as base units per one
// unit of that currency; it is required only for non-base tranches.
type Input struct {
	BaseCurrency string
	CFADS        []float64
	Tranches     []tranche.Tranche
	FX           map[string][]float64
	Policy       Policy
}

// Result holds per-tranche allocations keyed by tranche name.
// PerTranche is in each tranche's own currency; BaseShares is the same
// allocation before conversion. Under ProRata the base shares sum to
// the consolidated CFADS in every period.
type Result struct {
	PerTranche map[string][]float64
	BaseShares map[string][]float64
	Periods    int
}

// Split allocates the CFADS series across in.Tranches under in.Policy.
func Split(in Input) (*Result, error) {
	if len(in.Tranches) == 0 {
		return nil, &tranche.ConfigError{Field: "tranches", Msg: "no tranches to allocate to"}
	}

	maxTenor := 0
	for _, tr := range in.Tranches {
		if tr.TenorPeriods > maxTenor {
			maxTenor = tr.TenorPeriods
		}
	}
	if len(in.CFADS) < maxTenor {
		return nil, &tranche.ConfigError{
			Field: "cfads",
			Msg:   fmt.Sprintf("series covers %d periods, max tenor is %d", len(in.CFADS), maxTenor),
		}
	}

	states := make([]*trancheState, len(in.Tranches))
	for i, tr := range in.Tranches {
		st, err := newTrancheState(tr, in.BaseCurrency, in.FX)
		if err != nil {
			return nil, err
		}
		states[i] = st
	}

	res := &Result{
		PerTranche: make(map[string][]float64, len(in.Tranches)),
		BaseShares: make(map[string][]float64, len(in.Tranches)),
		Periods:    maxTenor,
	}
	for _, tr := range in.Tranches {
		res.PerTranche[tr.Name] = make([]float64, maxTenor)
		res.BaseShares[tr.Name] = make([]float64, maxTenor)
	}

	for p := 1; p <= maxTenor; p++ {
		cf := in.CFADS[p-1]

		switch in.Policy {
		case Waterfall:
			residual := cf
			for _, st := range states {
				if !st.active(p) {
					continue
				}
				shareBase := residual
				alloc := shareBase / st.rate(p)
				res.BaseShares[st.tr.Name][p-1] = shareBase
				res.PerTranche[st.tr.Name][p-1] = alloc

				consumed := st.advance(p, alloc) * st.rate(p)
				residual -= consumed
				if residual < 0 {
					residual = 0
				}
			}

		default: // ProRata
			total := 0.0
			active := 0
			for _, st := range states {
				if st.active(p) {
					total += st.bal * st.rate(p)
					active++
				}
			}
			for _, st := range states {
				if !st.active(p) {
					continue
				}
				w := 0.0
				if total > 0 {
					w = st.bal * st.rate(p) / total
				} else if active > 0 {
					w = 1.0 / float64(active)
				}
				shareBase := cf * w
				alloc := shareBase / st.rate(p)
				res.BaseShares[st.tr.Name][p-1] = shareBase
				res.PerTranche[st.tr.Name][p-1] = alloc
				st.advance(p, alloc)
			}
		}
	}

	return res, nil
}
