// Package refinance compares a completed debt structure against a
// candidate replacement effective from some future period. It is used
// for balloon-mitigation analysis: re-run the whole pipeline from the
// refinancing date with the then-outstanding balance as the new
// principal, and put the two coverage pictures side by side. The
// original result is never touched.
package refinance

import (
	"fmt"

	"github.com/rustyeddy/projfin/coverage"
	"github.com/rustyeddy/projfin/engine"
	"github.com/rustyeddy/projfin/tranche"
)

// Comparison pairs the original coverage with the refinanced
// alternative. Alternative periods are numbered from the refinancing
// date: alternative period 1 is original period Period.
type Comparison struct {
	Period            int
	OutstandingAtRefi float64 // base currency, start of Period

	Original    *coverage.Report
	Alternative *coverage.Report

	// AltResult carries the full refinanced run for callers that want
	// schedules and compliance, not just ratios.
	AltResult *engine.Result
}

// Evaluate re-runs the pipeline from 1-indexed period t0 with the
// candidate tranche set replacing the original debt. Candidate
// principals are treated as proportions: they are rescaled pro-rata so
// their base-currency total equals the outstanding balance at t0,
// using the scenario's exchange rates at that period.
func Evaluate(orig *engine.Result, s engine.Scenario, t0 int, candidates []tranche.Tranche) (*Comparison, error) {
	if orig == nil || orig.Consolidated == nil {
		return nil, fmt.Errorf("refinance: original result is incomplete")
	}
	if t0 < 1 || t0 > orig.Consolidated.Periods {
		return nil, &tranche.ConfigError{Field: "refinance_period",
			Msg: fmt.Sprintf("period %d outside schedule of %d periods", t0, orig.Consolidated.Periods)}
	}
	if len(candidates) == 0 {
		return nil, &tranche.ConfigError{Field: "candidates", Msg: "replacement tranche set is empty"}
	}

	outstanding := orig.Consolidated.OutstandingAt(t0)
	if outstanding <= 0 {
		return nil, &tranche.ConfigError{Field: "refinance_period",
			Msg: fmt.Sprintf("no debt outstanding at period %d", t0)}
	}

	rateAt := func(ccy string) (float64, error) {
		if ccy == s.BaseCurrency {
			return 1, nil
		}
		rates, ok := s.FX[ccy]
		if !ok || len(rates) < t0 {
			return 0, &tranche.ConfigError{Field: "exchange_rates",
				Msg: fmt.Sprintf("currency %s has no rate for refinance period %d", ccy, t0)}
		}
		return rates[t0-1], nil
	}

	totalBase := 0.0
	for _, c := range candidates {
		r, err := rateAt(c.Currency)
		if err != nil {
			return nil, err
		}
		totalBase += c.Principal * r
	}
	if totalBase <= 0 {
		return nil, &tranche.ConfigError{Field: "candidates", Msg: "candidate principals must be positive"}
	}

	scale := outstanding / totalBase
	replacement := make([]tranche.Tranche, len(candidates))
	for i, c := range candidates {
		c.Principal *= scale
		replacement[i] = c
	}

	alt := s
	alt.Name = fmt.Sprintf("%s (refi @ period %d)", s.Name, t0)
	alt.Tranches = replacement
	alt.CFADS = s.CFADS[t0-1:]
	alt.FX = sliceFX(s.FX, t0)

	altRes, err := engine.Run(alt)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Period:            t0,
		OutstandingAtRefi: outstanding,
		Original:          orig.Coverage,
		Alternative:       altRes.Coverage,
		AltResult:         altRes,
	}, nil
}

// sliceFX rebases each exchange-rate series so that index 0 is period
// t0 of the original timeline.
func sliceFX(fx map[string][]float64, t0 int) map[string][]float64 {
	if fx == nil {
		return nil
	}
	out := make(map[string][]float64, len(fx))
	for ccy, rates := range fx {
		if len(rates) >= t0 {
			out[ccy] = rates[t0-1:]
		} else {
			out[ccy] = nil
		}
	}
	return out
}
