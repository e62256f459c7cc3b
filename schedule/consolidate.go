package schedule

import (
	"fmt"

	"github.com/rustyeddy/projfin/tranche"
)

// Consolidated is the base-currency sum of several tranche schedules,
// one slot per period (index = period - 1). Non-base amounts are
// converted with the same exchange-rate series used for allocation:
// fx[ccy][period-1] is base units per one unit of ccy.
type Consolidated struct {
	BaseCurrency string
	Periods      int

	Interest     []float64
	Principal    []float64
	Service      []float64
	BalanceStart []float64
	BalanceEnd   []float64
}

// Consolidate merges per-tranche schedules into base-currency totals.
// Every non-base tranche needs exchange-rate coverage for its full
// tenor; a gap is a configuration error, never a silent 1.0.
func Consolidate(schedules []*Schedule, base string, fx map[string][]float64) (*Consolidated, error) {
	periods := 0
	for _, s := range schedules {
		if s.Tranche.TenorPeriods > periods {
			periods = s.Tranche.TenorPeriods
		}
	}

	c := &Consolidated{
		BaseCurrency: base,
		Periods:      periods,
		Interest:     make([]float64, periods),
		Principal:    make([]float64, periods),
		Service:      make([]float64, periods),
		BalanceStart: make([]float64, periods),
		BalanceEnd:   make([]float64, periods),
	}

	for _, s := range schedules {
		tr := s.Tranche
		if tr.Currency != base {
			rates, ok := fx[tr.Currency]
			if !ok || len(rates) < tr.TenorPeriods {
				return nil, &tranche.ConfigError{
					Tranche: tr.Name,
					Field:   "exchange_rates",
					Msg: fmt.Sprintf("currency %s needs rates for %d periods, have %d",
						tr.Currency, tr.TenorPeriods, len(fx[tr.Currency])),
				}
			}
		}
		for _, e := range s.Entries {
			rate := 1.0
			if tr.Currency != base {
				rate = fx[tr.Currency][e.Period-1]
			}
			i := e.Period - 1
			c.Interest[i] += e.Interest * rate
			c.Principal[i] += e.Principal * rate
			c.Service[i] += e.Service * rate
			c.BalanceStart[i] += e.BalanceStart * rate
			c.BalanceEnd[i] += e.BalanceEnd * rate
		}
	}

	return c, nil
}

// OutstandingAt returns the consolidated start-of-period balance for a
// 1-indexed period, or 0 once the consolidated schedule has ended.
func (c *Consolidated) OutstandingAt(period int) float64 {
	if period < 1 || period > c.Periods {
		return 0
	}
	return c.BalanceStart[period-1]
}
