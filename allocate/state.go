package allocate

import (
	"fmt"

	"github.com/rustyeddy/projfin/schedule"
	"github.com/rustyeddy/projfin/tranche"
)

// trancheState projects one tranche's balance forward period by
// period, mirroring the scheduler's recurrence. Annuity tranches are
// pre-scheduled (their path does not depend on allocation); sculpted
// tranches advance against the allocation they are handed.
type trancheState struct {
	tr  tranche.Tranche
	fx  []float64 // nil for base-currency tranches
	bal float64   // outstanding at start of current period, tranche ccy

	amortBal float64
	pre      *schedule.Schedule // annuity path, nil for sculpted
}

func newTrancheState(tr tranche.Tranche, base string, fx map[string][]float64) (*trancheState, error) {
	st := &trancheState{
		tr:       tr,
		bal:      tr.Principal,
		amortBal: tr.Principal - tr.Balloon(),
	}

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
		st.fx = rates
	}

	if tr.Style != tranche.Sculpted {
		pre, err := schedule.Annuity(tr)
		if err != nil {
			return nil, err
		}
		st.pre = pre
	}

	return st, nil
}

func (st *trancheState) active(period int) bool {
	return period <= st.tr.TenorPeriods
}

// rate returns base units per one tranche-currency unit for a period.
func (st *trancheState) rate(period int) float64 {
	if st.fx == nil {
		return 1
	}
	return st.fx[period-1]
}

// advance moves the state past one period given the tranche-currency
// allocation, returning the debt service consumed (tranche currency).
// The sculpt recurrence clamps a negative solve to zero here; the
// scheduler is the one that reports infeasibility.
func (st *trancheState) advance(period int, alloc float64) float64 {
	tr := st.tr

	if st.pre != nil {
		e := st.pre.Entries[period-1]
		st.bal = e.BalanceEnd
		return e.Service
	}

	interest := st.bal * tr.Rate

	if period <= tr.GracePeriods {
		if tr.CapitalizeGraceInterest {
			st.bal += interest
			st.amortBal += interest
			return 0
		}
		return interest
	}

	var principal float64
	if period == tr.TenorPeriods {
		principal = st.amortBal
	} else {
		principal = alloc/tr.TargetDSCR - interest
		if principal < 0 {
			principal = 0
		}
		if principal > st.amortBal {
			principal = st.amortBal
		}
	}

	st.amortBal -= principal
	st.bal -= principal
	return interest + principal
}
