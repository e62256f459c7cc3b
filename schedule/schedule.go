package schedule

import (
	"fmt"

	"github.com/rustyeddy/projfin/tranche"
)

// Entry is one (tranche, period) row of an amortization schedule.
// Periods are 1-indexed. Capitalized is non-zero only for grace periods
// of tranches that roll interest into the balance (IDC), and is the one
// case where the balance may grow:
//
//	BalanceEnd = BalanceStart - Principal + Capitalized
type Entry struct {
	Period       int
	Interest     float64
	Principal    float64
	Service      float64
	Capitalized  float64
	BalanceStart float64
	BalanceEnd   float64
}

// Schedule is the full per-period amortization of a single tranche,
// one Entry per period from 1 through TenorPeriods. Amounts are in the
// tranche's own currency.
type Schedule struct {
	Tranche tranche.Tranche
	Entries []Entry

	// CapitalizedInterest is the total interest rolled into the balance
	// during grace periods (zero unless the tranche flags IDC).
	CapitalizedInterest float64
}

// FinalBalance returns the balance left outstanding at maturity (the
// balloon, or 0 for a fully amortizing tranche).
func (s *Schedule) FinalBalance() float64 {
	if len(s.Entries) == 0 {
		return s.Tranche.Principal
	}
	return s.Entries[len(s.Entries)-1].BalanceEnd
}

// TotalPrincipal returns the sum of principal repaid over the life of
// the schedule.
func (s *Schedule) TotalPrincipal() float64 {
	var sum float64
	for _, e := range s.Entries {
		sum += e.Principal
	}
	return sum
}

// graceEntries accrues the grace (interest-only) periods and returns
// the balance after grace plus the rows produced. With IDC the interest
// is capitalized and no cash moves; otherwise it is paid as it accrues.
func graceEntries(tr tranche.Tranche) (bal float64, rows []Entry, capitalized float64) {
	bal = tr.Principal
	for p := 1; p <= tr.GracePeriods; p++ {
		interest := bal * tr.Rate
		e := Entry{
			Period:       p,
			Interest:     interest,
			BalanceStart: bal,
		}
		if tr.CapitalizeGraceInterest {
			e.Capitalized = interest
			bal += interest
			capitalized += interest
		} else {
			e.Service = interest
		}
		e.BalanceEnd = bal
		rows = append(rows, e)
	}
	return bal, rows, capitalized
}

func checkAlloc(tr tranche.Tranche, alloc []float64) error {
	if len(alloc) < tr.TenorPeriods {
		return &tranche.ConfigError{
			Tranche: tr.Name,
			Field:   "cfads_allocation",
			Msg:     fmt.Sprintf("covers %d periods, tenor is %d", len(alloc), tr.TenorPeriods),
		}
	}
	return nil
}
