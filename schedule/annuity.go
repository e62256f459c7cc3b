package schedule

import "github.com/rustyeddy/projfin/tranche"

// pmt is the level annuity payment for principal pv over nper periods
// (Excel PMT with sign flipped to positive).
func pmt(rate float64, nper int, pv float64) float64 {
	if nper <= 0 {
		return 0
	}
	if rate == 0 {
		return pv / float64(nper)
	}
	f := 1.0
	for i := 0; i < nper; i++ {
		f *= 1 + rate
	}
	return pv * rate * f / (f - 1)
}

// Annuity builds the schedule for a level-payment tranche. The balloon
// portion is carved out before the payment is computed: it accrues
// interest every amortizing period but its principal is only due at
// maturity, so total service stays level at pmt + balloon interest.
// The final period plugs the remaining amortizable balance exactly.
func Annuity(tr tranche.Tranche) (*Schedule, error) {
	bal, rows, capitalized := graceEntries(tr)

	balloon := tr.Balloon()
	amortBal := bal - balloon
	n := tr.AmortizingPeriods()
	pay := pmt(tr.Rate, n, amortBal)

	for i := 1; i <= n; i++ {
		p := tr.GracePeriods + i
		interest := bal * tr.Rate

		principal := pay - amortBal*tr.Rate
		if i == n {
			principal = amortBal
		}
		if principal < 0 {
			principal = 0
		}

		e := Entry{
			Period:       p,
			Interest:     interest,
			Principal:    principal,
			Service:      interest + principal,
			BalanceStart: bal,
			BalanceEnd:   bal - principal,
		}
		rows = append(rows, e)

		amortBal -= principal
		bal -= principal
	}

	return &Schedule{Tranche: tr, Entries: rows, CapitalizedInterest: capitalized}, nil
}
