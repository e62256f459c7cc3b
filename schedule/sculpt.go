package schedule

import (
	"fmt"

	"github.com/rustyeddy/projfin/tranche"
)

// feasibility tolerance for the per-period principal solve; anything
// more negative than this is a genuine shortfall, not float noise.
const sculptTol = 1e-9

// InfeasibleSculptError reports that a sculpted tranche cannot hit its
// target DSCR in some period without negative principal. Period is
// 1-indexed; Shortfall is how much the affordable service falls below
// the interest due.
type InfeasibleSculptError struct {
	Tranche   string
	Period    int
	Shortfall float64
}

func (e *InfeasibleSculptError) Error() string {
	return fmt.Sprintf("sculpt infeasible: tranche %q period %d: CFADS cannot cover interest at target DSCR (shortfall %.2f)",
		e.Tranche, e.Period, e.Shortfall)
}

// Sculpt builds the schedule for a DSCR-sculpted tranche. alloc is the
// tranche's own-currency CFADS allocation, one value per period, and
// must cover the full tenor.
//
// The solve is sequential: at each amortizing period the interest due
// is known from the opening balance, so the principal that lands DSCR
// exactly on target is alloc/target - interest, clamped to the
// remaining amortizable balance. The final amortizing period is a plug
// that retires whatever remains above the balloon, regardless of
// target. A period where even zero principal cannot reach the target
// fails with InfeasibleSculptError; there is no silent fallback.
func Sculpt(tr tranche.Tranche, alloc []float64) (*Schedule, error) {
	if err := checkAlloc(tr, alloc); err != nil {
		return nil, err
	}

	bal, rows, capitalized := graceEntries(tr)

	balloon := tr.Balloon()
	amortBal := bal - balloon
	n := tr.AmortizingPeriods()

	for i := 1; i <= n; i++ {
		p := tr.GracePeriods + i
		interest := bal * tr.Rate

		var principal float64
		if i == n {
			principal = amortBal
		} else {
			budget := alloc[p-1] / tr.TargetDSCR
			principal = budget - interest
			if principal < -sculptTol {
				return nil, &InfeasibleSculptError{
					Tranche:   tr.Name,
					Period:    p,
					Shortfall: interest - budget,
				}
			}
			if principal < 0 {
				principal = 0
			}
			if principal > amortBal {
				principal = amortBal
			}
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

// Build dispatches on the tranche's amortization style. Annuity
// tranches ignore alloc.
func Build(tr tranche.Tranche, alloc []float64) (*Schedule, error) {
	switch tr.Style {
	case tranche.Sculpted:
		return Sculpt(tr, alloc)
	default:
		return Annuity(tr)
	}
}
