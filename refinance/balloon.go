package refinance

import (
	"fmt"

	"github.com/rustyeddy/projfin/engine"
)

// Balloon severity levels, smallest to worst.
const (
	BalloonNone       = "none"
	BalloonAcceptable = "acceptable"
	BalloonMitigate   = "mitigate"
	BalloonExcessive  = "excessive"
)

// BalloonAssessment classifies the principal left at maturity against
// warn/max limits, with mitigation suggestions for the middle band.
type BalloonAssessment struct {
	Amount   float64 // base currency
	Fraction float64 // of original consolidated principal
	Level    string
	Notes    string

	Mitigations []string
}

// AssessBalloon sizes the maturity balloon of a completed run.
// warnFrac and maxFrac are fractions of original principal (typical
// lender limits: 0.05 and 0.10).
func AssessBalloon(res *engine.Result, warnFrac, maxFrac float64) BalloonAssessment {
	c := res.Consolidated
	if c == nil || c.Periods == 0 {
		return BalloonAssessment{Level: BalloonNone, Notes: "no schedule"}
	}

	original := c.BalanceStart[0]
	balloon := c.BalanceEnd[c.Periods-1]

	a := BalloonAssessment{Amount: balloon}
	if original > 0 {
		a.Fraction = balloon / original
	}

	switch {
	case a.Fraction < 0.01:
		a.Level = BalloonNone
		a.Notes = "no material balloon payment"
	case a.Fraction <= warnFrac:
		a.Level = BalloonAcceptable
		a.Notes = fmt.Sprintf("small balloon (%.1f%%), acceptable", 100*a.Fraction)
	case a.Fraction <= maxFrac:
		a.Level = BalloonMitigate
		a.Notes = fmt.Sprintf("balloon %.1f%% requires mitigation", 100*a.Fraction)
		a.Mitigations = []string{
			"refinancing commitment from lender",
			"cash sweep mechanism to reduce balloon",
			"extend tenor to amortize fully",
		}
	default:
		a.Level = BalloonExcessive
		a.Notes = fmt.Sprintf("balloon %.1f%% exceeds maximum %.1f%%, restructure debt", 100*a.Fraction, 100*maxFrac)
	}

	return a
}
