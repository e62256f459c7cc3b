package tranche

// Style selects how a tranche's principal is repaid.
type Style string

const (
	// Annuity pays a level interest+principal amount over the
	// amortizing periods (standard PMT).
	Annuity Style = "annuity"

	// Sculpted solves the principal profile so that DSCR equals the
	// tranche's target every amortizing period.
	Sculpted Style = "sculpted"
)

// Tranche describes one debt instrument. Currency is a free-form code
// ("USD", "LKR", ...); whether it is the scenario base currency is
// decided by the caller, not here. A Tranche is a value: validate it
// once, then treat it as immutable.
type Tranche struct {
	Name     string
	Currency string

	Principal float64 // in Currency, > 0
	Rate      float64 // periodic rate, >= 0

	TenorPeriods int // first drawdown to maturity, >= 1
	GracePeriods int // interest-only periods at the start, < tenor

	Style      Style
	TargetDSCR float64 // required when Style == Sculpted

	// BalloonFraction of the original principal is left unpaid at
	// maturity. 0 means fully amortizing.
	BalloonFraction float64

	// CapitalizeGraceInterest rolls grace-period interest into the
	// balance (IDC) instead of paying it in cash.
	CapitalizeGraceInterest bool
}

// Balloon returns the principal amount intentionally left outstanding
// at maturity, measured on the original principal (before any IDC).
func (t Tranche) Balloon() float64 {
	return t.BalloonFraction * t.Principal
}

// AmortizingPeriods is the number of periods over which principal is
// actually repaid.
func (t Tranche) AmortizingPeriods() int {
	return t.TenorPeriods - t.GracePeriods
}
