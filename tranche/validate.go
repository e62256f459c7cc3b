package tranche

import "fmt"

// ValidationPolicy controls how validation treats fixable problems.
// It is passed explicitly; there is no package-level mode switch.
type ValidationPolicy string

const (
	// Strict rejects any invariant violation.
	Strict ValidationPolicy = "strict"

	// Permissive clamps fixable fields into range and reports what it
	// changed; structural problems (grace >= tenor, non-positive
	// principal) still fail.
	Permissive ValidationPolicy = "permissive"
)

// ConfigError reports a malformed tranche or scenario input. It is a
// structural error: retrying does not help, the configuration must
// change.
type ConfigError struct {
	Tranche string
	Field   string
	Msg     string
}

func (e *ConfigError) Error() string {
	if e.Tranche == "" {
		return fmt.Sprintf("config: %s: %s", e.Field, e.Msg)
	}
	return fmt.Sprintf("config: tranche %q: %s: %s", e.Tranche, e.Field, e.Msg)
}

// Validate checks t's internal invariants under the given policy. In
// Permissive mode it returns a possibly-adjusted copy plus a note per
// adjustment; in Strict mode the returned tranche is t unchanged and
// notes is always nil.
func Validate(t Tranche, policy ValidationPolicy) (Tranche, []string, error) {
	var notes []string

	if t.Name == "" {
		return t, nil, &ConfigError{Field: "name", Msg: "must not be empty"}
	}
	if t.TenorPeriods < 1 {
		return t, nil, &ConfigError{Tranche: t.Name, Field: "tenor_periods", Msg: fmt.Sprintf("must be >= 1, got %d", t.TenorPeriods)}
	}
	if t.GracePeriods < 0 || t.GracePeriods >= t.TenorPeriods {
		return t, nil, &ConfigError{Tranche: t.Name, Field: "grace_periods",
			Msg: fmt.Sprintf("must be in [0, tenor), got %d with tenor %d", t.GracePeriods, t.TenorPeriods)}
	}
	if t.Principal <= 0 {
		return t, nil, &ConfigError{Tranche: t.Name, Field: "principal", Msg: fmt.Sprintf("must be positive, got %g", t.Principal)}
	}

	if t.Rate < 0 {
		if policy != Permissive {
			return t, nil, &ConfigError{Tranche: t.Name, Field: "rate", Msg: fmt.Sprintf("must be >= 0, got %g", t.Rate)}
		}
		notes = append(notes, fmt.Sprintf("tranche %q: rate %g clamped to 0", t.Name, t.Rate))
		t.Rate = 0
	}

	if t.BalloonFraction < 0 || t.BalloonFraction >= 1 {
		if policy != Permissive {
			return t, nil, &ConfigError{Tranche: t.Name, Field: "balloon_fraction",
				Msg: fmt.Sprintf("must be in [0, 1), got %g", t.BalloonFraction)}
		}
		old := t.BalloonFraction
		if t.BalloonFraction < 0 {
			t.BalloonFraction = 0
		} else {
			t.BalloonFraction = 0.99
		}
		notes = append(notes, fmt.Sprintf("tranche %q: balloon_fraction %g clamped to %g", t.Name, old, t.BalloonFraction))
	}

	switch t.Style {
	case Annuity:
		// TargetDSCR is ignored for annuity tranches.
	case Sculpted:
		if t.TargetDSCR <= 0 {
			return t, nil, &ConfigError{Tranche: t.Name, Field: "target_dscr",
				Msg: fmt.Sprintf("required for sculpted style, got %g", t.TargetDSCR)}
		}
	default:
		return t, nil, &ConfigError{Tranche: t.Name, Field: "amortization_style",
			Msg: fmt.Sprintf("unknown style %q", t.Style)}
	}

	return t, notes, nil
}
