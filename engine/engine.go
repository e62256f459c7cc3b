// Package engine wires the debt-structuring pipeline together:
// validate tranches, allocate CFADS, build per-tranche schedules,
// consolidate to base currency, analyze coverage, check covenants.
// Run is stateless and reentrant; concurrent scenario runs never
// interfere.
package engine

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/projfin/allocate"
	"github.com/rustyeddy/projfin/covenant"
	"github.com/rustyeddy/projfin/coverage"
	"github.com/rustyeddy/projfin/schedule"
	"github.com/rustyeddy/projfin/tranche"
)

// Scenario is one complete engine input. CFADS and FX are read-only;
// Run never mutates them.
type Scenario struct {
	Name         string
	BaseCurrency string

	CFADS    []float64
	Tranches []tranche.Tranche
	FX       map[string][]float64

	HurdleRate float64
	Thresholds []covenant.Threshold

	Allocation allocate.Policy
	Validation tranche.ValidationPolicy

	// AnnuityFallback retries an infeasible sculpted tranche as an
	// annuity. Off by default: infeasibility is surfaced, not papered
	// over, unless the caller explicitly asks.
	AnnuityFallback bool
}

// Result is the full output of one run.
type Result struct {
	Name string

	Schedules    []*schedule.Schedule
	Consolidated *schedule.Consolidated
	Coverage     *coverage.Report
	Compliance   *covenant.Report

	// ValidationNotes lists permissive-mode adjustments; empty under
	// strict validation.
	ValidationNotes []string

	// CapitalizedInterest is total IDC per tranche name.
	CapitalizedInterest map[string]float64

	// AuditStatus is "PASS" when every covenant holds and no input was
	// clamped, else "REVIEW".
	AuditStatus string
}

// Run executes the scenario end to end.
func Run(s Scenario) (*Result, error) {
	if s.BaseCurrency == "" {
		return nil, &tranche.ConfigError{Field: "base_currency", Msg: "must be set"}
	}
	if len(s.Tranches) == 0 {
		return nil, &tranche.ConfigError{Field: "tranches", Msg: "at least one tranche required"}
	}
	policy := s.Validation
	if policy == "" {
		policy = tranche.Strict
	}

	res := &Result{
		Name:                s.Name,
		CapitalizedInterest: make(map[string]float64),
	}

	tranches := make([]tranche.Tranche, 0, len(s.Tranches))
	for _, tr := range s.Tranches {
		validated, notes, err := tranche.Validate(tr, policy)
		if err != nil {
			return nil, err
		}
		res.ValidationNotes = append(res.ValidationNotes, notes...)
		tranches = append(tranches, validated)
	}

	alloc, err := allocate.Split(allocate.Input{
		BaseCurrency: s.BaseCurrency,
		CFADS:        s.CFADS,
		Tranches:     tranches,
		FX:           s.FX,
		Policy:       s.Allocation,
	})
	if err != nil {
		return nil, err
	}

	for _, tr := range tranches {
		sched, err := schedule.Build(tr, alloc.PerTranche[tr.Name])
		if err != nil {
			var infeasible *schedule.InfeasibleSculptError
			if s.AnnuityFallback && errors.As(err, &infeasible) {
				sched, err = schedule.Annuity(tr)
			}
			if err != nil {
				return nil, fmt.Errorf("schedule tranche %q: %w", tr.Name, err)
			}
		}
		res.Schedules = append(res.Schedules, sched)
		res.CapitalizedInterest[tr.Name] = sched.CapitalizedInterest
	}

	res.Consolidated, err = schedule.Consolidate(res.Schedules, s.BaseCurrency, s.FX)
	if err != nil {
		return nil, err
	}

	res.Coverage = coverage.Analyze(res.Consolidated, s.CFADS, s.HurdleRate)

	res.Compliance, err = covenant.Validate(res.Coverage, s.Thresholds)
	if err != nil {
		return nil, err
	}

	// Clamped inputs need a human look even when covenants hold.
	res.AuditStatus = "PASS"
	if !res.Compliance.Compliant || len(res.ValidationNotes) > 0 {
		res.AuditStatus = "REVIEW"
	}

	return res, nil
}
