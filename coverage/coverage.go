// Package coverage computes lender coverage ratios (DSCR, LLCR, PLCR)
// from a consolidated debt schedule and the base-currency CFADS series.
// Everything here is a pure function of its inputs; calling Analyze
// twice on the same inputs yields identical results.
package coverage

import (
	"math"
	"sort"

	"github.com/rustyeddy/projfin/schedule"
)

// Ratio is DSCR for one period. Zero service means no debt service is
// owed, a legitimate state (grace with IDC, post-maturity), so the
// ratio is +Inf rather than a division error. Non-positive CFADS
// against real service is 0, not a negative ratio.
func Ratio(cfads, service float64) float64 {
	if service == 0 {
		return math.Inf(1)
	}
	if cfads <= 0 {
		return 0
	}
	return cfads / service
}

// NPV discounts cfads from 1-indexed period `from` through `through`
// (inclusive) back to `from`: sum of cfads[k-1] / (1+rate)^(k-from).
func NPV(cfads []float64, rate float64, from, through int) float64 {
	if from < 1 {
		from = 1
	}
	if through > len(cfads) {
		through = len(cfads)
	}
	total := 0.0
	for k := from; k <= through; k++ {
		total += cfads[k-1] / math.Pow(1+rate, float64(k-from))
	}
	return total
}

// Point carries the three ratios for one period with debt outstanding.
type Point struct {
	Period int
	DSCR   float64
	LLCR   float64
	PLCR   float64
}

// Summary aggregates a ratio series over the outstanding periods.
// Non-finite sentinel values (no-service periods) are excluded.
type Summary struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	Count  int
}

// Report is the full coverage picture for one schedule/CFADS pairing.
type Report struct {
	Points []Point

	DSCR Summary
	LLCR Summary
	PLCR Summary

	// MaturityPeriod is the last period with debt outstanding;
	// ProjectEnd is the last CFADS period.
	MaturityPeriod int
	ProjectEnd     int
	HurdleRate     float64
}

// Analyze computes per-period DSCR, LLCR and PLCR plus summary stats.
// LLCR discounts CFADS only through final debt maturity, PLCR through
// project end, both over the start-of-period (pre-repayment) balance.
// Periods after full repayment are excluded, not zero-filled.
func Analyze(c *schedule.Consolidated, cfads []float64, hurdleRate float64) *Report {
	maturity := 0
	for p := 1; p <= c.Periods; p++ {
		if c.BalanceStart[p-1] > 0 {
			maturity = p
		}
	}

	r := &Report{
		MaturityPeriod: maturity,
		ProjectEnd:     len(cfads),
		HurdleRate:     hurdleRate,
	}

	for p := 1; p <= maturity; p++ {
		bal := c.BalanceStart[p-1]
		if bal <= 0 {
			continue
		}

		var cf float64
		if p <= len(cfads) {
			cf = cfads[p-1]
		}

		pt := Point{
			Period: p,
			DSCR:   Ratio(cf, c.Service[p-1]),
			LLCR:   NPV(cfads, hurdleRate, p, maturity) / bal,
			PLCR:   NPV(cfads, hurdleRate, p, len(cfads)) / bal,
		}
		r.Points = append(r.Points, pt)
	}

	r.DSCR = summarize(r.Points, func(pt Point) float64 { return pt.DSCR })
	r.LLCR = summarize(r.Points, func(pt Point) float64 { return pt.LLCR })
	r.PLCR = summarize(r.Points, func(pt Point) float64 { return pt.PLCR })

	return r
}

func summarize(points []Point, get func(Point) float64) Summary {
	var vals []float64
	for _, pt := range points {
		v := get(pt)
		if math.IsInf(v, 0) || math.IsNaN(v) {
			continue
		}
		vals = append(vals, v)
	}
	if len(vals) == 0 {
		return Summary{}
	}

	sort.Float64s(vals)

	sum := 0.0
	for _, v := range vals {
		sum += v
	}

	n := len(vals)
	median := vals[n/2]
	if n%2 == 0 {
		median = (vals[n/2-1] + vals[n/2]) / 2
	}

	return Summary{
		Min:    vals[0],
		Max:    vals[n-1],
		Mean:   sum / float64(n),
		Median: median,
		Count:  n,
	}
}
