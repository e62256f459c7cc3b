package covenant

import (
	"fmt"

	"github.com/rustyeddy/projfin/coverage"
)

// Metric names a coverage ratio a lender can covenant on.
type Metric string

const (
	DSCR Metric = "dscr"
	LLCR Metric = "llcr"
	PLCR Metric = "plcr"
)

// Threshold is one covenant: the metric must stay at or above Minimum
// in every period with debt outstanding.
type Threshold struct {
	Metric  Metric  `yaml:"metric" json:"metric"`
	Minimum float64 `yaml:"minimum" json:"minimum"`
}

// Check is the outcome for one (period, metric) pair. Buffer is how
// far above the floor the actual value sits; negative means breach.
type Check struct {
	Period  int
	Metric  Metric
	Actual  float64
	Minimum float64
	Buffer  float64
	Pass    bool
}

// Violation is a failed Check, kept separately so callers can report
// exactly where and how badly a covenant would be breached.
type Violation struct {
	Period    int
	Metric    Metric
	Actual    float64
	Minimum   float64
	Shortfall float64
}

func (v Violation) String() string {
	return fmt.Sprintf("%s period %d: %.3f below minimum %.3f (shortfall %.3f)",
		v.Metric, v.Period, v.Actual, v.Minimum, v.Shortfall)
}

// Report is the structured compliance result for one engine run.
type Report struct {
	Checks     []Check
	Violations []Violation
	Compliant  bool
}

// Validate compares computed coverage against the thresholds. An
// infinite ratio (no service owed) passes trivially. Unknown metric
// names are a caller bug and rejected.
func Validate(cov *coverage.Report, thresholds []Threshold) (*Report, error) {
	r := &Report{Compliant: true}

	for _, th := range thresholds {
		switch th.Metric {
		case DSCR, LLCR, PLCR:
		default:
			return nil, fmt.Errorf("covenant: unknown metric %q", th.Metric)
		}

		for _, pt := range cov.Points {
			var actual float64
			switch th.Metric {
			case DSCR:
				actual = pt.DSCR
			case LLCR:
				actual = pt.LLCR
			case PLCR:
				actual = pt.PLCR
			}

			c := Check{
				Period:  pt.Period,
				Metric:  th.Metric,
				Actual:  actual,
				Minimum: th.Minimum,
				Buffer:  actual - th.Minimum,
				Pass:    actual >= th.Minimum,
			}
			r.Checks = append(r.Checks, c)

			if !c.Pass {
				r.Compliant = false
				r.Violations = append(r.Violations, Violation{
					Period:    pt.Period,
					Metric:    th.Metric,
					Actual:    actual,
					Minimum:   th.Minimum,
					Shortfall: th.Minimum - actual,
				})
			}
		}
	}

	return r, nil
}
