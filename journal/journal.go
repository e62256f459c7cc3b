// journal/journal.go
package journal

import (
	"math"
	"time"

	"github.com/rustyeddy/projfin/engine"
)

// RunRecord is the persisted summary of one engine run.
type RunRecord struct {
	RunID        string
	Name         string
	Time         time.Time
	BaseCurrency string
	Periods      int

	MinDSCR float64
	MinLLCR float64
	MinPLCR float64

	Violations  int
	AuditStatus string
}

// EntryRecord is one consolidated schedule row of a recorded run.
type EntryRecord struct {
	RunID        string
	Period       int
	Interest     float64
	Principal    float64
	Service      float64
	BalanceStart float64
	BalanceEnd   float64
}

// Journal persists engine runs.
type Journal interface {
	RecordRun(RunRecord, []EntryRecord) error
	Close() error
}

// FromResult flattens an engine result into journal records. Summary
// minimums are 0 when a ratio series is empty (all-sentinel runs).
func FromResult(res *engine.Result, runID string, now time.Time) (RunRecord, []EntryRecord) {
	rec := RunRecord{
		RunID:       runID,
		Name:        res.Name,
		Time:        now,
		AuditStatus: res.AuditStatus,
	}
	if res.Compliance != nil {
		rec.Violations = len(res.Compliance.Violations)
	}
	if c := res.Consolidated; c != nil {
		rec.BaseCurrency = c.BaseCurrency
		rec.Periods = c.Periods
	}
	if cov := res.Coverage; cov != nil {
		rec.MinDSCR = finiteOrZero(cov.DSCR.Min)
		rec.MinLLCR = finiteOrZero(cov.LLCR.Min)
		rec.MinPLCR = finiteOrZero(cov.PLCR.Min)
	}

	var entries []EntryRecord
	if c := res.Consolidated; c != nil {
		for p := 1; p <= c.Periods; p++ {
			entries = append(entries, EntryRecord{
				RunID:        runID,
				Period:       p,
				Interest:     c.Interest[p-1],
				Principal:    c.Principal[p-1],
				Service:      c.Service[p-1],
				BalanceStart: c.BalanceStart[p-1],
				BalanceEnd:   c.BalanceEnd[p-1],
			})
		}
	}

	return rec, entries
}

func finiteOrZero(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}
