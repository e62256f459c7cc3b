// journal/csv.go
package journal

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"github.com/rustyeddy/projfin/coverage"
	"github.com/rustyeddy/projfin/schedule"
)

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteScheduleCSV exports a consolidated schedule, one row per period.
func WriteScheduleCSV(path string, c *schedule.Consolidated) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"period", "interest", "principal", "service", "balance_start", "balance_end"}); err != nil {
		return err
	}

	for p := 1; p <= c.Periods; p++ {
		w.Write([]string{
			strconv.Itoa(p),
			f(c.Interest[p-1]),
			f(c.Principal[p-1]),
			f(c.Service[p-1]),
			f(c.BalanceStart[p-1]),
			f(c.BalanceEnd[p-1]),
		})
	}

	w.Flush()
	return w.Error()
}

// WriteCoverageCSV exports per-period coverage ratios. Infinite DSCR
// sentinels are written as "inf" so spreadsheets do not mistake them
// for numbers.
func WriteCoverageCSV(path string, r *coverage.Report) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write([]string{"period", "dscr", "llcr", "plcr"}); err != nil {
		return err
	}

	for _, pt := range r.Points {
		w.Write([]string{
			strconv.Itoa(pt.Period),
			ratioField(pt.DSCR),
			ratioField(pt.LLCR),
			ratioField(pt.PLCR),
		})
	}

	w.Flush()
	return w.Error()
}

func ratioField(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "inf"
	}
	return f(v)
}
