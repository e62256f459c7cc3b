package journal

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/projfin/coverage"
	"github.com/rustyeddy/projfin/schedule"
	"github.com/rustyeddy/projfin/tranche"
)

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	fp, err := os.Open(path)
	require.NoError(t, err)
	defer fp.Close()

	rows, err := csv.NewReader(fp).ReadAll()
	require.NoError(t, err)
	return rows
}

func testConsolidated(t *testing.T) *schedule.Consolidated {
	t.Helper()

	tr := tranche.Tranche{
		Name: "senior", Currency: "USD", Principal: 1_000_000,
		Rate: 0.08, TenorPeriods: 5, Style: tranche.Annuity,
	}
	s, err := schedule.Annuity(tr)
	require.NoError(t, err)

	c, err := schedule.Consolidate([]*schedule.Schedule{s}, "USD", nil)
	require.NoError(t, err)
	return c
}

func TestWriteScheduleCSV(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "schedule.csv")
	require.NoError(t, WriteScheduleCSV(path, testConsolidated(t)))

	rows := readCSV(t, path)
	require.Len(t, rows, 6) // header + 5 periods
	assert.Equal(t, []string{"period", "interest", "principal", "service", "balance_start", "balance_end"}, rows[0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "5", rows[5][0])
}

func TestWriteCoverageCSVHandlesSentinels(t *testing.T) {
	t.Parallel()

	c := testConsolidated(t)
	cfads := []float64{300_000, 300_000, 300_000, 300_000, 300_000, 300_000}
	rep := coverage.Analyze(c, cfads, 0.10)

	// Force a sentinel row alongside real values.
	rep.Points[0].DSCR = math.Inf(1)
	path := filepath.Join(t.TempDir(), "coverage.csv")
	require.NoError(t, WriteCoverageCSV(path, rep))

	rows := readCSV(t, path)
	require.Len(t, rows, 6)
	assert.Equal(t, []string{"period", "dscr", "llcr", "plcr"}, rows[0])
	assert.Equal(t, "inf", rows[1][1])
}

func TestRatioField(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "inf", ratioField(math.Inf(1)))
	assert.Equal(t, "1.25", ratioField(1.25))
}
