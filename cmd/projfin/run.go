package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/projfin/config"
	"github.com/rustyeddy/projfin/engine"
	"github.com/rustyeddy/projfin/journal"
	"github.com/rustyeddy/projfin/pkg/id"
)

var (
	runConfigPath  string
	runDBPath      string
	runScheduleCSV string
	runCoverageCSV string
)

func init() {
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "scenario.yaml", "scenario file (YAML or JSON)")
	runCmd.Flags().StringVar(&runDBPath, "db", "", "record the run to this SQLite journal")
	runCmd.Flags().StringVar(&runScheduleCSV, "schedule-csv", "", "export the consolidated schedule to CSV")
	runCmd.Flags().StringVar(&runCoverageCSV, "coverage-csv", "", "export per-period coverage ratios to CSV")
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a scenario and report schedules, coverage and covenants",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(runConfigPath)
		if err != nil {
			return err
		}

		log.WithField("scenario", cfg.Name).Info("running scenario")

		res, err := engine.Run(cfg.Scenario())
		if err != nil {
			return err
		}

		for _, note := range res.ValidationNotes {
			log.Warn(note)
		}

		printResult(res)

		if runScheduleCSV != "" {
			if err := journal.WriteScheduleCSV(runScheduleCSV, res.Consolidated); err != nil {
				return fmt.Errorf("export schedule: %w", err)
			}
			log.WithField("path", runScheduleCSV).Info("schedule exported")
		}
		if runCoverageCSV != "" {
			if err := journal.WriteCoverageCSV(runCoverageCSV, res.Coverage); err != nil {
				return fmt.Errorf("export coverage: %w", err)
			}
			log.WithField("path", runCoverageCSV).Info("coverage exported")
		}

		if runDBPath != "" {
			j, err := journal.NewSQLite(runDBPath)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer j.Close()

			rec, entries := journal.FromResult(res, id.New(), time.Now().UTC())
			if err := j.RecordRun(rec, entries); err != nil {
				return fmt.Errorf("record run: %w", err)
			}
			log.WithField("run_id", rec.RunID).Info("run recorded")
		}

		return nil
	},
}

func printResult(res *engine.Result) {
	fmt.Printf("scenario: %s  [%s]\n", res.Name, res.AuditStatus)
	fmt.Printf("periods: %d  base currency: %s\n\n", res.Consolidated.Periods, res.Consolidated.BaseCurrency)

	for name, idc := range res.CapitalizedInterest {
		if idc > 0 {
			fmt.Printf("tranche %s: capitalized interest %.2f\n", name, idc)
		}
	}

	cov := res.Coverage
	fmt.Printf("DSCR  min %.3f  mean %.3f  median %.3f\n", cov.DSCR.Min, cov.DSCR.Mean, cov.DSCR.Median)
	fmt.Printf("LLCR  min %.3f  mean %.3f  median %.3f\n", cov.LLCR.Min, cov.LLCR.Mean, cov.LLCR.Median)
	fmt.Printf("PLCR  min %.3f  mean %.3f  median %.3f\n", cov.PLCR.Min, cov.PLCR.Mean, cov.PLCR.Median)

	if len(res.Compliance.Violations) == 0 {
		fmt.Println("\ncovenants: all pass")
		return
	}

	fmt.Printf("\ncovenant violations (%d):\n", len(res.Compliance.Violations))
	for _, v := range res.Compliance.Violations {
		fmt.Printf("  %s\n", v)
	}
}
