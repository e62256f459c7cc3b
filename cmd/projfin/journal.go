package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/projfin/journal"
)

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	journalCmd.PersistentFlags().StringVar(&journalDBPath, "db", "./projfin.sqlite", "path to SQLite journal")
	journalListCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "max runs to list")

	journalCmd.AddCommand(journalListCmd)
	journalCmd.AddCommand(journalShowCmd)
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Inspect recorded engine runs",
}

var journalListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded runs, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := journal.NewSQLite(journalDBPath)
		if err != nil {
			return err
		}
		defer j.Close()

		runs, err := j.ListRuns(journalLimit)
		if err != nil {
			return err
		}

		fmt.Printf("%-26s  %-20s  %8s  %8s  %10s  %s\n",
			"run_id", "name", "min_dscr", "min_llcr", "violations", "status")
		for _, r := range runs {
			fmt.Printf("%-26s  %-20s  %8.3f  %8.3f  %10d  %s\n",
				r.RunID, r.Name, r.MinDSCR, r.MinLLCR, r.Violations, r.AuditStatus)
		}
		return nil
	},
}

var journalShowCmd = &cobra.Command{
	Use:   "show <run_id>",
	Short: "Show one run with its consolidated schedule",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		j, err := journal.NewSQLite(journalDBPath)
		if err != nil {
			return err
		}
		defer j.Close()

		r, err := j.GetRun(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%s  %s  [%s]\n", r.RunID, r.Name, r.AuditStatus)
		fmt.Printf("recorded %s, %d periods, base %s\n", r.Time.Format("2006-01-02 15:04:05"), r.Periods, r.BaseCurrency)
		fmt.Printf("min DSCR %.3f  min LLCR %.3f  min PLCR %.3f  violations %d\n\n",
			r.MinDSCR, r.MinLLCR, r.MinPLCR, r.Violations)

		entries, err := j.ListEntries(r.RunID)
		if err != nil {
			return err
		}

		fmt.Printf("%6s %14s %14s %14s %16s\n", "period", "interest", "principal", "service", "balance_end")
		for _, e := range entries {
			fmt.Printf("%6d %14.2f %14.2f %14.2f %16.2f\n",
				e.Period, e.Interest, e.Principal, e.Service, e.BalanceEnd)
		}
		return nil
	},
}
