package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/projfin/config"
	"github.com/rustyeddy/projfin/engine"
	"github.com/rustyeddy/projfin/refinance"
	"github.com/rustyeddy/projfin/tranche"
)

var (
	refiConfigPath string
	refiPeriod     int
	refiRate       float64
	refiTenor      int
	refiStyle      string
	refiTargetDSCR float64
	refiWarnFrac   float64
	refiMaxFrac    float64
)

func init() {
	refiCmd.Flags().StringVarP(&refiConfigPath, "config", "c", "scenario.yaml", "scenario file (YAML or JSON)")
	refiCmd.Flags().IntVarP(&refiPeriod, "period", "p", 0, "refinancing period (1-indexed, required)")
	refiCmd.Flags().Float64Var(&refiRate, "rate", 0.08, "replacement tranche periodic rate")
	refiCmd.Flags().IntVar(&refiTenor, "tenor", 10, "replacement tranche tenor in periods")
	refiCmd.Flags().StringVar(&refiStyle, "style", "annuity", "replacement amortization style")
	refiCmd.Flags().Float64Var(&refiTargetDSCR, "target-dscr", 1.30, "target DSCR when style is sculpted")
	refiCmd.Flags().Float64Var(&refiWarnFrac, "balloon-warn", 0.05, "balloon warning threshold (fraction of principal)")
	refiCmd.Flags().Float64Var(&refiMaxFrac, "balloon-max", 0.10, "balloon maximum threshold (fraction of principal)")
	refiCmd.MarkFlagRequired("period")
}

var refiCmd = &cobra.Command{
	Use:   "refi",
	Short: "Compare the scenario against a refinancing from a future period",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromFile(refiConfigPath)
		if err != nil {
			return err
		}

		s := cfg.Scenario()
		orig, err := engine.Run(s)
		if err != nil {
			return err
		}

		balloon := refinance.AssessBalloon(orig, refiWarnFrac, refiMaxFrac)
		fmt.Printf("balloon at maturity: %.2f (%.1f%% of principal): %s\n",
			balloon.Amount, 100*balloon.Fraction, balloon.Notes)
		for _, m := range balloon.Mitigations {
			fmt.Printf("  mitigation: %s\n", m)
		}

		candidate := tranche.Tranche{
			Name:         "refi",
			Currency:     s.BaseCurrency,
			Principal:    1, // rescaled to the outstanding balance
			Rate:         refiRate,
			TenorPeriods: refiTenor,
			Style:        tranche.Style(refiStyle),
			TargetDSCR:   refiTargetDSCR,
		}

		cmp, err := refinance.Evaluate(orig, s, refiPeriod, []tranche.Tranche{candidate})
		if err != nil {
			return err
		}

		fmt.Printf("\noutstanding at period %d: %.2f %s\n", cmp.Period, cmp.OutstandingAtRefi, s.BaseCurrency)
		fmt.Printf("%-10s %12s %12s\n", "", "original", "refinanced")
		fmt.Printf("%-10s %12.3f %12.3f\n", "min DSCR", cmp.Original.DSCR.Min, cmp.Alternative.DSCR.Min)
		fmt.Printf("%-10s %12.3f %12.3f\n", "min LLCR", cmp.Original.LLCR.Min, cmp.Alternative.LLCR.Min)
		fmt.Printf("%-10s %12.3f %12.3f\n", "min PLCR", cmp.Original.PLCR.Min, cmp.Alternative.PLCR.Min)

		return nil
	},
}
