package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var log = logrus.New()

var rootCmd = &cobra.Command{
	Use:   "projfin",
	Short: "Project-finance debt structuring and coverage analysis",
	Long: `projfin models project-finance debt structures: it allocates CFADS
across tranches, builds annuity or DSCR-sculpted amortization
schedules, computes DSCR/LLCR/PLCR coverage, checks lender covenants,
and compares refinancing alternatives.`,
}

var verbose bool

func init() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(logrus.DebugLevel)
		}
	}

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(refiCmd)
	rootCmd.AddCommand(journalCmd)
	rootCmd.AddCommand(initCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
