package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/projfin/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example scenario file to get started",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "scenario.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, refusing to overwrite", path)
		}

		if err := config.Default().SaveToFile(path); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	},
}
