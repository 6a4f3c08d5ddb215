package cmd

import (
	"fmt"
	"os"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wms",
	Short: "Warehouse inventory management CLI",
	Long:  "Operational commands for the warehouse inventory backend: migrations, cron jobs and stock reports.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if cmd.Name() != "help" {
			figure.NewFigure("wms.GO", "", true).Print()
			fmt.Println()
		}
	},
}

// Execute runs the CLI. Custom commands registered via Register are attached first.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
