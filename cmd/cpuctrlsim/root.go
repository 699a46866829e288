package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var rootCmd = &cobra.Command{
	Use:   "cpuctrlsim",
	Short: "cpuctrlsim simulates the controller between a core and its L1 caches.",
	Long: `cpuctrlsim simulates the controller between a core and its L1 ` +
		`caches. Defaults can be provided with CPUCTRL_ variables in the ` +
		`environment or in a .env file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}
