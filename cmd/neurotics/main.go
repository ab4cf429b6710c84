// Package main provides the command-line interface for the neurotics LIF
// population simulator.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "neurotics",
	Short: "Neurotics simulates a population of leaky integrate-and-fire " +
		"neurons driven by stochastic input.",
	Long: `Neurotics simulates a population of leaky integrate-and-fire ` +
		`neurons driven by stochastic input current. It reports one summary ` +
		`line per timestep, records the full run to SQLite, and can expose ` +
		`a live monitoring server.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		// A missing .env file is fine; flags and built-in defaults apply.
		_ = godotenv.Load()
	},
}

func main() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
