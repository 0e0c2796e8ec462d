package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"faultline/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "faultline",
	Short: "Process-wide diagnostic bus demo and tooling",
	Long:  `faultline raises, observes and dumps diagnostics flowing through the in-process reporting bus`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(raiseCmd)
	rootCmd.AddCommand(stressCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
