package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"faultline/internal/crashdump"
	"faultline/internal/diag"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [path]",
	Short: "Print the recorded crash dump",
	Long:  `dump reads the diagnostics ring written on the last run and prints it in arrival order`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			p, err := dumpPath()
			if err != nil {
				return fmt.Errorf("locate dump: %w", err)
			}
			path = p
		}

		entries, err := crashdump.ReadDump(path)
		if err != nil {
			return fmt.Errorf("read dump: %w", err)
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "dump is empty")
			return nil
		}

		kindColor := color.New(color.FgRed, color.Bold)
		for _, e := range entries {
			text := e.Err
			if text == "" {
				text = e.Message
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %s  %s (%s:%d)\n",
				e.Time.Format("15:04:05.000"),
				kindColor.Sprintf("%-12s", diag.Kind(e.Kind).String()),
				text, e.Function, e.File, e.Line)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d diagnostics\n", len(entries))
		return nil
	},
}
