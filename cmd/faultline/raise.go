package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"faultline/internal/diag"
)

var (
	raiseKind      string
	raiseMessage   string
	raiseBacktrace bool
	raiseLocate    bool
	raiseNotify    bool
)

func init() {
	raiseCmd.Flags().StringVar(&raiseKind, "kind", "error", "diagnostic kind (error|warning|script|shader)")
	raiseCmd.Flags().StringVar(&raiseMessage, "message", "", "optional long message")
	raiseCmd.Flags().BoolVar(&raiseBacktrace, "backtrace", false, "report every stack frame instead of one line")
	raiseCmd.Flags().BoolVar(&raiseLocate, "locate", false, "attribute the diagnostic to the first frame outside the configured filter")
	raiseCmd.Flags().BoolVar(&raiseNotify, "editor-notify", false, "set the editor-notify flag")
}

var raiseCmd = &cobra.Command{
	Use:   "raise <error text>",
	Short: "Raise a diagnostic on the bus",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := diag.ParseKind(raiseKind)
		if err != nil {
			return err
		}
		quiet, _ := cmd.Flags().GetBool("quiet")

		setup, err := setupBus(cmd)
		if err != nil {
			return fmt.Errorf("bus setup: %w", err)
		}
		defer setup.teardown(quiet)

		errText := strings.Join(args, " ")
		if raiseBacktrace {
			diag.ReportBacktrace(errText, raiseNotify, kind)
			return nil
		}
		if raiseLocate {
			diag.ReportErrorWithBacktrace(setup.cfg.Backtrace.Filter, errText, raiseNotify, kind)
			return nil
		}
		function, file, line := here()
		diag.Report(function, file, line, errText, raiseMessage, raiseNotify, kind)
		return nil
	},
}
