package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"faultline/internal/diag"
)

var (
	stressWorkers int
	stressReports int
)

func init() {
	stressCmd.Flags().IntVar(&stressWorkers, "workers", 8, "concurrent reporting goroutines")
	stressCmd.Flags().IntVar(&stressReports, "reports", 100, "diagnostics per worker")
}

var stressCmd = &cobra.Command{
	Use:   "stress",
	Short: "Hammer the bus from many goroutines",
	Long:  `stress raises diagnostics concurrently to exercise the registry lock and sink under contention`,
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")

		setup, err := setupBus(cmd)
		if err != nil {
			return fmt.Errorf("bus setup: %w", err)
		}
		defer setup.teardown(quiet)

		var g errgroup.Group
		g.SetLimit(stressWorkers)
		for w := 0; w < stressWorkers; w++ {
			g.Go(func() error {
				for i := 0; i < stressReports; i++ {
					kind := diag.KindWarning
					if i%3 == 0 {
						kind = diag.KindError
					}
					function, file, line := here()
					diag.Report(function, file, line,
						fmt.Sprintf("stress report %d", i), "", false, kind)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		diag.FlushOutput()
		if !quiet && setup.recorder != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "recorded %d of %d diagnostics in the ring\n",
				setup.recorder.Len(), stressWorkers*stressReports)
		}
		return nil
	},
}
