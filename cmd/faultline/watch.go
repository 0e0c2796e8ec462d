package main

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"faultline/internal/diag"
	"faultline/internal/ui"
)

var (
	watchCount    int
	watchInterval time.Duration
)

func init() {
	watchCmd.Flags().IntVar(&watchCount, "count", 30, "demo diagnostics to generate")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 200*time.Millisecond, "delay between demo diagnostics")
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Tail the bus in a live view",
	Long:  `watch registers a feed handler on the bus and renders incoming diagnostics while a demo workload reports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		quiet, _ := cmd.Flags().GetBool("quiet")

		setup, err := setupBus(cmd)
		if err != nil {
			return fmt.Errorf("bus setup: %w", err)
		}
		// The feed replaces the console while watching.
		diag.SetSink(nil)
		diag.Default().SetFallbackWriter(nullWriter{})
		defer func() {
			diag.Default().SetFallbackWriter(nil)
			setup.teardown(quiet)
		}()

		events := make(chan ui.FeedEvent, 64)
		feed := ui.ChannelHandler(events)
		diag.Register(feed)
		defer diag.Unregister(feed)

		go demoWorkload(watchCount, watchInterval, events)

		prog := tea.NewProgram(ui.NewFeedModel("faultline watch", events))
		_, err = prog.Run()
		return err
	},
}

// demoWorkload raises a spread of diagnostic kinds, then closes the feed.
func demoWorkload(count int, interval time.Duration, events chan<- ui.FeedEvent) {
	kinds := []diag.Kind{diag.KindError, diag.KindWarning, diag.KindScript, diag.KindShader}
	samples := []string{
		"texture handle is stale",
		"node path not found",
		"division by zero in expression",
		"uniform block exceeds limit",
		"resource loaded twice",
	}
	for i := 0; i < count; i++ {
		function, file, line := here()
		diag.Report(function, file, line,
			samples[rand.Intn(len(samples))], "", false, kinds[rand.Intn(len(kinds))])
		time.Sleep(interval)
	}
	close(events)
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }
