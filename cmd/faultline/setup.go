package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"faultline/internal/config"
	"faultline/internal/console"
	"faultline/internal/crashdump"
	"faultline/internal/diag"
)

// busSetup wires the process-wide bus for one CLI invocation: config, the
// console sink, and (when enabled) the crash-dump recorder.
type busSetup struct {
	cfg      config.Config
	recorder *crashdump.Recorder
}

func setupBus(cmd *cobra.Command) (*busSetup, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, err
	}

	colorMode := cfg.Output.Color
	if flag, ferr := cmd.Flags().GetString("color"); ferr == nil && flag != "auto" {
		colorMode = flag
	}
	if colorMode == "auto" && !isTerminal(os.Stderr) {
		colorMode = "off"
	}

	diag.SetSink(console.New(console.Options{Color: colorMode}))
	diag.Default().SetBacktraceDepth(cfg.Backtrace.Depth)

	s := &busSetup{cfg: cfg}
	if cfg.Crashdump.Enabled {
		s.recorder = crashdump.NewRecorder(cfg.Crashdump.Ring)
		diag.Register(s.recorder.Handler())
	}
	return s, nil
}

// teardown flushes output, writes the crash dump when recording, and
// detaches everything from the bus.
func (s *busSetup) teardown(quiet bool) {
	diag.FlushOutput()
	if s.recorder != nil {
		if path, err := dumpPath(); err == nil {
			if werr := s.recorder.WriteDump(path); werr == nil && !quiet {
				fmt.Fprintf(os.Stderr, "crash dump: %s\n", path)
			}
		}
		diag.Unregister(s.recorder.Handler())
	}
	diag.SetSink(nil)
}

func dumpPath() (string, error) {
	dir, err := crashdump.DumpDir("faultline")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, crashdump.DumpFileName), nil
}

// here returns the calling function's identity for hand-raised diagnostics.
func here() (function, file string, line int) {
	pc, file, line, ok := runtime.Caller(1)
	if !ok {
		return "???", "???", 0
	}
	function = "???"
	if fn := runtime.FuncForPC(pc); fn != nil {
		function = fn.Name()
	}
	return function, filepath.Base(file), line
}
