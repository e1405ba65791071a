package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wbaizer/naologic-reflow/internal/cliformat"
	"github.com/wbaizer/naologic-reflow/internal/domain/reflowerr"
	"github.com/wbaizer/naologic-reflow/internal/ingest"
	"github.com/wbaizer/naologic-reflow/internal/logging"
	"github.com/wbaizer/naologic-reflow/internal/reflow"
)

var (
	logLevel string
	pretty   bool
)

func main() {
	root := &cobra.Command{
		Use:   "reflow <input.jsonl>",
		Short: "Recompute production schedules from a newline-delimited JSON input stream",
		Args:  cobra.ExactArgs(1),
		RunE:  run,
	}
	root.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.Flags().BoolVar(&pretty, "pretty", false, "colorize the summary report")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	logger := logging.StderrLogger(logLevel)

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	batch, err := ingest.Parse(f)
	if err != nil {
		logger.Error("failed to parse input", "error", err)
		return err
	}

	exitCode := 0
	for name, center := range batch.Centers {
		result, err := reflow.Invoke(center, batch.Orders[name], logger)
		if err != nil {
			logger.Error("invocation failed", "workCenter", name, "error", err)
			var ee *reflowerr.EngineError
			if errors.As(err, &ee) {
				logger.Error("failure kind", "kind", string(ee.Kind))
			}
			exitCode = 1
			continue
		}
		cliformat.WriteSummary(os.Stdout, result, pretty)
	}

	if exitCode != 0 {
		return fmt.Errorf("one or more work centers failed to schedule")
	}
	return nil
}

