package main

import (
	"context"
	"errors"
	"fmt"

	"dictgen/internal/check"
	"dictgen/internal/pipeline"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// errStale is returned when check finds artifacts that need regenerating.
var errStale = errors.New("generated dictionary is out of date, run dictgen")

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the generated files match the word list",
	Long: `Regenerates both artifacts in memory and compares them with the files on
disk. Nothing is written. Exits non-zero when either file is stale or missing.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := check.Run(ctx, cfg)
	if err != nil {
		if errors.Is(err, pipeline.ErrSourceUnreadable) {
			logger.Error("cannot read word list", zap.String("path", cfg.Paths.Words), zap.Error(err))
			return nil
		}
		return err
	}

	out := cmd.OutOrStdout()
	for _, a := range report.Artifacts {
		fmt.Fprintf(out, "%-8s %s (%d entries)\n", a.Status, a.Path, a.Entries)
	}
	if !report.UpToDate() {
		return errStale
	}
	return nil
}
