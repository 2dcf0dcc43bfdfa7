package main

import (
	"context"
	"os/signal"
	"syscall"

	"dictgen/internal/watch"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever the word list changes",
	Long: `Runs array and source once, then watches the word list and runs them again
after every save. Stops on Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return watchUntilDone(ctx)
}

func watchUntilDone(ctx context.Context) error {
	if err := generateAll(ctx); err != nil {
		return err
	}

	debounce, err := cfg.GetDebounce()
	if err != nil {
		return err
	}
	w, err := watch.New(cfg.Paths.Words, debounce, generateAll, logger)
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		w.Stop()
		return err
	}

	select {
	case <-ctx.Done():
	case <-w.Done():
	}
	w.Stop()

	stats := w.Stats()
	logger.Info("watch stopped",
		zap.Int("events", stats.Events),
		zap.Int("runs", stats.Runs),
		zap.Int("errors", stats.Errors),
	)
	return nil
}
