package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"dictgen/internal/game"
	"dictgen/internal/solver"
	"dictgen/internal/wordlist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var solveSeed uint64

var solveCmd = &cobra.Command{
	Use:   "solve [word]",
	Short: "Let the solver play a game against the generated dictionary",
	Long: `Loads the JSON array, starts a game for word (or a random dictionary word)
and lets the letter-frequency solver play it. Each guess is logged.

Example:
  dictgen solve aloft
  dictgen solve --seed 42`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&arrayFlag, "array", "", "JSON array path (default from config: dictionary.jsonf)")
	solveCmd.Flags().Uint64Var(&solveSeed, "seed", 0, "Seed for picking the secret word (0 = time based)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	data, err := os.ReadFile(cfg.Paths.Array)
	if err != nil {
		return fmt.Errorf("read dictionary: %w", err)
	}
	words, err := wordlist.Decode(data)
	if err != nil {
		return err
	}

	var g *game.Game
	if len(args) == 1 {
		g, err = game.New(args[0])
	} else {
		seed := solveSeed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		g, err = game.NewRandom(words, rand.New(rand.NewPCG(seed, seed>>1)))
	}
	if err != nil {
		return err
	}
	logger.Info("solving", zap.String("word", g.Word()), zap.Int("dictionary", len(words)))

	n, err := solver.New(words, g, logger).Solve(ctx)
	if err != nil {
		return fmt.Errorf("solve %q: %w", g.Word(), err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Solved %q in %d guesses.\n", g.Word(), n)
	return nil
}
