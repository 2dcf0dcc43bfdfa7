package main

import (
	"context"
	"errors"

	"dictgen/internal/config"
	"dictgen/internal/pipeline"
	"dictgen/internal/rustgen"
	"dictgen/internal/wordlist"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Per-command path and generation flags. Empty means "use config".
var (
	wordsFlag  string
	arrayFlag  string
	sourceFlag string
	crModeFlag string
	symbolFlag string
)

var arrayCmd = &cobra.Command{
	Use:   "array",
	Short: "Convert the word list into a JSON array",
	Long: `Reads the word list, removes the first carriage return in the file, splits
on newlines, trims every entry and writes a compact JSON array.

Blank lines and duplicates are kept. Use --cr-mode=all to strip every
carriage return instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runArray(cmd.Context())
		return err
	},
}

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Convert the JSON array into the Rust static declaration",
	Long: `Reads the JSON array and writes

  pub static DICTIONARY:[&str;N]=[...];

to the source path. The destination directory must already exist.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runSource(cmd.Context())
		return err
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run array then source",
	Args:  cobra.NoArgs,
	RunE:  runAll,
}

func init() {
	for _, c := range []*cobra.Command{arrayCmd, allCmd, checkCmd, watchCmd} {
		c.Flags().StringVar(&wordsFlag, "words", "", "Word list path (default from config: dictionary.txt)")
		c.Flags().StringVar(&crModeFlag, "cr-mode", "", "Carriage return handling: first or all")
	}
	for _, c := range []*cobra.Command{arrayCmd, sourceCmd, allCmd, checkCmd, watchCmd} {
		c.Flags().StringVar(&arrayFlag, "array", "", "JSON array path (default from config: dictionary.jsonf)")
	}
	for _, c := range []*cobra.Command{sourceCmd, allCmd, checkCmd, watchCmd} {
		c.Flags().StringVar(&sourceFlag, "source", "", "Generated Rust path (default from config: crates/dictionary/src/dict.rs)")
		c.Flags().StringVar(&symbolFlag, "symbol", "", "Name of the generated static")
	}
}

// applyFlagOverrides copies explicitly set flags over the loaded config.
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Lookup("words") != nil && flags.Changed("words") {
		c.Paths.Words = wordsFlag
	}
	if flags.Lookup("array") != nil && flags.Changed("array") {
		c.Paths.Array = arrayFlag
	}
	if flags.Lookup("source") != nil && flags.Changed("source") {
		c.Paths.Source = sourceFlag
	}
	if flags.Lookup("cr-mode") != nil && flags.Changed("cr-mode") {
		c.WordList.CRMode = crModeFlag
	}
	if flags.Lookup("symbol") != nil && flags.Changed("symbol") {
		c.Source.Symbol = symbolFlag
	}
}

func runAll(cmd *cobra.Command, args []string) error {
	return generateAll(cmd.Context())
}

// generateAll runs both pipelines. The source step is skipped when the array
// step could not read its input.
func generateAll(ctx context.Context) error {
	wrote, err := runArray(ctx)
	if err != nil || !wrote {
		return err
	}
	_, err = runSource(ctx)
	return err
}

func runArray(ctx context.Context) (bool, error) {
	p := pipeline.WordListToJSON(cfg.Paths.Words, cfg.Paths.Array, logger,
		wordlist.WithCRMode(cfg.GetCRMode()))
	return runPipeline(ctx, p)
}

func runSource(ctx context.Context) (bool, error) {
	p := pipeline.JSONToSource(cfg.Paths.Array, cfg.Paths.Source, logger,
		rustgen.WithSymbol(cfg.Source.Symbol))
	return runPipeline(ctx, p)
}

// runPipeline logs read failures and swallows them; everything else is
// returned so the process exits non-zero.
func runPipeline(ctx context.Context, p *pipeline.Pipeline) (bool, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := p.Run(ctx); err != nil {
		if errors.Is(err, pipeline.ErrSourceUnreadable) {
			logger.Error("cannot read source, nothing written",
				zap.String("pipeline", p.Name),
				zap.String("path", p.Source),
				zap.Error(err),
			)
			return false, nil
		}
		return false, err
	}
	return true, nil
}
