package main

import (
	"fmt"
	"os"
	"path/filepath"

	"dictgen/internal/config"
	"dictgen/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	verbose    bool
	configPath string
	workDir    string

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dictgen",
	Short: "Generate the dictionary crate's word array from a word list",
	Long: `dictgen converts a newline-delimited word list into a JSON array and then
into a Rust static array the dictionary crate compiles in.

  dictionary.txt  -> dictionary.jsonf                   (dictgen array)
  dictionary.jsonf -> crates/dictionary/src/dict.rs     (dictgen source)

Run without arguments to do both.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runAll,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultFile, "Config file (relative to --dir)")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", ".", "Directory relative paths are resolved against")

	rootCmd.AddCommand(arrayCmd, sourceCmd, allCmd, checkCmd, watchCmd, solveCmd, configCmd)
}

// setup loads config, applies command flags and builds the logger.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(resolvedConfigPath())
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, loaded)
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded.Resolve(workDir)

	logger, err = logging.New(cfg.Logging, verbose)
	if err != nil {
		return err
	}
	return nil
}

// resolvedConfigPath joins a relative --config onto --dir.
func resolvedConfigPath() string {
	if filepath.IsAbs(configPath) {
		return configPath
	}
	return filepath.Join(workDir, configPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
