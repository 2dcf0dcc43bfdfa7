package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dictgen/internal/rustgen"
	"dictgen/internal/wordlist"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "dictgen.yaml"

// Config holds all dictgen configuration.
type Config struct {
	// Artifact locations, relative to the working directory unless absolute
	Paths PathsConfig `yaml:"paths"`

	// Word list parsing
	WordList WordListConfig `yaml:"wordlist"`

	// Generated Rust source
	Source SourceConfig `yaml:"source"`

	// Watch mode
	Watch WatchConfig `yaml:"watch"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// PathsConfig names the three files the pipelines touch.
type PathsConfig struct {
	Words  string `yaml:"words"`  // newline-delimited dictionary
	Array  string `yaml:"array"`  // JSON array of strings
	Source string `yaml:"source"` // generated Rust static
}

// WordListConfig configures word list parsing.
type WordListConfig struct {
	CRMode string `yaml:"cr_mode"` // first, all
}

// SourceConfig configures the generated declaration.
type SourceConfig struct {
	Symbol string `yaml:"symbol"`
}

// WatchConfig configures watch mode.
type WatchConfig struct {
	Debounce string `yaml:"debounce"`
}

// DefaultConfig returns the fixed paths the dictionary crate expects.
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Words:  "dictionary.txt",
			Array:  "dictionary.jsonf",
			Source: filepath.Join("crates", "dictionary", "src", "dict.rs"),
		},
		WordList: WordListConfig{
			CRMode: string(wordlist.CRFirst),
		},
		Source: SourceConfig{
			Symbol: rustgen.DefaultSymbol,
		},
		Watch: WatchConfig{
			Debounce: "300ms",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Defaults if config file doesn't exist
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

const fileHeader = `# dictgen configuration
# Relative paths resolve against --dir. DICTGEN_* environment variables win.
`

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DICTGEN_WORDS"); v != "" {
		c.Paths.Words = v
	}
	if v := os.Getenv("DICTGEN_ARRAY"); v != "" {
		c.Paths.Array = v
	}
	if v := os.Getenv("DICTGEN_SOURCE"); v != "" {
		c.Paths.Source = v
	}
	if v := os.Getenv("DICTGEN_SYMBOL"); v != "" {
		c.Source.Symbol = v
	}
	if v := os.Getenv("DICTGEN_CR_MODE"); v != "" {
		c.WordList.CRMode = v
	}
	if v := os.Getenv("DICTGEN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Paths.Words == "" || c.Paths.Array == "" || c.Paths.Source == "" {
		return fmt.Errorf("paths.words, paths.array and paths.source must all be set")
	}
	if _, err := wordlist.ParseCRMode(c.WordList.CRMode); err != nil {
		return fmt.Errorf("invalid wordlist.cr_mode: %w", err)
	}
	if !rustgen.ValidSymbol(c.Source.Symbol) {
		return fmt.Errorf("invalid source.symbol: %q is not a Rust identifier", c.Source.Symbol)
	}
	if _, err := c.GetDebounce(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// Resolve returns a copy whose relative paths are joined onto dir.
func (c *Config) Resolve(dir string) *Config {
	out := *c
	out.Paths.Words = resolve(dir, c.Paths.Words)
	out.Paths.Array = resolve(dir, c.Paths.Array)
	out.Paths.Source = resolve(dir, c.Paths.Source)
	return &out
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}

// GetCRMode returns the parsed carriage-return policy.
func (c *Config) GetCRMode() wordlist.CRMode {
	mode, err := wordlist.ParseCRMode(c.WordList.CRMode)
	if err != nil {
		return wordlist.CRFirst
	}
	return mode
}

// GetDebounce returns the watch debounce window.
func (c *Config) GetDebounce() (time.Duration, error) {
	if c.Watch.Debounce == "" {
		return 300 * time.Millisecond, nil
	}
	d, err := time.ParseDuration(c.Watch.Debounce)
	if err != nil {
		return 0, fmt.Errorf("invalid watch.debounce: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid watch.debounce: must be positive")
	}
	return d, nil
}
