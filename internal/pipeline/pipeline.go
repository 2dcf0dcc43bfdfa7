// Package pipeline runs the read → transform → write conversions that produce
// the dictionary artifacts.
//
// Each run reads its whole source into a buffer it owns, transforms it, and
// replaces the destination in one write. A failed read leaves the destination
// untouched and is reported with ErrSourceUnreadable so callers can treat it
// as a diagnostic rather than a fatal error.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"dictgen/internal/rustgen"
	"dictgen/internal/wordlist"

	"go.uber.org/zap"
)

// ErrSourceUnreadable marks failures to read a pipeline's input.
var ErrSourceUnreadable = errors.New("source unreadable")

// Transformer converts the whole source buffer into the destination bytes and
// reports how many dictionary entries it handled.
type Transformer func(data []byte) (out []byte, entries int, err error)

// Result describes a completed run.
type Result struct {
	Name         string
	Source       string
	Destination  string
	BytesRead    int
	BytesWritten int
	Entries      int
	Duration     time.Duration
}

// Pipeline is one source → destination conversion.
type Pipeline struct {
	Name        string
	Source      string
	Destination string
	Transform   Transformer

	logger *zap.Logger
}

// New builds a pipeline. A nil logger disables logging.
func New(name, src, dst string, fn Transformer, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		Name:        name,
		Source:      src,
		Destination: dst,
		Transform:   fn,
		logger:      logger.With(zap.String("pipeline", name)),
	}
}

// Run reads the source, transforms it and writes the destination.
// The destination's parent directory must already exist.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	res := Result{Name: p.Name, Source: p.Source, Destination: p.Destination}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	data, err := os.ReadFile(p.Source)
	if err != nil {
		return res, fmt.Errorf("%s: read %s: %w: %w", p.Name, p.Source, ErrSourceUnreadable, err)
	}
	res.BytesRead = len(data)
	p.logger.Debug("source read", zap.String("path", p.Source), zap.Int("bytes", len(data)))

	out, entries, err := p.Transform(data)
	if err != nil {
		return res, fmt.Errorf("%s: transform %s: %w", p.Name, p.Source, err)
	}
	res.Entries = entries

	if err := ctx.Err(); err != nil {
		return res, err
	}

	if err := os.WriteFile(p.Destination, out, 0o644); err != nil {
		return res, fmt.Errorf("%s: write %s: %w", p.Name, p.Destination, err)
	}
	res.BytesWritten = len(out)
	res.Duration = time.Since(start)

	p.logger.Info("artifact written",
		zap.String("path", p.Destination),
		zap.Int("entries", res.Entries),
		zap.Int("bytes", res.BytesWritten),
		zap.Duration("took", res.Duration),
	)
	return res, nil
}

// WordListTransform parses a newline-delimited word list into a JSON array.
func WordListTransform(opts ...wordlist.Option) Transformer {
	return func(data []byte) ([]byte, int, error) {
		words := wordlist.Parse(data, opts...)
		out, err := wordlist.Encode(words)
		if err != nil {
			return nil, 0, err
		}
		return out, len(words), nil
	}
}

// SourceTransform parses a JSON array of strings into a Rust static.
func SourceTransform(opts ...rustgen.Option) Transformer {
	return func(data []byte) ([]byte, int, error) {
		words, err := wordlist.Decode(data)
		if err != nil {
			return nil, 0, err
		}
		out, err := rustgen.Render(words, opts...)
		if err != nil {
			return nil, 0, err
		}
		return out, len(words), nil
	}
}

// WordListToJSON builds the word list → JSON array pipeline.
func WordListToJSON(src, dst string, logger *zap.Logger, opts ...wordlist.Option) *Pipeline {
	return New("wordlist", src, dst, WordListTransform(opts...), logger)
}

// JSONToSource builds the JSON array → Rust source pipeline.
func JSONToSource(src, dst string, logger *zap.Logger, opts ...rustgen.Option) *Pipeline {
	return New("source", src, dst, SourceTransform(opts...), logger)
}
