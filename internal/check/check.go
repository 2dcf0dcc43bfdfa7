// Package check reports whether the generated dictionary artifacts on disk
// match what the current word list would produce.
package check

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"dictgen/internal/config"
	"dictgen/internal/pipeline"
	"dictgen/internal/rustgen"
	"dictgen/internal/wordlist"

	"golang.org/x/sync/errgroup"
)

// Status is the freshness of one artifact.
type Status string

const (
	StatusFresh   Status = "fresh"
	StatusStale   Status = "stale"
	StatusMissing Status = "missing"
)

// Artifact is the check result for one generated file.
type Artifact struct {
	Path    string
	Status  Status
	Entries int
}

// Report lists the array artifact first, then the source artifact.
type Report struct {
	Words     string
	Artifacts []Artifact
}

// UpToDate reports whether every artifact is fresh.
func (r Report) UpToDate() bool {
	for _, a := range r.Artifacts {
		if a.Status != StatusFresh {
			return false
		}
	}
	return true
}

// Run regenerates both artifacts in memory from cfg.Paths.Words and compares
// them with the files on disk. Nothing is written.
func Run(ctx context.Context, cfg *config.Config) (Report, error) {
	report := Report{Words: cfg.Paths.Words}

	data, err := os.ReadFile(cfg.Paths.Words)
	if err != nil {
		return report, fmt.Errorf("check: read %s: %w: %w", cfg.Paths.Words, pipeline.ErrSourceUnreadable, err)
	}

	array, entries, err := pipeline.WordListTransform(wordlist.WithCRMode(cfg.GetCRMode()))(data)
	if err != nil {
		return report, fmt.Errorf("check: %w", err)
	}
	source, _, err := pipeline.SourceTransform(rustgen.WithSymbol(cfg.Source.Symbol))(array)
	if err != nil {
		return report, fmt.Errorf("check: %w", err)
	}

	expected := []struct {
		path string
		want []byte
	}{
		{cfg.Paths.Array, array},
		{cfg.Paths.Source, source},
	}
	report.Artifacts = make([]Artifact, len(expected))

	g, gctx := errgroup.WithContext(ctx)
	for i, e := range expected {
		g.Go(func() error {
			status, err := compare(gctx, e.path, e.want)
			if err != nil {
				return err
			}
			report.Artifacts[i] = Artifact{Path: e.path, Status: status, Entries: entries}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return report, err
	}
	return report, nil
}

func compare(ctx context.Context, path string, want []byte) (Status, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	got, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return StatusMissing, nil
		}
		return "", fmt.Errorf("check: read %s: %w", path, err)
	}
	if !bytes.Equal(got, want) {
		return StatusStale, nil
	}
	return StatusFresh, nil
}
