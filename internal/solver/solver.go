// Package solver plays the word game automatically. It guesses the
// highest-scoring candidate by English letter frequency, then drops every
// candidate the feedback rules out.
package solver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"dictgen/internal/game"

	"go.uber.org/zap"
)

// ErrNoCandidates means the feedback ruled out every dictionary word.
var ErrNoCandidates = errors.New("no candidate words left")

// letterFrequencies are English letter frequencies in percent.
var letterFrequencies = map[rune]float32{
	'a': 14.0, 'b': 2.0, 'c': 4.0, 'd': 3.8, 'e': 15.0, 'f': 1.4, 'g': 3.0,
	'h': 2.3, 'i': 10.0, 'j': 0.21, 'k': 0.97, 'l': 5.3, 'm': 2.7, 'n': 7.2,
	'o': 8.5, 'p': 2.8, 'q': 0.19, 'r': 7.3, 's': 8.7, 't': 6.7, 'u': 6.0,
	'v': 1.0, 'w': 0.91, 'x': 0.27, 'y': 1.6, 'z': 0.44,
}

// repeatPenalty scores repeated and unknown letters.
const repeatPenalty float32 = -4.0

// Score sums the frequency of each distinct letter. Repeats and letters
// without a frequency score repeatPenalty.
func Score(word string) float32 {
	var score float32
	seen := make(map[rune]bool, game.WordLength)
	for _, r := range word {
		f, ok := letterFrequencies[r]
		if !ok || seen[r] {
			score += repeatPenalty
			continue
		}
		seen[r] = true
		score += f
	}
	return score
}

// Guess records one step of a solve.
type Guess struct {
	Word       string
	Result     game.Result
	Candidates int // candidates left after filtering
}

// Solver narrows the dictionary against a running game.
type Solver struct {
	candidates []string
	game       *game.Game
	logger     *zap.Logger
	history    []Guess
}

// New builds a solver over the five-letter entries of words.
func New(words []string, g *game.Game, logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{
		candidates: game.Playable(words),
		game:       g,
		logger:     logger,
	}
}

// History returns the guesses made so far.
func (s *Solver) History() []Guess {
	return slices.Clone(s.history)
}

// Solve guesses until the game is won and returns the number of guesses.
func (s *Solver) Solve(ctx context.Context) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return len(s.history), err
		}
		if len(s.candidates) == 0 {
			return len(s.history), ErrNoCandidates
		}

		word := s.best()
		result, err := s.game.Guess(word)
		if err != nil {
			return len(s.history), fmt.Errorf("guess %q: %w", word, err)
		}
		s.filter(word, result)
		s.history = append(s.history, Guess{Word: word, Result: result, Candidates: len(s.candidates)})

		s.logger.Info("guess",
			zap.Int("n", len(s.history)),
			zap.String("word", word),
			zap.String("result", result.Pattern()),
			zap.Int("candidates", len(s.candidates)),
		)

		if s.game.Completed() {
			return len(s.history), nil
		}
	}
}

// best returns the highest-scoring candidate. Ties keep dictionary order.
func (s *Solver) best() string {
	slices.SortStableFunc(s.candidates, func(a, b string) int {
		sa, sb := Score(a), Score(b)
		switch {
		case sa > sb:
			return -1
		case sa < sb:
			return 1
		}
		return 0
	})
	return s.candidates[0]
}

// filter applies each letter's feedback in turn.
func (s *Solver) filter(word string, result game.Result) {
	letters := []rune(word)
	for i, lt := range result {
		r := letters[i]
		s.candidates = slices.DeleteFunc(s.candidates, func(w string) bool {
			return !keep(w, r, i, lt)
		})
	}
}

func keep(word string, r rune, pos int, lt game.LetterType) bool {
	letters := []rune(word)
	switch lt {
	case game.NotInWord:
		return !strings.ContainsRune(word, r)
	case game.RightPlace:
		return letters[pos] == r
	default:
		return strings.ContainsRune(word, r) && letters[pos] != r
	}
}
