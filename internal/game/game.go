// Package game implements the five-letter word game the generated dictionary
// feeds: six guesses, and per-letter feedback for each one.
package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

const (
	MaxGuesses = 6
	WordLength = 5
)

var (
	ErrWordNotValidLength = errors.New("word must be 5 letters")
	ErrWordNotInList      = errors.New("word not in list")
	ErrAllGuessesUsed     = errors.New("all guesses used")
	ErrAlreadyCompleted   = errors.New("game already completed")
)

// LetterType is the feedback for one letter of a guess.
type LetterType int

const (
	RightPlace LetterType = iota
	WrongPlace
	NotInWord
)

func (l LetterType) String() string {
	switch l {
	case RightPlace:
		return "right"
	case WrongPlace:
		return "wrong-place"
	case NotInWord:
		return "absent"
	}
	return fmt.Sprintf("LetterType(%d)", int(l))
}

// Result is the feedback for a whole guess, one entry per letter.
type Result []LetterType

// Pattern renders the result as G (right), Y (wrong place) and - (absent).
func (r Result) Pattern() string {
	var b strings.Builder
	for _, l := range r {
		switch l {
		case RightPlace:
			b.WriteByte('G')
		case WrongPlace:
			b.WriteByte('Y')
		default:
			b.WriteByte('-')
		}
	}
	return b.String()
}

// Solved reports whether every letter is in the right place.
func (r Result) Solved() bool {
	for _, l := range r {
		if l != RightPlace {
			return false
		}
	}
	return len(r) == WordLength
}

// Game holds the secret word and the guesses made so far.
type Game struct {
	word      []rune
	guesses   int
	completed bool
	allowed   map[string]struct{}
}

// Option configures a Game.
type Option func(*Game)

// WithAllowedWords restricts guesses to the given list. Without it any
// five-letter guess is accepted.
func WithAllowedWords(words []string) Option {
	return func(g *Game) {
		g.allowed = make(map[string]struct{}, len(words))
		for _, w := range words {
			g.allowed[w] = struct{}{}
		}
	}
}

// New starts a game for word.
func New(word string, opts ...Option) (*Game, error) {
	if utf8.RuneCountInString(word) != WordLength {
		return nil, fmt.Errorf("new game %q: %w", word, ErrWordNotValidLength)
	}
	g := &Game{word: []rune(word)}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// NewRandom starts a game with a word picked from the five-letter entries of
// words.
func NewRandom(words []string, rng *rand.Rand, opts ...Option) (*Game, error) {
	candidates := Playable(words)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("new game: no %d-letter words in dictionary", WordLength)
	}
	return New(candidates[rng.IntN(len(candidates))], opts...)
}

// Playable returns the entries of words that have exactly WordLength letters.
func Playable(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) == WordLength {
			out = append(out, w)
		}
	}
	return out
}

// Word returns the secret word.
func (g *Game) Word() string { return string(g.word) }

// Guesses returns how many guesses have been scored.
func (g *Game) Guesses() int { return g.guesses }

// Completed reports whether the word has been found.
func (g *Game) Completed() bool { return g.completed }

// Guess scores a guess. A letter that is present elsewhere in the word is
// WrongPlace however many times it repeats.
func (g *Game) Guess(guess string) (Result, error) {
	if g.completed {
		return nil, ErrAlreadyCompleted
	}
	if g.guesses == MaxGuesses {
		return nil, ErrAllGuessesUsed
	}
	letters := []rune(guess)
	if len(letters) != WordLength {
		return nil, ErrWordNotValidLength
	}
	if g.allowed != nil {
		if _, ok := g.allowed[guess]; !ok {
			return nil, ErrWordNotInList
		}
	}

	result := make(Result, WordLength)
	correct := 0
	for i, r := range letters {
		switch {
		case r == g.word[i]:
			result[i] = RightPlace
			correct++
		case g.contains(r):
			result[i] = WrongPlace
		default:
			result[i] = NotInWord
		}
	}

	if correct == WordLength {
		g.completed = true
	}
	g.guesses++
	return result, nil
}

func (g *Game) contains(r rune) bool {
	for _, c := range g.word {
		if c == r {
			return true
		}
	}
	return false
}
