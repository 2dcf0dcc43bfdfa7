// Package rustgen renders a word list as a Rust static array declaration that
// the dictionary crate includes as its dict.rs module.
package rustgen

import (
	"fmt"
	"regexp"
	"strconv"

	"dictgen/internal/wordlist"
)

// DefaultSymbol is the name the dictionary crate re-exports.
const DefaultSymbol = "DICTIONARY"

var (
	identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	declPattern  = regexp.MustCompile(`^pub static ([A-Za-z_][A-Za-z0-9_]*):\[&str;(\d+)\]=`)
)

type options struct {
	symbol string
}

// Option configures Render.
type Option func(*options)

// WithSymbol overrides the static's name.
func WithSymbol(name string) Option {
	return func(o *options) {
		o.symbol = name
	}
}

// rustKeywords are the strict, reserved and 2018+ edition keywords, none of
// which can name a static.
var rustKeywords = map[string]bool{
	"as": true, "break": true, "const": true, "continue": true, "crate": true,
	"else": true, "enum": true, "extern": true, "false": true, "fn": true,
	"for": true, "if": true, "impl": true, "in": true, "let": true,
	"loop": true, "match": true, "mod": true, "move": true, "mut": true,
	"pub": true, "ref": true, "return": true, "self": true, "Self": true,
	"static": true, "struct": true, "super": true, "trait": true, "true": true,
	"type": true, "unsafe": true, "use": true, "where": true, "while": true,
	"async": true, "await": true, "dyn": true,
	"abstract": true, "become": true, "box": true, "do": true, "final": true,
	"macro": true, "override": true, "priv": true, "typeof": true,
	"unsized": true, "virtual": true, "yield": true, "try": true, "gen": true,
}

// ValidSymbol reports whether name can be used as the static's identifier.
func ValidSymbol(name string) bool {
	return name != "_" && !rustKeywords[name] && identPattern.MatchString(name)
}

// Render produces the single-statement declaration
//
//	pub static DICTIONARY:[&str;N]=["a","b",...];
//
// The array literal is the JSON encoding of words and no trailing newline is
// written.
func Render(words []string, opts ...Option) ([]byte, error) {
	o := options{symbol: DefaultSymbol}
	for _, opt := range opts {
		opt(&o)
	}
	if !ValidSymbol(o.symbol) {
		return nil, fmt.Errorf("render dictionary: invalid symbol %q", o.symbol)
	}

	literal, err := wordlist.Encode(words)
	if err != nil {
		return nil, fmt.Errorf("render dictionary: %w", err)
	}

	out := make([]byte, 0, len(literal)+len(o.symbol)+32)
	out = append(out, "pub static "...)
	out = append(out, o.symbol...)
	out = append(out, ":[&str;"...)
	out = strconv.AppendInt(out, int64(len(words)), 10)
	out = append(out, "]="...)
	out = append(out, literal...)
	out = append(out, ';')
	return out, nil
}

// Declaration is the header of a generated file.
type Declaration struct {
	Symbol string
	Length int
}

// Inspect reads the symbol and declared length back from generated source.
func Inspect(src []byte) (Declaration, error) {
	m := declPattern.FindSubmatch(src)
	if m == nil {
		return Declaration{}, fmt.Errorf("inspect dictionary: no static array declaration found")
	}
	n, err := strconv.Atoi(string(m[2]))
	if err != nil {
		return Declaration{}, fmt.Errorf("inspect dictionary: bad length: %w", err)
	}
	return Declaration{Symbol: string(m[1]), Length: n}, nil
}
