// Package wordlist turns a newline-delimited dictionary into an ordered word
// list and serializes that list as a compact JSON array.
package wordlist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CRMode controls how carriage returns are removed before the buffer is split.
type CRMode string

const (
	// CRFirst removes only the first '\r' in the whole buffer. This matches the
	// output of the existing dictionary tooling byte for byte.
	CRFirst CRMode = "first"
	// CRAll removes every '\r', which is what CRLF word lists usually want.
	CRAll CRMode = "all"
)

// ParseCRMode validates a mode name coming from config or flags.
func ParseCRMode(s string) (CRMode, error) {
	switch CRMode(s) {
	case CRFirst, CRAll:
		return CRMode(s), nil
	case "":
		return CRFirst, nil
	}
	return "", fmt.Errorf("unknown cr mode %q (want %q or %q)", s, CRFirst, CRAll)
}

type options struct {
	crMode CRMode
}

// Option configures Parse.
type Option func(*options)

// WithCRMode selects the carriage-return policy.
func WithCRMode(mode CRMode) Option {
	return func(o *options) {
		o.crMode = mode
	}
}

// Parse decodes data as UTF-8, splits it on '\n' and trims every segment. Blank lines and
// duplicates are kept so that line N of the input is entry N of the result.
// An empty buffer yields an empty list.
func Parse(data []byte, opts ...Option) []string {
	o := options{crMode: CRFirst}
	for _, opt := range opts {
		opt(&o)
	}

	if len(data) == 0 {
		return []string{}
	}

	text := decodeText(data)
	switch o.crMode {
	case CRAll:
		text = strings.ReplaceAll(text, "\r", "")
	default:
		text = strings.Replace(text, "\r", "", 1)
	}

	lines := strings.Split(text, "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		words = append(words, strings.TrimFunc(line, isTrimSpace))
	}
	return words
}

// decodeText converts data to valid UTF-8. Each maximal invalid subsequence
// becomes one U+FFFD, as in the WHATWG decoder; utf8.DecodeRune would emit one
// per byte.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var b strings.Builder
	b.Grow(len(data) + 8)
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r != utf8.RuneError || size > 1 {
			b.Write(data[i : i+size])
			i += size
			continue
		}
		b.WriteRune(utf8.RuneError)
		i += maximalSubpart(data[i:])
	}
	return b.String()
}

// maximalSubpart returns the length of the invalid sequence starting at p[0]:
// the lead byte plus every continuation byte that was still acceptable for it.
func maximalSubpart(p []byte) int {
	lo, hi := byte(0x80), byte(0xBF)
	var need int
	switch lead := p[0]; {
	case lead >= 0xC2 && lead <= 0xDF:
		need = 1
	case lead == 0xE0:
		need, lo = 2, 0xA0
	case lead == 0xED:
		need, hi = 2, 0x9F
	case lead >= 0xE1 && lead <= 0xEF:
		need = 2
	case lead == 0xF0:
		need, lo = 3, 0x90
	case lead == 0xF4:
		need, hi = 3, 0x8F
	case lead >= 0xF1 && lead <= 0xF3:
		need = 3
	default:
		return 1
	}
	n := 1
	for n <= need && n < len(p) {
		if c := p[n]; c < lo || c > hi {
			break
		}
		lo, hi = 0x80, 0xBF
		n++
	}
	return n
}

// isTrimSpace reports the characters removed by ECMAScript's String.trim:
// WhiteSpace (including every Zs code point and the BOM) and LineTerminator.
// unicode.IsSpace differs on U+0085 and U+FEFF.
func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// Encode returns the words as a single-line JSON array with no trailing
// newline. HTML characters are not escaped and U+2028/U+2029 are emitted
// literally, so the output matches JSON.stringify.
func Encode(words []string) ([]byte, error) {
	if words == nil {
		words = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(words); err != nil {
		return nil, fmt.Errorf("encode word list: %w", err)
	}
	return unescapeLineSeparators(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// unescapeLineSeparators rewrites the \u2028 and \u2029 escapes that
// encoding/json always emits back into raw UTF-8. Escape pairs are consumed
// two bytes at a time so an escaped backslash followed by "u2028" is kept.
func unescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if b[i+1] == 'u' && i+6 <= len(b) {
			switch string(b[i+2 : i+6]) {
			case "2028":
				out = append(out, "\u2028"...)
				i += 5
				continue
			case "2029":
				out = append(out, "\u2029"...)
				i += 5
				continue
			}
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}

// Decode parses a JSON array of strings. Anything else, including null, is an
// error. Lone UTF-16 surrogate escapes are rejected because a Go string
// cannot carry them and encoding/json would silently turn them into U+FFFD.
func Decode(data []byte) ([]string, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("decode word list: input is not a JSON array")
	}

	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	if err := checkSurrogates(data); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}
	if words == nil {
		words = []string{}
	}
	return words, nil
}

// checkSurrogates rejects \uD800-\uDFFF escapes that are not a high surrogate
// immediately followed by a low one. data must already be valid JSON, so
// every backslash outside an escape pair starts an escape.
func checkSurrogates(data []byte) error {
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			continue
		}
		if data[i+1] != 'u' {
			i++
			continue
		}
		u := hex4(data[i+2 : i+6])
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			next := i + 6
			if next+6 <= len(data) && data[next] == '\\' && data[next+1] == 'u' {
				if lo := hex4(data[next+2 : next+6]); lo >= 0xDC00 && lo <= 0xDFFF {
					i = next + 5
					continue
				}
			}
			return fmt.Errorf("lone surrogate %s at offset %d", data[i:i+6], i)
		case u >= 0xDC00 && u <= 0xDFFF:
			return fmt.Errorf("lone surrogate %s at offset %d", data[i:i+6], i)
		}
		i += 5
	}
	return nil
}

func hex4(b []byte) rune {
	var r rune
	for _, c := range b {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		}
	}
	return r
}
