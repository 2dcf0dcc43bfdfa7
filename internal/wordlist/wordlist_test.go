package wordlist

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []Option
		want  []string
	}{
		{
			name:  "simple lines",
			input: "apple\nbanana\ncherry",
			want:  []string{"apple", "banana", "cherry"},
		},
		{
			name:  "empty buffer",
			input: "",
			want:  []string{},
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  apple \n\tbanana\t",
			want:  []string{"apple", "banana"},
		},
		{
			name:  "blank lines and duplicates kept",
			input: "apple\n\napple\n",
			want:  []string{"apple", "", "apple", ""},
		},
		{
			name:  "only first CR removed before split, trim handles the rest",
			input: "ab\rcd\r\nef\r\n",
			want:  []string{"abcd", "ef", ""},
		},
		{
			name:  "first CR removed even inside a word",
			input: "a\rb\nc\rd",
			want:  []string{"ab", "c\rd"},
		},
		{
			name:  "all CRs removed in compat mode",
			input: "a\rb\nc\rd",
			opts:  []Option{WithCRMode(CRAll)},
			want:  []string{"ab", "cd"},
		},
		{
			name:  "BOM and no-break space trimmed",
			input: "\ufeffapple\u00a0\nbanana",
			want:  []string{"apple", "banana"},
		},
		{
			name:  "next line character is not trimmed",
			input: "apple\u0085",
			want:  []string{"apple\u0085"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse([]byte(tt.input), tt.opts...)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseLineCountMatchesInput(t *testing.T) {
	input := "one\ntwo\nthree\nfour\nfive"
	assert.Len(t, Parse([]byte(input)), 5)
}

func TestParseCRMode(t *testing.T) {
	mode, err := ParseCRMode("")
	require.NoError(t, err)
	assert.Equal(t, CRFirst, mode)

	mode, err = ParseCRMode("all")
	require.NoError(t, err)
	assert.Equal(t, CRAll, mode)

	_, err = ParseCRMode("windows")
	assert.Error(t, err)
}

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		want  string
	}{
		{"basic", []string{"apple", "banana", "cherry"}, `["apple","banana","cherry"]`},
		{"nil", nil, `[]`},
		{"empty", []string{}, `[]`},
		{"blank entry", []string{""}, `[""]`},
		{"html not escaped", []string{"<a&b>"}, `["<a&b>"]`},
		{"quotes and backslashes", []string{`say "hi"`, `C:\x`}, `["say \"hi\"","C:\\x"]`},
		{"line separator literal", []string{"a\u2028b"}, "[\"a\u2028b\"]"},
		{"escaped backslash before u2028 text", []string{`\u2028`}, `["\\u2028"]`},
		{"unicode kept", []string{"żółw"}, `["żółw"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.words)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDecode(t *testing.T) {
	words, err := Decode([]byte(`["apple","banana","cherry"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana", "cherry"}, words)

	words, err = Decode([]byte(" []\n"))
	require.NoError(t, err)
	assert.Empty(t, words)
	assert.NotNil(t, words)
}

func TestDecodeRejectsNonArrays(t *testing.T) {
	inputs := []string{
		``,
		`null`,
		`{"a":1}`,
		`"apple"`,
		`[1,2]`,
		`["apple"`,
		`["apple"] trailing`,
	}
	for _, in := range inputs {
		_, err := Decode([]byte(in))
		assert.Error(t, err, "input %q", in)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	words := Parse([]byte("alpha\n beta \n\ngamma<>&\n"))
	data, err := Encode(words)
	require.NoError(t, err)

	back, err := Decode(data)
	require.NoError(t, err)
	if diff := cmp.Diff(words, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInvalidUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"lone latin-1 byte and truncated sequence", "caf\xe9\nab\xe2\x82", []string{"caf\ufffd", "ab\ufffd"}},
		{"stray continuation bytes each replaced", "a\x80\x80b", []string{"a\ufffd\ufffdb"}},
		{"surrogate encoding is not a valid prefix", "\xed\xa0\x80", []string{"\ufffd\ufffd\ufffd"}},
		{"overlong lead byte", "\xc0\xafx", []string{"\ufffd\ufffdx"}},
		{"truncated four byte sequence", "\xf0\x9f\x98", []string{"\ufffd"}},
		{"literal replacement character kept", "\ufffd", []string{"\ufffd"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Parse([]byte(tt.input))); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeInvalidUTF8WritesRawReplacement(t *testing.T) {
	got, err := Encode(Parse([]byte("caf\xe9\nab\xe2\x82")))
	require.NoError(t, err)
	assert.Equal(t, "[\"caf\ufffd\",\"ab\ufffd\"]", string(got))
	assert.NotContains(t, string(got), `\u`)
}

func TestDecodeSurrogates(t *testing.T) {
	words, err := Decode([]byte(`["\ud83d\ude00","\\ud800"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"\U0001F600", `\ud800`}, words)

	for _, in := range []string{`["\ud800x"]`, `["\udc00"]`, `["a\uD800A"]`, `["\ud800"]`} {
		_, err := Decode([]byte(in))
		assert.Error(t, err, "input %s", in)
	}
}
