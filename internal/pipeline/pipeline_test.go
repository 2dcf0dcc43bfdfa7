package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"dictgen/internal/rustgen"
	"dictgen/internal/wordlist"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWordListToJSON(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dictionary.txt")
	dst := filepath.Join(dir, "dictionary.jsonf")
	writeFile(t, src, "apple\nbanana\ncherry")

	res, err := WordListToJSON(src, dst, zap.NewNop()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `["apple","banana","cherry"]`, readFile(t, dst))
	assert.Equal(t, 3, res.Entries)
	assert.Equal(t, len("apple\nbanana\ncherry"), res.BytesRead)
	assert.Equal(t, len(`["apple","banana","cherry"]`), res.BytesWritten)
}

func TestJSONToSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dictionary.jsonf")
	dst := filepath.Join(dir, "crates", "dictionary", "src", "dict.rs")
	writeFile(t, src, `["apple","banana","cherry"]`)
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0o755))

	res, err := JSONToSource(src, dst, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `pub static DICTIONARY:[&str;3]=["apple","banana","cherry"];`, readFile(t, dst))
	assert.Equal(t, 3, res.Entries)
}

func TestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "dictionary.txt")
	array := filepath.Join(dir, "dictionary.jsonf")
	source := filepath.Join(dir, "dict.rs")
	writeFile(t, words, "crane\r\nslate\r\n\r\ntrace\r\n")

	a, err := WordListToJSON(words, array, nil).Run(context.Background())
	require.NoError(t, err)
	b, err := JSONToSource(array, source, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a.Entries, b.Entries)

	decl, err := rustgen.Inspect([]byte(readFile(t, source)))
	require.NoError(t, err)
	assert.Equal(t, a.Entries, decl.Length)
	assert.Contains(t, readFile(t, source), "="+readFile(t, array)+";")
}

func TestEmptyInput(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "dictionary.txt")
	array := filepath.Join(dir, "dictionary.jsonf")
	source := filepath.Join(dir, "dict.rs")
	writeFile(t, words, "")

	_, err := WordListToJSON(words, array, nil).Run(context.Background())
	require.NoError(t, err)
	_, err = JSONToSource(array, source, nil).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, `[]`, readFile(t, array))
	assert.Equal(t, `pub static DICTIONARY:[&str;0]=[];`, readFile(t, source))
}

func TestIdempotent(t *testing.T) {
	dir := t.TempDir()
	words := filepath.Join(dir, "dictionary.txt")
	array := filepath.Join(dir, "dictionary.jsonf")
	source := filepath.Join(dir, "dict.rs")
	writeFile(t, words, "b\na\nb\n")

	var arrays, sources []string
	for i := 0; i < 2; i++ {
		_, err := WordListToJSON(words, array, nil).Run(context.Background())
		require.NoError(t, err)
		_, err = JSONToSource(array, source, nil).Run(context.Background())
		require.NoError(t, err)
		arrays = append(arrays, readFile(t, array))
		sources = append(sources, readFile(t, source))
	}
	assert.Equal(t, arrays[0], arrays[1])
	assert.Equal(t, sources[0], sources[1])
}

func TestOutputReplacesPriorContent(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dictionary.txt")
	dst := filepath.Join(dir, "dictionary.jsonf")
	writeFile(t, src, "a")
	writeFile(t, dst, `["this","was","a","much","longer","previous","file"]`)

	_, err := WordListToJSON(src, dst, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `["a"]`, readFile(t, dst))
}

func TestMissingSourceWritesNothing(t *testing.T) {
	dir := t.TempDir()
	array := filepath.Join(dir, "dictionary.jsonf")
	source := filepath.Join(dir, "dict.rs")

	_, err := WordListToJSON(filepath.Join(dir, "missing.txt"), array, nil).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnreadable))
	assert.True(t, errors.Is(err, os.ErrNotExist))
	assert.NoFileExists(t, array)

	_, err = JSONToSource(array, source, nil).Run(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSourceUnreadable))
	assert.NoFileExists(t, source)
}

func TestMalformedJSONIsNotAReadError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dictionary.jsonf")
	dst := filepath.Join(dir, "dict.rs")
	writeFile(t, src, `["apple",`)

	_, err := JSONToSource(src, dst, nil).Run(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSourceUnreadable))
	assert.NoFileExists(t, dst)
}

func TestMissingDestinationDirIsNotCreated(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dictionary.jsonf")
	dst := filepath.Join(dir, "crates", "dictionary", "src", "dict.rs")
	writeFile(t, src, `["a"]`)

	_, err := JSONToSource(src, dst, nil).Run(context.Background())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrSourceUnreadable))
	assert.NoDirExists(t, filepath.Join(dir, "crates"))
}

func TestCRModeOption(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dictionary.txt")
	dst := filepath.Join(dir, "dictionary.jsonf")
	writeFile(t, src, "a\rb\nc\rd")

	_, err := WordListToJSON(src, dst, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `["ab","c\rd"]`, readFile(t, dst))

	_, err = WordListToJSON(src, dst, nil, wordlist.WithCRMode(wordlist.CRAll)).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `["ab","cd"]`, readFile(t, dst))
}

func TestCancelledContext(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "dictionary.txt")
	dst := filepath.Join(dir, "dictionary.jsonf")
	writeFile(t, src, "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := WordListToJSON(src, dst, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, dst)
}

func TestRunLogsArtifact(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	dir := t.TempDir()
	src := filepath.Join(dir, "dictionary.txt")
	dst := filepath.Join(dir, "dictionary.jsonf")
	writeFile(t, src, "a\nb")

	_, err := WordListToJSON(src, dst, zap.New(core)).Run(context.Background())
	require.NoError(t, err)

	entries := logs.FilterMessage("artifact written").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "wordlist", fields["pipeline"])
	assert.EqualValues(t, 2, fields["entries"])
}
