package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the CLI with args and stdin, returning stdout and stderr.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestTokenizeStdin(t *testing.T) {
	stdout, stderr, err := execute(t, "12.5 apples!", "tokenize")
	require.NoError(t, err)
	assert.Empty(t, stderr)
	assert.Equal(t, strings.Join([]string{
		`{"from":0,"to":4,"kind":"float","text":"12.5"}`,
		`{"from":4,"to":5,"kind":"separ","text":" "}`,
		`{"from":5,"to":11,"kind":"letter","text":"apples"}`,
		`{"from":11,"to":12,"kind":"punct","text":"!"}`,
	}, "\n")+"\n", stdout)
}

func TestTokenizeDoesNotApplyHelpers(t *testing.T) {
	stdout, _, err := execute(t, "a@b.cc", "tokenize")
	require.NoError(t, err)
	assert.NotContains(t, stdout, `"email"`)
}

func TestAnalyzeStdin(t *testing.T) {
	stdout, _, err := execute(t, "mail a@b.cc", "analyze")
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		`{"from":0,"to":4,"kind":"letter","text":"mail"}`,
		`{"from":4,"to":5,"kind":"separ","text":" "}`,
		`{"from":5,"to":11,"kind":"email","text":"a@b.cc"}`,
	}, "\n")+"\n", stdout)
}

func TestAnalyzeHelpersFlag(t *testing.T) {
	stdout, _, err := execute(t, "at 10:30", "analyze", "--helpers", "emails")
	require.NoError(t, err)
	assert.NotContains(t, stdout, `"time"`)

	stdout, _, err = execute(t, "at 10:30", "analyze", "--helpers", "emails,time")
	require.NoError(t, err)
	assert.Contains(t, stdout, `{"from":3,"to":8,"kind":"time","text":"10:30"}`)
}

func TestAnalyzeConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "helpers.yaml", `
helpers: [hashtags]
patterns:
  - name: hashtags
    kind: hashtag
    pattern: '#\p{L}+'
`)

	stdout, _, err := execute(t, "go #golang", "analyze", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, stdout, `{"from":3,"to":10,"kind":"hashtag","text":"#golang"}`)
}

func TestAnalyzeUnknownHelper(t *testing.T) {
	_, _, err := execute(t, "text", "analyze", "--helpers", "nope")
	assert.ErrorContains(t, err, "unknown helper 'nope'")
}

func TestTokenizeUnrecognizedCharacter(t *testing.T) {
	stdout, stderr, err := execute(t, "tab\there", "tokenize")

	var exit *exitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, 1, exit.code)
	assert.Empty(t, stdout)
	assert.Equal(t, "Tokenization error: <stdin>: Could not recognize character \"\t\" @ 3\n", stderr)
}

func TestTokenizeExit0(t *testing.T) {
	stdout, stderr, err := execute(t, "tab\there", "tokenize", "--exit0")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestTokenizeMultipleFilesKeepsOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.txt", "one")
	bad := writeFile(t, dir, "bad.txt", "$")
	second := writeFile(t, dir, "second.txt", "two")

	stdout, stderr, err := execute(t, "", "tokenize", first, bad, second)
	var exit *exitError
	require.True(t, errors.As(err, &exit))
	assert.Equal(t, strings.Join([]string{
		`{"source":"` + first + `","from":0,"to":3,"kind":"letter","text":"one"}`,
		`{"source":"` + second + `","from":0,"to":3,"kind":"letter","text":"two"}`,
	}, "\n")+"\n", stdout)
	assert.Contains(t, stderr, bad+`: Could not recognize character "$" @ 0`)
}

func TestTokenizeOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.jsonl")

	stdout, _, err := execute(t, "hi", "tokenize", "--output", path)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"from":0,"to":2,"kind":"letter","text":"hi"}`+"\n", string(data))
}

func TestTokenizePretty(t *testing.T) {
	stdout, _, err := execute(t, "hi!", "tokenize", "--format", "pretty", "--color", "off")
	require.NoError(t, err)
	assert.Equal(t, "  1: letter   \"hi\" at 1:1-1:3\n  2: punct    \"!\" at 1:3-1:4\n", stdout)
}

func TestTokenizeNFC(t *testing.T) {
	decomposed := "e\u0301"

	_, _, err := execute(t, decomposed, "tokenize")
	require.Error(t, err)

	stdout, _, err := execute(t, decomposed, "tokenize", "--nfc")
	require.NoError(t, err)
	assert.Equal(t, `{"from":0,"to":1,"kind":"letter","text":"`+"\u00e9"+`"}`+"\n", stdout)
}

func TestTokenizeBadFlags(t *testing.T) {
	_, _, err := execute(t, "x", "tokenize", "--format", "xml")
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = execute(t, "x", "tokenize", "--color", "maybe")
	assert.ErrorContains(t, err, "unknown color mode")

	_, _, err = execute(t, "", "tokenize", filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "reading file")
}

func TestMakeConfig(t *testing.T) {
	stdout, _, err := execute(t, "", "make-config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "helpers:")
	assert.Contains(t, stdout, "- urls")

	stdout, _, err = execute(t, "", "make-config", "--format", "toml")
	require.NoError(t, err)
	assert.Contains(t, stdout, `helpers = ["urls", "emails", "abbrevs", "time"]`)
}

func TestVersion(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "span-tokenizer version "+version+"\n", stdout)
}
