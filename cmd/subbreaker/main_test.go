package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/npillmayer/subbreaker"
)

var corpusFile = filepath.Join("..", "..", "testdata", "corpus-en.txt")

type cliResult struct {
	code   int
	stdout string
	stderr string
}

// execute runs the CLI in-process with built-in defaults as configuration.
func execute(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	var stdout, stderr bytes.Buffer
	args = append([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}, args...)
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return cliResult{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

// quadgramDir creates a directory holding an English quadgram file EN.json.
func quadgramDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	res := execute(t, "", "quadgrams", "--corpus", corpusFile, "--quadgrams", filepath.Join(dir, "EN.json"))
	require.Equal(t, 0, res.code, res.stderr)
	return dir
}

func TestVersion(t *testing.T) {
	res := execute(t, "", "version")
	require.Equal(t, 0, res.code)
	assert.Regexp(t, regexp.MustCompile(`^\d+\.\d+\.\d+`), res.stdout)
}

func TestNoCommandPrintsHelp(t *testing.T) {
	res := execute(t, "")
	require.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, "A collection of tools")
	assert.Contains(t, res.stdout, "Usage:")
}

func TestQuadgramsFileFormat(t *testing.T) {
	dir := quadgramDir(t)
	data, err := os.ReadFile(filepath.Join(dir, "EN.json"))
	require.NoError(t, err)
	var obj map[string]any
	require.NoError(t, json.Unmarshal(data, &obj))
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyz", obj["alphabet"])
	assert.Equal(t, "that", obj["most_frequent_quadgram"])
	assert.IsType(t, float64(0), obj["average_fitness"])
	quadgrams, ok := obj["quadgrams"].([]any)
	require.True(t, ok)
	assert.Len(t, quadgrams, subbreaker.TableSize)
}

func TestQuadgramsToStdout(t *testing.T) {
	corpus, err := os.ReadFile(corpusFile)
	require.NoError(t, err)
	res := execute(t, string(corpus), "quadgrams", "--alphabet", "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	require.Equal(t, 0, res.code, res.stderr)
	assert.True(t, strings.HasPrefix(res.stdout, "{"))
	assert.Contains(t, res.stdout, `"nbr_quadgrams":16155`)
}

func TestQuadgramsIntoLanguageDirectory(t *testing.T) {
	dir := t.TempDir()
	res := execute(t, "", "--quadgram-dir", dir, "quadgrams", "--corpus", corpusFile, "--lang", "XX")
	require.Equal(t, 0, res.code, res.stderr)
	assert.FileExists(t, filepath.Join(dir, "XX.json"))
}

func TestFitness(t *testing.T) {
	dir := quadgramDir(t)
	res := execute(t, "", "--quadgram-dir", dir, "fitness", "--plaintext", corpusFile)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "100.02\n", res.stdout)

	res = execute(t, "", "--quadgram-dir", dir, "fitness", "--text", "Hello", "--lang", "EN")
	require.Equal(t, 0, res.code, res.stderr)
	assert.NotEmpty(t, res.stdout)

	res = execute(t, "", "--quadgram-dir", dir, "fitness", "--text", "Hi!")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "more than three characters")
}

func TestUnknownLanguage(t *testing.T) {
	dir := quadgramDir(t)
	res := execute(t, "", "--quadgram-dir", dir, "fitness", "--text", "Hello", "--lang", "FR")
	assert.Equal(t, 2, res.code)
	assert.Contains(t, res.stderr, "available: EN")
}

func TestInfo(t *testing.T) {
	dir := quadgramDir(t)
	res := execute(t, "", "--quadgram-dir", dir, "info")
	require.Equal(t, 0, res.code, res.stderr)
	for _, line := range []string{
		"Quadgram file: ",
		filepath.Join(dir, "EN.json"),
		"Alphabet: abcdefghijklmnopqrstuvwxyz",
		"Length of alphabet: 26",
		"Number of quadgrams: 16,155",
		"Most frequent quadgram: that",
		"Fitness for most frequent quadgram: 182.3",
		"Fitness for random text: 1.13",
	} {
		assert.Contains(t, res.stdout, line)
	}
}

func TestEncodeDecode(t *testing.T) {
	const caesar = "defghijklmnopqrstuvwxyzabc"
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"encode", "--text", "Hello", "--key", caesar}, "Khoor"},
		{[]string{"decode", "--text", "Khoor", "--key", caesar}, "Hello"},
		{[]string{"decode", "--text", "zebrascdfghijklmnopqtuvwxy", "--keyword", "Zebrasber"}, "abcdefghijklmnopqrstuvwxyz"},
		{[]string{"encode", "--text", "abcdefghijklmnopqrstuvwxyz", "--keyword", "Zebrasber"}, "zebrascdfghijklmnopqtuvwxy"},
	}
	for _, tt := range tests {
		res := execute(t, "", tt.args...)
		require.Equal(t, 0, res.code, res.stderr)
		assert.Equal(t, tt.want, strings.TrimSpace(res.stdout))
	}
}

func TestDecodeFiles(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "hello.txt")
	out := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(in, []byte("Hello\nWorld\n"), 0o644))
	res := execute(t, "", "decode", "--ciphertext", in, "--plaintext", out, "--key", "defghijklmnopqrstuvwxyzabc")
	require.Equal(t, 0, res.code, res.stderr)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Ebiil\nTloia\n", string(data))
}

func TestEncodeStdin(t *testing.T) {
	res := execute(t, "Hello\n", "encode", "--key", "defghijklmnopqrstuvwxyzabc")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Khoor\n", res.stdout)
}

func TestEncodeRandom(t *testing.T) {
	res := execute(t, "", "encode", "--text", "Hello", "--random", "--seed", "12")
	require.Equal(t, 0, res.code, res.stderr)
	key := strings.TrimSpace(res.stderr)
	ciphertext := strings.TrimSpace(res.stdout)
	assert.Len(t, key, 26)
	res = execute(t, "", "decode", "--text", ciphertext, "--key", key)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Hello", strings.TrimSpace(res.stdout))
}

func TestTranscodeValidation(t *testing.T) {
	tests := []struct {
		args []string
		msg  string
	}{
		{[]string{"decode", "--text", "Khoor", "--key", "abcde", "--alphabet", "abcdc"}, "unique"},
		{[]string{"decode", "--text", "Khoor", "--key", "abcdc", "--alphabet", "abcde"}, "unique"},
		{[]string{"decode", "--text", "Khoor", "--key", "abcd", "--alphabet", "abcde"}, "long"},
		{[]string{"decode", "--text", "Khoor", "--key", "abcd", "--alphabet", "abce"}, "same set"},
		{[]string{"encode", "--text", "Khoor", "--key", "abcd", "--alphabet", "abce"}, "same set"},
		{[]string{"encode", "--text", "Khoor"}, "--random"},
		{[]string{"decode", "--text", "Khoor", "--key", "abc", "--keyword", "abc"}, "exactly one"},
		{[]string{"decode", "--text", "x", "--ciphertext", "f.txt", "--key", "abc", "--alphabet", "abc"}, "mutually exclusive"},
		{[]string{"decode", "--no-such-flag"}, "unknown flag"},
	}
	for _, tt := range tests {
		res := execute(t, "", tt.args...)
		assert.Equal(t, 2, res.code, "%v", tt.args)
		assert.Contains(t, res.stderr, "Usage:", "%v", tt.args)
		assert.Contains(t, res.stderr, "subbreaker "+tt.args[0]+": error:", "%v", tt.args)
		assert.Contains(t, res.stderr, tt.msg, "%v", tt.args)
	}
}

func TestBreakParameterValidation(t *testing.T) {
	for _, args := range [][]string{
		{"break", "--max-tries", "10001"},
		{"break", "--max-tries", "0"},
		{"break", "--consolidate", "31"},
	} {
		res := execute(t, "", args...)
		assert.Equal(t, 2, res.code, "%v", args)
		assert.Contains(t, res.stderr, "subbreaker break: error:")
		assert.Contains(t, res.stderr, "must be in the range")
	}
}

// ciphertext is a paragraph of the test corpus, encoded with key
// "wisdomabcefghjklnpqrtuvxyz".
func ciphertext(t *testing.T) (plain, cipher string) {
	t.Helper()
	data, err := os.ReadFile(corpusFile)
	require.NoError(t, err)
	for _, p := range strings.Split(string(data), "\n\n") {
		if strings.HasPrefix(p, "I had read about such ciphers") {
			plain = p
		}
	}
	require.NotEmpty(t, plain)
	res := execute(t, "", "encode", "--text", plain, "--key", "wisdomabcefghjklnpqrtuvxyz")
	require.Equal(t, 0, res.code, res.stderr)
	return plain, strings.TrimSuffix(res.stdout, "\n")
}

func TestBreak(t *testing.T) {
	dir := quadgramDir(t)
	plain, cipher := ciphertext(t)
	metrics := filepath.Join(t.TempDir(), "break.prom")
	res := execute(t, "", "--quadgram-dir", dir, "break", "--text", cipher,
		"--seed", "2024", "--workers", "4", "--metrics-file", metrics)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Alphabet: abcdefghijklmnopqrstuvwxyz\n")
	assert.Contains(t, res.stdout, "Key:      wisdomabc")
	assert.Contains(t, res.stdout, "Fitness: 10")
	assert.Contains(t, res.stdout, "Nbr keys tried: ")
	assert.Contains(t, res.stdout, "Keys per second: ")
	assert.Contains(t, res.stdout, "Execution time (seconds): ")
	assert.Contains(t, res.stdout, "Plaintext:\n"+plain+"\n")

	prom, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(prom), "subbreaker_consolidations_total 1")
}

func TestBreakStdinAndFile(t *testing.T) {
	dir := quadgramDir(t)
	plain, cipher := ciphertext(t)
	res := execute(t, cipher, "--quadgram-dir", dir, "break", "--seed", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, plain)

	file := filepath.Join(t.TempDir(), "cipher.txt")
	require.NoError(t, os.WriteFile(file, []byte(cipher), 0o644))
	res = execute(t, "", "--quadgram-dir", dir, "break", "--ciphertext", file, "--seed", "1")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, plain)
}

func TestBreakTooShort(t *testing.T) {
	dir := quadgramDir(t)
	res := execute(t, "", "--quadgram-dir", dir, "break", "--text", "34623230 a b  c 47146")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "ciphertext is too short")
}

func TestConfigFile(t *testing.T) {
	dir := quadgramDir(t)
	cfg := filepath.Join(t.TempDir(), "subbreaker.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("quadgram_dir: "+dir+"\nconsolidate: 40\n"), 0o644))
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"--config", cfg, "info"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "Consolidate")

	require.NoError(t, os.WriteFile(cfg, []byte("quadgram_dir: "+dir+"\n"), 0o644))
	stdout.Reset()
	code = run(context.Background(), []string{"--config", cfg, "info"}, strings.NewReader(""), &stdout, &stderr)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "Most frequent quadgram: that")
}
