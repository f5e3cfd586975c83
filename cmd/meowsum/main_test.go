package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()

	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

func TestRootCommand(t *testing.T) {
	cmd := newRootCommand()
	assert.Equal(t, "meowsum", cmd.Use)

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"sum", "check", "bench", "put", "get", "isa"} {
		assert.True(t, names[want], want)
	}
}

func TestSumStdin(t *testing.T) {
	out, err := run(t, "meow", "sum")
	require.NoError(t, err)
	assert.Equal(t, "2a01af213e51edff887f5b5f785c1d83  -\n", out)

	out, err = run(t, "meow", "sum", "--bits", "32", "-")
	require.NoError(t, err)
	assert.Equal(t, "2a01af21  -\n", out)
}

func TestSumWidthsAgree(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "a.bin", bytes.Repeat([]byte("abc"), 1000))

	var outs []string
	for _, lanes := range []string{"128", "256", "512", "auto"} {
		for _, aligned := range []string{"--aligned=false", "--aligned=true"} {
			out, err := run(t, "", "sum", "--bits", "512", "--lanes", lanes, aligned, "--seed", "7", p)
			require.NoError(t, err)
			outs = append(outs, out)
		}
	}
	for _, o := range outs {
		assert.Equal(t, outs[0], o)
	}
	assert.Len(t, strings.Fields(outs[0])[0], 128)
}

func TestSumMappedFileMatchesStdin(t *testing.T) {
	dir := t.TempDir()
	data := bytes.Repeat([]byte("meow"), 5000)
	p := writeFile(t, dir, "cat.bin", data)
	empty := writeFile(t, dir, "empty.bin", nil)

	fromFile, err := run(t, "", "sum", "--aligned", p)
	require.NoError(t, err)
	fromStdin, err := run(t, string(data), "sum")
	require.NoError(t, err)
	assert.Equal(t, strings.Fields(fromStdin)[0], strings.Fields(fromFile)[0])

	out, err := run(t, "", "sum", empty)
	require.NoError(t, err)
	assert.Equal(t, "343b3d9ff8ff4731461bf8823a42e61f  "+empty+"\n", out)

	_, err = run(t, "", "sum", dir)
	assert.Error(t, err)
}

func TestSumInvalidFlags(t *testing.T) {
	_, err := run(t, "", "sum", "--bits", "48")
	assert.Error(t, err)

	_, err = run(t, "", "sum", "--lanes", "1024")
	assert.Error(t, err)

	_, err = run(t, "", "sum", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("alpha"))
	b := writeFile(t, dir, "b.txt", []byte("beta"))

	var list strings.Builder
	for _, bits := range []string{"32", "64", "128", "256", "512"} {
		out, err := run(t, "", "sum", "--bits", bits, a, b)
		require.NoError(t, err)
		list.WriteString(out)
	}
	sums := writeFile(t, dir, "SUMS", []byte(list.String()))

	out, err := run(t, "", "check", sums)
	require.NoError(t, err)
	assert.Equal(t, 10, strings.Count(out, ": OK"))

	require.NoError(t, os.WriteFile(b, []byte("changed"), 0o644))
	out, err = run(t, "", "check", sums)
	assert.ErrorIs(t, err, errCheckFailed)
	assert.Equal(t, 5, strings.Count(out, ": OK"))
	assert.Equal(t, 5, strings.Count(out, b+": FAILED"))
}

func TestCheckStdinAndSeed(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.txt", []byte("alpha"))

	list, err := run(t, "", "sum", "--seed", "99", a)
	require.NoError(t, err)

	out, err := run(t, list, "check", "--seed", "99", "-")
	require.NoError(t, err)
	assert.Equal(t, a+": OK\n", out)

	_, err = run(t, list, "check", "-")
	assert.ErrorIs(t, err, errCheckFailed)
}

func TestCheckMalformed(t *testing.T) {
	_, err := run(t, "no separator here\n", "check", "-")
	assert.Error(t, err)

	_, err = run(t, "abc  file\n", "check", "-")
	assert.Error(t, err)
}

func TestBench(t *testing.T) {
	out, err := run(t, "", "bench", "--min", "1KiB", "--max", "4KiB", "--runs", "4", "--seed", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "Implementation:")
	assert.Contains(t, out, "THROUGHPUT")
	// 3 sizes x 3 widths plus header.
	lines := strings.Split(strings.TrimSpace(out[strings.Index(out, "SIZE"):]), "\n")
	assert.Len(t, lines, 10)

	_, err = run(t, "", "bench", "--min", "lots")
	assert.Error(t, err)
}

func TestPutGet(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	data := bytes.Repeat([]byte("0123456789abcdef"), 10_000)
	src := writeFile(t, dir, "src.bin", data)

	out, err := run(t, "", "put", "--store", storeDir, "--chunk-size", "16KiB", "--compression", "lz4", src)
	require.NoError(t, err)
	key := strings.TrimSpace(out)
	assert.Len(t, key, 32)

	dst := filepath.Join(dir, "dst.bin")
	_, err = run(t, "", "get", "--store", storeDir, "--chunk-size", "16KiB", "--cache", "1MiB", key, dst)
	require.NoError(t, err)

	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	out, err = run(t, "", "get", "--store", "file://"+storeDir, key)
	require.NoError(t, err)
	assert.Equal(t, string(data), out)

	// The same content stored from stdin resolves to the same key.
	out, err = run(t, string(data), "put", "--store", storeDir, "--chunk-size", "16KiB", "-")
	require.NoError(t, err)
	assert.Equal(t, key, strings.TrimSpace(out))
}

func TestPutMetricsFile(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	metricsFile := filepath.Join(dir, "meowsum.prom")
	src := writeFile(t, dir, "src.bin", bytes.Repeat([]byte("A"), 8*4096))

	_, err := run(t, "", "put", "--store", storeDir, "--chunk-size", "4KiB", "--metrics-file", metricsFile, src)
	require.NoError(t, err)

	raw, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `meowsum_store_chunk_puts_total{result="written"} 1`)
	assert.Contains(t, string(raw), `meowsum_store_chunk_puts_total{result="deduplicated"} 7`)
	assert.Contains(t, string(raw), "meowsum_hash_bytes_total")
}

func TestConfigFromEnv(t *testing.T) {
	p := writeFile(t, t.TempDir(), "a.bin", []byte("meow"))

	want, err := run(t, "", "sum", "--seed", "7", "--bits", "32", p)
	require.NoError(t, err)

	t.Setenv("MEOWSUM_SEED", "7")
	t.Setenv("MEOWSUM_BITS", "32")

	got, err := run(t, "", "sum", p)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Flags on the command line win over the environment.
	out, err := run(t, "", "sum", "--bits", "64", p)
	require.NoError(t, err)
	assert.Len(t, strings.Fields(out)[0], 16)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	storeDir := filepath.Join(dir, "store")
	data := bytes.Repeat([]byte("config"), 5000)
	src := writeFile(t, dir, "src.bin", data)
	cfg := writeFile(t, dir, "meowsum.yaml", []byte(
		"store: \""+filepath.ToSlash(storeDir)+"\"\ncompression: none\nchunk-size: 4KiB\n"))

	out, err := run(t, "", "--config", cfg, "put", src)
	require.NoError(t, err)
	key := strings.TrimSpace(out)

	out, err = run(t, "", "--config", cfg, "get", key)
	require.NoError(t, err)
	assert.Equal(t, string(data), out)

	_, err = run(t, "", "--config", filepath.Join(dir, "missing.yaml"), "sum", src)
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", []byte("bits: lots\n"))
	_, err = run(t, "", "--config", bad, "sum", src)
	assert.Error(t, err)
}

func TestGetErrors(t *testing.T) {
	storeDir := t.TempDir()

	_, err := run(t, "", "get", "--store", storeDir, "not-a-key")
	assert.Error(t, err)

	_, err = run(t, "", "get", "--store", storeDir, strings.Repeat("ab", 16))
	assert.Error(t, err)

	dst := filepath.Join(t.TempDir(), "out")
	_, err = run(t, "", "get", "--store", storeDir, strings.Repeat("ab", 16), dst)
	assert.Error(t, err)
	assert.NoFileExists(t, dst)
}

func TestStoreFlagErrors(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "f", []byte("x"))

	tests := [][]string{
		{"put", src},
		{"put", "--store", dir, "--compression", "brotli", src},
		{"put", "--store", dir, "--chunk-size", "1000", src},
		{"put", "--store", "ftp://host/x", src},
		{"put", "--store", "minio://host", src},
		{"put", "--store", dir, "--log-level", "loud", src},
		{"put", "--store", dir, "--log-format", "xml", src},
	}
	for _, args := range tests {
		_, err := run(t, "", args...)
		assert.Error(t, err, strings.Join(args, " "))
	}
}

func TestISA(t *testing.T) {
	out, err := run(t, "", "isa")
	require.NoError(t, err)

	assert.Contains(t, out, "Active ISA:")
	assert.Contains(t, out, "Kernel for 512-bit lanes:")
	assert.Contains(t, out, "Meow hash 0.1 Alpha")
}

func TestVersion(t *testing.T) {
	out, err := run(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev")
}
