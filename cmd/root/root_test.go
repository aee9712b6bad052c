package root

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests replace the default slog logger, so they do not run in parallel.

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// logview runs the CLI with an isolated config file.
func logview(t *testing.T, stdin io.Reader, args ...string) (string, string, error) {
	t.Helper()

	if stdin == nil {
		stdin = strings.NewReader("")
	}
	args = append([]string{"--config", filepath.Join(t.TempDir(), "config.yaml")}, args...)

	var stdout, stderr syncBuffer
	err := Execute(t.Context(), stdin, &stdout, &stderr, args...)
	return stdout.String(), stderr.String(), err
}

func TestView_PlainFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.log", "a bb ccc\ndddd e\n")

	stdout, _, err := logview(t, nil, path)
	require.NoError(t, err)
	assert.Equal(t, "a     bb  ccc\ndddd  e\n", stdout)
}

func TestView_Stdin(t *testing.T) {
	for _, args := range [][]string{{"-p", "csv"}, {"-p", "csv", "-"}} {
		stdout, _, err := logview(t, strings.NewReader("x,y\n# comment\n1,2\n"), args...)
		require.NoError(t, err)
		assert.Equal(t, "x  y\n1  2\n", stdout)
	}
}

func TestView_ParserAlias(t *testing.T) {
	stdout, _, err := logview(t, strings.NewReader("ERROR: disk full\nno level\n"), "--parser", "level", "--plain")
	require.NoError(t, err)
	assert.Equal(t, "ERROR  disk full\n       no level\n", stdout)
}

func TestView_MissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.log")

	stdout, stderr, err := logview(t, nil, missing)
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "logview: cannot open input")
	assert.Contains(t, stderr, missing)
}

func TestView_InvalidFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown parser", []string{"-p", "xml"}, `unknown parser "xml"`},
		{"unknown theme", []string{"--theme", "neon"}, `unknown theme "neon"`},
		{"zero fps", []string{"--fps", "0"}, "--fps must be positive"},
		{"negative width", []string{"--max-column-width", "-1"}, "--max-column-width must not be negative"},
		{"too many files", []string{"a", "b"}, "accepts at most 1 arg(s), received 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := logview(t, nil, tt.args...)
			require.ErrorContains(t, err, tt.wantErr)
			assert.Contains(t, stderr, tt.wantErr)
		})
	}
}

func TestView_MaxColumnWidth(t *testing.T) {
	stdout, _, err := logview(t, strings.NewReader("bravo c\nab d\n"), "--max-column-width", "3")
	require.NoError(t, err)
	assert.Equal(t, "br…  c\nab   d\n", stdout)
}

func TestView_ConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	config := writeFile(t, dir, "config.yaml", "parser: csv\nmax_column_width: 2\n")

	var stdout syncBuffer
	err := Execute(t.Context(), strings.NewReader("abc,d e\n"), &stdout, io.Discard, "--config", config)
	require.NoError(t, err)
	assert.Equal(t, "a…  d…\n", stdout.String())

	var overridden syncBuffer
	err = Execute(t.Context(), strings.NewReader("abc,d e\n"), &overridden, io.Discard, "--config", config, "-p", "spaces", "--max-column-width", "0")
	require.NoError(t, err)
	assert.Equal(t, "abc,d  e\n", overridden.String())
}

func TestView_InvalidConfig(t *testing.T) {
	tests := map[string]string{
		"parser: xml\n": `unknown parser "xml"`,
		"theme: neon\n": `unknown theme "neon"`,
	}

	for content, want := range tests {
		config := writeFile(t, t.TempDir(), "config.yaml", content)

		err := Execute(t.Context(), strings.NewReader(""), io.Discard, io.Discard, "--config", config)
		require.ErrorContains(t, err, "invalid config file", content)
		require.ErrorContains(t, err, want, content)
	}
}

func TestView_Follow(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.log", "one 1\n")

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()

	var stdout syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- Execute(ctx, strings.NewReader(""), &stdout, io.Discard,
			"--config", filepath.Join(t.TempDir(), "config.yaml"), "--follow", "--fps", "50", path)
	}()

	require.Eventually(t, func() bool {
		return stdout.String() == "one  1\n"
	}, 5*time.Second, 10*time.Millisecond)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("two 2\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return stdout.String() == "one  1\ntwo  2\n"
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("logview did not stop after cancellation")
	}
}

func TestVersion(t *testing.T) {
	stdout, _, err := logview(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, "logview version dev\nCommit: unknown\n", stdout)
}

func TestParsers(t *testing.T) {
	stdout, _, err := logview(t, nil, "parsers")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.True(t, strings.HasPrefix(lines[0], "NAME"))
	for i, name := range []string{"spaces", "tsv", "csv", "level-message", "journal-json", "raw"} {
		assert.True(t, strings.HasPrefix(lines[i+1], name+" "), lines[i+1])
	}
	assert.Contains(t, stdout, "journalctl -o json output")
}

func TestUnknownCommandShowsError(t *testing.T) {
	_, stderr, err := logview(t, nil, "version", "extra")
	require.Error(t, err)
	assert.Contains(t, stderr, "logview:")
}

func TestRuntimeError(t *testing.T) {
	cause := os.ErrPermission
	err := RuntimeError{Err: cause}

	assert.Equal(t, cause.Error(), err.Error())
	require.ErrorIs(t, err, os.ErrPermission)

	var stderr bytes.Buffer
	assert.Equal(t, err, processErr(t.Context(), err, &stderr, NewRootCmd()))
	assert.Empty(t, stderr.String(), "runtime errors are reported by the command itself")
}
