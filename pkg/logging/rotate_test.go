package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatingFile_CreatesDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "dir", "x.log")
	rf, err := NewRotatingFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rf.Close() })

	_, err = rf.Write([]byte("line\n"))
	require.NoError(t, err)
	assert.Equal(t, path, rf.Path())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(content))
}

func TestRotatingFile_AppendsToExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "x.log")
	require.NoError(t, os.WriteFile(path, []byte("old\n"), 0o600))

	rf, err := NewRotatingFile(path, WithMaxSize(100))
	require.NoError(t, err)
	_, err = rf.Write([]byte("new\n"))
	require.NoError(t, err)
	require.NoError(t, rf.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old\nnew\n", string(content))
}

func TestRotatingFile_Rotates(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "x.log")
	rf, err := NewRotatingFile(path, WithMaxSize(10), WithMaxBackups(2))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rf.Close() })

	for _, chunk := range []string{"aaaaaaaa", "bbbbbbbb", "cccccccc", "dddddddd"} {
		_, err := rf.Write([]byte(chunk))
		require.NoError(t, err)
	}

	read := func(p string) string {
		t.Helper()
		b, err := os.ReadFile(p)
		require.NoError(t, err)
		return string(b)
	}
	assert.Equal(t, "dddddddd", read(path))
	assert.Equal(t, "cccccccc", read(path+".1"))
	assert.Equal(t, "bbbbbbbb", read(path+".2"))
	assert.NoFileExists(t, path+".3")
}

func TestRotatingFile_OversizedWrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "x.log")
	rf, err := NewRotatingFile(path, WithMaxSize(4))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rf.Close() })

	big := bytes.Repeat([]byte("z"), 16)
	n, err := rf.Write(big)
	require.NoError(t, err)
	assert.Equal(t, len(big), n)
	assert.NoFileExists(t, path+".1")
}

func TestRotatingFile_NoBackups(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "x.log")
	rf, err := NewRotatingFile(path, WithMaxSize(4), WithMaxBackups(0))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rf.Close() })

	_, err = rf.Write([]byte("abc"))
	require.NoError(t, err)
	_, err = rf.Write([]byte("def"))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "def", string(content))
	assert.NoFileExists(t, path+".1")
}

func TestRotatingFile_WriteAfterClose(t *testing.T) {
	t.Parallel()

	rf, err := NewRotatingFile(filepath.Join(t.TempDir(), "x.log"))
	require.NoError(t, err)
	require.NoError(t, rf.Close())
	require.NoError(t, rf.Close())

	_, err = rf.Write([]byte("late"))
	require.ErrorIs(t, err, os.ErrClosed)
}
