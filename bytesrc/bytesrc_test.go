package bytesrc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemorySourceReadAdvancesCursor(t *testing.T) {
	src := NewMemorySource([]byte("hello world"), 4)
	assert.Equal(t, int64(11), src.TotalSize())

	buf := make([]byte, 5)
	require.NoError(t, src.Read(buf, 5))
	assert.Equal(t, "hello", string(buf))
	assert.Equal(t, int64(5), src.BytesRead())

	buf2 := make([]byte, 6)
	require.NoError(t, src.Read(buf2, 6))
	assert.Equal(t, " world", string(buf2))
}

func TestMemorySourceReadPastEndFails(t *testing.T) {
	src := NewMemorySource([]byte("abc"), 0)
	buf := make([]byte, 4)
	assert.ErrorIs(t, src.Read(buf, 4), ErrShortRead)
}

func TestMemorySourceReadViewHasPadSlack(t *testing.T) {
	src := NewMemorySource([]byte("0123456789"), 8)
	view, err := src.ReadView(4, 8)
	require.NoError(t, err)
	assert.Equal(t, "0123", string(view))
	assert.Equal(t, 4, len(view))
	assert.GreaterOrEqual(t, cap(view), 4+8)
}

func TestMemorySourceReset(t *testing.T) {
	src := NewMemorySource([]byte("abcdef"), 0)
	buf := make([]byte, 3)
	require.NoError(t, src.Read(buf, 3))
	assert.Equal(t, int64(3), src.BytesRead())
	src.Reset()
	assert.Equal(t, int64(0), src.BytesRead())
	require.NoError(t, src.Read(buf, 3))
	assert.Equal(t, "abc", string(buf))
}

func TestBorrowedSourceDoesNotCopy(t *testing.T) {
	data := []byte("shared-bytes")
	src := NewBorrowedSource(data)
	data[0] = 'S'
	buf := make([]byte, 6)
	require.NoError(t, src.Read(buf, 6))
	assert.Equal(t, "Shared", string(buf))
}

func TestOpenFileReadsContents(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "blob.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xde, 0xad, 0xbe, 0xef}, 0o644))

	src, err := OpenFile(path, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), src.TotalSize())

	buf := make([]byte, 4)
	require.NoError(t, src.Read(buf, 4))
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, buf)
}

func TestOpenFileMissingFails(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "missing.bin"), 0)
	assert.Error(t, err)
}
