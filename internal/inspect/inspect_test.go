package inspect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileNotFound(t *testing.T) {
	_, err := File(filepath.Join(t.TempDir(), "does-not-exist.txt"))

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Contains(t, err.Error(), "File not found")
}

func TestFileRejectsDirectory(t *testing.T) {
	_, err := File(t.TempDir())

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello perplexity\n"), 0644))

	fc, err := File(path)
	require.NoError(t, err)

	assert.Equal(t, path, fc.Path)
	assert.NotEmpty(t, fc.Type)
	assert.NotEmpty(t, fc.Size)
	assert.NotEmpty(t, fc.Created)
}

func TestCommandUnknown(t *testing.T) {
	cc := Command("px-test-no-such-command-xyzzy")

	assert.Equal(t, "px-test-no-such-command-xyzzy", cc.Name)
	assert.Empty(t, cc.Type)
	assert.False(t, cc.ManPage)
}

func TestCommandKnown(t *testing.T) {
	// sh is required by POSIX, so resolution should succeed everywhere the
	// tests run; man presence is environment-dependent and not asserted.
	cc := Command("sh")

	assert.Equal(t, "sh", cc.Name)
	assert.Contains(t, cc.Type, "sh")
}
