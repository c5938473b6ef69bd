package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupported(t *testing.T) {
	assert.True(t, Supported("text/plain"))
	assert.True(t, Supported("application/pdf"))
	assert.False(t, Supported("application/json"))
	assert.False(t, Supported("image/png"))
	assert.False(t, Supported(""))
}

func TestText(t *testing.T) {
	t.Run("content is returned byte for byte", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		// Whitespace must survive: offsets anchor into this exact string.
		raw := "Hello world\n\n  indented line\ttab"
		require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

		content, err := Text(path)
		assert.NoError(t, err)
		assert.Equal(t, raw, content)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Text(filepath.Join(t.TempDir(), "absent.txt"))
		assert.Error(t, err)
	})
}

func TestPDFInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o600))

	_, err := PDF(path)
	assert.Error(t, err)
}

func TestPDFMissingFile(t *testing.T) {
	_, err := PDF(filepath.Join(t.TempDir(), "absent.pdf"))
	assert.Error(t, err)
}
