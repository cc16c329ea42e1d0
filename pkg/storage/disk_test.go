package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskUploader_WritesUnderRoot(t *testing.T) {
	root := t.TempDir()
	up, err := NewDiskUploader(root)
	require.NoError(t, err)

	ref, err := up.UploadBytes(context.Background(), "profile_pics", "me.png", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "me.png", ref)

	b, err := os.ReadFile(filepath.Join(root, "profile_pics", "me.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), b)
}

func TestDiskUploader_RejectsPathComponents(t *testing.T) {
	up, err := NewDiskUploader(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "../escape.png", "a/b.png"} {
		_, err := up.UploadBytes(context.Background(), "profile_pics", name, []byte("img"))
		assert.Error(t, err, "filename %q must be rejected", name)
	}
}

func TestNewDiskUploader_RequiresRoot(t *testing.T) {
	_, err := NewDiskUploader("")
	assert.Error(t, err)
}
