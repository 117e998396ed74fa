package storage

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	_, fileHeader, err := req.FormFile("image")
	require.NoError(t, err)
	return fileHeader
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestNewStoreCreatesNamespaces(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	_, err := NewStore(root)
	require.NoError(t, err)

	for _, ns := range []string{NamespaceMemories, NamespacePreviews} {
		info, err := os.Stat(filepath.Join(root, ns))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestSaveWritesFileAndReturnsRelativePath(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	store, err := NewStore(root)
	require.NoError(t, err)

	file := newFileHeader(t, "photo.png", "image/png", []byte("png-bytes"))
	savedPath, err := store.Save(NamespaceMemories, file)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(savedPath, "uploads/memories/"))
	assert.True(t, strings.HasSuffix(savedPath, ".png"))

	diskPath := filepath.Join(root, NamespaceMemories, filepath.Base(savedPath))
	data, err := os.ReadFile(diskPath)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 10; i++ {
		file := newFileHeader(t, "same-name.jpg", "image/jpeg", []byte("x"))
		savedPath, err := store.Save(NamespaceMemories, file)
		require.NoError(t, err)
		assert.False(t, seen[savedPath], "duplicate path %s", savedPath)
		seen[savedPath] = true
	}
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	store, err := NewStore(root)
	require.NoError(t, err)

	file := newFileHeader(t, "notes.txt", "text/plain", []byte("hi"))
	_, err = store.Save(NamespaceMemories, file)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Empty(t, listFiles(t, filepath.Join(root, NamespaceMemories)))
}

func TestSaveRejectsMismatchedMime(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	store, err := NewStore(root)
	require.NoError(t, err)

	// Image extension but a non-image declared type.
	file := newFileHeader(t, "script.png", "application/octet-stream", []byte("hi"))
	_, err = store.Save(NamespaceMemories, file)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Empty(t, listFiles(t, filepath.Join(root, NamespaceMemories)))
}

func TestSaveRejectsOversizeFileWithoutPartialWrite(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	store, err := NewStore(root)
	require.NoError(t, err)

	file := newFileHeader(t, "big.png", "image/png", make([]byte, MaxUploadBytes+1))
	_, err = store.Save(NamespaceMemories, file)
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.Empty(t, listFiles(t, filepath.Join(root, NamespaceMemories)))
}

func TestRemoveDeletesFile(t *testing.T) {
	root := filepath.Join(t.TempDir(), "uploads")
	store, err := NewStore(root)
	require.NoError(t, err)

	file := newFileHeader(t, "photo.gif", "image/gif", []byte("gif"))
	savedPath, err := store.Save(NamespacePreviews, file)
	require.NoError(t, err)

	require.NoError(t, store.Remove(savedPath))
	assert.Empty(t, listFiles(t, filepath.Join(root, NamespacePreviews)))
}

func TestRemoveMissingFileIsNoOp(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	assert.NoError(t, store.Remove("uploads/memories/does-not-exist.png"))
}

func TestRemoveRejectsPathOutsideRoot(t *testing.T) {
	store, err := NewStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	assert.Error(t, store.Remove("uploads/../../etc/passwd"))
}
