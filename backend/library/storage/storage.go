// Package storage persists uploaded images under a namespaced uploads root
// and hands back stable relative paths suitable for serving from /uploads.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// NamespaceMemories holds photos attached to the submission form.
	NamespaceMemories = "memories"
	// NamespacePreviews holds rendered preview cards uploaded after creation.
	NamespacePreviews = "previews"

	// MaxUploadBytes caps a single uploaded file at 10 MiB.
	MaxUploadBytes = 10 << 20

	publicPrefix = "uploads"
)

var (
	ErrUnsupportedType = errors.New("only image files are allowed")
	ErrTooLarge        = errors.New("file exceeds the maximum upload size")
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

var allowedImageMimes = []string{"jpeg", "jpg", "png", "gif"}

// Store is a local-disk file store rooted at a single uploads directory.
type Store struct {
	root string
}

// NewStore creates the uploads root and its namespace directories.
func NewStore(root string) (*Store, error) {
	for _, ns := range []string{NamespaceMemories, NamespacePreviews} {
		if err := os.MkdirAll(filepath.Join(root, ns), 0o755); err != nil {
			return nil, fmt.Errorf("create upload directory %s: %w", ns, err)
		}
	}
	return &Store{root: root}, nil
}

// Root returns the on-disk uploads root the store writes under.
func (s *Store) Root() string {
	return s.root
}

// Save writes an uploaded file into the given namespace and returns its
// public relative path ("uploads/<namespace>/<name>"). The file is rejected
// before anything touches disk when its declared type is not an allowed image
// format or its size exceeds MaxUploadBytes. Generated names carry a
// timestamp plus a random suffix, so concurrent uploads never collide.
func (s *Store) Save(namespace string, file *multipart.FileHeader) (string, error) {
	if file.Size > MaxUploadBytes {
		return "", ErrTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] || !allowedImageMime(file.Header.Get("Content-Type")) {
		return "", ErrUnsupportedType
	}

	name := fmt.Sprintf("image-%d-%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
	diskPath := filepath.Join(s.root, namespace, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(diskPath)
	if err != nil {
		return "", fmt.Errorf("create file %s: %w", diskPath, err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(diskPath)
		return "", fmt.Errorf("write file %s: %w", diskPath, err)
	}

	return path.Join(publicPrefix, namespace, name), nil
}

// Remove deletes the file behind a public relative path. A missing file is a
// no-op, not an error.
func (s *Store) Remove(relativePath string) error {
	diskPath, err := s.diskPath(relativePath)
	if err != nil {
		return err
	}
	if err := os.Remove(diskPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove file %s: %w", diskPath, err)
	}
	return nil
}

// diskPath maps "uploads/<namespace>/<name>" back onto the store root,
// refusing anything that would escape it.
func (s *Store) diskPath(relativePath string) (string, error) {
	rel := strings.TrimPrefix(path.Clean(relativePath), publicPrefix+"/")
	diskPath := filepath.Join(s.root, filepath.FromSlash(rel))
	cleanRoot := filepath.Clean(s.root)
	if !strings.HasPrefix(filepath.Clean(diskPath), cleanRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid file path %q", relativePath)
	}
	return diskPath, nil
}

func allowedImageMime(contentType string) bool {
	for _, t := range allowedImageMimes {
		if strings.Contains(contentType, t) {
			return true
		}
	}
	return false
}
