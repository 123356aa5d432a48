package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"cmms/internal/core/domain"
	"cmms/internal/core/ports"
)

const attachmentsDir = "attachments"

// FileStore keeps attachment files under a media root. Names are
// slash-separated and relative to the root, e.g. attachments/<uuid>/plan.pdf.
type FileStore struct {
	root string
}

var _ ports.BlobStore = (*FileStore)(nil)

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) Save(_ context.Context, filename string, content []byte) (string, error) {
	base := filepath.Base(filepath.Clean("/" + strings.ReplaceAll(filename, `\`, "/")))
	if base == "/" || base == "." {
		return "", fmt.Errorf("storage: invalid filename %q", filename)
	}

	name := path.Join(attachmentsDir, uuid.NewString(), base)
	full := s.resolve(name)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return "", err
	}
	if err := os.WriteFile(full, content, 0o640); err != nil {
		return "", err
	}
	return name, nil
}

func (s *FileStore) Read(_ context.Context, name string) ([]byte, error) {
	content, err := os.ReadFile(s.resolve(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", domain.ErrAttachmentNotFound, name)
	}
	return content, err
}

// Delete removes the file and its per-upload directory. A missing file is not an error.
func (s *FileStore) Delete(_ context.Context, name string) error {
	full := s.resolve(name)
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	dir := filepath.Dir(full)
	if dir != s.resolve(attachmentsDir) {
		_ = os.Remove(dir)
	}
	return nil
}

// resolve maps a stored name into the root; ".." segments cannot escape it.
func (s *FileStore) resolve(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(path.Clean("/"+name)))
}
