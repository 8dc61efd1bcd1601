package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const maxNameAttempts = 5

// UploadStore keeps uploaded recordings on local disk until the relay
// finishes with them.
type UploadStore struct {
	dir string
	now func() time.Time
}

// NewUploadStore creates dir if missing.
func NewUploadStore(dir string) (*UploadStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("upload dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadStore{dir: dir, now: time.Now}, nil
}

// Dir returns the directory uploads are written to.
func (s *UploadStore) Dir() string { return s.dir }

// Save writes r as "<unix millis>-<original base name>". Concurrent uploads
// landing on the same millisecond get a numeric suffix after the timestamp.
func (s *UploadStore) Save(originalName string, r io.Reader) (string, string, error) {
	base := safeFilename(originalName)
	stamp := s.now().UnixMilli()

	var (
		name string
		out  *os.File
		err  error
	)
	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name = fmt.Sprintf("%d-%s", stamp, base)
		if attempt > 0 {
			name = fmt.Sprintf("%d-%d-%s", stamp, attempt, base)
		}
		out, err = os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil || !errors.Is(err, os.ErrExist) {
			break
		}
	}
	if err != nil {
		return "", "", fmt.Errorf("create file: %w", err)
	}

	path := out.Name()
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		_ = os.Remove(path)
		return "", "", fmt.Errorf("write file: %w", err)
	}
	if err := out.Close(); err != nil {
		_ = os.Remove(path)
		return "", "", fmt.Errorf("close file: %w", err)
	}
	return name, path, nil
}

// Remove deletes path. A file that is already gone is not an error.
func (s *UploadStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func safeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" {
		return "audio"
	}
	return name
}
