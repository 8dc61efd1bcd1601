package ports

import (
	"io"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

// UploadStore holds uploaded audio on local disk for the duration of a relay.
type UploadStore interface {
	// Save writes r under a generated name and returns that name and its full path.
	Save(originalName string, r io.Reader) (name, path string, err error)
	Remove(path string) error
}

// AudioProber extracts format metadata. It returns nil info for formats it
// does not inspect.
type AudioProber func(path string) (*domain.AudioInfo, error)
