package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

var errInvalidWAV = errors.New("invalid WAV file format")

// ProbeAudio reads the header of a WAV upload. Other formats are passed
// through to the classifier uninspected and yield nil info.
func ProbeAudio(path string) (*domain.AudioInfo, error) {
	if !strings.EqualFold(filepath.Ext(path), ".wav") {
		return nil, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio: %w", err)
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	decoder.ReadInfo()
	if !decoder.IsValidFile() {
		return nil, errInvalidWAV
	}

	info := &domain.AudioInfo{
		Format:     "wav",
		SampleRate: int(decoder.SampleRate),
		Channels:   int(decoder.NumChans),
		BitDepth:   int(decoder.BitDepth),
	}

	if err := decoder.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidWAV, err)
	}
	bytesPerSecond := info.SampleRate * info.Channels * info.BitDepth / 8
	if bytesPerSecond > 0 {
		info.DurationSeconds = float64(decoder.PCMLen()) / float64(bytesPerSecond)
	}
	return info, nil
}
