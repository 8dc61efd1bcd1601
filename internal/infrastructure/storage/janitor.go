package storage

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/emotionai/emotion-api/internal/api/metrics"
)

const (
	defaultSweepInterval = 10 * time.Minute
	defaultMaxAge        = time.Hour
)

// Janitor removes uploads left behind by a crashed process. Files younger
// than maxAge may still belong to an in-flight request and are kept.
type Janitor struct {
	dir      string
	interval time.Duration
	maxAge   time.Duration
	log      zerolog.Logger
}

func NewJanitor(dir string, interval, maxAge time.Duration, log zerolog.Logger) *Janitor {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	if maxAge <= 0 {
		maxAge = defaultMaxAge
	}
	return &Janitor{dir: dir, interval: interval, maxAge: maxAge, log: log}
}

// Start sweeps once immediately and then on every tick until ctx is cancelled.
func (j *Janitor) Start(ctx context.Context) {
	go j.run(ctx)
}

func (j *Janitor) run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	j.Sweep(time.Now())
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			j.Sweep(now)
		}
	}
}

// Sweep deletes regular files in the upload dir modified before now-maxAge
// and returns how many were removed.
func (j *Janitor) Sweep(now time.Time) int {
	entries, err := os.ReadDir(j.dir)
	if err != nil {
		j.log.Error().Err(err).Str("dir", j.dir).Msg("upload sweep failed")
		return 0
	}

	cutoff := now.Add(-j.maxAge)
	removed := 0
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(j.dir, e.Name())
		if err := os.Remove(path); err != nil {
			j.log.Warn().Err(err).Str("path", path).Msg("failed to remove stale upload")
			continue
		}
		removed++
	}

	if removed > 0 {
		metrics.StaleUploadsRemovedTotal.Add(float64(removed))
		j.log.Info().Int("removed", removed).Msg("stale uploads removed")
	}
	return removed
}
