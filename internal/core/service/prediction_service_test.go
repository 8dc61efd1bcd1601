package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emotionai/emotion-api/internal/core/domain"
	"github.com/emotionai/emotion-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

// diskUploads writes real files so tests can assert on cleanup.
type diskUploads struct {
	dir       string
	saved     []string
	removeErr error
}

func (u *diskUploads) Save(originalName string, r io.Reader) (string, string, error) {
	name := "1700000000000-" + filepath.Base(originalName)
	path := filepath.Join(u.dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", "", err
	}
	u.saved = append(u.saved, path)
	return name, path, nil
}

func (u *diskUploads) Remove(path string) error {
	if u.removeErr != nil {
		return u.removeErr
	}
	return os.Remove(path)
}

type stubClassifier struct {
	result *ports.Classification
	err    error
	paths  []string
}

func (c *stubClassifier) Classify(_ context.Context, path string) (*ports.Classification, error) {
	c.paths = append(c.paths, path)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return c.result, c.err
}

type stubPredictionRepo struct {
	created   []*domain.Prediction
	list      []domain.Prediction
	count     int64
	createErr error
	listErr   error
	listCalls int
}

func (r *stubPredictionRepo) Create(_ context.Context, p *domain.Prediction) error {
	if r.createErr != nil {
		return r.createErr
	}
	p.ID = "pred-1"
	clone := *p
	r.created = append(r.created, &clone)
	return nil
}

func (r *stubPredictionRepo) ListByUsername(_ context.Context, _ string) ([]domain.Prediction, error) {
	r.listCalls++
	return r.list, r.listErr
}

func (r *stubPredictionRepo) CountByUsername(_ context.Context, _ string) (int64, error) {
	return r.count, r.listErr
}

type stubCache struct {
	entries     map[string]*domain.Report
	invalidated []string
}

func newStubCache() *stubCache { return &stubCache{entries: make(map[string]*domain.Report)} }

func (c *stubCache) Get(username string) (*domain.Report, bool) {
	r, ok := c.entries[username]
	return r, ok
}

func (c *stubCache) Set(username string, r *domain.Report) { c.entries[username] = r }

func (c *stubCache) Invalidate(username string) {
	delete(c.entries, username)
	c.invalidated = append(c.invalidated, username)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func happyClassification() *ports.Classification {
	return &ports.Classification{
		Emotion: "happiness",
		Probabilities: domain.Probabilities{
			domain.EmotionHappiness: 0.9,
			domain.EmotionSadness:   0.02,
			domain.EmotionFear:      0.02,
			domain.EmotionAnger:     0.02,
			domain.EmotionNeutral:   0.02,
			domain.EmotionSurprise:  0.01,
			domain.EmotionDisgust:   0.01,
		},
		Extra: map[string]any{"confidence": 0.9},
	}
}

func validInput() ports.PredictInput {
	return ports.PredictInput{
		Username: "u1",
		Name:     "Alice",
		Age:      "30",
		File: &ports.AudioUpload{
			Filename:    "clip.wav",
			ContentType: "audio/wav",
			Size:        4,
			Content:     strings.NewReader("RIFF"),
		},
	}
}

type predictionFixture struct {
	svc        *PredictionService
	uploads    *diskUploads
	classifier *stubClassifier
	repo       *stubPredictionRepo
	cache      *stubCache
}

func newPredictionFixture(t *testing.T) *predictionFixture {
	t.Helper()
	f := &predictionFixture{
		uploads:    &diskUploads{dir: t.TempDir()},
		classifier: &stubClassifier{result: happyClassification()},
		repo:       &stubPredictionRepo{},
		cache:      newStubCache(),
	}
	f.svc = NewPredictionService(PredictionDeps{
		Uploads:    f.uploads,
		Classifier: f.classifier,
		Repo:       f.repo,
		Cache:      f.cache,
	}, zerolog.Nop())
	f.svc.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return f
}

func assertUploadsRemoved(t *testing.T, u *diskUploads) {
	t.Helper()
	for _, p := range u.saved {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("expected %s to be removed, stat err: %v", p, err)
		}
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestPredictionService_Predict_RoundTrip(t *testing.T) {
	f := newPredictionFixture(t)

	res, err := f.svc.Predict(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.Emotion != domain.EmotionHappiness || res.Confidence != 0.9 {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.PredictionID != "pred-1" {
		t.Errorf("expected stored id, got %q", res.PredictionID)
	}
	if !res.Timestamp.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("unexpected timestamp: %v", res.Timestamp)
	}
	if res.Extra["confidence"] != 0.9 {
		t.Errorf("expected upstream extras to pass through, got %v", res.Extra)
	}

	if len(f.repo.created) != 1 {
		t.Fatalf("expected one stored prediction, got %d", len(f.repo.created))
	}
	stored := f.repo.created[0]
	if stored.Emotion != domain.EmotionHappiness || stored.Confidence != 0.9 {
		t.Errorf("stored prediction mismatch: %+v", stored)
	}
	if stored.Confidence != stored.Probs.Max() {
		t.Errorf("confidence %v != max probability %v", stored.Confidence, stored.Probs.Max())
	}
	if stored.Username != "u1" || stored.SubjectName != "Alice" || stored.SubjectAge != 30 {
		t.Errorf("identity fields not stored: %+v", stored)
	}
	if stored.File != "1700000000000-clip.wav" {
		t.Errorf("unexpected stored file name: %s", stored.File)
	}

	assertUploadsRemoved(t, f.uploads)
	if len(f.cache.invalidated) != 1 || f.cache.invalidated[0] != "u1" {
		t.Errorf("expected report cache invalidated for u1, got %v", f.cache.invalidated)
	}
}

func TestPredictionService_Predict_Validation(t *testing.T) {
	cases := map[string]func(in *ports.PredictInput){
		"missing username": func(in *ports.PredictInput) { in.Username = "" },
		"missing name":     func(in *ports.PredictInput) { in.Name = "" },
		"missing age":      func(in *ports.PredictInput) { in.Age = "" },
		"missing file":     func(in *ports.PredictInput) { in.File = nil },
		"age not a number": func(in *ports.PredictInput) { in.Age = "thirty" },
		"age too low":      func(in *ports.PredictInput) { in.Age = "0" },
		"age too high":     func(in *ports.PredictInput) { in.Age = "151" },
		"file too large":   func(in *ports.PredictInput) { in.File.Size = DefaultMaxUploadBytes + 1 },
		"not audio": func(in *ports.PredictInput) {
			in.File.Filename = "notes.txt"
			in.File.ContentType = "text/plain"
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			f := newPredictionFixture(t)
			in := validInput()
			mutate(&in)

			_, err := f.svc.Predict(context.Background(), in)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(f.classifier.paths) != 0 {
				t.Errorf("classifier should not be called")
			}
			if len(f.uploads.saved) != 0 {
				t.Errorf("nothing should be written to disk")
			}
		})
	}
}

func TestPredictionService_Predict_AcceptsOctetStreamRecording(t *testing.T) {
	f := newPredictionFixture(t)
	in := validInput()
	in.File.Filename = "blob"
	in.File.ContentType = "application/octet-stream"

	if _, err := f.svc.Predict(context.Background(), in); err != nil {
		t.Fatalf("expected octet-stream upload to be accepted, got %v", err)
	}
}

func TestPredictionService_Predict_UpstreamFailureRemovesFile(t *testing.T) {
	f := newPredictionFixture(t)
	f.classifier.err = errors.New("connection refused")
	f.classifier.result = nil

	_, err := f.svc.Predict(context.Background(), validInput())
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if len(f.repo.created) != 0 {
		t.Errorf("nothing should be persisted on upstream failure")
	}
	assertUploadsRemoved(t, f.uploads)
}

func TestPredictionService_Predict_InconsistentUpstreamLabel(t *testing.T) {
	f := newPredictionFixture(t)
	f.classifier.result.Emotion = "anger"

	_, err := f.svc.Predict(context.Background(), validInput())
	if !errors.Is(err, domain.ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	assertUploadsRemoved(t, f.uploads)
}

func TestPredictionService_Predict_PersistenceFailure(t *testing.T) {
	f := newPredictionFixture(t)
	f.repo.createErr = domain.ErrPersistence

	_, err := f.svc.Predict(context.Background(), validInput())
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	if len(f.cache.invalidated) != 0 {
		t.Errorf("cache should not be invalidated when nothing was stored")
	}
	assertUploadsRemoved(t, f.uploads)
}

func TestPredictionService_Predict_RemoveFailureIsNotSurfaced(t *testing.T) {
	f := newPredictionFixture(t)
	f.uploads.removeErr = errors.New("permission denied")

	if _, err := f.svc.Predict(context.Background(), validInput()); err != nil {
		t.Fatalf("remove failure must not fail the request, got %v", err)
	}
}

func TestPredictionService_Predict_ProbeRejectsFile(t *testing.T) {
	f := newPredictionFixture(t)
	f.svc.probe = func(string) (*domain.AudioInfo, error) { return nil, errors.New("invalid WAV file format") }

	_, err := f.svc.Predict(context.Background(), validInput())
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(f.classifier.paths) != 0 {
		t.Errorf("classifier should not be called for a rejected file")
	}
	assertUploadsRemoved(t, f.uploads)
}

func TestPredictionService_Predict_StoresProbedAudioInfo(t *testing.T) {
	f := newPredictionFixture(t)
	info := &domain.AudioInfo{Format: "wav", SampleRate: 22050, Channels: 1, BitDepth: 16, DurationSeconds: 2.5}
	f.svc.probe = func(string) (*domain.AudioInfo, error) { return info, nil }

	if _, err := f.svc.Predict(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.repo.created[0].Audio == nil || f.repo.created[0].Audio.SampleRate != 22050 {
		t.Errorf("expected audio info to be stored, got %+v", f.repo.created[0].Audio)
	}
}
