package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/emotionai/emotion-api/internal/api/metrics"
	"github.com/emotionai/emotion-api/internal/core/domain"
	"github.com/emotionai/emotion-api/internal/core/ports"
)

const DefaultMaxUploadBytes = 10 << 20

var audioExtensions = regexp.MustCompile(`(?i)\.(wav|mp3|ogg|flac|m4a|aac|webm|opus)$`)

// PredictionService relays an uploaded recording to the classifier and stores
// the outcome.
type PredictionService struct {
	uploads    ports.UploadStore
	probe      ports.AudioProber
	classifier ports.Classifier
	repo       ports.PredictionRepository
	cache      ports.ReportCache
	maxBytes   int64
	logger     zerolog.Logger
	now        func() time.Time
}

// PredictionDeps groups the collaborators of PredictionService. Probe and
// Cache are optional.
type PredictionDeps struct {
	Uploads        ports.UploadStore
	Probe          ports.AudioProber
	Classifier     ports.Classifier
	Repo           ports.PredictionRepository
	Cache          ports.ReportCache
	MaxUploadBytes int64
}

func NewPredictionService(deps PredictionDeps, logger zerolog.Logger) *PredictionService {
	if deps.MaxUploadBytes <= 0 {
		deps.MaxUploadBytes = DefaultMaxUploadBytes
	}
	return &PredictionService{
		uploads:    deps.Uploads,
		probe:      deps.Probe,
		classifier: deps.Classifier,
		repo:       deps.Repo,
		cache:      deps.Cache,
		maxBytes:   deps.MaxUploadBytes,
		logger:     logger,
		now:        time.Now,
	}
}

// Predict validates the request, saves the file, asks the classifier for a
// label and persists the prediction. The saved file is removed on every path.
func (s *PredictionService) Predict(ctx context.Context, in ports.PredictInput) (*ports.PredictResult, error) {
	age, err := s.validate(in)
	if err != nil {
		metrics.PredictionErrorsTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	filename, path, err := s.uploads.Save(in.File.Filename, in.File.Content)
	if err != nil {
		metrics.PredictionErrorsTotal.WithLabelValues("upload").Inc()
		return nil, fmt.Errorf("save upload: %w", err)
	}
	defer s.discard(path)

	var audio *domain.AudioInfo
	if s.probe != nil {
		audio, err = s.probe(path)
		if err != nil {
			s.logger.Debug().Err(err).Str("file", filename).Msg("audio probe rejected upload")
			metrics.PredictionErrorsTotal.WithLabelValues("validation").Inc()
			return nil, domain.NewValidationError("Uploaded audio file is not a valid WAV file")
		}
	}

	cls, err := s.classifier.Classify(ctx, path)
	if err != nil {
		metrics.PredictionErrorsTotal.WithLabelValues("upstream").Inc()
		if !errors.Is(err, domain.ErrUpstream) {
			err = fmt.Errorf("%w: %v", domain.ErrUpstream, err)
		}
		return nil, err
	}

	emotion, confidence, err := domain.Classify(cls.Emotion, cls.Probabilities)
	if err != nil {
		metrics.PredictionErrorsTotal.WithLabelValues("upstream").Inc()
		s.logger.Warn().Err(err).Str("label", cls.Emotion).Msg("inconsistent response from prediction service")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	pred := &domain.Prediction{
		Username:    in.Username,
		SubjectName: in.Name,
		SubjectAge:  age,
		Emotion:     emotion,
		Probs:       cls.Probabilities,
		Confidence:  confidence,
		File:        filename,
		Audio:       audio,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, pred); err != nil {
		metrics.PredictionErrorsTotal.WithLabelValues("persistence").Inc()
		return nil, err
	}
	metrics.PredictionsTotal.WithLabelValues(string(emotion)).Inc()
	metrics.PredictionConfidence.Observe(confidence)
	if s.cache != nil {
		s.cache.Invalidate(in.Username)
	}

	s.logger.Info().
		Str("username", in.Username).
		Str("prediction_id", pred.ID).
		Str("emotion", string(emotion)).
		Str("confidence", fmt.Sprintf("%.1f%%", confidence*100)).
		Msg("emotion predicted")

	return &ports.PredictResult{
		Emotion:       emotion,
		Probabilities: pred.Probs,
		PredictionID:  pred.ID,
		Confidence:    confidence,
		Timestamp:     pred.CreatedAt,
		Extra:         cls.Extra,
	}, nil
}

func (s *PredictionService) validate(in ports.PredictInput) (int, error) {
	if in.Username == "" || in.Name == "" || strings.TrimSpace(in.Age) == "" || in.File == nil || in.File.Filename == "" {
		return 0, domain.NewValidationError("All fields are required")
	}

	age, err := strconv.Atoi(strings.TrimSpace(in.Age))
	if err != nil || age < domain.MinSubjectAge || age > domain.MaxSubjectAge {
		return 0, domain.NewValidationError(fmt.Sprintf("Age must be a whole number between %d and %d", domain.MinSubjectAge, domain.MaxSubjectAge))
	}

	if in.File.Size > s.maxBytes {
		return 0, domain.NewValidationError(fmt.Sprintf("File size too large. Maximum %dMB allowed.", s.maxBytes>>20))
	}
	if !isAudio(in.File.Filename, in.File.ContentType) {
		return 0, domain.NewValidationError("Only audio files are allowed!")
	}
	return age, nil
}

func (s *PredictionService) discard(path string) {
	if err := s.uploads.Remove(path); err != nil {
		s.logger.Warn().Err(err).Str("path", path).Msg("failed to remove uploaded file")
	}
}

// isAudio accepts a known audio extension, any audio/* MIME type, or an
// opaque octet-stream (browsers send this for recorded blobs).
func isAudio(filename, contentType string) bool {
	if audioExtensions.MatchString(filepath.Base(filename)) {
		return true
	}
	contentType = strings.ToLower(contentType)
	return strings.HasPrefix(contentType, "audio/") || strings.HasPrefix(contentType, "application/octet-stream")
}
