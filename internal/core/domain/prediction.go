package domain

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Emotion is one of the classes produced by the upstream classifier.
type Emotion string

const (
	EmotionSadness   Emotion = "sadness"
	EmotionFear      Emotion = "fear"
	EmotionHappiness Emotion = "happiness"
	EmotionAnger     Emotion = "anger"
	EmotionNeutral   Emotion = "neutral"
	EmotionSurprise  Emotion = "surprise"
	EmotionDisgust   Emotion = "disgust"
)

// Emotions lists the classes in the order the classifier emits them.
var Emotions = []Emotion{
	EmotionSadness,
	EmotionFear,
	EmotionHappiness,
	EmotionAnger,
	EmotionNeutral,
	EmotionSurprise,
	EmotionDisgust,
}

const (
	MinSubjectAge = 1
	MaxSubjectAge = 150

	// probabilitySumTolerance bounds how far a distribution may drift from 1.
	probabilitySumTolerance = 0.02
)

var ErrInvalidDistribution = errors.New("invalid probability distribution")

// Valid reports whether e is a known class.
func (e Emotion) Valid() bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}

// Probabilities maps each class to its score in [0,1].
type Probabilities map[Emotion]float64

// Max returns the highest score, or 0 for an empty distribution.
func (p Probabilities) Max() float64 {
	maxP := 0.0
	for _, v := range p {
		if v > maxP {
			maxP = v
		}
	}
	return maxP
}

// Validate checks class names, per-class bounds, and that the scores sum to ~1.
func (p Probabilities) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidDistribution)
	}
	sum := 0.0
	for e, v := range p {
		if !e.Valid() {
			return fmt.Errorf("%w: unknown class %q", ErrInvalidDistribution, e)
		}
		if math.IsNaN(v) || v < 0 || v > 1 {
			return fmt.Errorf("%w: %s=%v out of range", ErrInvalidDistribution, e, v)
		}
		sum += v
	}
	if math.Abs(sum-1) > probabilitySumTolerance {
		return fmt.Errorf("%w: sum %.4f", ErrInvalidDistribution, sum)
	}
	return nil
}

// Classify checks the upstream label against its distribution and returns the
// label to store plus its confidence. The label must hold the maximum score;
// when several classes share it, the upstream choice is kept.
func Classify(label string, p Probabilities) (Emotion, float64, error) {
	if err := p.Validate(); err != nil {
		return "", 0, err
	}
	e := Emotion(label)
	if !e.Valid() {
		return "", 0, fmt.Errorf("%w: unknown label %q", ErrInvalidDistribution, label)
	}
	score, ok := p[e]
	if !ok {
		return "", 0, fmt.Errorf("%w: label %q has no score", ErrInvalidDistribution, label)
	}
	confidence := p.Max()
	if score != confidence {
		return "", 0, fmt.Errorf("%w: label %q (%.4f) is not the top class (%.4f)", ErrInvalidDistribution, label, score, confidence)
	}
	return e, confidence, nil
}

// AudioInfo describes a probed upload. Only WAV files are probed.
type AudioInfo struct {
	Format          string  `json:"format"`
	SampleRate      int     `json:"sample_rate"`
	Channels        int     `json:"channels"`
	BitDepth        int     `json:"bit_depth"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// Prediction is one stored analysis result. Immutable once created.
type Prediction struct {
	ID          string        `json:"_id"`
	Username    string        `json:"username"`
	SubjectName string        `json:"name"`
	SubjectAge  int           `json:"age"`
	Emotion     Emotion       `json:"predicted_emotion"`
	Probs       Probabilities `json:"probabilities"`
	Confidence  float64       `json:"confidence"`
	File        string        `json:"file"`
	Audio       *AudioInfo    `json:"audio,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}
