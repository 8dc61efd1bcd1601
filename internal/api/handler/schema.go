package handler

import (
	"time"

	"github.com/emotionai/emotion-api/internal/core/domain"
)

// errorResponse documents the envelope rendered by the API error handler.
// Both keys carry the same text.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// --- Auth ---

type authRequest struct {
	Username string `json:"username" validate:"max=64"`
	Password string `json:"password" validate:"maxbytes=72"`
}

type signupResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

type loginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	UserID   string `json:"userId"`
}

// --- Predictions ---

// predictForm holds the text parts of the multipart upload; the audio is
// read separately from the "file" part.
type predictForm struct {
	Username string `form:"username" validate:"max=64"`
	Name     string `form:"name"     validate:"max=100"`
	Age      string `form:"age"`
}

// predictResponse documents the fixed keys of a prediction result. Any extra
// keys returned by the model are passed through alongside them.
type predictResponse struct {
	Emotion       domain.Emotion       `json:"emotion"`
	Probabilities domain.Probabilities `json:"probabilities"`
	PredictionID  string               `json:"predictionId"`
	Confidence    float64              `json:"confidence"`
	Timestamp     time.Time            `json:"timestamp"`
}

// --- Health ---

type livenessResponse struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}

type apiIndexResponse struct {
	Message   string         `json:"message"`
	Version   string         `json:"version"`
	Endpoints map[string]any `json:"endpoints"`
	Docs      string         `json:"docs"`
}
