package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/emotionai/emotion-api/internal/core/domain"
	"github.com/emotionai/emotion-api/internal/core/ports"
)

// PredictionHandler serves the upload relay and the reporting endpoints.
type PredictionHandler struct {
	predictions ports.PredictionService
	reports     ports.ReportService
}

func NewPredictionHandler(predictions ports.PredictionService, reports ports.ReportService) *PredictionHandler {
	return &PredictionHandler{predictions: predictions, reports: reports}
}

// Predict relays an audio clip to the emotion model and stores the result.
//
// @Summary      Predict the emotion in a voice recording
// @Tags         predictions
// @Accept       multipart/form-data
// @Produce      json
// @Param        username  formData  string  true  "Owner of the prediction"
// @Param        name      formData  string  true  "Subject name"
// @Param        age       formData  int     true  "Subject age (1-150)"
// @Param        file      formData  file    true  "Audio file (max 10MB)"
// @Success      200       {object}  predictResponse
// @Failure      400       {object}  errorResponse
// @Failure      413       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /api/predictions/predict [post]
func (h *PredictionHandler) Predict(c echo.Context) error {
	var form predictForm
	if err := c.Bind(&form); err != nil {
		if errors.Is(err, echo.ErrStatusRequestEntityTooLarge) {
			return echo.ErrStatusRequestEntityTooLarge
		}
		return domain.NewValidationError("Invalid form data")
	}
	if err := c.Validate(&form); err != nil {
		return err
	}

	in := ports.PredictInput{
		Username: form.Username,
		Name:     form.Name,
		Age:      form.Age,
	}

	fh, err := c.FormFile("file")
	switch {
	case err == nil:
		src, err := fh.Open()
		if err != nil {
			return err
		}
		defer src.Close()
		in.File = &ports.AudioUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Size:        fh.Size,
			Content:     src,
		}
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		// left nil; the service reports the missing field
	default:
		return domain.NewValidationError("Invalid form data")
	}

	res, err := h.predictions.Predict(c.Request().Context(), in)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, predictPayload(res))
}

// predictPayload starts from the model's own keys and overrides the ones
// this service owns.
func predictPayload(res *ports.PredictResult) map[string]any {
	out := make(map[string]any, len(res.Extra)+5)
	for k, v := range res.Extra {
		out[k] = v
	}
	out["emotion"] = res.Emotion
	out["probabilities"] = res.Probabilities
	out["predictionId"] = res.PredictionID
	out["confidence"] = res.Confidence
	out["timestamp"] = res.Timestamp
	return out
}

// Reports lists a user's predictions with aggregate statistics.
//
// @Summary      List a user's predictions
// @Tags         predictions
// @Produce      json
// @Param        username  query     string  true  "Username"
// @Success      200       {object}  domain.Report
// @Failure      400       {object}  errorResponse
// @Failure      404       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /api/predictions/reports [get]
func (h *PredictionHandler) Reports(c echo.Context) error {
	report, err := h.reports.GetReports(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// UserStats returns the prediction count and signup date of a user.
//
// @Summary      Per-user statistics
// @Tags         predictions
// @Produce      json
// @Param        username  query     string  true  "Username"
// @Success      200       {object}  domain.UserStats
// @Failure      400       {object}  errorResponse
// @Failure      500       {object}  errorResponse
// @Router       /api/predictions/user-stats [get]
func (h *PredictionHandler) UserStats(c echo.Context) error {
	stats, err := h.reports.GetUserStats(c.Request().Context(), c.QueryParam("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
