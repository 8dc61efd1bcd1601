package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/emotionai/emotion-api/internal/api/metrics"
	"github.com/emotionai/emotion-api/internal/core/domain"
	"github.com/emotionai/emotion-api/internal/core/ports"
)

const (
	DefaultTimeout = 60 * time.Second
	predictPath    = "/predict"
	fileField      = "file"
	maxBodyBytes   = 1 << 20
)

// APIError is a non-2xx answer from the prediction service. It matches
// domain.ErrUpstream via errors.Is.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("prediction service returned %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error { return domain.ErrUpstream }

// Config holds the upstream location and call policy.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Signer is optional; when set every request carries a bearer token.
	Signer *TokenSigner
}

// Client calls the external emotion model over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	signer     *TokenSigner
	log        zerolog.Logger
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		signer:     cfg.Signer,
		log:        log,
	}
}

type predictResponse struct {
	Emotion       string             `json:"emotion"`
	Probabilities map[string]float64 `json:"probabilities"`
}

// Classify uploads the file at path as multipart field "file" and decodes
// the label and class probabilities. Every failure wraps domain.ErrUpstream.
func (c *Client) Classify(ctx context.Context, path string) (*ports.Classification, error) {
	body, contentType, err := multipartFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", domain.ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+predictPath, body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.signer != nil {
		token, err := c.signer.Sign()
		if err != nil {
			return nil, fmt.Errorf("%w: sign token: %v", domain.ErrUpstream, err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	raw, err := c.do(req)
	if err != nil {
		outcome := "transport_error"
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			outcome = "bad_status"
		}
		metrics.UpstreamRequestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
		c.log.Error().Err(err).Str("url", req.URL.String()).Msg("prediction service call failed")
		return nil, err
	}

	cls, err := decodeClassification(raw)
	if err != nil {
		metrics.UpstreamRequestDuration.WithLabelValues("bad_body").Observe(time.Since(start).Seconds())
		c.log.Error().Err(err).Msg("unusable prediction service response")
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	metrics.UpstreamRequestDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())
	return cls, nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", domain.ErrUpstream, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &errResp)
		msg := errResp.Error
		if msg == "" {
			msg = resp.Status
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	return raw, nil
}

func decodeClassification(raw []byte) (*ports.Classification, error) {
	var resp predictResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if resp.Emotion == "" {
		return nil, errors.New("response has no emotion")
	}
	if len(resp.Probabilities) == 0 {
		return nil, errors.New("response has no probabilities")
	}

	var extra map[string]any
	if err := json.Unmarshal(raw, &extra); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	probs := make(domain.Probabilities, len(resp.Probabilities))
	for k, v := range resp.Probabilities {
		probs[domain.Emotion(k)] = v
	}
	return &ports.Classification{Emotion: resp.Emotion, Probabilities: probs, Extra: extra}, nil
}

// The upload limit keeps files small enough to buffer; a buffered body lets
// the transport set Content-Length.
func multipartFile(path string) (io.Reader, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(fileField, filepath.Base(path))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
