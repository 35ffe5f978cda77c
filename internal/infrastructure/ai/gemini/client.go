// Package gemini talks to the Gemini generateContent REST endpoint
package gemini

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/chefaid/chefaid/internal/ports/outbound"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	// DefaultBaseURL is the public Generative Language API
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	// DefaultModel is the model every screen uses
	DefaultModel = "gemini-2.5-flash"

	defaultTemperature     = 0.9
	defaultMaxOutputTokens = 2048
	fallbackErrorMessage   = "API error"
)

// Config holds the client settings
type Config struct {
	BaseURL         string
	Model           string
	Timeout         time.Duration
	Temperature     float64
	MaxOutputTokens int
}

// Client implements outbound.TextGenerator over plain HTTP
type Client struct {
	config Config
	client *http.Client
	logger *zap.Logger
}

var _ outbound.TextGenerator = (*Client)(nil)

// NewClient creates a new Gemini client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = defaultMaxOutputTokens
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Client{
		config: cfg,
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.Named("gemini"),
	}
}

// Gemini API structures
type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	UsageMetadata struct {
		PromptTokenCount     int `json:"promptTokenCount"`
		CandidatesTokenCount int `json:"candidatesTokenCount"`
	} `json:"usageMetadata"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// APIError is a non-2xx answer from the oracle. Error returns the oracle's
// own message so it can be shown to the user unchanged.
type APIError struct {
	StatusCode int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// TransportError wraps a failure to reach the oracle or read its answer
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Generate sends one prompt and returns the first candidate's first text
// part, or "" when the oracle returned none. Requests are never retried.
func (c *Client) Generate(ctx context.Context, req outbound.GenerateRequest) (string, error) {
	body, err := json.Marshal(c.buildRequest(req))
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.config.BaseURL, url.PathEscape(c.config.Model), url.QueryEscape(req.APIKey))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Warn("Gemini request failed", zap.Error(redact(err)))
		return "", &TransportError{Err: redact(err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, respBody)
		c.logger.Warn("Gemini API error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("status", apiErr.Status),
			zap.String("message", apiErr.Message),
		)
		return "", apiErr
	}

	var genResp generateContentResponse
	if err := json.Unmarshal(respBody, &genResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	text := ""
	if len(genResp.Candidates) > 0 && len(genResp.Candidates[0].Content.Parts) > 0 {
		text = genResp.Candidates[0].Content.Parts[0].Text
	}

	c.logger.Debug("Gemini request succeeded",
		zap.String("model", c.config.Model),
		zap.Bool("with_image", req.Image != nil),
		zap.Int("prompt_tokens", genResp.UsageMetadata.PromptTokenCount),
		zap.Int("candidate_tokens", genResp.UsageMetadata.CandidatesTokenCount),
		zap.Duration("duration", time.Since(start)),
	)

	return text, nil
}

func (c *Client) buildRequest(req outbound.GenerateRequest) generateContentRequest {
	parts := []part{{Text: req.Prompt}}
	if req.Image != nil {
		parts = append(parts, part{InlineData: &inlineData{
			MIMEType: ImageMIMEType(*req.Image),
			Data:     base64.StdEncoding.EncodeToString(req.Image.Data),
		}})
	}

	return generateContentRequest{
		Contents: []content{{Parts: parts}},
		GenerationConfig: generationConfig{
			Temperature:     c.config.Temperature,
			MaxOutputTokens: c.config.MaxOutputTokens,
		},
	}
}

// ImageMIMEType returns the declared type, or sniffs one from the bytes and
// falls back to JPEG when the content is not recognisably an image
func ImageMIMEType(img outbound.Image) string {
	if img.MIMEType != "" {
		return img.MIMEType
	}
	sniffed := http.DetectContentType(img.Data)
	if len(sniffed) > 6 && sniffed[:6] == "image/" {
		return sniffed
	}
	return outbound.DefaultImageMIMEType
}

func parseAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode, Message: fallbackErrorMessage}

	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil {
		apiErr.Status = errResp.Error.Status
		if errResp.Error.Message != "" {
			apiErr.Message = errResp.Error.Message
		}
	}
	return apiErr
}

// redact removes the request URL, which carries the API key, from transport errors
func redact(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return urlErr.Err
	}
	return err
}
