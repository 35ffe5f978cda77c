// Package googlegenai adapts the official Google Gen AI SDK to the text
// generator port. It is selected with ai.provider=genai.
package googlegenai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/chefaid/chefaid/internal/infrastructure/ai/gemini"
	"github.com/chefaid/chefaid/internal/ports/outbound"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Config holds the adapter settings
type Config struct {
	BaseURL         string
	Model           string
	Timeout         time.Duration
	Temperature     float32
	MaxOutputTokens int32
}

// Client implements outbound.TextGenerator with the genai SDK. The key is
// supplied per request, so an SDK client is built for every call.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *zap.Logger
}

var _ outbound.TextGenerator = (*Client)(nil)

// NewClient creates a new SDK-backed generator
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = gemini.DefaultModel
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = 0.9
	}
	if cfg.MaxOutputTokens == 0 {
		cfg.MaxOutputTokens = 2048
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}

	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: logger.Named("genai"),
	}
}

// Generate sends one prompt through the SDK
func (c *Client) Generate(ctx context.Context, req outbound.GenerateRequest) (string, error) {
	clientConfig := &genai.ClientConfig{
		APIKey:     req.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.httpClient,
	}
	if c.config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: c.config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return "", fmt.Errorf("failed to create genai client: %w", err)
	}

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	if req.Image != nil {
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, gemini.ImageMIMEType(*req.Image)))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := client.Models.GenerateContent(ctx, c.config.Model, contents, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.config.Temperature),
		MaxOutputTokens: c.config.MaxOutputTokens,
	})
	if err != nil {
		c.logger.Warn("genai request failed", zap.Error(err))
		return "", translateError(err)
	}

	return firstText(resp), nil
}

// firstText returns the first candidate's first part, or ""
func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return ""
	}
	return cand.Content.Parts[0].Text
}

// translateError maps SDK errors onto the REST client's error types so
// callers handle both providers the same way
func translateError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = "API error"
		}
		return &gemini.APIError{StatusCode: apiErr.Code, Status: apiErr.Status, Message: message}
	}
	return &gemini.TransportError{Err: err}
}
