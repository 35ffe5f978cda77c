package outbound

import "context"

// DefaultImageMIMEType is assumed for images whose type is unknown
const DefaultImageMIMEType = "image/jpeg"

// Image is an inline image attached to a prompt
type Image struct {
	Data     []byte
	MIMEType string
}

// GenerateRequest is a single prompt for the text generation oracle
type GenerateRequest struct {
	APIKey string
	Prompt string
	Image  *Image
}

// TextGenerator sends one prompt, optionally with an image, and returns the
// generated text. An empty string is a valid result. Errors carry the
// oracle's own message and are never retried.
type TextGenerator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// CalendarSink stores an exported calendar document and reports where
type CalendarSink interface {
	SaveCalendar(ctx context.Context, name string, content []byte) (string, error)
}
