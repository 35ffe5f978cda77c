// Package testutils provides custom assertion helpers for testing
package testutils

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPAssertions provides HTTP-specific assertion methods
type HTTPAssertions struct {
	t *testing.T
}

// NewHTTPAssertions creates a new HTTP assertions helper
func NewHTTPAssertions(t *testing.T) *HTTPAssertions {
	return &HTTPAssertions{t: t}
}

// StatusCode asserts the HTTP status code
func (ha *HTTPAssertions) StatusCode(w *httptest.ResponseRecorder, expectedCode int, msgAndArgs ...interface{}) {
	require.NotNil(ha.t, w, "Response should not be nil")
	assert.Equal(ha.t, expectedCode, w.Code, msgAndArgs...)
}

// JSONResponse asserts that the response is valid JSON and unmarshals it
func (ha *HTTPAssertions) JSONResponse(w *httptest.ResponseRecorder, target interface{}) {
	require.NotNil(ha.t, w, "Response should not be nil")

	contentType := w.Header().Get("Content-Type")
	assert.True(ha.t, strings.Contains(contentType, "application/json"),
		"Response should have JSON content type, got: %s", contentType)

	require.NoError(ha.t, json.Unmarshal(w.Body.Bytes(), target), "Response should be valid JSON")
}

// ErrorResponse asserts the error envelope carries the expected code and
// returns its title and message
func (ha *HTTPAssertions) ErrorResponse(w *httptest.ResponseRecorder, expectedCode string) (title, message string) {
	var body struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Title   string `json:"title"`
			Message string `json:"message"`
		} `json:"error"`
	}
	ha.JSONResponse(w, &body)

	assert.False(ha.t, body.Success, "Error responses should not report success")
	assert.Equal(ha.t, expectedCode, body.Error.Code)
	return body.Error.Title, body.Error.Message
}

// Header asserts that a header exists with expected value
func (ha *HTTPAssertions) Header(w *httptest.ResponseRecorder, headerName, expectedValue string, msgAndArgs ...interface{}) {
	assert.Equal(ha.t, expectedValue, w.Header().Get(headerName), msgAndArgs...)
}

// HasHeader asserts that a header exists
func (ha *HTTPAssertions) HasHeader(w *httptest.ResponseRecorder, headerName string) {
	assert.NotEmpty(ha.t, w.Header().Get(headerName), "Response should have header %s", headerName)
}

// SecurityHeaders asserts that security headers are present
func (ha *HTTPAssertions) SecurityHeaders(w *httptest.ResponseRecorder) {
	securityHeaders := []string{
		"X-Content-Type-Options",
		"X-Frame-Options",
		"Referrer-Policy",
		"Content-Security-Policy",
	}

	for _, header := range securityHeaders {
		ha.HasHeader(w, header)
	}
}

// CalendarAssertions provides assertions over exported ICS documents
type CalendarAssertions struct {
	t *testing.T
}

// NewCalendarAssertions creates a new calendar assertions helper
func NewCalendarAssertions(t *testing.T) *CalendarAssertions {
	return &CalendarAssertions{t: t}
}

// WellFormed asserts CRLF line endings and the calendar envelope
func (ca *CalendarAssertions) WellFormed(doc string) {
	require.True(ca.t, strings.HasPrefix(doc, "BEGIN:VCALENDAR\r\n"), "Calendar should start with BEGIN:VCALENDAR")
	assert.True(ca.t, strings.HasSuffix(doc, "END:VCALENDAR\r\n"), "Calendar should end with END:VCALENDAR")
	assert.NotContains(ca.t, strings.ReplaceAll(doc, "\r\n", ""), "\n", "Calendar lines should end with CRLF")
}

// EventCount asserts the number of VEVENT blocks
func (ca *CalendarAssertions) EventCount(doc string, expected int) {
	assert.Equal(ca.t, expected, strings.Count(doc, "BEGIN:VEVENT"), "Unexpected number of events")
}
