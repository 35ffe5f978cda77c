// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"sync"
	"time"

	"github.com/chefaid/chefaid/internal/ports/outbound"
	"github.com/stretchr/testify/mock"
)

// MockKeyValueStore provides a mock implementation of KeyValueStore
type MockKeyValueStore struct {
	mock.Mock
}

// NewMockKeyValueStore creates a new mock key-value store
func NewMockKeyValueStore() *MockKeyValueStore {
	return &MockKeyValueStore{}
}

// Get reads a value
func (m *MockKeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

// Set writes a value
func (m *MockKeyValueStore) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// Delete removes a value
func (m *MockKeyValueStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockTextGenerator provides a mock implementation of TextGenerator
type MockTextGenerator struct {
	mock.Mock

	mu       sync.Mutex
	requests []outbound.GenerateRequest
}

// NewMockTextGenerator creates a new mock text generator
func NewMockTextGenerator() *MockTextGenerator {
	return &MockTextGenerator{}
}

// Generate records the request and returns the configured text
func (m *MockTextGenerator) Generate(ctx context.Context, req outbound.GenerateRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// Requests returns every request seen so far
func (m *MockTextGenerator) Requests() []outbound.GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]outbound.GenerateRequest(nil), m.requests...)
}

// LastRequest returns the most recent request
func (m *MockTextGenerator) LastRequest() (outbound.GenerateRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return outbound.GenerateRequest{}, false
	}
	return m.requests[len(m.requests)-1], true
}

// MockCalendarSink provides a mock implementation of CalendarSink
type MockCalendarSink struct {
	mock.Mock
}

// NewMockCalendarSink creates a new mock calendar sink
func NewMockCalendarSink() *MockCalendarSink {
	return &MockCalendarSink{}
}

// SaveCalendar stores a calendar document
func (m *MockCalendarSink) SaveCalendar(ctx context.Context, name string, content []byte) (string, error) {
	args := m.Called(ctx, name, content)
	return args.String(0), args.Error(1)
}

// MockValidator provides a mock implementation of the command validator
type MockValidator struct {
	mock.Mock
}

// ValidateStruct validates a command
func (m *MockValidator) ValidateStruct(s interface{}) error {
	args := m.Called(s)
	return args.Error(0)
}

// MockMetrics records application metrics calls
type MockMetrics struct {
	mu            sync.Mutex
	Generations   map[string]int
	ShoppingLists map[bool]int
	Exports       []int
	Writes        map[string]int
}

// NewMockMetrics creates an empty metrics recorder
func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Generations:   make(map[string]int),
		ShoppingLists: make(map[bool]int),
		Writes:        make(map[string]int),
	}
}

// GenerationCompleted counts a finished generation by operation and outcome
func (m *MockMetrics) GenerationCompleted(operation, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Generations[operation+"/"+outcome]++
}

// ShoppingListInspected counts shopping list detection
func (m *MockMetrics) ShoppingListInspected(found bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ShoppingLists[found]++
}

// CalendarExported records an export
func (m *MockMetrics) CalendarExported(events int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Exports = append(m.Exports, events)
}

// SettingWritten counts a settings write
func (m *MockMetrics) SettingWritten(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Writes[key]++
}
