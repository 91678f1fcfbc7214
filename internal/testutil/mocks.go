package testutil

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/glossarymaker/internal/llm"
)

// ErrUnscripted is returned when MockBackend has no answer for a request
var ErrUnscripted = errors.New("mock: no scripted response")

// MockResponse is one scripted backend answer
type MockResponse struct {
	Text string
	Err  error
}

// MockBackend is a scripted llm.Backend
//
// A request is answered by the first route whose key occurs in the prompt
// or system text. Routes are consumed in order; the last response of a
// route repeats once the others are used up. Handler, when set, answers
// everything the routes do not match.
type MockBackend struct {
	mu      sync.Mutex
	routes  map[string][]MockResponse
	Handler func(req llm.Request) (string, error)
	Calls   []llm.Request
	keys    []string
	offsets map[string]int
}

// NewMockBackend creates an empty mock
func NewMockBackend() *MockBackend {
	return &MockBackend{
		routes:  make(map[string][]MockResponse),
		offsets: make(map[string]int),
	}
}

// On scripts responses for requests containing key
func (m *MockBackend) On(key string, responses ...MockResponse) *MockBackend {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.routes[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.routes[key] = append(m.routes[key], responses...)
	return m
}

// Reply is shorthand for a successful MockResponse
func Reply(text string) MockResponse {
	return MockResponse{Text: text}
}

// Fail is shorthand for a failing MockResponse
func Fail(err error) MockResponse {
	return MockResponse{Err: err}
}

// Generate implements llm.Backend
func (m *MockBackend) Generate(ctx context.Context, req llm.Request) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	for _, key := range m.keys {
		if !strings.Contains(req.Prompt, key) && !strings.Contains(req.System, key) {
			continue
		}
		responses := m.routes[key]
		if len(responses) == 0 {
			continue
		}
		i := m.offsets[key]
		if i < len(responses)-1 {
			m.offsets[key] = i + 1
		}
		m.mu.Unlock()
		r := responses[i]
		return r.Text, r.Err
	}
	handler := m.Handler
	m.mu.Unlock()

	if handler != nil {
		return handler(req)
	}
	return "", fmt.Errorf("%w: %.60q", ErrUnscripted, req.Prompt)
}

// Name implements llm.Backend
func (m *MockBackend) Name() string {
	return "mock"
}

// CallCount returns how many requests were made
func (m *MockBackend) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// CallsContaining counts requests whose prompt contains s
func (m *MockBackend) CallsContaining(s string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.Calls {
		if strings.Contains(c.Prompt, s) {
			n++
		}
	}
	return n
}
