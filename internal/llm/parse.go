package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidResponse is returned when a response cannot be used
var ErrInvalidResponse = errors.New("invalid response")

// wrapperKeys are object keys models use to wrap a result array
var wrapperKeys = []string{"items", "terms", "nouns", "glossary", "results", "data"}

// StripCodeFence removes a surrounding ```json fence
func StripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 && !strings.ContainsAny(s[:nl], "[{") {
		s = s[nl+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// ParseJSONArray decodes a model response into a slice of T
// Bare arrays, objects wrapping an array under a common key and single
// objects are all accepted.
func ParseJSONArray[T any](raw string) ([]T, error) {
	s := StripCodeFence(raw)
	if s == "" {
		return nil, fmt.Errorf("%w: empty body", ErrInvalidResponse)
	}

	var items []T
	if err := json.Unmarshal([]byte(s), &items); err == nil {
		return items, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, fmt.Errorf("%w: not JSON: %s", ErrInvalidResponse, truncate(s, 200))
	}

	for _, key := range wrapperKeys {
		inner, ok := obj[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(inner, &items); err == nil {
			return items, nil
		}
	}

	// A lone object with a single array value is a wrapper under an unknown key
	if len(obj) == 1 {
		for _, inner := range obj {
			if err := json.Unmarshal(inner, &items); err == nil {
				return items, nil
			}
		}
	}

	var single T
	if err := json.Unmarshal([]byte(s), &single); err == nil {
		return []T{single}, nil
	}

	return nil, fmt.Errorf("%w: unexpected JSON shape: %s", ErrInvalidResponse, truncate(s, 200))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
