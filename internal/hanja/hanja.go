// Package hanja converts traditional hanja to simplified Chinese
package hanja

import (
	"fmt"
	"strings"
	"sync"

	"github.com/longbridgeapp/opencc"
)

var (
	once      sync.Once
	converter *opencc.OpenCC
	loadErr   error
)

func load() (*opencc.OpenCC, error) {
	once.Do(func() {
		converter, loadErr = opencc.New("t2s")
		if loadErr != nil {
			loadErr = fmt.Errorf("failed to load t2s dictionary: %w", loadErr)
		}
	})
	return converter, loadErr
}

// Ready reports whether the converter dictionaries load
func Ready() error {
	_, err := load()
	return err
}

// ToSimplified converts hanja to simplified Chinese
// Empty input gives empty output and any failure returns the input.
func ToSimplified(hanja string) string {
	if strings.TrimSpace(hanja) == "" {
		return ""
	}

	cc, err := load()
	if err != nil {
		return hanja
	}

	out, err := cc.Convert(hanja)
	if err != nil {
		return hanja
	}
	return out
}
