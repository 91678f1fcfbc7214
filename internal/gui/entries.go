package gui

import (
	"unicode"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// NumericEntry is a single-line entry that accepts digits only
type NumericEntry struct {
	widget.Entry
	onEscape func()
}

// NewNumericEntry creates a new numeric entry
func NewNumericEntry() *NumericEntry {
	entry := &NumericEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops anything that is not a digit
func (e *NumericEntry) TypedRune(r rune) {
	if !unicode.IsDigit(r) {
		return
	}
	e.Entry.TypedRune(r)
}

// TypedKey handles key events
func (e *NumericEntry) TypedKey(key *fyne.KeyEvent) {
	if key.Name == fyne.KeyEscape && e.onEscape != nil {
		e.onEscape()
		return
	}
	e.Entry.TypedKey(key)
}

// SetOnEscape sets the callback for when Escape is pressed
func (e *NumericEntry) SetOnEscape(f func()) {
	e.onEscape = f
}
