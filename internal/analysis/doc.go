// Package analysis runs the model backed glossary steps: noun
// extraction from chapter text, categorisation, English translation and
// hanja guessing. Every step batches its work, validates the shape of each
// response and falls back to a safe default when a batch cannot be done.
package analysis
