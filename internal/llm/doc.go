// Package llm talks to the text generation services used to build the
// glossary: Google Gemini, OpenAI compatible chat completions and a local
// Ollama server. Every backend implements Backend; Resilient adds retries
// and a circuit breaker on top of any of them.
package llm
