// Package ai defines the language model abstraction used by soundshelf.
//
// The library talks to a single chat-completion model through the
// TextGenerator interface. Production code uses the openai subpackage, which
// works against any OpenAI-compatible endpoint (Ollama, LocalAI, vLLM,
// OpenAI itself); tests use the mock subpackage.
package ai
