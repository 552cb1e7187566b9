// Package openai implements ai.TextGenerator against OpenAI-compatible chat
// APIs. It works with any endpoint speaking the OpenAI protocol, including
// local servers like Ollama, LocalAI, and vLLM.
package openai
