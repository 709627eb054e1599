package llm

import (
	"context"
	"os"
)

type EmbeddingResult struct {
	Embedding []float32
	Model     string
}

type LLM interface {
	Embed(ctx context.Context, text string) (*EmbeddingResult, error)
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	DefaultChatModel  = "gpt-4"
	DefaultEmbedModel = "text-embedding-3-small"
	defaultBaseURL    = "https://api.openai.com/v1"
)

// ChatModel returns the chat model name: env override, then config value,
// then the default.
func ChatModel(configured string) string {
	if m := os.Getenv("BRICKMIND_CHAT_MODEL"); m != "" {
		return m
	}
	if configured != "" {
		return configured
	}
	return DefaultChatModel
}

// EmbedModel returns the embedding model name.
func EmbedModel(configured string) string {
	if m := os.Getenv("BRICKMIND_EMBED_MODEL"); m != "" {
		return m
	}
	if configured != "" {
		return configured
	}
	return DefaultEmbedModel
}

// BaseURL returns the OpenAI-compatible endpoint: env override (for Ollama
// or a proxy), then config value, then api.openai.com.
func BaseURL(configured string) string {
	if u := os.Getenv("OPENAI_BASE_URL"); u != "" {
		return u
	}
	if configured != "" {
		return configured
	}
	return defaultBaseURL
}
