package llm

import "context"

// combines embedding generation and text generation
type LLM interface {
	Embedder
	TextGenerator
}

// represents different LLM providers
type Provider string

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
	Dimension() int
}

// generates free-form text from a system prompt and a user prompt
type TextGenerator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// holds configuration for LLM initialization
type Config struct {
	// embedder configuration
	EmbedderProvider Provider
	EmbedderAPIKey   string
	EmbedderModel    string // e.g., "text-embedding-3-small"

	// generator configuration (summaries)
	GeneratorProvider    Provider
	GeneratorAPIKey      string
	GeneratorModel       string // e.g., "claude-3-haiku-20240307"
	GeneratorMaxTokens   int
	GeneratorTemperature float32
}
