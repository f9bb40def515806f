package llm

import (
	"context"
	"fmt"
)

// combines an Embedder and a TextGenerator into a single LLM
type CompositeLLM struct {
	Embedder
	TextGenerator
}

// creates a new LLM with auto-configuration from environment variables
func NewLLM(ctx context.Context) (LLM, error) {
	config, err := loadConfig()

	if err != nil {
		return nil, fmt.Errorf("failed to load LLM config: %w", err)
	}

	return NewLLMWithConfig(ctx, config)
}

// creates a new LLM with explicit configuration
func NewLLMWithConfig(ctx context.Context, config *Config) (LLM, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	// create embedder based on provider
	var embedder Embedder

	switch config.EmbedderProvider {
	case ProviderOpenAI:
		embedder = NewOpenAIEmbedder(OpenAIConfig{
			APIKey: config.EmbedderAPIKey,
			Model:  config.EmbedderModel,
		})
	default:
		return nil, fmt.Errorf("unsupported embedder provider: %s", config.EmbedderProvider)
	}

	// create generator based on provider (for result summaries)
	var generator TextGenerator

	switch config.GeneratorProvider {
	case ProviderAnthropic:
		generator = NewAnthropicGenerator(AnthropicConfig{
			APIKey:      config.GeneratorAPIKey,
			Model:       config.GeneratorModel,
			MaxTokens:   config.GeneratorMaxTokens,
			Temperature: config.GeneratorTemperature,
		})
	default:
		return nil, fmt.Errorf("unsupported generator provider: %s", config.GeneratorProvider)
	}

	return &CompositeLLM{
		Embedder:      embedder,
		TextGenerator: generator,
	}, nil
}
