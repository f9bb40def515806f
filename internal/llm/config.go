package llm

import (
	"fmt"
	"os"
	"strconv"
)

// loadConfig loads LLM configuration from environment variables
func loadConfig() (*Config, error) {
	// embedder configuration
	embedderProvider := Provider(os.Getenv("EMBEDDER_PROVIDER"))
	if embedderProvider == "" {
		embedderProvider = ProviderOpenAI // default
	}

	embedderAPIKey := os.Getenv("OPENAI_API_KEY")
	if embedderAPIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	embedderModel := os.Getenv("EMBEDDER_MODEL")
	if embedderModel == "" {
		embedderModel = "text-embedding-3-small" // default
	}

	// generator configuration (search result summaries)
	generatorProvider := Provider(os.Getenv("GENERATOR_PROVIDER"))
	if generatorProvider == "" {
		generatorProvider = ProviderAnthropic // default
	}

	generatorAPIKey := os.Getenv("ANTHROPIC_API_KEY")
	if generatorAPIKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY environment variable is required")
	}

	generatorModel := os.Getenv("GENERATOR_MODEL")
	if generatorModel == "" {
		generatorModel = "claude-3-haiku-20240307" // default
	}

	generatorMaxTokens := 1024 // default
	if maxTokensStr := os.Getenv("GENERATOR_MAX_TOKENS"); maxTokensStr != "" {
		if val, err := strconv.Atoi(maxTokensStr); err == nil {
			generatorMaxTokens = val
		}
	}

	generatorTemperature := float32(0.3) // default
	if tempStr := os.Getenv("GENERATOR_TEMPERATURE"); tempStr != "" {
		if val, err := strconv.ParseFloat(tempStr, 32); err == nil {
			generatorTemperature = float32(val)
		}
	}

	return &Config{
		EmbedderProvider:     embedderProvider,
		EmbedderAPIKey:       embedderAPIKey,
		EmbedderModel:        embedderModel,
		GeneratorProvider:    generatorProvider,
		GeneratorAPIKey:      generatorAPIKey,
		GeneratorModel:       generatorModel,
		GeneratorMaxTokens:   generatorMaxTokens,
		GeneratorTemperature: generatorTemperature,
	}, nil
}
