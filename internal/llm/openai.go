package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	openaiEmbeddingsURL      = "https://api.openai.com/v1/embeddings"
	defaultOpenAIModel       = "text-embedding-3-small"
	openaiEmbeddingDimension = 1536
)

// shared HTTP client for OpenAI API calls
var openaiHTTPClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}

type OpenAIConfig struct {
	APIKey string
	Model  string // e.g., "text-embedding-3-small"
}

// OpenAIEmbedder turns text into vectors via the OpenAI embeddings endpoint.
// baseURL defaults to the public API and is overridable for tests.
type OpenAIEmbedder struct {
	config     OpenAIConfig
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIEmbedder(config OpenAIConfig) *OpenAIEmbedder {
	if config.Model == "" {
		config.Model = defaultOpenAIModel
	}

	return &OpenAIEmbedder{
		config:     config,
		baseURL:    openaiEmbeddingsURL,
		httpClient: openaiHTTPClient,
	}
}

func (e *OpenAIEmbedder) Dimension() int {
	return openaiEmbeddingDimension
}

func (e *OpenAIEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	embeddings, err := e.GenerateEmbeddings(ctx, []string{text})
	if err != nil {
		return nil, err
	}

	if len(embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	return embeddings[0], nil
}

// GenerateEmbeddings embeds a batch of texts in one API call. The response
// carries an index per vector, so results are reassembled in input order
// regardless of how the API orders them.
func (e *OpenAIEmbedder) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("no texts provided")
	}

	payload := struct {
		Input    []string `json:"input"`
		Model    string   `json:"model"`
		Encoding string   `json:"encoding_format"`
	}{Input: texts, Model: e.config.Model, Encoding: "float"}

	var decoded struct {
		Data []struct {
			Index     int       `json:"index"`
			Embedding []float32 `json:"embedding"`
		} `json:"data"`
	}
	if err := e.post(ctx, payload, &decoded); err != nil {
		return nil, err
	}

	if len(decoded.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(decoded.Data))
	}

	embeddings := make([][]float32, len(texts))
	for _, d := range decoded.Data {
		if d.Index < 0 || d.Index >= len(texts) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		embeddings[d.Index] = d.Embedding
	}

	return embeddings, nil
}

// post sends an authenticated JSON request to the embeddings endpoint and
// decodes the body into out
func (e *OpenAIEmbedder) post(ctx context.Context, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.config.APIKey)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(resp.Body) //nolint:errcheck
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(detail))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
