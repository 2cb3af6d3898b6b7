package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// --- Ollama Provider ---

// OllamaExtractor runs extraction against a local Ollama instance.
type OllamaExtractor struct {
	baseURL string
	model   string
	client  *http.Client
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
}

// NewOllamaExtractor creates an extractor using Ollama's generate API.
func NewOllamaExtractor(model string) *OllamaExtractor {
	baseURL := os.Getenv("OLLAMA_HOST")
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	return &OllamaExtractor{
		baseURL: baseURL,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (e *OllamaExtractor) Extract(ctx context.Context, turns []Turn) ([]Candidate, error) {
	if len(turns) == 0 {
		return nil, nil
	}

	body, _ := json.Marshal(ollamaGenerateRequest{
		Model:  e.model,
		Prompt: BuildPrompt(turns),
	})
	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama error %d: %s", resp.StatusCode, string(b))
	}

	var result ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return ParseCandidates(result.Response)
}

// --- OpenAI-compatible Provider ---

// OpenAIExtractor runs extraction against any OpenAI-compatible chat API.
type OpenAIExtractor struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

type openaiChatRequest struct {
	Model    string          `json:"model"`
	Messages []openaiMessage `json:"messages"`
}

type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiChatResponse struct {
	Choices []struct {
		Message openaiMessage `json:"message"`
	} `json:"choices"`
}

// NewOpenAIExtractor creates an extractor using an OpenAI-compatible API.
func NewOpenAIExtractor(baseURL, apiKey, model string) *OpenAIExtractor {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIExtractor{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
	}
}

func (e *OpenAIExtractor) Extract(ctx context.Context, turns []Turn) ([]Candidate, error) {
	if len(turns) == 0 {
		return nil, nil
	}

	body, _ := json.Marshal(openaiChatRequest{
		Model:    e.model,
		Messages: []openaiMessage{{Role: "user", Content: BuildPrompt(turns)}},
	})
	req, err := http.NewRequestWithContext(ctx, "POST", e.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if e.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+e.apiKey)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("openai error %d: %s", resp.StatusCode, string(b))
	}

	var result openaiChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("no completion returned")
	}
	return ParseCandidates(result.Choices[0].Message.Content)
}

// --- Factory ---

// NewFromEnv creates an extractor from environment variables.
// JOURNAL_MEMORY_EXTRACTOR: "ollama" | "openai" | "" (disabled)
// JOURNAL_MEMORY_EXTRACT_MODEL: model name
// JOURNAL_MEMORY_EXTRACT_URL: base URL override
// OPENAI_API_KEY: for openai provider
func NewFromEnv() Extractor {
	provider := os.Getenv("JOURNAL_MEMORY_EXTRACTOR")
	model := os.Getenv("JOURNAL_MEMORY_EXTRACT_MODEL")

	switch provider {
	case "ollama":
		if model == "" {
			model = "llama3.2"
		}
		return NewOllamaExtractor(model)
	case "openai":
		url := os.Getenv("JOURNAL_MEMORY_EXTRACT_URL")
		key := os.Getenv("OPENAI_API_KEY")
		return NewOpenAIExtractor(url, key, model)
	default:
		return Noop{}
	}
}
