package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/logger"
)

// ErrEmptyText is returned when an empty string is submitted for
// embedding. No provider call is made.
var ErrEmptyText = errors.New("text to embed must not be empty")

// ollamaEmbeddingRepository produces embeddings via the Ollama
// /api/embeddings endpoint. Vectors are validated against the configured
// dimension so the store only ever holds vectors of one size.
type ollamaEmbeddingRepository struct {
	client     *http.Client
	cfg        *config.Config
	logger     *logger.Logger
	dimensions int
}

// NewOllamaEmbeddingRepository creates a new Ollama-backed embedding
// repository.
func NewOllamaEmbeddingRepository(cfg *config.Config, log *logger.Logger) EmbeddingRepository {
	timeout := 60 * time.Second
	if cfg.Ollama.TimeoutSec > 0 {
		timeout = time.Duration(cfg.Ollama.TimeoutSec) * time.Second
	}
	dimensions := cfg.Ollama.Dimensions
	if dimensions == 0 {
		dimensions = 768
	}
	return &ollamaEmbeddingRepository{
		client:     &http.Client{Timeout: timeout},
		cfg:        cfg,
		logger:     log,
		dimensions: dimensions,
	}
}

// Dimensions returns the fixed embedding dimension.
func (r *ollamaEmbeddingRepository) Dimensions() int {
	return r.dimensions
}

// Embed converts text into its embedding vector. Provider and transport
// errors propagate to the caller; no fallback vector is produced.
func (r *ollamaEmbeddingRepository) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	payload := dto.OllamaEmbeddingRequest{
		Model:  r.cfg.Ollama.Model,
		Prompt: text,
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal embedding payload: %w", err)
	}

	apiURL := r.cfg.Ollama.BaseURL + "/api/embeddings"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		r.logger.Error("Failed to send request to embedding endpoint", logger.ErrorField(err))
		return nil, fmt.Errorf("failed to send request to embedding endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		r.logger.Error("Received non-OK response from embedding endpoint", logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("received non-OK response from embedding endpoint: %d - %s", resp.StatusCode, string(body))
	}

	var embeddingResp dto.OllamaEmbeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&embeddingResp); err != nil {
		return nil, fmt.Errorf("failed to decode embedding response: %w", err)
	}
	if embeddingResp.Error != "" {
		return nil, fmt.Errorf("embedding provider error: %s", embeddingResp.Error)
	}

	if len(embeddingResp.Embedding) != r.dimensions {
		return nil, fmt.Errorf("embedding dimension mismatch: expected %d, got %d", r.dimensions, len(embeddingResp.Embedding))
	}

	return embeddingResp.Embedding, nil
}
