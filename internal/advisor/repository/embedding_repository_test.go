package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang-stock-advisor/internal/advisor/config"
	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func newEmbeddingRepo(baseURL string, dimensions int) EmbeddingRepository {
	cfg := &config.Config{}
	cfg.Ollama.BaseURL = baseURL
	cfg.Ollama.Model = "nomic-embed-text"
	cfg.Ollama.Dimensions = dimensions
	return NewOllamaEmbeddingRepository(cfg, newTestLogger())
}

func embeddingServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestEmbed_SendsModelAndPrompt(t *testing.T) {
	var gotPath string
	var gotReq dto.OllamaEmbeddingRequest

	srv := embeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(dto.OllamaEmbeddingResponse{
			Embedding: []float32{0.1, 0.2, 0.3, 0.4},
		})
	})

	repo := newEmbeddingRepo(srv.URL, 4)
	vec, err := repo.Embed(context.Background(), "Should I sell AAPL?")
	require.NoError(t, err)

	assert.Equal(t, "/api/embeddings", gotPath)
	assert.Equal(t, "nomic-embed-text", gotReq.Model)
	assert.Equal(t, "Should I sell AAPL?", gotReq.Prompt)
	assert.Equal(t, []float32{0.1, 0.2, 0.3, 0.4}, vec)
	assert.Equal(t, 4, repo.Dimensions())
}

func TestEmbed_EmptyTextSkipsProviderCall(t *testing.T) {
	called := false
	srv := embeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	repo := newEmbeddingRepo(srv.URL, 4)
	for _, text := range []string{"", "   "} {
		_, err := repo.Embed(context.Background(), text)
		assert.ErrorIs(t, err, ErrEmptyText)
	}
	assert.False(t, called)
}

func TestEmbed_DimensionMismatch(t *testing.T) {
	srv := embeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.OllamaEmbeddingResponse{
			Embedding: []float32{0.1, 0.2},
		})
	})

	repo := newEmbeddingRepo(srv.URL, 4)
	_, err := repo.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dimension mismatch")
}

func TestEmbed_NonOKStatus(t *testing.T) {
	srv := embeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	})

	repo := newEmbeddingRepo(srv.URL, 4)
	_, err := repo.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-OK response")
}

func TestEmbed_ProviderError(t *testing.T) {
	srv := embeddingServer(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(dto.OllamaEmbeddingResponse{
			Error: "model not found",
		})
	})

	repo := newEmbeddingRepo(srv.URL, 4)
	_, err := repo.Embed(context.Background(), "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model not found")
}
