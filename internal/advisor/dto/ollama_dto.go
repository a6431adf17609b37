package dto

// OllamaEmbeddingRequest is the request payload for the Ollama
// /api/embeddings endpoint.
type OllamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

// OllamaEmbeddingResponse is the typed response contract for the Ollama
// embedding endpoint. Error is set on provider-side failures.
type OllamaEmbeddingResponse struct {
	Embedding []float32 `json:"embedding"`
	Error     string    `json:"error,omitempty"`
}
