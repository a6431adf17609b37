package dto

// ChatRequest is the incoming chat message.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is returned to the chat caller. Response is null when the
// answer generator failed; the user turn is persisted regardless.
type ChatResponse struct {
	Response *string `json:"response"`
}

// ChatResult is the orchestrator's outcome: the embedding computed for
// the user turn plus the generated answer, nil when generation failed.
type ChatResult struct {
	Embedding []float32
	Answer    *string
}
