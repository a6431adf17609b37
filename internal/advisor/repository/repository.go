package repository

import "context"

// AIRepository defines the contract for a chat-completion backend that
// produces a grounded answer from retrieved context and a user question.
type AIRepository interface {
	Advise(ctx context.Context, question, contextText string) (string, error)
}

// EmbeddingRepository converts text into a fixed-dimensional vector.
type EmbeddingRepository interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}
