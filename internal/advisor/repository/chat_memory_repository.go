package repository

import (
	"context"

	"golang-stock-advisor/internal/entity"
	"golang-stock-advisor/pkg/common"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// ChatMemoryRepository is the append-only store of conversation turns
// with nearest-neighbor retrieval over user-turn embeddings.
type ChatMemoryRepository interface {
	InsertUserMessage(ctx context.Context, content string, embedding []float32) error
	InsertAssistantMessage(ctx context.Context, content string) error
	SearchNearest(ctx context.Context, embedding []float32, k int) ([]string, error)
}

type chatMemoryRepository struct {
	db *gorm.DB
}

// NewChatMemoryRepository creates a new GORM-based chat memory repository.
func NewChatMemoryRepository(db *gorm.DB) ChatMemoryRepository {
	return &chatMemoryRepository{db: db}
}

// InsertUserMessage stores a user turn together with its embedding. The
// write is its own transaction; there is no atomic pairing with the
// matching assistant turn.
func (r *chatMemoryRepository) InsertUserMessage(ctx context.Context, content string, embedding []float32) error {
	vec := pgvector.NewVector(embedding)
	msg := entity.ChatMessage{
		Role:      common.ChatRoleUser,
		Content:   content,
		Embedding: &vec,
	}
	return r.db.WithContext(ctx).Create(&msg).Error
}

// InsertAssistantMessage stores an assistant turn without an embedding.
func (r *chatMemoryRepository) InsertAssistantMessage(ctx context.Context, content string) error {
	msg := entity.ChatMessage{
		Role:    common.ChatRoleAssistant,
		Content: content,
	}
	return r.db.WithContext(ctx).Create(&msg).Error
}

// SearchNearest returns the contents of the k stored turns closest to
// the given embedding, nearest first by cosine distance. Assistant turns
// carry no embedding and are excluded. An empty store yields an empty
// slice, not an error.
func (r *chatMemoryRepository) SearchNearest(ctx context.Context, embedding []float32, k int) ([]string, error) {
	var contents []string
	err := r.db.WithContext(ctx).Raw(
		`SELECT content FROM chat_messages WHERE embedding IS NOT NULL ORDER BY embedding <=> ? LIMIT ?`,
		pgvector.NewVector(embedding), k,
	).Scan(&contents).Error
	if err != nil {
		return nil, err
	}
	return contents, nil
}
