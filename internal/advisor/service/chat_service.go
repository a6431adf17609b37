package service

import (
	"context"
	"strings"

	"golang-stock-advisor/internal/advisor/dto"
	"golang-stock-advisor/internal/advisor/repository"
	"golang-stock-advisor/pkg/logger"
	"golang-stock-advisor/pkg/utils"
)

// defaultContextLimit is the number of prior turns retrieved per chat.
const defaultContextLimit = 5

// ChatService orchestrates the RAG chat flow: embed, persist the user
// turn, retrieve grounding context, generate, persist the answer.
type ChatService interface {
	Chat(ctx context.Context, message string) (*dto.ChatResult, error)
	RetrieveContext(ctx context.Context, query string, k int) (string, error)
}

// NewChatService creates a new chat service.
func NewChatService(
	embeddingRepo repository.EmbeddingRepository,
	memoryRepo repository.ChatMemoryRepository,
	aiRepo repository.AIRepository,
	log *logger.Logger,
	contextLimit int,
) ChatService {
	if contextLimit < 1 {
		contextLimit = defaultContextLimit
	}
	return &chatService{
		embeddingRepo: embeddingRepo,
		memoryRepo:    memoryRepo,
		aiRepo:        aiRepo,
		logger:        log,
		contextLimit:  contextLimit,
	}
}

type chatService struct {
	embeddingRepo repository.EmbeddingRepository
	memoryRepo    repository.ChatMemoryRepository
	aiRepo        repository.AIRepository
	logger        *logger.Logger
	contextLimit  int
}

// Chat handles one user message. The user turn is durably written before
// retrieval runs, so a message may retrieve itself. A failed generation
// yields a nil answer, never an error: the persisted user turn remains
// valid on its own.
func (s *chatService) Chat(ctx context.Context, message string) (*dto.ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	embedding, err := s.embeddingRepo.Embed(ctx, message)
	if err != nil {
		// No turn is recorded without its embedding.
		return nil, err
	}

	if err := s.memoryRepo.InsertUserMessage(ctx, message, embedding); err != nil {
		return nil, err
	}

	contextText, err := s.RetrieveContext(ctx, message, s.contextLimit)
	if err != nil {
		return nil, err
	}

	answer, err := s.aiRepo.Advise(ctx, message, contextText)
	if err != nil {
		s.logger.Error("Answer generation failed, returning without answer", logger.ErrorField(err))
		return &dto.ChatResult{Embedding: embedding}, nil
	}

	if err := s.memoryRepo.InsertAssistantMessage(ctx, answer); err != nil {
		s.logger.Error("Failed to persist assistant turn", logger.ErrorField(err))
		return &dto.ChatResult{Embedding: embedding, Answer: utils.ToPointer(answer)}, nil
	}

	return &dto.ChatResult{Embedding: embedding, Answer: utils.ToPointer(answer)}, nil
}

// RetrieveContext embeds the query and returns the contents of the k
// nearest stored turns joined by newlines, nearest first. An empty store
// yields an empty context; the answer generator still runs with it and
// states insufficiency.
func (s *chatService) RetrieveContext(ctx context.Context, query string, k int) (string, error) {
	embedding, err := s.embeddingRepo.Embed(ctx, query)
	if err != nil {
		return "", err
	}

	contents, err := s.memoryRepo.SearchNearest(ctx, embedding, k)
	if err != nil {
		return "", err
	}

	return strings.Join(contents, "\n"), nil
}
