package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockEmbeddingRepo struct {
	vector []float32
	err    error
	calls  int
}

func (m *mockEmbeddingRepo) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.vector, nil
}

func (m *mockEmbeddingRepo) Dimensions() int {
	return len(m.vector)
}

type mockMemoryRepo struct {
	userTurns      []string
	assistantTurns []string
	searchResults  []string
	searchK        int
	insertErr      error
}

func (m *mockMemoryRepo) InsertUserMessage(_ context.Context, content string, _ []float32) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.userTurns = append(m.userTurns, content)
	return nil
}

func (m *mockMemoryRepo) InsertAssistantMessage(_ context.Context, content string) error {
	m.assistantTurns = append(m.assistantTurns, content)
	return nil
}

func (m *mockMemoryRepo) SearchNearest(_ context.Context, _ []float32, k int) ([]string, error) {
	m.searchK = k
	return m.searchResults, nil
}

type mockAIRepo struct {
	answer      string
	err         error
	gotContext  string
	gotQuestion string
	calls       int
}

func (m *mockAIRepo) Advise(_ context.Context, question, contextText string) (string, error) {
	m.calls++
	m.gotQuestion = question
	m.gotContext = contextText
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func TestChat_HappyPath(t *testing.T) {
	embedder := &mockEmbeddingRepo{vector: []float32{0.1, 0.2, 0.3}}
	memory := &mockMemoryRepo{searchResults: []string{"Should I buy AAPL?", "AAPL looks overbought."}}
	ai := &mockAIRepo{answer: "Based on the context, AAPL looks overbought."}
	svc := NewChatService(embedder, memory, ai, newTestLogger(), 3)

	result, err := svc.Chat(context.Background(), "Should I sell AAPL?")
	require.NoError(t, err)
	require.NotNil(t, result.Answer)
	assert.Equal(t, ai.answer, *result.Answer)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, result.Embedding)

	assert.Equal(t, []string{"Should I sell AAPL?"}, memory.userTurns)
	assert.Equal(t, []string{ai.answer}, memory.assistantTurns)
	assert.Equal(t, 3, memory.searchK)
	assert.Equal(t, "Should I sell AAPL?", ai.gotQuestion)
	assert.Equal(t, "Should I buy AAPL?\nAAPL looks overbought.", ai.gotContext)
}

func TestChat_EmptyMessageRejected(t *testing.T) {
	embedder := &mockEmbeddingRepo{vector: []float32{0.1}}
	memory := &mockMemoryRepo{}
	ai := &mockAIRepo{answer: "unused"}
	svc := NewChatService(embedder, memory, ai, newTestLogger(), 3)

	for _, message := range []string{"", "   ", "\n\t"} {
		_, err := svc.Chat(context.Background(), message)
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}
	assert.Zero(t, embedder.calls)
	assert.Empty(t, memory.userTurns)
}

func TestChat_EmbeddingFailureRecordsNothing(t *testing.T) {
	embedder := &mockEmbeddingRepo{err: errors.New("provider unreachable")}
	memory := &mockMemoryRepo{}
	ai := &mockAIRepo{answer: "unused"}
	svc := NewChatService(embedder, memory, ai, newTestLogger(), 3)

	_, err := svc.Chat(context.Background(), "Should I sell AAPL?")
	require.Error(t, err)
	assert.Empty(t, memory.userTurns)
	assert.Zero(t, ai.calls)
}

func TestChat_GenerationFailureKeepsUserTurn(t *testing.T) {
	embedder := &mockEmbeddingRepo{vector: []float32{0.1, 0.2}}
	memory := &mockMemoryRepo{}
	ai := &mockAIRepo{err: errors.New("model overloaded")}
	svc := NewChatService(embedder, memory, ai, newTestLogger(), 3)

	result, err := svc.Chat(context.Background(), "Should I sell AAPL?")
	require.NoError(t, err)
	assert.Nil(t, result.Answer)
	assert.Equal(t, []float32{0.1, 0.2}, result.Embedding)

	// The user turn outlives the failed generation; no assistant turn is
	// written.
	assert.Equal(t, []string{"Should I sell AAPL?"}, memory.userTurns)
	assert.Empty(t, memory.assistantTurns)
}

func TestChat_EmptyStoreStillGenerates(t *testing.T) {
	embedder := &mockEmbeddingRepo{vector: []float32{0.1}}
	memory := &mockMemoryRepo{searchResults: nil}
	ai := &mockAIRepo{answer: "I don't have enough data."}
	svc := NewChatService(embedder, memory, ai, newTestLogger(), 3)

	result, err := svc.Chat(context.Background(), "What about TSLA?")
	require.NoError(t, err)
	require.NotNil(t, result.Answer)
	assert.Equal(t, 1, ai.calls)
	assert.Equal(t, "", ai.gotContext)
}

func TestChat_ContextLimitDefaults(t *testing.T) {
	embedder := &mockEmbeddingRepo{vector: []float32{0.1}}
	memory := &mockMemoryRepo{}
	ai := &mockAIRepo{answer: "ok"}
	svc := NewChatService(embedder, memory, ai, newTestLogger(), 0)

	_, err := svc.Chat(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, defaultContextLimit, memory.searchK)
}

func TestRetrieveContext_JoinsNearestFirst(t *testing.T) {
	embedder := &mockEmbeddingRepo{vector: []float32{0.5}}
	memory := &mockMemoryRepo{searchResults: []string{"nearest", "second", "third"}}
	svc := NewChatService(embedder, memory, &mockAIRepo{}, newTestLogger(), 3)

	got, err := svc.RetrieveContext(context.Background(), "query", 3)
	require.NoError(t, err)
	assert.Equal(t, "nearest\nsecond\nthird", got)
	assert.Equal(t, 3, memory.searchK)
}
