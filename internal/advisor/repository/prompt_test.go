package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildAdvisoryPrompt(t *testing.T) {
	prompt := BuildAdvisoryPrompt("AAPL closed at 178.50.", "Should I sell AAPL?")

	assert.Contains(t, prompt, "Use ONLY the context below")
	assert.Contains(t, prompt, "Context:\nAAPL closed at 178.50.")
	assert.Contains(t, prompt, "Question:\nShould I sell AAPL?")
}

func TestBuildAdvisoryPrompt_EmptyContext(t *testing.T) {
	prompt := BuildAdvisoryPrompt("", "Should I sell AAPL?")

	// The empty context goes through verbatim so the model reports it
	// lacks data instead of inventing an answer.
	assert.Contains(t, prompt, "Context:\n\n")
	assert.Contains(t, prompt, "say you don't have enough data")
}
