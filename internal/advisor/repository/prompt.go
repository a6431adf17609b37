package repository

import "fmt"

// AdvisorSystemPrompt fixes the assistant's persona for every chat
// completion.
const AdvisorSystemPrompt = "You are a financial stock advisory assistant."

// BuildAdvisoryPrompt assembles the grounded user message: the retrieved
// context followed by the literal question, with an explicit instruction
// to answer only from the context and to state insufficiency otherwise.
// An empty context is passed through as-is so the model states that it
// lacks data rather than inventing an answer.
func BuildAdvisoryPrompt(contextText, question string) string {
	return fmt.Sprintf(`You are a professional stock market advisor.

Use ONLY the context below to answer the question.
If the context is insufficient, say you don't have enough data.

Context:
%s

Question:
%s

Answer:`, contextText, question)
}
