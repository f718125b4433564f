package tutor

import (
	"fmt"
	"strings"

	"github.com/ternarybob/doceo/internal/models"
)

// noContextAnswer is returned when retrieval finds nothing relevant.
// The generator is never called in that case.
const noContextAnswer = "I couldn't find relevant information in the Mathematics textbook to answer your question. Please try rephrasing your question or ask about a different mathematics topic."

// tutorPromptTemplate frames the model as a mathematics tutor answering
// strictly from the supplied textbook context. The formatting rules keep
// responses as plain conversational prose suitable for direct display.
const tutorPromptTemplate = `You are a knowledgeable and patient mathematics tutor helping students understand concepts from their textbook.

Use the following textbook content to answer the student's question:

%s

Student's question: %s

Instructions:
- Answer based on the textbook content provided above
- Explain step by step in a clear, encouraging way
- If the context does not fully cover the question, say what the textbook does cover

Formatting rules:
- Write in natural conversational prose, as if explaining aloud
- Do NOT use markdown formatting of any kind
- Do NOT use bullet points or numbered lists
- Use simple ASCII diagrams where a picture genuinely helps
- Keep notation plain, for example x^2 for x squared`

// BuildPrompt renders the tutor prompt from assembled context passages
// and the student's question.
func BuildPrompt(passages []models.Passage, question string) string {
	var contextBlock strings.Builder
	for i, p := range passages {
		if i > 0 {
			contextBlock.WriteString("\n\n")
		}
		contextBlock.WriteString(p.Text)
	}

	return fmt.Sprintf(tutorPromptTemplate, contextBlock.String(), question)
}
