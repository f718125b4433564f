package tutor

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ternarybob/doceo/internal/models"
)

const maxQuestionLength = 2000

// dangerousPatterns are rejected as substrings, case-insensitive
var dangerousPatterns = []string{
	"<script",
	"javascript:",
	"data:",
	"vbscript:",
	"onload=",
	"onerror=",
	"onclick=",
}

// ValidateQuestion rejects unusable or hostile input before the pipeline
// spends any work on it. Returns a validation-kind error describing the
// first failed check.
func ValidateQuestion(question string) error {
	if strings.TrimSpace(question) == "" {
		return models.NewValidationError("question cannot be empty")
	}

	if utf8.RuneCountInString(question) > maxQuestionLength {
		return models.NewValidationError(fmt.Sprintf("question exceeds maximum length of %d characters", maxQuestionLength))
	}

	lower := strings.ToLower(question)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lower, pattern) {
			return models.NewValidationError("question contains disallowed content")
		}
	}

	if hasExcessiveRepetition(question) {
		return models.NewValidationError("question contains excessive repetition")
	}

	return nil
}

// hasExcessiveRepetition reports whether a single word dominates the
// question: more than 10 words total and one word above half the count.
// Words are compared case-sensitively.
func hasExcessiveRepetition(question string) bool {
	words := strings.Fields(question)
	if len(words) <= 10 {
		return false
	}

	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}

	for _, n := range counts {
		if float64(n) > float64(len(words))*0.5 {
			return true
		}
	}

	return false
}
