package tutor

import (
	"regexp"
	"strings"
)

const maxAnswerLength = 5000

var (
	// (?is): case-insensitive, dot matches newline so multi-line script
	// blocks are removed whole. Non-greedy to stop at the first close tag.
	scriptBlockRe = regexp.MustCompile(`(?is)<script.*?</script>`)
	schemeRe      = regexp.MustCompile(`(?i)(javascript|data):`)
)

// SanitizeAnswer strips script blocks and dangerous URL schemes from the
// generated text, caps it at 5000 characters and trims whitespace.
// The cap counts characters, not bytes, so multi-byte math symbols are
// never cut mid-rune.
func SanitizeAnswer(answer string) string {
	answer = scriptBlockRe.ReplaceAllString(answer, "")
	answer = schemeRe.ReplaceAllString(answer, "")

	if runes := []rune(answer); len(runes) > maxAnswerLength {
		answer = string(runes[:maxAnswerLength]) + "..."
	}

	return strings.TrimSpace(answer)
}
