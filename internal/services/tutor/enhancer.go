package tutor

import "strings"

// enhancement maps a trigger keyword to retrieval terms appended to the
// query. Order matters: only the first matching entry applies.
type enhancement struct {
	keyword string
	suffix  string
}

var enhancements = []enhancement{
	{"solve", "solution steps method"},
	{"calculate", "calculation formula"},
	{"explain", "explanation concept definition"},
	{"what is", "definition meaning concept"},
	{"how to", "steps method procedure"},
	{"find", "solution answer result"},
}

// EnhanceQuery appends retrieval keywords based on the question's intent.
// Matching is case-insensitive; the original casing is preserved in the
// output. Questions with no matching keyword pass through unchanged.
func EnhanceQuery(question string) string {
	lower := strings.ToLower(question)
	for _, e := range enhancements {
		if strings.Contains(lower, e.keyword) {
			return question + " " + e.suffix
		}
	}
	return question
}
