package tutor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnhanceQuery(t *testing.T) {
	tests := []struct {
		name     string
		question string
		want     string
	}{
		{"solve keyword", "Solve x + 2 = 5", "Solve x + 2 = 5 solution steps method"},
		{"calculate keyword", "calculate the mean", "calculate the mean calculation formula"},
		{"explain keyword", "Explain limits", "Explain limits explanation concept definition"},
		{"what is phrase", "What is a polynomial", "What is a polynomial definition meaning concept"},
		{"how to phrase", "how to factor", "how to factor steps method procedure"},
		{"find keyword", "Find the slope", "Find the slope solution answer result"},
		{"no match passes through", "triangle angles sum", "triangle angles sum"},
		{"first match wins over later keywords", "Solve and find x", "Solve and find x solution steps method"},
		{"case insensitive match keeps original casing", "SOLVE for y", "SOLVE for y solution steps method"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnhanceQuery(tt.question))
		})
	}
}
