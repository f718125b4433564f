package tutor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/doceo/internal/models"
)

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name     string
		question string
		wantErr  bool
	}{
		{"valid question", "What is the quadratic formula?", false},
		{"empty string", "", true},
		{"whitespace only", "   \t\n  ", true},
		{"exactly at length limit", strings.Repeat("a", 2000), false},
		{"one over length limit", strings.Repeat("a", 2001), true},
		{"multi-byte at length limit", strings.Repeat("é", 2000), false},
		{"multi-byte over length limit", strings.Repeat("é", 2001), true},
		{"script tag", "solve <script>alert(1)</script>", true},
		{"script tag mixed case", "solve <SCRIPT>alert(1)</SCRIPT>", true},
		{"javascript scheme", "what is javascript:void(0)", true},
		{"data scheme", "explain data:text/html,x", true},
		{"vbscript scheme", "vbscript:msgbox", true},
		{"onload attribute", "x onload=evil()", true},
		{"onerror attribute", "x onerror=evil()", true},
		{"onclick attribute", "x onclick=evil()", true},
		{"short repeated question allowed", "why why why", false},
		{"long question with dominant word", strings.Repeat("spam ", 11) + "math", true},
		{"long varied question allowed", "how do I find the area of a triangle with base five and height three", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(tt.question)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, models.IsKind(err, models.ErrKindValidation))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHasExcessiveRepetition(t *testing.T) {
	// 12 words, "loop" appears 7 times (> 50%)
	repeated := "loop loop loop loop loop loop loop one two three four five"
	assert.True(t, hasExcessiveRepetition(repeated))

	// 12 words, max count is 6 which is exactly 50%, not over
	borderline := "loop loop loop loop loop loop one two three four five six"
	assert.False(t, hasExcessiveRepetition(borderline))

	// 10 words or fewer never triggers, however repetitive
	assert.False(t, hasExcessiveRepetition("a a a a a a a a a a"))

	// Counting is case-sensitive: differently-cased words are distinct
	mixedCase := "Loop loop Loop loop Loop loop Loop one two three four five"
	assert.False(t, hasExcessiveRepetition(mixedCase))
}
