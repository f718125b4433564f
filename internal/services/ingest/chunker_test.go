package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitShortTextSingleChunk(t *testing.T) {
	c := NewChunker(1000, 100)

	chunks := c.Split("a short passage about fractions")
	require.Len(t, chunks, 1)
	assert.Equal(t, "a short passage about fractions", chunks[0])
}

func TestSplitEmptyText(t *testing.T) {
	c := NewChunker(1000, 100)

	assert.Nil(t, c.Split(""))
	assert.Nil(t, c.Split("   \n\t  "))
}

func TestSplitRespectsChunkSize(t *testing.T) {
	c := NewChunker(50, 10)

	text := strings.Repeat("word ", 100)
	chunks := c.Split(text)
	require.NotEmpty(t, chunks)

	for i, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 50, "chunk %d too long", i)
	}
}

func TestSplitNeverSplitsWords(t *testing.T) {
	c := NewChunker(30, 5)

	chunks := c.Split("mathematics geometry trigonometry calculus algebra statistics")
	for _, chunk := range chunks {
		for _, w := range strings.Fields(chunk) {
			assert.Contains(t,
				[]string{"mathematics", "geometry", "trigonometry", "calculus", "algebra", "statistics"},
				w)
		}
	}
}

func TestSplitOverlapCarriesTrailingWords(t *testing.T) {
	c := NewChunker(20, 8)

	chunks := c.Split("alpha beta gamma delta epsilon zeta")
	require.Greater(t, len(chunks), 1)

	// The last word of each chunk must reappear at the start of the next
	for i := 0; i < len(chunks)-1; i++ {
		words := strings.Fields(chunks[i])
		last := words[len(words)-1]
		assert.True(t, strings.HasPrefix(chunks[i+1], last),
			"chunk %d %q should start with overlap from %q", i+1, chunks[i+1], chunks[i])
	}
}

func TestSplitCoversAllWords(t *testing.T) {
	c := NewChunker(40, 10)

	input := "one two three four five six seven eight nine ten eleven twelve"
	joined := strings.Join(c.Split(input), " ")
	for _, w := range strings.Fields(input) {
		assert.Contains(t, joined, w)
	}
}

func TestNewChunkerGuardsBadConfig(t *testing.T) {
	c := NewChunker(0, 0)
	assert.Equal(t, 1000, c.chunkSize)

	c = NewChunker(100, 200)
	assert.Equal(t, 10, c.overlap, "oversized overlap falls back to a tenth of chunk size")
}

func TestExtractMarkdownText(t *testing.T) {
	source := []byte("# Triangles\n\nA triangle has **three** sides.\n\n- first\n- second\n\n```\nx = 1\n```\n")

	got := ExtractMarkdownText(source)

	assert.Contains(t, got, "Triangles")
	assert.Contains(t, got, "A triangle has three sides.")
	assert.Contains(t, got, "first")
	assert.Contains(t, got, "x = 1")
	assert.NotContains(t, got, "**")
	assert.NotContains(t, got, "# ")
}
