package ingest

import "strings"

// Chunker splits text into overlapping character-bounded chunks on word
// boundaries. Overlap carries trailing words of one chunk into the next
// so sentences cut at a boundary still appear whole somewhere.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker creates a chunker with the given size and overlap in
// characters. Overlap must be smaller than size.
func NewChunker(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = chunkSize / 10
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// Split breaks text into chunks of at most chunkSize characters, never
// splitting inside a word. Whitespace-only input yields no chunks.
func (c *Chunker) Split(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var chunks []string
	var current []string
	currentLen := 0

	for i := 0; i < len(words); i++ {
		w := words[i]
		wordLen := len(w)
		if currentLen > 0 {
			wordLen++ // joining space
		}

		if currentLen+wordLen > c.chunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))

			// Carry trailing words up to the overlap budget
			current = c.overlapTail(current)
			currentLen = len(strings.Join(current, " "))
			if currentLen > 0 {
				currentLen++
			}
			currentLen += len(w)
			current = append(current, w)
			continue
		}

		current = append(current, w)
		currentLen += wordLen
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}

// overlapTail returns the trailing words of chunk whose joined length
// fits within the overlap budget.
func (c *Chunker) overlapTail(chunk []string) []string {
	if c.overlap == 0 {
		return nil
	}

	length := 0
	start := len(chunk)
	for i := len(chunk) - 1; i >= 0; i-- {
		wordLen := len(chunk[i])
		if length > 0 {
			wordLen++
		}
		if length+wordLen > c.overlap {
			break
		}
		length += wordLen
		start = i
	}

	if start == len(chunk) {
		return nil
	}
	tail := make([]string, len(chunk)-start)
	copy(tail, chunk[start:])
	return tail
}
