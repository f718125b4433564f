package tutor

import "github.com/ternarybob/doceo/internal/models"

const dedupPrefixLength = 50

// AssembleContext deduplicates retrieved passages and caps them at
// maxChunks. Two passages are considered duplicates when they share the
// same 50-character prefix; the first occurrence wins and input order is
// preserved.
func AssembleContext(passages []models.Passage, maxChunks int) []models.Passage {
	if maxChunks <= 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(passages))
	assembled := make([]models.Passage, 0, maxChunks)

	for _, p := range passages {
		key := prefixKey(p.Text)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}

		assembled = append(assembled, p)
		if len(assembled) == maxChunks {
			break
		}
	}

	return assembled
}

// prefixKey returns the first 50 characters of text, rune-aware so
// multi-byte content does not split mid-character.
func prefixKey(text string) string {
	runes := []rune(text)
	if len(runes) <= dedupPrefixLength {
		return text
	}
	return string(runes[:dedupPrefixLength])
}
