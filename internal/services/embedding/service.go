package embedding

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strconv"

	"github.com/ternarybob/arbor"
)

// Service produces deterministic hash-based embeddings. The vector is
// derived from the MD5 digest of the input, so equal text always maps to
// the same point. This is a placeholder for a learned embedding model and
// carries no semantic signal beyond exact-duplicate proximity.
type Service struct {
	dimension int
	logger    arbor.ILogger
}

// NewService creates a hash embedder with the given vector dimension
func NewService(dimension int, logger arbor.ILogger) *Service {
	if dimension <= 0 {
		dimension = 384
	}
	return &Service{
		dimension: dimension,
		logger:    logger,
	}
}

// Dimension returns the embedding vector length
func (s *Service) Dimension() int {
	return s.dimension
}

// Embed converts text to a fixed-dimension vector. Hex character pairs of
// the MD5 digest are scaled into [0, 1] and the digest is cycled until the
// vector is full. On parse failure the remaining positions stay zero.
func (s *Service) Embed(ctx context.Context, text string) ([]float32, error) {
	vector := make([]float32, s.dimension)

	sum := md5.Sum([]byte(text))
	digest := hex.EncodeToString(sum[:])

	pos := 0
	for pos < s.dimension {
		for i := 0; i+2 <= len(digest) && pos < s.dimension; i += 2 {
			b, err := strconv.ParseUint(digest[i:i+2], 16, 8)
			if err != nil {
				s.logger.Warn().
					Str("pair", digest[i:i+2]).
					Msg("Failed to parse digest pair, leaving zero value")
				pos++
				continue
			}
			vector[pos] = float32(b) / 255.0
			pos++
		}
	}

	return vector, nil
}

// EmbeddingFunc adapts the service for libraries that take a plain
// function, such as the chromem collection constructor.
func (s *Service) EmbeddingFunc() func(ctx context.Context, text string) ([]float32, error) {
	return s.Embed
}
