package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
)

func newTestService(dimension int) *Service {
	return NewService(dimension, arbor.NewLogger())
}

func TestEmbedDimension(t *testing.T) {
	tests := []struct {
		name      string
		dimension int
		want      int
	}{
		{"default 384", 384, 384},
		{"small vector", 8, 8},
		{"larger than one digest", 64, 64},
		{"zero falls back to default", 0, 384},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(tt.dimension, arbor.NewLogger())
			vec, err := svc.Embed(context.Background(), "what is a derivative")
			require.NoError(t, err)
			assert.Len(t, vec, tt.want)
			assert.Equal(t, tt.want, svc.Dimension())
		})
	}
}

func TestEmbedDeterministic(t *testing.T) {
	svc := newTestService(384)

	a, err := svc.Embed(context.Background(), "solve x^2 = 4")
	require.NoError(t, err)
	b, err := svc.Embed(context.Background(), "solve x^2 = 4")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestEmbedDistinctInputsDiffer(t *testing.T) {
	svc := newTestService(384)

	a, err := svc.Embed(context.Background(), "solve x^2 = 4")
	require.NoError(t, err)
	b, err := svc.Embed(context.Background(), "what is a prime number")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestEmbedValuesInUnitRange(t *testing.T) {
	svc := newTestService(384)

	vec, err := svc.Embed(context.Background(), "explain the chain rule")
	require.NoError(t, err)

	for i, v := range vec {
		assert.GreaterOrEqual(t, v, float32(0), "index %d", i)
		assert.LessOrEqual(t, v, float32(1), "index %d", i)
	}
}

func TestEmbedCyclesDigestForLargeDimensions(t *testing.T) {
	// MD5 yields 16 hex pairs; dimension 32 repeats the digest once.
	svc := newTestService(32)

	vec, err := svc.Embed(context.Background(), "area of a circle")
	require.NoError(t, err)
	require.Len(t, vec, 32)

	assert.Equal(t, vec[:16], vec[16:32])
}

func TestEmbedEmptyText(t *testing.T) {
	svc := newTestService(384)

	vec, err := svc.Embed(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, vec, 384)
}
