package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/common"
	"github.com/ternarybob/doceo/internal/models"
)

// captureStore records upserted passages
type captureStore struct {
	records []models.PassageRecord
}

func (c *captureStore) Query(context.Context, []float32, int) ([]models.Passage, error) {
	return nil, nil
}

func (c *captureStore) Upsert(_ context.Context, records []models.PassageRecord) error {
	c.records = append(c.records, records...)
	return nil
}

func (c *captureStore) Count(context.Context) (int, error) { return len(c.records), nil }
func (c *captureStore) HealthCheck(context.Context) error  { return nil }
func (c *captureStore) Close() error                       { return nil }

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func newTestIngest(t *testing.T, dir string) (*Service, *captureStore) {
	t.Helper()
	store := &captureStore{}
	cfg := &common.IngestConfig{
		Dir:          dir,
		ChunkSize:    100,
		ChunkOverlap: 20,
	}
	return NewService(cfg, store, arbor.NewLogger()), store
}

func TestReindexChunksMarkdownAndText(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "algebra.md", "# Algebra\n\nAn equation states that two expressions are **equal**.")
	writeFile(t, dir, "notes.txt", "Plain text notes about geometry.")
	writeFile(t, dir, "ignored.pdf", "binary-ish content")

	svc, store := newTestIngest(t, dir)
	require.NoError(t, svc.Reindex(context.Background()))

	require.NotEmpty(t, store.records)

	var sources []string
	joined := ""
	for _, rec := range store.records {
		sources = append(sources, rec.Metadata["source"])
		joined += rec.Text + " "
		assert.NotEmpty(t, rec.ID)
	}

	assert.Contains(t, sources, "algebra.md")
	assert.Contains(t, sources, "notes.txt")
	assert.NotContains(t, sources, "ignored.pdf")
	assert.Contains(t, joined, "two expressions are equal")
	assert.NotContains(t, joined, "**")
}

func TestReindexStableIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "a stable passage of text")

	svc, store := newTestIngest(t, dir)
	require.NoError(t, svc.Reindex(context.Background()))
	first := store.records[0].ID

	store.records = nil
	require.NoError(t, svc.Reindex(context.Background()))

	assert.Equal(t, first, store.records[0].ID, "unchanged content must keep its ID")
}

func TestReindexEmptyDirectory(t *testing.T) {
	svc, store := newTestIngest(t, t.TempDir())

	require.NoError(t, svc.Reindex(context.Background()))
	assert.Empty(t, store.records)
}

func TestReindexLongFileSplitsIntoChunks(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "long.txt", strings.Repeat("the mean value theorem applies here ", 30))

	svc, store := newTestIngest(t, dir)
	require.NoError(t, svc.Reindex(context.Background()))

	assert.Greater(t, len(store.records), 1)
	for _, rec := range store.records {
		assert.LessOrEqual(t, len(rec.Text), 100)
	}
}
