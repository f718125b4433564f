package tutor

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/doceo/internal/models"
)

// fakeGenerator records calls and returns a canned answer
type fakeGenerator struct {
	calls      int
	lastPrompt string
	answer     string
	err        error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func (f *fakeGenerator) ModelName() string                  { return "fake-model" }
func (f *fakeGenerator) HealthCheck(context.Context) error  { return nil }
func (f *fakeGenerator) Close() error                       { return nil }

func newTestTutor(store *fakeStore, gen *fakeGenerator) *Service {
	logger := arbor.NewLogger()
	retriever := NewRetriever(&fakeEmbedder{}, store, 10, 0.7, logger)
	return NewService(retriever, gen, nil, 5, logger)
}

func TestAnswerHappyPath(t *testing.T) {
	store := &fakeStore{matches: []models.Passage{
		{Text: "A triangle's angles sum to 180 degrees.", Score: 0.92},
	}}
	gen := &fakeGenerator{answer: "  The angles always add up to 180 degrees.  "}
	svc := newTestTutor(store, gen)

	answer, err := svc.Answer(context.Background(), "explain triangle angles")
	require.NoError(t, err)

	assert.Equal(t, "The angles always add up to 180 degrees.", answer)
	assert.Equal(t, 1, gen.calls)
	assert.Contains(t, gen.lastPrompt, "A triangle's angles sum to 180 degrees.")
	assert.Contains(t, gen.lastPrompt, "explain triangle angles")
}

func TestAnswerNoContextSkipsGenerator(t *testing.T) {
	store := &fakeStore{matches: []models.Passage{
		{Text: "off topic", Score: 0.2},
	}}
	gen := &fakeGenerator{answer: "should not be used"}
	svc := newTestTutor(store, gen)

	answer, err := svc.Answer(context.Background(), "explain triangle angles")
	require.NoError(t, err)

	assert.Equal(t, noContextAnswer, answer)
	assert.Zero(t, gen.calls)
}

func TestAnswerValidationFailureShortCircuits(t *testing.T) {
	store := &fakeStore{}
	gen := &fakeGenerator{}
	svc := newTestTutor(store, gen)

	_, err := svc.Answer(context.Background(), "")
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrKindValidation))
	assert.Zero(t, gen.calls)
}

func TestAnswerGenerationErrorPropagates(t *testing.T) {
	store := &fakeStore{matches: []models.Passage{
		{Text: "relevant context passage", Score: 0.95},
	}}
	gen := &fakeGenerator{err: models.NewGenerationError("all attempts failed", nil)}
	svc := newTestTutor(store, gen)

	_, err := svc.Answer(context.Background(), "explain fractions")
	require.Error(t, err)
	assert.True(t, models.IsKind(err, models.ErrKindGeneration))
}

func TestAnswerSanitizesGeneratedText(t *testing.T) {
	store := &fakeStore{matches: []models.Passage{
		{Text: "relevant context passage", Score: 0.95},
	}}
	gen := &fakeGenerator{answer: "fine <script>bad()</script> text"}
	svc := newTestTutor(store, gen)

	answer, err := svc.Answer(context.Background(), "explain fractions")
	require.NoError(t, err)
	assert.Equal(t, "fine  text", answer)
}

func TestBuildPromptContainsFormattingRules(t *testing.T) {
	prompt := BuildPrompt([]models.Passage{{Text: "ctx one"}, {Text: "ctx two"}}, "what is pi")

	assert.Contains(t, prompt, "ctx one\n\nctx two")
	assert.Contains(t, prompt, "Student's question: what is pi")
	assert.Contains(t, prompt, "Do NOT use markdown")
	assert.False(t, strings.Contains(prompt, "%s"))
}
