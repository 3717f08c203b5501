package advisor_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishisahay-be/internal/repository/memory"
	"krishisahay-be/pkg/advisor"
	"krishisahay-be/pkg/knowledge"
	"krishisahay-be/pkg/llm"
	"krishisahay-be/pkg/store"
)

type fakeProvider struct {
	mu         sync.Mutex
	calls      int
	res        *llm.GenerationResult
	err        error
	configured bool
	block      bool
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (*llm.GenerationResult, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.block {
		<-ctx.Done()
		return nil, llm.ErrTimeout
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.res, nil
}

func (f *fakeProvider) Configured() bool { return f.configured }

func (f *fakeProvider) Status() llm.Status { return llm.Status{Configured: f.configured} }

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newOrchestrator(p llm.Provider) *advisor.Orchestrator {
	return advisor.New(knowledge.DefaultTable(), p, memory.NewResponseCache(time.Minute), nil)
}

func TestAnswerRejectsBlankQuery(t *testing.T) {
	o := newOrchestrator(&fakeProvider{})
	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := o.Answer(context.Background(), q, nil)
		assert.ErrorIs(t, err, advisor.ErrInvalidInput, "query %q", q)
	}
}

func TestAnswerOnlineSuccess(t *testing.T) {
	p := &fakeProvider{
		configured: true,
		res: &llm.GenerationResult{
			Answer:     "Spray neem oil at 5ml per litre in the evening.",
			Confidence: 0.92,
			Source:     "IBM Watsonx Granite LLM",
		},
	}
	o := newOrchestrator(p)

	got, err := o.Answer(context.Background(), "how to control aphids in mustard", nil)
	require.NoError(t, err)

	assert.True(t, got.WatsonxEnabled)
	assert.Equal(t, "Spray neem oil at 5ml per litre in the evening.", got.OnlineAnswer)
	assert.InDelta(t, 0.92, got.Confidence, 1e-9)
	assert.Contains(t, got.OfflineAnswer, "Aphids")
	assert.NotEmpty(t, got.Results)
	assert.NotEmpty(t, got.FollowUpSuggestions)
	assert.NotEmpty(t, got.RelatedTopics)
	require.Len(t, got.Sources, 2)
	assert.Equal(t, "IBM Watsonx Granite LLM", got.Sources[0].Name)
	assert.Equal(t, 1, p.callCount())
}

func TestAnswerFallsBackOnGenerationError(t *testing.T) {
	p := &fakeProvider{configured: true, err: llm.ErrGeneration}
	o := newOrchestrator(p)

	got, err := o.Answer(context.Background(), "how to control aphids in mustard", nil)
	require.NoError(t, err)

	assert.False(t, got.WatsonxEnabled)
	assert.NotEmpty(t, got.OnlineAnswer)
	assert.NotEqual(t, got.OfflineAnswer, got.OnlineAnswer)
	assert.InDelta(t, 0.78, got.Confidence, 1e-9)
	require.NotEmpty(t, got.Sources)
	assert.Equal(t, "Knowledge Base (Fallback)", got.Sources[0].Name)
}

func TestAnswerSkipsUnconfiguredProvider(t *testing.T) {
	p := &fakeProvider{configured: false}
	o := newOrchestrator(p)

	got, err := o.Answer(context.Background(), "aphids in wheat", nil)
	require.NoError(t, err)

	assert.Equal(t, 0, p.callCount())
	assert.False(t, got.WatsonxEnabled)
	assert.NotEmpty(t, got.OnlineAnswer)
}

func TestAnswerCachesByNormalizedQuery(t *testing.T) {
	p := &fakeProvider{
		configured: true,
		res:        &llm.GenerationResult{Answer: "cached advice", Confidence: 0.92, Source: "IBM Watsonx Granite LLM"},
	}
	o := newOrchestrator(p)

	first, err := o.Answer(context.Background(), "Aphids on Mustard", nil)
	require.NoError(t, err)
	second, err := o.Answer(context.Background(), "  aphids   on MUSTARD ", nil)
	require.NoError(t, err)

	assert.Equal(t, 1, p.callCount(), "second call must be served from cache")
	assert.Equal(t, first.OnlineAnswer, second.OnlineAnswer)
	assert.True(t, second.WatsonxEnabled)
}

func TestAnswerDoesNotCacheFailures(t *testing.T) {
	p := &fakeProvider{configured: true, err: llm.ErrGeneration}
	o := newOrchestrator(p)

	_, err := o.Answer(context.Background(), "aphids in cotton", nil)
	require.NoError(t, err)
	_, err = o.Answer(context.Background(), "aphids in cotton", nil)
	require.NoError(t, err)

	assert.Equal(t, 2, p.callCount(), "errors must not be cached")
}

func TestAnswerOfflineOnly(t *testing.T) {
	p := &fakeProvider{configured: true, res: &llm.GenerationResult{Answer: "never used"}}
	o := newOrchestrator(p)

	got, err := o.Answer(context.Background(), "aphids in wheat", nil, advisor.WithOfflineOnly())
	require.NoError(t, err)

	assert.Equal(t, 0, p.callCount())
	assert.Empty(t, got.OnlineAnswer)
	assert.False(t, got.WatsonxEnabled)
	assert.NotEmpty(t, got.OfflineAnswer)
}

func TestAnswerHonorsCallerCancellation(t *testing.T) {
	p := &fakeProvider{configured: true, block: true}
	o := newOrchestrator(p)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	got, err := o.Answer(ctx, "aphids in wheat", nil)
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.False(t, got.WatsonxEnabled)
	assert.NotEmpty(t, got.OfflineAnswer)
}

func TestAnswerThreadsSessionContextIntoPrompt(t *testing.T) {
	var captured string
	p := &promptCapturingProvider{}
	o := newOrchestrator(p)

	qctx := &store.QueryContext{
		Location:        "Punjab",
		Crop:            "wheat",
		PreviousQueries: []string{"when to sow wheat"},
	}
	_, err := o.Answer(context.Background(), "fertilizer for wheat", qctx)
	require.NoError(t, err)

	captured = p.prompt
	assert.Contains(t, captured, "Punjab")
	assert.Contains(t, captured, "when to sow wheat")
	assert.Contains(t, captured, "fertilizer for wheat")
}

type promptCapturingProvider struct {
	mu     sync.Mutex
	prompt string
}

func (p *promptCapturingProvider) Generate(ctx context.Context, prompt string) (*llm.GenerationResult, error) {
	p.mu.Lock()
	p.prompt = prompt
	p.mu.Unlock()
	return &llm.GenerationResult{Answer: "ok", Confidence: 0.92, Source: "IBM Watsonx Granite LLM"}, nil
}

func (p *promptCapturingProvider) Configured() bool { return true }

func (p *promptCapturingProvider) Status() llm.Status { return llm.Status{Configured: true} }
