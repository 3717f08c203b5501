package advisor

import (
	"context"
	"io"
	"log"
	"strings"
	"time"

	"krishisahay-be/pkg/knowledge"
	"krishisahay-be/pkg/llm"
	"krishisahay-be/pkg/search"
	"krishisahay-be/pkg/store"
)

const fallbackConfidence = 0.78

// ResponseCache keys cached generations by normalized query text.
type ResponseCache interface {
	Get(query string) (*llm.GenerationResult, bool)
	Put(query string, res *llm.GenerationResult)
}

// Source credits where an answer's content came from.
type Source struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// Payload is the fused answer returned for every chat query. OfflineAnswer
// is always populated from the knowledge base; OnlineAnswer carries the LLM
// text when the gateway succeeded and an elaborated template otherwise.
type Payload struct {
	Query               string                `json:"query"`
	OfflineAnswer       string                `json:"offlineAnswer"`
	OnlineAnswer        string                `json:"onlineAnswer,omitempty"`
	Confidence          float64               `json:"confidence"`
	Sources             []Source              `json:"sources"`
	FollowUpSuggestions []string              `json:"followUpSuggestions"`
	RelatedTopics       []string              `json:"relatedTopics"`
	Intent              search.Intent         `json:"intent"`
	Results             []search.ScoredResult `json:"searchResults"`
	WatsonxEnabled      bool                  `json:"watsonxEnabled"`
	ResponseTimeMs      float64               `json:"responseTime"`
	Timestamp           time.Time             `json:"timestamp"`
}

// Orchestrator runs the full pipeline for one query: classify, expand,
// score, render the offline answer, then race the LLM path against the
// caller's context.
type Orchestrator struct {
	table    *knowledge.Table
	provider llm.Provider
	cache    ResponseCache
	logger   *log.Logger
}

func New(table *knowledge.Table, provider llm.Provider, cache ResponseCache, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Orchestrator{table: table, provider: provider, cache: cache, logger: logger}
}

type answerOptions struct {
	offlineOnly bool
}

type Option func(*answerOptions)

// WithOfflineOnly skips the LLM path entirely.
func WithOfflineOnly() Option {
	return func(o *answerOptions) { o.offlineOnly = true }
}

type llmOutcome struct {
	res *llm.GenerationResult
	err error
}

// Answer executes the pipeline for query. It returns ErrInvalidInput for
// blank queries and otherwise always produces a payload: LLM failures
// degrade to the elaborated offline template, never to an error.
func (o *Orchestrator) Answer(ctx context.Context, query string, qctx *store.QueryContext, opts ...Option) (*Payload, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrInvalidInput
	}
	var options answerOptions
	for _, opt := range opts {
		opt(&options)
	}

	start := time.Now()
	intent := search.Classify(query)
	expanded := search.Expand(query)
	results := search.Score(expanded, intent, o.table)

	p := &Payload{
		Query:               query,
		OfflineAnswer:       RenderOffline(results, query),
		Confidence:          fallbackConfidence,
		FollowUpSuggestions: FollowUps(intent.Type),
		RelatedTopics:       RelatedTopics(intent.Type),
		Intent:              intent,
		Results:             results,
		Timestamp:           time.Now().UTC(),
	}

	if !options.offlineOnly && o.provider != nil && o.provider.Configured() {
		o.runOnline(ctx, query, qctx, results, p)
	}

	if !p.WatsonxEnabled && !options.offlineOnly {
		p.OnlineAnswer = RenderElaborated(results, query, intent)
		p.Sources = []Source{
			{Name: "Knowledge Base (Fallback)", Confidence: fallbackConfidence},
			{Name: "Agricultural Guidelines", Confidence: 0.88},
		}
	}
	if options.offlineOnly {
		p.Sources = []Source{{Name: "Knowledge Base", Confidence: fallbackConfidence}}
	}

	p.ResponseTimeMs = float64(time.Since(start).Microseconds()) / 1000
	return p, nil
}

// runOnline resolves the LLM answer from cache or the gateway. The caller's
// context cancels the wait but errors never propagate; the payload simply
// stays in fallback state.
func (o *Orchestrator) runOnline(ctx context.Context, query string, qctx *store.QueryContext, results []search.ScoredResult, p *Payload) {
	ch := make(chan llmOutcome, 1)
	go func() {
		if o.cache != nil {
			if cached, ok := o.cache.Get(query); ok {
				ch <- llmOutcome{res: cached}
				return
			}
		}
		res, err := o.provider.Generate(ctx, BuildPrompt(query, qctx, results))
		if err == nil && o.cache != nil {
			o.cache.Put(query, res)
		}
		ch <- llmOutcome{res: res, err: err}
	}()

	select {
	case out := <-ch:
		if out.err != nil {
			o.logger.Printf("watsonx generation failed, using fallback: %v", out.err)
			return
		}
		p.OnlineAnswer = out.res.Answer
		p.Confidence = out.res.Confidence
		p.WatsonxEnabled = true
		p.Sources = []Source{
			{Name: out.res.Source, Confidence: out.res.Confidence},
			{Name: "Knowledge Base", Confidence: 0.88},
		}
	case <-ctx.Done():
		o.logger.Printf("caller context canceled while awaiting generation: %v", ctx.Err())
	}
}
