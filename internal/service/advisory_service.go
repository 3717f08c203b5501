package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"krishisahay-be/internal/dto"
	"krishisahay-be/internal/pkg/logger"
	"krishisahay-be/internal/repository/memory"
	"krishisahay-be/pkg/advisor"
	"krishisahay-be/pkg/knowledge"
	"krishisahay-be/pkg/search"
	"krishisahay-be/pkg/store"
)

const (
	conversationCap  = 50
	conversationPage = 10
	searchHistoryCap = 100
	trendingWindow   = 50
	trendingLimit    = 5
)

// IAdvisoryService is the application facade used by both the REST
// controllers and the WebSocket chat handler.
type IAdvisoryService interface {
	Ask(ctx context.Context, sessionID string, req *dto.QueryRequest) (*advisor.Payload, error)
	Search(ctx context.Context, query string) (*dto.SearchResponse, error)
	JoinSession(sessionID string) *dto.SessionInfo
	Conversation(sessionID string) *dto.ConversationResponse
	Trending() []dto.TrendingTopic
	SearchStats() *dto.SearchStatsResponse
}

type searchRecord struct {
	query    string
	topic    string
	category string
	at       time.Time
}

type advisoryService struct {
	orchestrator  *advisor.Orchestrator
	table         *knowledge.Table
	sessionRepo   *memory.SessionRepository
	responseCache *memory.ResponseCache
	metrics       *Metrics
	logger        logger.ILogger

	mu            sync.Mutex
	conversations map[string][]store.Exchange
	history       []searchRecord
	totalSearches int
	uniqueQueries map[string]struct{}
}

func NewAdvisoryService(
	orchestrator *advisor.Orchestrator,
	table *knowledge.Table,
	sessionRepo *memory.SessionRepository,
	responseCache *memory.ResponseCache,
	metrics *Metrics,
	log logger.ILogger,
) IAdvisoryService {
	return &advisoryService{
		orchestrator:  orchestrator,
		table:         table,
		sessionRepo:   sessionRepo,
		responseCache: responseCache,
		metrics:       metrics,
		logger:        log,
		conversations: make(map[string][]store.Exchange),
		uniqueQueries: make(map[string]struct{}),
	}
}

func (s *advisoryService) Ask(ctx context.Context, sessionID string, req *dto.QueryRequest) (*advisor.Payload, error) {
	if req.SessionID != "" {
		sessionID = req.SessionID
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	qctx := s.buildQueryContext(sessionID, req.Context)

	var opts []advisor.Option
	if req.Mode == "offline" {
		opts = append(opts, advisor.WithOfflineOnly())
	}

	payload, err := s.orchestrator.Answer(ctx, req.Query, qctx, opts...)
	if err != nil {
		return nil, err
	}

	s.record(sessionID, payload)
	s.logger.Info("Advisory", "Query answered", map[string]interface{}{
		"session_id": sessionID,
		"intent":     string(payload.Intent.Type),
		"watsonx":    payload.WatsonxEnabled,
		"results":    len(payload.Results),
	})
	return payload, nil
}

// buildQueryContext threads the client-sent context through; when the client
// sends none, recent session queries fill PreviousQueries instead.
func (s *advisoryService) buildQueryContext(sessionID string, cp *dto.ContextPayload) *store.QueryContext {
	if cp != nil {
		return &store.QueryContext{
			Location:        cp.Location,
			Crop:            cp.Crop,
			PreviousQueries: cp.PreviousQueries,
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	exchanges := s.conversations[sessionID]
	if len(exchanges) == 0 {
		return nil
	}
	start := len(exchanges) - 5
	if start < 0 {
		start = 0
	}
	qctx := &store.QueryContext{}
	for _, ex := range exchanges[start:] {
		qctx.PreviousQueries = append(qctx.PreviousQueries, ex.Query)
	}
	return qctx
}

func (s *advisoryService) record(sessionID string, p *advisor.Payload) {
	s.metrics.RecordQuery(string(p.Intent.Type), p.WatsonxEnabled, p.ResponseTimeMs)

	ex := store.Exchange{
		SessionID:      sessionID,
		Query:          p.Query,
		Response:       p.OfflineAnswer,
		Timestamp:      p.Timestamp,
		ResponseTimeMs: p.ResponseTimeMs,
		ResultCount:    len(p.Results),
	}

	s.mu.Lock()
	conv := append(s.conversations[sessionID], ex)
	if len(conv) > conversationCap {
		conv = conv[len(conv)-conversationCap:]
	}
	s.conversations[sessionID] = conv
	s.appendHistoryLocked(p.Query, p.Results)
	s.mu.Unlock()

	session, ok := s.sessionRepo.Get(sessionID)
	if !ok {
		session = &store.Session{ID: sessionID, JoinedAt: time.Now().UTC()}
	}
	session.LastActivity = time.Now().UTC()
	session.QueryCount++
	session.LastQuery = p.Query
	s.sessionRepo.Save(session)
}

func (s *advisoryService) appendHistoryLocked(query string, results []search.ScoredResult) {
	rec := searchRecord{query: query, at: time.Now().UTC()}
	if len(results) > 0 {
		rec.topic = results[0].Entry.Topic
		rec.category = string(results[0].Entry.Category)
	}
	s.history = append(s.history, rec)
	if len(s.history) > searchHistoryCap {
		s.history = s.history[len(s.history)-searchHistoryCap:]
	}
	s.totalSearches++
	s.uniqueQueries[search.Normalize(query)] = struct{}{}
}

func (s *advisoryService) Search(ctx context.Context, query string) (*dto.SearchResponse, error) {
	if query == "" {
		return nil, advisor.ErrInvalidInput
	}
	start := time.Now()

	intent := search.Classify(query)
	results := search.Score(search.Expand(query), intent, s.table)

	out := make([]dto.SearchResult, 0, len(results))
	for _, r := range results {
		out = append(out, dto.SearchResult{
			Topic:        r.Entry.Topic,
			Category:     string(r.Entry.Category),
			Severity:     string(r.Entry.Severity),
			Score:        r.Score,
			MatchedTerms: r.MatchedTerms,
			Crops:        r.Entry.Crops,
			Solution:     r.Entry.Solution,
		})
	}

	s.mu.Lock()
	s.appendHistoryLocked(query, results)
	s.mu.Unlock()

	return &dto.SearchResponse{
		Query:        query,
		Results:      out,
		Suggestions:  advisor.Suggestions(results),
		Count:        len(out),
		ResponseTime: float64(time.Since(start).Microseconds()) / 1000,
	}, nil
}

func (s *advisoryService) JoinSession(sessionID string) *dto.SessionInfo {
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	session, ok := s.sessionRepo.Get(sessionID)
	if !ok {
		session = &store.Session{ID: sessionID, JoinedAt: time.Now().UTC()}
	}
	session.LastActivity = time.Now().UTC()
	s.sessionRepo.Save(session)

	s.logger.Info("Advisory", "Session joined", map[string]interface{}{"session_id": sessionID})
	return &dto.SessionInfo{
		SessionID:  session.ID,
		JoinedAt:   session.JoinedAt,
		QueryCount: session.QueryCount,
	}
}

func (s *advisoryService) Conversation(sessionID string) *dto.ConversationResponse {
	s.mu.Lock()
	exchanges := s.conversations[sessionID]
	start := len(exchanges) - conversationPage
	if start < 0 {
		start = 0
	}
	page := make([]store.Exchange, len(exchanges)-start)
	copy(page, exchanges[start:])
	s.mu.Unlock()

	return &dto.ConversationResponse{
		SessionID: sessionID,
		Exchanges: page,
		Count:     len(page),
	}
}

func (s *advisoryService) Trending() []dto.TrendingTopic {
	s.mu.Lock()
	start := len(s.history) - trendingWindow
	if start < 0 {
		start = 0
	}
	counts := make(map[string]int)
	for _, rec := range s.history[start:] {
		if rec.topic != "" {
			counts[rec.topic]++
		}
	}
	s.mu.Unlock()

	topics := make([]dto.TrendingTopic, 0, len(counts))
	for topic, count := range counts {
		topics = append(topics, dto.TrendingTopic{Topic: topic, Count: count})
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Count != topics[j].Count {
			return topics[i].Count > topics[j].Count
		}
		return topics[i].Topic < topics[j].Topic
	})
	if len(topics) > trendingLimit {
		topics = topics[:trendingLimit]
	}
	return topics
}

func (s *advisoryService) SearchStats() *dto.SearchStatsResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	categories := make(map[string]int)
	for _, rec := range s.history {
		if rec.category != "" {
			categories[rec.category]++
		}
	}
	return &dto.SearchStatsResponse{
		TotalSearches: s.totalSearches,
		UniqueQueries: len(s.uniqueQueries),
		TopCategories: categories,
		CacheSize:     s.responseCache.Size(),
	}
}
