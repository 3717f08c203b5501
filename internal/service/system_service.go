package service

import (
	"time"

	"krishisahay-be/internal/dto"
	"krishisahay-be/internal/repository/memory"
	"krishisahay-be/pkg/knowledge"
	"krishisahay-be/pkg/llm"
)

type ISystemService interface {
	Health() *dto.HealthResponse
	Status() *dto.StatusResponse
	Analytics() *dto.AnalyticsResponse
}

type systemService struct {
	table         *knowledge.Table
	provider      llm.Provider
	responseCache *memory.ResponseCache
	sessionRepo   *memory.SessionRepository
	metrics       *Metrics
}

func NewSystemService(
	table *knowledge.Table,
	provider llm.Provider,
	responseCache *memory.ResponseCache,
	sessionRepo *memory.SessionRepository,
	metrics *Metrics,
) ISystemService {
	return &systemService{
		table:         table,
		provider:      provider,
		responseCache: responseCache,
		sessionRepo:   sessionRepo,
		metrics:       metrics,
	}
}

func (s *systemService) Health() *dto.HealthResponse {
	return &dto.HealthResponse{
		Status:            "healthy",
		Service:           "KrishiSahay Agricultural Assistant",
		WatsonxEnabled:    s.provider != nil && s.provider.Configured(),
		KnowledgeBaseSize: s.table.Len(),
		Timestamp:         time.Now().UTC(),
	}
}

func (s *systemService) Status() *dto.StatusResponse {
	snap := s.metrics.Snapshot()

	var watsonx llm.Status
	if s.provider != nil {
		watsonx = s.provider.Status()
	}
	return &dto.StatusResponse{
		Status:         "running",
		UptimeSeconds:  snap.UptimeSeconds,
		ActiveSessions: s.sessionRepo.Count(),
		CacheSize:      s.responseCache.Size(),
		TotalQueries:   snap.TotalQueries,
		Watsonx:        watsonx,
	}
}

func (s *systemService) Analytics() *dto.AnalyticsResponse {
	snap := s.metrics.Snapshot()

	return &dto.AnalyticsResponse{
		TotalQueries:       snap.TotalQueries,
		WatsonxQueries:     snap.WatsonxQueries,
		FallbackQueries:    snap.FallbackQueries,
		AvgResponseTimeMs:  snap.AvgResponseTimeMs,
		IntentDistribution: snap.IntentDistribution,
		ActiveSessions:     s.sessionRepo.Count(),
		KnowledgeBaseSize:  s.table.Len(),
		CacheSize:          s.responseCache.Size(),
	}
}
