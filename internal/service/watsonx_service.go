package service

import (
	"context"

	"krishisahay-be/internal/dto"
	"krishisahay-be/internal/pkg/logger"
	"krishisahay-be/internal/repository/memory"
	"krishisahay-be/pkg/llm"
)

type IWatsonxService interface {
	Status() llm.Status
	Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error)
	ClearCache() *dto.ClearCacheResponse
}

// watsonxService exposes the raw gateway for diagnostics, bypassing the
// knowledge-base pipeline and the response cache.
type watsonxService struct {
	provider      llm.Provider
	responseCache *memory.ResponseCache
	logger        logger.ILogger
}

func NewWatsonxService(provider llm.Provider, responseCache *memory.ResponseCache, log logger.ILogger) IWatsonxService {
	return &watsonxService{provider: provider, responseCache: responseCache, logger: log}
}

func (s *watsonxService) Status() llm.Status {
	if s.provider == nil {
		return llm.Status{}
	}
	return s.provider.Status()
}

func (s *watsonxService) Generate(ctx context.Context, req *dto.GenerateRequest) (*dto.GenerateResponse, error) {
	if s.provider == nil {
		return nil, llm.ErrNotConfigured
	}

	res, err := s.provider.Generate(ctx, req.Prompt)
	if err != nil {
		s.logger.Error("Watsonx", "Direct generation failed", map[string]interface{}{"error": err.Error()})
		return nil, err
	}
	return &dto.GenerateResponse{
		Answer:     res.Answer,
		Model:      res.Model,
		Confidence: res.Confidence,
		TokensUsed: res.TokensUsed,
	}, nil
}

func (s *watsonxService) ClearCache() *dto.ClearCacheResponse {
	s.responseCache.Clear()
	s.logger.Info("Watsonx", "Response cache cleared", nil)
	return &dto.ClearCacheResponse{
		Cleared:      true,
		EntriesAfter: s.responseCache.Size(),
	}
}
