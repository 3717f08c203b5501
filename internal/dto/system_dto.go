package dto

import (
	"time"

	"krishisahay-be/pkg/llm"
)

type HealthResponse struct {
	Status            string    `json:"status"`
	Service           string    `json:"service"`
	WatsonxEnabled    bool      `json:"watsonxEnabled"`
	KnowledgeBaseSize int       `json:"knowledgeBaseSize"`
	Timestamp         time.Time `json:"timestamp"`
}

type StatusResponse struct {
	Status         string     `json:"status"`
	UptimeSeconds  float64    `json:"uptimeSeconds"`
	ActiveSessions int        `json:"activeSessions"`
	CacheSize      int        `json:"cacheSize"`
	TotalQueries   int64      `json:"totalQueries"`
	Watsonx        llm.Status `json:"watsonx"`
}

type AnalyticsResponse struct {
	TotalQueries       int64            `json:"totalQueries"`
	WatsonxQueries     int64            `json:"watsonxQueries"`
	FallbackQueries    int64            `json:"fallbackQueries"`
	AvgResponseTimeMs  float64          `json:"avgResponseTimeMs"`
	IntentDistribution map[string]int64 `json:"intentDistribution"`
	ActiveSessions     int              `json:"activeSessions"`
	KnowledgeBaseSize  int              `json:"knowledgeBaseSize"`
	CacheSize          int              `json:"cacheSize"`
}
