package dto

import (
	"time"

	"krishisahay-be/pkg/store"
)

type ContextPayload struct {
	Location        string   `json:"location"`
	Crop            string   `json:"crop"`
	PreviousQueries []string `json:"previousQueries"`
}

type QueryRequest struct {
	Query     string          `json:"query" validate:"required"`
	Mode      string          `json:"mode" validate:"omitempty,oneof=full offline"`
	SessionID string          `json:"sessionId"`
	Context   *ContextPayload `json:"context"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"required"`
}

type SearchResult struct {
	Topic        string   `json:"topic"`
	Category     string   `json:"category"`
	Severity     string   `json:"severity"`
	Score        float64  `json:"score"`
	MatchedTerms []string `json:"matchedTerms"`
	Crops        []string `json:"crops,omitempty"`
	Solution     string   `json:"solution"`
}

type SearchResponse struct {
	Query        string         `json:"query"`
	Results      []SearchResult `json:"results"`
	Suggestions  []string       `json:"suggestions"`
	Count        int            `json:"count"`
	ResponseTime float64        `json:"responseTime"`
}

type SessionInfo struct {
	SessionID  string    `json:"sessionId"`
	JoinedAt   time.Time `json:"joinedAt"`
	QueryCount int       `json:"queryCount"`
}

type ConversationResponse struct {
	SessionID string           `json:"sessionId"`
	Exchanges []store.Exchange `json:"exchanges"`
	Count     int              `json:"count"`
}

type TrendingTopic struct {
	Topic string `json:"topic"`
	Count int    `json:"count"`
}

type SearchStatsResponse struct {
	TotalSearches int            `json:"totalSearches"`
	UniqueQueries int            `json:"uniqueQueries"`
	TopCategories map[string]int `json:"topCategories"`
	CacheSize     int            `json:"cacheSize"`
}
