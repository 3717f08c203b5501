package store

import "time"

// QueryContext carries the optional per-query hints supplied by the client.
// Only the stable fields participate in prompt building; none of them are
// part of the response-cache key.
type QueryContext struct {
	Location        string   `json:"location,omitempty"`
	Crop            string   `json:"crop,omitempty"`
	PreviousQueries []string `json:"previous_queries,omitempty"`
}

// Exchange is one query/answer turn of a conversation.
type Exchange struct {
	SessionID      string    `json:"session_id"`
	Query          string    `json:"query"`
	Response       string    `json:"response"`
	Timestamp      time.Time `json:"timestamp"`
	ResponseTimeMs float64   `json:"response_time_ms"`
	ResultCount    int       `json:"result_count"`
}

// Session represents the active chat session state in memory.
type Session struct {
	ID           string    `json:"id"`
	JoinedAt     time.Time `json:"joined_at"`
	LastActivity time.Time `json:"last_activity"`
	QueryCount   int       `json:"query_count"`
	LastQuery    string    `json:"last_query"`
}
