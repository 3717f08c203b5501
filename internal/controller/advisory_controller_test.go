package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"krishisahay-be/internal/controller"
	"krishisahay-be/internal/pkg/serverutils"
	"krishisahay-be/internal/repository/memory"
	"krishisahay-be/internal/service"
	"krishisahay-be/pkg/advisor"
	"krishisahay-be/pkg/knowledge"
	"krishisahay-be/pkg/llm"
)

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

type offlineProvider struct{}

func (offlineProvider) Generate(ctx context.Context, prompt string) (*llm.GenerationResult, error) {
	return nil, llm.ErrNotConfigured
}

func (offlineProvider) Configured() bool { return false }

func (offlineProvider) Status() llm.Status { return llm.Status{} }

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	table := knowledge.DefaultTable()
	cache := memory.NewResponseCache(time.Minute)
	orch := advisor.New(table, offlineProvider{}, cache, nil)
	svc := service.NewAdvisoryService(orch, table, memory.NewSessionRepository(), cache, service.NewMetrics(), nopLogger{})

	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	controller.NewAdvisoryController(svc).RegisterRoutes(api)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	return resp
}

func TestQueryEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/query", map[string]interface{}{
		"query":     "how to control aphids in mustard",
		"sessionId": "s-http",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    advisor.Payload `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))

	assert.Equal(t, 200, envelope.Code)
	assert.Contains(t, envelope.Data.OfflineAnswer, "Aphids")
	assert.False(t, envelope.Data.WatsonxEnabled)
	assert.NotEmpty(t, envelope.Data.FollowUpSuggestions)
}

func TestQueryEndpointValidation(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/query", map[string]interface{}{"mode": "offline"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestQueryEndpointBadJSON(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/query", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSearchEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/search", map[string]interface{}{"query": "pm kisan eligibility"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Count   int `json:"count"`
			Results []struct {
				Topic string `json:"topic"`
			} `json:"results"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	require.NotZero(t, envelope.Data.Count)
	assert.Equal(t, "pm kisan", envelope.Data.Results[0].Topic)
}

func TestConversationEndpoint(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/query", map[string]interface{}{
		"query":     "aphids in wheat",
		"sessionId": "s-conv",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/conversation/s-conv", nil)
	getResp, err := app.Test(req, 5000)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)

	var envelope struct {
		Data struct {
			SessionID string `json:"sessionId"`
			Count     int    `json:"count"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&envelope))
	assert.Equal(t, "s-conv", envelope.Data.SessionID)
	assert.Equal(t, 1, envelope.Data.Count)
}
