package bootstrap

import (
	"log"
	"os"
	"time"

	"krishisahay-be/internal/config"
	"krishisahay-be/internal/controller"
	"krishisahay-be/internal/pkg/logger"
	"krishisahay-be/internal/repository/memory"
	"krishisahay-be/internal/service"
	"krishisahay-be/internal/websocket"
	"krishisahay-be/pkg/advisor"
	"krishisahay-be/pkg/knowledge"
	"krishisahay-be/pkg/llm"
	"krishisahay-be/pkg/llm/watsonx"
)

// ResponseCache satisfies the orchestrator's cache contract.
var _ advisor.ResponseCache = (*memory.ResponseCache)(nil)

type Container struct {
	// Controllers
	AdvisoryController controller.IAdvisoryController
	SystemController   controller.ISystemController
	WatsonxController  controller.IWatsonxController

	// WebSockets
	ChatHandler  *websocket.ChatHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Domain Core
	table := knowledge.DefaultTable()
	responseCache := memory.NewResponseCache(time.Duration(cfg.Cache.ResponseTTLSeconds) * time.Second)
	sessionRepo := memory.NewSessionRepository()

	var provider llm.Provider = watsonx.New(watsonx.Config{
		APIKey:    cfg.Watsonx.APIKey,
		ProjectID: cfg.Watsonx.ProjectID,
		Region:    cfg.Watsonx.Region,
		ModelID:   cfg.Watsonx.ModelID,
	}, newLLMLogger())
	if provider.Configured() {
		log.Printf("[INFO] Watsonx gateway enabled (model %s, region %s)", cfg.Watsonx.ModelID, cfg.Watsonx.Region)
	} else {
		log.Printf("[WARN] Watsonx credentials missing, running in offline mode")
	}

	orchestrator := advisor.New(table, provider, responseCache, newLLMLogger())

	// 3. Services
	metrics := service.NewMetrics()
	advisoryService := service.NewAdvisoryService(orchestrator, table, sessionRepo, responseCache, metrics, sysLogger)
	systemService := service.NewSystemService(table, provider, responseCache, sessionRepo, metrics)
	watsonxService := service.NewWatsonxService(provider, responseCache, sysLogger)

	// 4. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/chat.log")
	wsHub := websocket.NewHub(wsLogger)
	chatHandler := websocket.NewChatHandler(wsHub, advisoryService, wsLogger)
	go wsHub.Run()

	return &Container{
		AdvisoryController: controller.NewAdvisoryController(advisoryService),
		SystemController:   controller.NewSystemController(systemService),
		WatsonxController:  controller.NewWatsonxController(watsonxService),
		ChatHandler:        chatHandler,
		WebSocketHub:       wsHub,
	}
}

// newLLMLogger writes gateway traffic to its own file so IAM and generation
// noise stays out of the main log.
func newLLMLogger() *log.Logger {
	if err := os.MkdirAll("logs", 0o755); err != nil {
		return log.New(os.Stderr, "[llm] ", log.LstdFlags)
	}
	f, err := os.OpenFile("logs/llm.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return log.New(os.Stderr, "[llm] ", log.LstdFlags)
	}
	return log.New(f, "", log.LstdFlags)
}
