// Package server assembles the HTTP surface: middleware chain,
// dependency wiring and route registration.
package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"feasibility-backend/internal/analysis"
	"feasibility-backend/internal/llm"
	"feasibility-backend/internal/llm/gemini"
	"feasibility-backend/internal/llm/openai"
	"feasibility-backend/internal/sessions"
	"feasibility-backend/internal/shared/config"
	"feasibility-backend/internal/shared/metrics"
	"feasibility-backend/internal/shared/server/middleware"
	"feasibility-backend/internal/shared/server/respond"
	"feasibility-backend/internal/shared/storage/db"
	"feasibility-backend/internal/ventures"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(rateLimits()),
	)

	// Dependencies
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var ventureRepo ventures.Repo
	if sqlDB != nil {
		ventureRepo = &ventures.PGRepo{DB: sqlDB}
	} else {
		ventureRepo = ventures.NewMemoryRepo()
	}

	chatgpt, gemadapter := buildEngines(cfg)
	analysisSvc := analysis.NewService(ventureRepo, chatgpt, gemadapter)
	analysisHandler := analysis.NewHandler(analysisSvc)
	if cfg.AnalyzeTimeout > 0 {
		analysisHandler.Timeout = cfg.AnalyzeTimeout
	}

	sessionStore := buildSessionStore(cfg, sqlDB)
	runner := sessions.NewRunner(sessionStore, chatgpt, gemadapter)
	sessionHandler := sessions.NewHandler(sessionStore, runner)

	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", metrics.Handler())

	root := r.Group("/")
	analysisHandler.RegisterRoutes(root)
	sessionHandler.RegisterRoutes(root)

	return r
}

// buildEngines constructs the provider adapters from config. Missing
// API keys degrade to a disabled engine whose calls resolve to the
// api-key fallback message rather than failing router construction.
func buildEngines(cfg config.Config) (chatgpt, gem *llm.Adapter) {
	openaiClient, err := openai.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, openai.WithBaseURL(cfg.OpenAIBaseURL))
	if err != nil {
		log.Printf("openai client disabled: %v", err)
		chatgpt = llm.NewChatGPTAdapter(llm.DisabledEngine(llm.EngineChatGPT))
	} else {
		chatgpt = llm.NewChatGPTAdapter(openaiClient)
	}

	geminiClient, err := gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, gemini.WithBaseURL(cfg.GeminiBaseURL))
	if err != nil {
		log.Printf("gemini client disabled: %v", err)
		gem = llm.NewGeminiAdapter(llm.DisabledEngine(llm.EngineGemini))
	} else {
		gem = llm.NewGeminiAdapter(geminiClient)
	}
	return chatgpt, gem
}

func buildSessionStore(cfg config.Config, sqlDB *sql.DB) sessions.Store {
	switch cfg.SessionStore {
	case "redis":
		store, err := sessions.NewRedisStore(cfg.RedisAddr)
		if err != nil {
			log.Printf("redis session store unavailable, falling back to memory: %v", err)
			return sessions.NewMemoryStore(sessions.DefaultSweepInterval)
		}
		return store
	case "postgres":
		if sqlDB != nil {
			return &sessions.PGStore{DB: sqlDB}
		}
		log.Printf("postgres session store requested but no database, falling back to memory")
		return sessions.NewMemoryStore(sessions.DefaultSweepInterval)
	default:
		return sessions.NewMemoryStore(sessions.DefaultSweepInterval)
	}
}

// rateLimits groups the expensive analysis endpoints under a tighter
// budget than reads.
func rateLimits() middleware.RateLimitConfig {
	return middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"ANALYZE": {Rate: 0.5, Burst: 3},
			"DEFAULT": {Rate: 10, Burst: 30},
		},
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodPost && (c.FullPath() == "/analyze" || c.FullPath() == "/analyze/stream") {
				return "ANALYZE"
			}
			return "DEFAULT"
		},
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
