package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pleaderai/backend/internal/api/handlers"
	"github.com/pleaderai/backend/internal/api/middleware"
	"github.com/pleaderai/backend/internal/auth"
	"github.com/pleaderai/backend/internal/chat"
	"github.com/pleaderai/backend/internal/config"
	"github.com/pleaderai/backend/internal/document"
	"github.com/pleaderai/backend/internal/embedding"
	"github.com/pleaderai/backend/internal/export"
	"github.com/pleaderai/backend/internal/llm"
	"github.com/pleaderai/backend/internal/rag"
	"github.com/pleaderai/backend/internal/vectorstore"
)

// Per-route-class request budgets, per caller per minute.
const (
	limitHealth  = 60
	limitSignup  = 5
	limitLogin   = 10
	limitSession = 10
	limitChat    = 30
	limitAnalyze = 20
	limitRAG     = 30
)

type Router struct {
	db       *pgxpool.Pool
	counters middleware.CounterStore
	cfg      *config.Config
}

func NewRouter(db *pgxpool.Pool, counters middleware.CounterStore, cfg *config.Config) *Router {
	return &Router{db: db, counters: counters, cfg: cfg}
}

func (rt *Router) Setup() http.Handler {
	// Services
	userStore := auth.NewPGUserStore(rt.db)
	authSvc := auth.NewService(userStore)
	issuer := auth.NewTokenIssuer(rt.cfg.Auth.JWTSecret, rt.cfg.Auth.TokenTTL)
	gw := llm.NewGateway(rt.cfg.LLM)

	chatStore := chat.NewPGStore(rt.db)
	chatSvc := chat.NewService(chatStore, gw)

	vs := vectorstore.NewPgVectorStore(rt.db)
	embedSvc := embedding.NewService(gw, rt.cfg.LLM.EmbeddingModel)
	engine := rag.NewPipeline(vs, embedSvc, gw)

	docStore := document.NewPGStore(rt.db)
	docSvc := document.NewService(docStore, document.NewExtractor(), gw, engine)

	exportSvc := export.NewService(chatStore, docStore)

	// Handlers
	healthH := handlers.NewHealthHandler(rt.db, rt.cfg.Version)
	authH := handlers.NewAuthHandler(authSvc, issuer)
	chatH := handlers.NewChatHandler(chatSvc)
	docH := handlers.NewDocumentHandler(docSvc)
	ragH := handlers.NewRAGHandler(docSvc)
	exportH := handlers.NewExportHandler(exportSvc)

	authn := auth.NewMiddleware(issuer, authSvc)
	rl := middleware.NewRateLimiter(rt.counters)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(rt.cfg.CORS.AllowedOrigins))

	r.With(rl.Limit("health", limitHealth)).Get("/health", healthH.Health)

	r.Route("/api", func(r chi.Router) {
		// Unauthenticated auth routes, limited by client address
		r.With(rl.Limit("signup", limitSignup)).Post("/auth/signup", authH.Signup)
		r.With(rl.Limit("login", limitLogin)).Post("/auth/login", authH.Login)
		r.With(rl.Limit("session", limitSession)).Post("/auth/session", authH.Session)

		// Authenticated routes, limited by resolved identity
		r.Group(func(r chi.Router) {
			r.Use(authn.Authenticate)

			r.Get("/auth/me", authH.Me)
			r.Post("/auth/logout", authH.Logout)
			r.Put("/user/preferences", authH.UpdatePreferences)

			r.With(rl.Limit("chat-send", limitChat)).Post("/chat/send", chatH.Send)
			r.Get("/chat/history", chatH.History)
			r.Get("/chat/{id}", chatH.Get)
			r.Delete("/chat/{id}", chatH.Delete)
			r.Get("/chat/{id}/export/{format}", exportH.Chat)

			r.With(rl.Limit("doc-analyze", limitAnalyze)).Post("/documents/analyze", docH.Analyze)
			r.Get("/documents", docH.List)
			r.Delete("/documents/{id}", docH.Delete)
			r.Get("/documents/{id}/export/{format}", exportH.Document)

			r.With(rl.Limit("rag-query", limitRAG)).Post("/rag/query", ragH.Query)
			r.Get("/rag/stats", ragH.Stats)
		})
	})

	return r
}
