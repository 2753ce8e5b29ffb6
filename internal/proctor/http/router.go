package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wpdevquiz/proctor/internal/proctor/service"
	"github.com/wpdevquiz/proctor/internal/proctor/store"
	"github.com/wpdevquiz/proctor/pkg/httpx"
	"github.com/wpdevquiz/proctor/pkg/jwtx"
	"github.com/wpdevquiz/proctor/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       jwtx.Signer
	verifier     jwtx.Verifier
	issuer       string
	tokenTTL     time.Duration
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	UserService       *service.UserService
	QuizService       *service.QuizService
	ModerationService *service.ModerationService
	AdminService      *service.AdminService
}

func NewRouter(
	signer jwtx.Signer,
	verifier jwtx.Verifier,
	issuer string,
	tokenTTL time.Duration,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		verifier:     verifier,
		issuer:       issuer,
		tokenTTL:     tokenTTL,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerQuiz()
	r.registerAdmin()
	r.registerModeration()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		UserService: r.UserService,
		Signer:      r.signer,
		Issuer:      r.issuer,
		TokenTTL:    r.tokenTTL,
	}

	// Both endpoints take credentials - strict rate limit by IP
	r.Mux.Handle("POST /auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerQuiz() {
	h := &QuizHandler{QuizService: r.QuizService}

	r.Mux.Handle("POST /quiz/submit",
		httpx.Chain(http.HandlerFunc(h.HandleSubmit),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /quiz/history",
		httpx.Chain(http.HandlerFunc(h.HandleHistory),
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// Live proctoring channel; token arrives as a query parameter because
	// browsers cannot set headers on WebSocket requests.
	ws := NewProctorHandler(r.ModerationService)
	r.Mux.Handle("GET /quiz/proctor",
		httpx.Chain(ws,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{AdminService: r.AdminService}

	adminOnly := func(handler http.Handler) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAdmin,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /admin/users", adminOnly(http.HandlerFunc(h.HandleListUsers)))
	r.Mux.Handle("GET /admin/results", adminOnly(http.HandlerFunc(h.HandleListResults)))
	r.Mux.Handle("GET /admin/stats", adminOnly(http.HandlerFunc(h.HandleStats)))
	r.Mux.Handle("PATCH /admin/users/{id}/status", adminOnly(http.HandlerFunc(h.HandleUpdateStatus)))
	r.Mux.Handle("DELETE /admin/users/{id}/results", adminOnly(http.HandlerFunc(h.HandleDeleteResults)))
}

func (r *Router) registerModeration() {
	h := &ModerationHandler{ModerationService: r.ModerationService}

	// Counter routes are self-service: the quiz page polls and reports its
	// own user's state, admins can touch anyone's.
	selfOrAdmin := func(handler http.Handler) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireSelfOrAdmin("id"),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}
	adminOnly := func(handler http.Handler) http.Handler {
		return httpx.Chain(handler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireAdmin,
			httpx.RateLimitByUser(httpx.ModerateLimit),
		)
	}

	r.Mux.Handle("GET /admin/users/{id}/warnings", selfOrAdmin(http.HandlerFunc(h.HandleGetWarnings)))
	r.Mux.Handle("PATCH /admin/users/{id}/warnings", selfOrAdmin(http.HandlerFunc(h.HandleRecordViolation)))
	r.Mux.Handle("GET /admin/users/{id}/restarts", selfOrAdmin(http.HandlerFunc(h.HandleGetRestarts)))
	r.Mux.Handle("PATCH /admin/users/{id}/restarts", selfOrAdmin(http.HandlerFunc(h.HandleRecordRestart)))

	r.Mux.Handle("POST /admin/users/{id}/block", adminOnly(http.HandlerFunc(h.HandleBlock)))
	r.Mux.Handle("POST /admin/users/{id}/unblock", adminOnly(http.HandlerFunc(h.HandleUnblock)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /health",
		httpx.Chain(HealthHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
