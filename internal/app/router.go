package app

import (
	"net/http"

	authAPI "issue_tracker/internal/api/auth"
	issueAPI "issue_tracker/internal/api/issue"
	"issue_tracker/internal/access"
	"issue_tracker/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"
)

type routerDeps struct {
	allowedOrigins []string
	logger         *logrus.Logger
	sessions       *session.Manager
	gate           *access.Gate
	authHandler    *authAPI.Handler
	issueHandler   *issueAPI.Handler
}

func newRouter(deps routerDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: deps.logger, NoColor: true}))
	r.Use(middleware.Recoverer)

	// CORS middleware, cookie сессии требует credentials
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           60 * 15,
	}))

	// Сессия и кэш текущего пользователя на время запроса
	r.Use(deps.sessions.Middleware)
	r.Use(deps.gate.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok"))
	})

	// Auth endpoints
	r.Route("/api/auth", func(rr chi.Router) {
		rr.Post("/signup", deps.authHandler.SignUp)
		rr.Post("/signin", deps.authHandler.SignIn)
		rr.Get("/signout", deps.authHandler.SignOut)
		rr.Post("/signout", deps.authHandler.SignOut)
		rr.Get("/me", deps.authHandler.Me)
	})

	// Issue endpoints
	r.Route("/api/issues", func(rr chi.Router) {
		rr.Use(deps.gate.RequireUser)
		rr.Get("/", deps.issueHandler.List)
		rr.Post("/", deps.issueHandler.Create)
		rr.Get("/{id}", deps.issueHandler.Get)
		rr.Put("/{id}", deps.issueHandler.Update)
		rr.Delete("/{id}", deps.issueHandler.Delete)
	})

	return r
}
