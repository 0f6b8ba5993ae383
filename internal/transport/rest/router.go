package rest

import (
	"net/http"

	"github.com/gorilla/mux"

	"quizarena/internal/service"
	"quizarena/internal/transport/rest/handler"
	"quizarena/internal/transport/rest/middleware"
)

// CORSOptions carries the cross-origin headers applied to every response.
type CORSOptions struct {
	AllowedOrigins string
	AllowedMethods string
	AllowedHeaders string
}

// Container holds all dependencies for the router
type Container struct {
	AuthService *service.AuthService
	QuizService *service.QuizService
	CORS        CORSOptions
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	quizHandler := handler.NewQuizHandler(c.QuizService)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.CORS))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST", "OPTIONS")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Authenticated routes
	protected := api.NewRoute().Subrouter()
	protected.Use(authMW.RequireUser)

	protected.HandleFunc("/auth/user", authHandler.Me).Methods("GET", "OPTIONS")
	protected.HandleFunc("/quiz/start", quizHandler.Start).Methods("POST", "OPTIONS")
	protected.HandleFunc("/quiz/answer", quizHandler.Answer).Methods("POST", "OPTIONS")
	protected.HandleFunc("/quiz/visit", quizHandler.Visit).Methods("POST", "OPTIONS")
	protected.HandleFunc("/quiz/status/{sessionId}", quizHandler.Status).Methods("GET", "OPTIONS")
	protected.HandleFunc("/quiz/session/{sessionId}", quizHandler.Resume).Methods("GET", "OPTIONS")
	protected.HandleFunc("/quiz/submit", quizHandler.Submit).Methods("POST", "OPTIONS")
	protected.HandleFunc("/quiz/history", quizHandler.History).Methods("GET", "OPTIONS")
	protected.HandleFunc("/quiz/results/{sessionId}", quizHandler.Results).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(opts CORSOptions) mux.MiddlewareFunc {
	if opts.AllowedOrigins == "" {
		opts.AllowedOrigins = "*"
	}
	if opts.AllowedMethods == "" {
		opts.AllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	}
	if opts.AllowedHeaders == "" {
		opts.AllowedHeaders = "Content-Type, Authorization"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", opts.AllowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", opts.AllowedMethods)
			w.Header().Set("Access-Control-Allow-Headers", opts.AllowedHeaders)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
