package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"wisewallet/backend/handlers"
	"wisewallet/backend/logger"
	"wisewallet/backend/middleware"
)

const shutdownTimeout = 30 * time.Second

// Options configures the API server.
type Options struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
	Development  bool
	// ShowErrorDetail includes internal error text in error responses.
	ShowErrorDetail bool
}

// Server represents the API server
type Server struct {
	opts     Options
	router   *mux.Router
	handler  http.Handler
	log      *logger.Logger
	verifier middleware.TokenVerifier

	authHandler    *handlers.AuthHandler
	expenseHandler *handlers.ExpenseHandler
	health         http.HandlerFunc
}

// NewServer creates a new API server. db may be nil when no SQL store is in use.
func NewServer(opts Options, auth handlers.AuthService, expenses handlers.ExpenseService, db handlers.Pinger, log *logger.Logger) *Server {
	s := &Server{
		opts:           opts,
		router:         mux.NewRouter(),
		log:            log,
		verifier:       auth,
		authHandler:    handlers.NewAuthHandler(auth, opts.ShowErrorDetail),
		expenseHandler: handlers.NewExpenseHandler(expenses, opts.ShowErrorDetail),
		health:         handlers.HealthCheck(db),
	}
	s.RegisterRoutes()

	// CORS wraps the router so preflight requests never reach route matching.
	var h http.Handler = s.router
	h = middleware.EnableCORS(opts.CORSOrigins, opts.Development)(h)
	h = middleware.Recover(opts.ShowErrorDetail)(h)
	h = middleware.RequestLogger(log)(h)
	s.handler = h
	return s
}

// RegisterRoutes registers all API routes with both direct paths and the
// /api prefix.
func (s *Server) RegisterRoutes() {
	s.registerRoutes(s.router.PathPrefix("/api").Subrouter())
	s.registerRoutes(s.router)
}

func (s *Server) registerRoutes(r *mux.Router) {
	requireAuth := middleware.RequireAuth(s.verifier, s.opts.ShowErrorDetail)

	// Public routes (no auth required)
	r.HandleFunc("/health", s.health).Methods("GET")
	r.HandleFunc("/auth/register", s.authHandler.Register).Methods("POST")
	r.HandleFunc("/auth/login", s.authHandler.Login).Methods("POST")
	r.Handle("/auth/verify", requireAuth(http.HandlerFunc(s.authHandler.Verify))).Methods("GET")

	expenses := r.PathPrefix("/expenses").Subrouter()
	expenses.Use(requireAuth)

	// literal paths before /{id}
	expenses.HandleFunc("", s.expenseHandler.GetExpenses).Methods("GET")
	expenses.HandleFunc("", s.expenseHandler.CreateExpense).Methods("POST")
	expenses.HandleFunc("/summary", s.expenseHandler.GetSummary).Methods("GET")
	expenses.HandleFunc("/categories", s.expenseHandler.GetCategories).Methods("GET")
	expenses.HandleFunc("/export.xlsx", s.expenseHandler.ExportExpenses).Methods("GET")
	expenses.HandleFunc("/category/{category}", s.expenseHandler.GetExpensesByCategory).Methods("GET")
	expenses.HandleFunc("/range/{startDate}/{endDate}", s.expenseHandler.GetExpensesByDateRange).Methods("GET")
	expenses.HandleFunc("/{id}", s.expenseHandler.GetExpense).Methods("GET")
	expenses.HandleFunc("/{id}", s.expenseHandler.UpdateExpense).Methods("PUT")
	expenses.HandleFunc("/{id}", s.expenseHandler.DeleteExpense).Methods("DELETE")
}

// Handler returns the HTTP handler for the API server
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.opts.Addr,
		Handler:        s.handler,
		ReadTimeout:    s.opts.ReadTimeout,
		WriteTimeout:   s.opts.WriteTimeout,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.Info("Starting server", "addr", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.log.Info("Shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	s.log.Info("Server stopped gracefully")
	return nil
}
