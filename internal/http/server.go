// Package http is the JSON presentation boundary: routing, identity
// resolution, rate limiting and view-model serialization. All domain
// behavior lives in the services it delegates to.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	applog "smartbudget/internal/log"
	"smartbudget/internal/realtime"
	"smartbudget/internal/services"
)

// IdentityResolver maps an authenticated email to the owning user ID.
type IdentityResolver interface {
	ResolveUserID(ctx context.Context, email string) (int64, error)
}

type Server struct {
	http.Server

	identity    IdentityResolver
	emailHeader string
	records     *services.RecordService
	dashboard   *services.DashboardService
	hub         *realtime.Hub
	logger      *applog.Logger

	rateLimiter  *rateLimiter
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr, emailHeader string, identity IdentityResolver, records *services.RecordService, dashboard *services.DashboardService, hub *realtime.Hub, logger *applog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		identity:    identity,
		emailHeader: emailHeader,
		records:     records,
		dashboard:   dashboard,
		hub:         hub,
		logger:      logger.WithComponent(applog.ComponentHTTP),
		rateLimiter: newRateLimiter(),
	}

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)

	mux.HandleFunc("GET /api/ranges", s.wrap(s.handleRangeLabels, false))
	mux.HandleFunc("GET /api/dashboard", s.wrap(s.handleDashboard, true))

	mux.HandleFunc("GET /api/incomes", s.wrap(s.handleListIncomes, true))
	mux.HandleFunc("POST /api/incomes", s.wrap(s.handleCreateIncome, true))
	mux.HandleFunc("PUT /api/incomes/{id}", s.wrap(s.handleUpdateIncome, true))
	mux.HandleFunc("DELETE /api/incomes/{id}", s.wrap(s.handleDeleteIncome, true))

	mux.HandleFunc("GET /api/expenses", s.wrap(s.handleListExpenses, true))
	mux.HandleFunc("POST /api/expenses", s.wrap(s.handleCreateExpense, true))
	mux.HandleFunc("PUT /api/expenses/{id}", s.wrap(s.handleUpdateExpense, true))
	mux.HandleFunc("DELETE /api/expenses/{id}", s.wrap(s.handleDeleteExpense, true))

	mux.HandleFunc("GET /api/subscriptions", s.wrap(s.handleListSubscriptions, true))
	mux.HandleFunc("POST /api/subscriptions", s.wrap(s.handleCreateSubscription, true))
	mux.HandleFunc("PUT /api/subscriptions/{id}", s.wrap(s.handleUpdateSubscription, true))
	mux.HandleFunc("DELETE /api/subscriptions/{id}", s.wrap(s.handleDeleteSubscription, true))

	mux.HandleFunc("GET /api/investments", s.wrap(s.handleListInvestments, true))
	mux.HandleFunc("POST /api/investments", s.wrap(s.handleCreateInvestment, true))
	mux.HandleFunc("PUT /api/investments/{id}", s.wrap(s.handleUpdateInvestment, true))
	mux.HandleFunc("DELETE /api/investments/{id}", s.wrap(s.handleDeleteInvestment, true))

	// The websocket route skips the logging wrapper so the upgrade can
	// hijack the connection.
	mux.HandleFunc("GET /ws", s.withIdentity(s.handleWebSocket))

	return s
}

// wrap applies the standard middleware chain. Handlers registered with
// authenticated=true additionally require a resolvable identity header.
func (s *Server) wrap(next http.HandlerFunc, authenticated bool) http.HandlerFunc {
	if authenticated {
		next = s.withIdentity(next)
	}
	return s.withSecurityHeaders(next)
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		if s.hub != nil {
			s.hub.Close()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
