package router

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/fixpoint-hq/workshop-api/internal/config"
	"github.com/fixpoint-hq/workshop-api/internal/database"
	"github.com/fixpoint-hq/workshop-api/internal/domain"
	"github.com/fixpoint-hq/workshop-api/internal/http/handler"
	"github.com/fixpoint-hq/workshop-api/internal/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Router holds all dependencies for HTTP routing
type Router struct {
	cfg              *config.Config
	logger           *zap.Logger
	db               *gorm.DB
	rateLimiter      *middleware.RateLimiter
	orderHandler     *handler.OrderHandler
	partHandler      *handler.PartHandler
	transferHandler  *handler.TransferHandler
	clientHandler    *handler.ClientHandler
	branchHandler    *handler.BranchHandler
	dashboardHandler *handler.DashboardHandler
}

// NewRouter creates a new router with all dependencies
func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	orderHandler *handler.OrderHandler,
	partHandler *handler.PartHandler,
	transferHandler *handler.TransferHandler,
	clientHandler *handler.ClientHandler,
	branchHandler *handler.BranchHandler,
	dashboardHandler *handler.DashboardHandler,
) *Router {
	return &Router{
		cfg:              cfg,
		logger:           logger,
		db:               db,
		rateLimiter:      middleware.NewRateLimiter(&cfg.RateLimit, logger),
		orderHandler:     orderHandler,
		partHandler:      partHandler,
		transferHandler:  transferHandler,
		clientHandler:    clientHandler,
		branchHandler:    branchHandler,
		dashboardHandler: dashboardHandler,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.LimitByIP)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	r.MethodNotAllowed(rt.methodNotAllowed)

	// Health check endpoints
	r.Get("/health", rt.healthCheck)
	r.Get("/health/db", rt.healthCheckDB)

	// Orders
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", rt.orderHandler.List)
		r.Post("/", rt.orderHandler.Create)
		r.Get("/{id}", rt.orderHandler.GetByID)
		r.Put("/{id}", rt.orderHandler.Update)
		r.Delete("/{id}", rt.orderHandler.Cancel)
		r.Get("/{id}/history", rt.orderHandler.GetHistory)
	})

	// Parts
	r.Route("/parts", func(r chi.Router) {
		r.Get("/", rt.partHandler.ListByOrder)
		r.Post("/", rt.partHandler.Add)
		r.Delete("/{id}", rt.partHandler.Remove)
	})

	// Transfers
	r.Route("/transfers", func(r chi.Router) {
		r.Get("/", rt.transferHandler.List)
		r.Post("/", rt.transferHandler.Create)
		r.Get("/{id}", rt.transferHandler.GetByID)
		r.Put("/{id}", rt.transferHandler.Advance)
	})

	// Branches
	r.Route("/branches", func(r chi.Router) {
		r.Get("/", rt.branchHandler.List)
		r.Post("/", rt.branchHandler.Create)
		r.Get("/{id}", rt.branchHandler.GetByID)
		r.Put("/{id}", rt.branchHandler.Update)
		r.Delete("/{id}", rt.branchHandler.Delete)
	})

	// Clients
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", rt.clientHandler.List)
		r.Post("/", rt.clientHandler.Create)
		r.Get("/{id}", rt.clientHandler.GetByID)
		r.Put("/{id}", rt.clientHandler.Update)
	})

	// Reporting
	r.Get("/dashboard", rt.dashboardHandler.GetDashboard)
	r.Get("/stats", rt.dashboardHandler.GetStats)

	return r
}

// healthCheck returns basic service health
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":      "ok",
		"app":         rt.cfg.App.Name,
		"version":     rt.cfg.App.Version,
		"environment": rt.cfg.App.Environment,
		"timestamp":   time.Now().UTC().Format(time.RFC3339),
	})
}

// healthCheckDB verifies database connectivity and reports pool stats
func (rt *Router) healthCheckDB(w http.ResponseWriter, r *http.Request) {
	stats, err := database.HealthCheckWithStats(rt.db)

	w.Header().Set("Content-Type", "application/json")
	if err != nil {
		rt.logger.Error("Database health check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "unhealthy",
			"service": "database",
			"error":   err.Error(),
		})
		return
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"service": "database",
		"stats": map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
		},
	})
}

func (rt *Router) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusMethodNotAllowed)
	json.NewEncoder(w).Encode(domain.APIResponse{
		Success: false,
		Error:   domain.ErrorCodeMethodNotAllowed,
		Message: "Method not allowed",
	})
}
