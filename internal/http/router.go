package http

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mrlokans/booklending/internal/auth"
	"github.com/mrlokans/booklending/internal/entities"
	"github.com/mrlokans/booklending/internal/logging"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(logging.GinMiddleware(logger))
	router.Use(gin.Recovery())
	if cfg.Metrics != nil {
		router.Use(cfg.Metrics.GinMiddleware())
	}
	router.Use(auth.SecurityHeadersMiddleware())
	router.Use(auth.StrictTransportSecurityMiddleware())
	router.Use(NewReadOnlyMiddleware(cfg.ReadOnly).Handler())

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", health.Ping)
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := router.Group("/api", auth.NewMiddleware(cfg.Users).Handler())
	staff := auth.RequireRole(entities.UserRoleLibrarian, entities.UserRoleAdmin)

	// Borrowing lifecycle
	borrowings := NewBorrowingsController(cfg.Borrowings, cfg.History)
	api.POST("/borrowings", auth.RequireRole(entities.UserRoleUser), borrowings.Request)
	api.GET("/borrowings/my", borrowings.Mine)
	api.GET("/borrowings", staff, borrowings.List)
	api.GET("/borrowings/:id", borrowings.Get)
	api.PUT("/borrowings/:id/confirm", staff, borrowings.Confirm)
	api.PUT("/borrowings/:id/return", staff, borrowings.Return)
	if cfg.History != nil {
		api.GET("/borrowings/:id/history", borrowings.History)
	}

	// Inventory
	books := NewBooksController(cfg.Books)
	api.GET("/books/:id/availability", books.Availability)

	// Inbox
	if cfg.Notifications != nil {
		notifications := NewNotificationsController(cfg.Notifications, cfg.Pagination)
		api.GET("/notifications", notifications.List)
		api.PUT("/notifications/read-all", notifications.MarkAllRead)
		api.PUT("/notifications/:id/read", notifications.MarkRead)
	}

	return router
}
