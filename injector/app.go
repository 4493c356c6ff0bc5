package injector

import (
	"github.com/gofiber/fiber/v2"
	"github.com/slocalhq/slocal-core/internal/app/deliveries"
	"github.com/slocalhq/slocal-core/internal/app/middlewares"
	"github.com/slocalhq/slocal-core/pkg/ratelimit"
)

// Application represents the main application container for slocal-core
type Application struct {
	HealthHandler       *deliveries.HealthHandler
	StudentHandler      *deliveries.StudentHandler
	BusinessHandler     *deliveries.BusinessHandler
	CategoryHandler     *deliveries.CategoryHandler
	DealHandler         *deliveries.DealHandler
	TicketHandler       *deliveries.TicketHandler
	VerificationHandler *deliveries.VerificationHandler
	ScannerKeyHandler   *deliveries.ScannerKeyHandler
	RateLimitMiddleware *middlewares.RateLimitMiddleware
}

// RegisterRoutes registers all application routes using a Fiber router
func (app *Application) RegisterRoutes(router fiber.Router) {
	// Apply global rate limit for public API
	router.Use(app.RateLimitMiddleware.LimitByIP(ratelimit.PublicAPILimit))

	// Ticket issuance gets a stricter per-user rate limit
	ticketGroup := router.Group("/tickets")
	ticketGroup.Use(app.RateLimitMiddleware.LimitByUser(ratelimit.IssueLimit))

	// Scanner endpoints are limited per key in the scanner key middleware;
	// this IP limit is the outer guard
	verifyGroup := router.Group("/verify")
	verifyGroup.Use(app.RateLimitMiddleware.LimitByIP(ratelimit.ScannerAPILimit))

	// Register all handlers
	app.HealthHandler.RegisterRoutes(router)
	app.StudentHandler.RegisterRoutes(router)
	app.BusinessHandler.RegisterRoutes(router)
	app.CategoryHandler.RegisterRoutes(router)
	app.DealHandler.RegisterRoutes(router)
	app.TicketHandler.RegisterRoutes(router)
	app.VerificationHandler.RegisterRoutes(router)
	app.ScannerKeyHandler.RegisterRoutes(router)
}
