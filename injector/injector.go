//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/slocalhq/slocal-core/internal/app/deliveries"
	"github.com/slocalhq/slocal-core/internal/app/middlewares"
	"github.com/slocalhq/slocal-core/internal/app/services"
	"github.com/slocalhq/slocal-core/internal/infrastructures"
	"github.com/slocalhq/slocal-core/pkg/ratelimit"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewDatabase,
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	wire.Value("slocal"),
	wire.Bind(new(ratelimit.RateLimiter), new(*ratelimit.RedisRateLimiter)),
	ratelimit.NewRedisRateLimiter,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewIdentityService,
	services.NewStudentService,
	services.NewBusinessService,
	services.NewCategoryService,
	services.NewDealService,
	services.NewTicketService,
	services.NewVerificationService,
	services.NewScannerKeyService,
)

// Middleware providers
var middlewareSet = wire.NewSet(
	middlewares.NewAuthMiddleware,
	middlewares.NewScannerKeyMiddleware,
	middlewares.NewRateLimitMiddleware,
)

// Handler providers
var handlerSet = wire.NewSet(
	deliveries.NewHealthHandler,
	deliveries.NewStudentHandler,
	deliveries.NewBusinessHandler,
	deliveries.NewCategoryHandler,
	deliveries.NewDealHandler,
	deliveries.NewTicketHandler,
	deliveries.NewVerificationHandler,
	deliveries.NewScannerKeyHandler,
	wire.Struct(new(Application), "*"), // This tells Wire to build the Application struct
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
		middlewareSet,
		handlerSet,
	)
	return &Application{}, nil // Wire will populate the Application struct based on handlerSet
}
