package middlewares

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/slocalhq/slocal-core/internal/app/errors"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/app/pkg"
	"github.com/slocalhq/slocal-core/internal/app/services"
	"github.com/slocalhq/slocal-core/internal/infrastructures"
	"github.com/slocalhq/slocal-core/pkg/ratelimit"
)

// ScannerKeyMiddleware authenticates business scanner devices by API key.
type ScannerKeyMiddleware struct {
	scannerKeyService *services.ScannerKeyService
	rateLimiter       ratelimit.RateLimiter
}

func NewScannerKeyMiddleware(scannerKeyService *services.ScannerKeyService, rateLimiter ratelimit.RateLimiter) *ScannerKeyMiddleware {
	return &ScannerKeyMiddleware{
		scannerKeyService: scannerKeyService,
		rateLimiter:       rateLimiter,
	}
}

// RequireScope creates a middleware that authenticates the scanner key and
// checks it carries the given scope. The business ID lands in locals for the
// verification handlers.
func (m *ScannerKeyMiddleware) RequireScope(scope models.ScannerKeyScope) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := c.Get("X-API-Key")
		if key == "" {
			return pkg.ErrorResponse(c, errors.NewUnauthorizedError("API key required"))
		}

		scannerKey, err := m.scannerKeyService.GetKey(c.Context(), key)
		if err != nil {
			return pkg.ErrorResponse(c, err)
		}

		// Per-key rate limit
		allowed, info := m.rateLimiter.Allow(
			"scannerkey:"+scannerKey.ID.String(),
			ratelimit.Rate{
				Requests: scannerKey.RateLimit,
				Window:   time.Minute,
			},
		)

		c.Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		c.Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		c.Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.Reset.Unix()))

		if !allowed {
			return pkg.ErrorResponse(c, errors.NewTooManyRequestsError("Rate limit exceeded"))
		}

		if !scannerKey.HasScope(scope) {
			return pkg.ErrorResponse(c, errors.NewForbiddenError("Insufficient permissions"))
		}

		// Capture request fields now; the fiber context is recycled after the
		// handler returns.
		usage := &models.ScannerKeyUsage{
			ScannerKeyID: scannerKey.ID,
			Endpoint:     c.Path(),
			Method:       c.Method(),
			IPAddress:    c.IP(),
			UserAgent:    c.Get("User-Agent"),
			CreatedAt:    time.Now(),
		}
		go func() {
			if err := m.scannerKeyService.LogUsage(context.Background(), usage); err != nil {
				infrastructures.GetLogger().Warnf("failed to log scanner key usage: %v", err)
			}
		}()

		c.Locals("scanner_key", scannerKey)
		c.Locals("business_id", scannerKey.BusinessID)

		return c.Next()
	}
}
