package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/slocalhq/slocal-core/internal/app/middlewares"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/app/pkg"
	"github.com/slocalhq/slocal-core/internal/app/services"
)

// VerificationHandler serves the business scanner: preview then confirm.
type VerificationHandler struct {
	verificationService  *services.VerificationService
	scannerKeyMiddleware *middlewares.ScannerKeyMiddleware
}

func NewVerificationHandler(verificationService *services.VerificationService, scannerKeyMiddleware *middlewares.ScannerKeyMiddleware) *VerificationHandler {
	return &VerificationHandler{
		verificationService:  verificationService,
		scannerKeyMiddleware: scannerKeyMiddleware,
	}
}

func (h *VerificationHandler) RegisterRoutes(router fiber.Router) {
	verifyGroup := router.Group("/verify")

	verifyGroup.Post("/preview", h.scannerKeyMiddleware.RequireScope(models.ScannerKeyScopeScan), h.Preview)
	verifyGroup.Post("/confirm", h.scannerKeyMiddleware.RequireScope(models.ScannerKeyScopeConfirm), h.Confirm)
}

func (h *VerificationHandler) Preview(c *fiber.Ctx) error {
	businessID := c.Locals("business_id").(uuid.UUID)

	var req models.VerifyPreviewRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.verificationService.Preview(businessID.String(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, result)
}

func (h *VerificationHandler) Confirm(c *fiber.Ctx) error {
	businessID := c.Locals("business_id").(uuid.UUID)

	var req models.VerifyConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	result, err := h.verificationService.Confirm(businessID.String(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, result)
}
