package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/slocalhq/slocal-core/internal/app/errors"
	"github.com/slocalhq/slocal-core/internal/app/middlewares"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/app/pkg"
	"github.com/slocalhq/slocal-core/internal/app/services"
)

type ScannerKeyHandler struct {
	scannerKeyService *services.ScannerKeyService
	authMiddleware    *middlewares.AuthMiddleware
}

func NewScannerKeyHandler(scannerKeyService *services.ScannerKeyService, authMiddleware *middlewares.AuthMiddleware) *ScannerKeyHandler {
	return &ScannerKeyHandler{
		scannerKeyService: scannerKeyService,
		authMiddleware:    authMiddleware,
	}
}

func (h *ScannerKeyHandler) RegisterRoutes(router fiber.Router) {
	keyGroup := router.Group("/scanner-keys")

	// Key management is admin-only
	keyGroup.Post("/", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.CreateKey)
	keyGroup.Get("/business/:business_id", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.ListKeys)
	keyGroup.Delete("/:id", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.RevokeKey)
}

func (h *ScannerKeyHandler) CreateKey(c *fiber.Ctx) error {
	var req models.ScannerKeyCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	key, err := h.scannerKeyService.CreateKey(c.Context(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, key)
}

func (h *ScannerKeyHandler) ListKeys(c *fiber.Ctx) error {
	businessUUID, err := uuid.Parse(c.Params("business_id"))
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid business ID format"))
	}

	keys, err := h.scannerKeyService.ListKeys(c.Context(), businessUUID)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, keys)
}

func (h *ScannerKeyHandler) RevokeKey(c *fiber.Ctx) error {
	keyUUID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid key ID format"))
	}

	var body struct {
		BusinessID string `json:"business_id"`
	}
	if err := c.BodyParser(&body); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	businessUUID, err := uuid.Parse(body.BusinessID)
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError("Invalid business ID format"))
	}

	if err := h.scannerKeyService.RevokeKey(c.Context(), keyUUID, businessUUID); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}
