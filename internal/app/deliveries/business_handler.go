package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/slocalhq/slocal-core/internal/app/middlewares"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/app/pkg"
	"github.com/slocalhq/slocal-core/internal/app/services"
)

type BusinessHandler struct {
	businessService *services.BusinessService
	authMiddleware  *middlewares.AuthMiddleware
}

func NewBusinessHandler(businessService *services.BusinessService, authMiddleware *middlewares.AuthMiddleware) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
		authMiddleware:  authMiddleware,
	}
}

func (h *BusinessHandler) RegisterRoutes(router fiber.Router) {
	businessGroup := router.Group("/businesses")

	// Public endpoints
	businessGroup.Get("/", h.GetBusinesses)
	businessGroup.Get("/slug/:slug", h.GetBusinessBySlug)
	businessGroup.Get("/:id", h.GetBusiness)

	// Admin endpoints
	businessGroup.Post("/", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.CreateBusiness)
	businessGroup.Patch("/:id", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.UpdateBusiness)
	businessGroup.Delete("/:id", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.DeleteBusiness)
}

func (h *BusinessHandler) CreateBusiness(c *fiber.Ctx) error {
	var req models.BusinessCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	business, err := h.businessService.CreateBusiness(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, business)
}

func (h *BusinessHandler) GetBusiness(c *fiber.Ctx) error {
	id := c.Params("id")

	business, err := h.businessService.GetBusiness(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, business)
}

func (h *BusinessHandler) GetBusinessBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")

	business, err := h.businessService.GetBusinessBySlug(slug)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, business)
}

func (h *BusinessHandler) GetBusinesses(c *fiber.Ctx) error {
	pageStr := c.Query("page", "1")
	limitStr := c.Query("limit", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		page = 1
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		limit = 10
	}

	businesses, err := h.businessService.GetBusinesses(&models.PaginationRequest{Page: page, Limit: limit})
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, businesses)
}

func (h *BusinessHandler) UpdateBusiness(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.BusinessUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	business, err := h.businessService.UpdateBusiness(id, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, business)
}

func (h *BusinessHandler) DeleteBusiness(c *fiber.Ctx) error {
	id := c.Params("id")

	err := h.businessService.DeleteBusiness(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}
