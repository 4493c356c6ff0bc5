package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/slocalhq/slocal-core/internal/app/middlewares"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/app/pkg"
	"github.com/slocalhq/slocal-core/internal/app/services"
)

type DealHandler struct {
	dealService    *services.DealService
	authMiddleware *middlewares.AuthMiddleware
}

func NewDealHandler(dealService *services.DealService, authMiddleware *middlewares.AuthMiddleware) *DealHandler {
	return &DealHandler{
		dealService:    dealService,
		authMiddleware: authMiddleware,
	}
}

func (h *DealHandler) RegisterRoutes(router fiber.Router) {
	dealGroup := router.Group("/deals")

	// Public browse endpoints
	dealGroup.Get("/", h.GetDeals)
	dealGroup.Get("/:id", h.GetDeal)

	// Admin endpoints
	dealGroup.Post("/", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.CreateDeal)
	dealGroup.Patch("/:id", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.UpdateDeal)
	dealGroup.Delete("/:id", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.DeleteDeal)
}

func (h *DealHandler) CreateDeal(c *fiber.Ctx) error {
	var req models.DealCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	deal, err := h.dealService.CreateDeal(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, deal)
}

func (h *DealHandler) GetDeal(c *fiber.Ctx) error {
	id := c.Params("id")

	deal, err := h.dealService.GetDeal(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, deal)
}

func (h *DealHandler) GetDeals(c *fiber.Ctx) error {
	pageStr := c.Query("page", "1")
	limitStr := c.Query("limit", "10")
	statusStr := c.Query("status")
	businessStr := c.Query("business_id")

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		page = 1
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		limit = 10
	}

	var status *models.DealStatus
	if statusStr != "" {
		dealStatus := models.DealStatus(statusStr)
		status = &dealStatus
	}

	var businessId *string
	if businessStr != "" {
		businessId = &businessStr
	}

	deals, err := h.dealService.GetDeals(&models.PaginationRequest{Page: page, Limit: limit}, status, businessId)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, deals)
}

func (h *DealHandler) UpdateDeal(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.DealUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	deal, err := h.dealService.UpdateDeal(id, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, deal)
}

func (h *DealHandler) DeleteDeal(c *fiber.Ctx) error {
	id := c.Params("id")

	err := h.dealService.DeleteDeal(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}
