package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/slocalhq/slocal-core/internal/app/middlewares"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/app/pkg"
	"github.com/slocalhq/slocal-core/internal/app/services"
)

type CategoryHandler struct {
	categoryService *services.CategoryService
	authMiddleware  *middlewares.AuthMiddleware
}

func NewCategoryHandler(categoryService *services.CategoryService, authMiddleware *middlewares.AuthMiddleware) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		authMiddleware:  authMiddleware,
	}
}

func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryGroup := router.Group("/categories")

	// Public endpoint
	categoryGroup.Get("/", h.GetCategories)

	// Admin endpoints
	categoryGroup.Post("/", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.CreateCategory)
	categoryGroup.Patch("/:id", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.UpdateCategory)
	categoryGroup.Delete("/:id", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.DeleteCategory)
}

func (h *CategoryHandler) CreateCategory(c *fiber.Ctx) error {
	var req models.CategoryCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, category)
}

func (h *CategoryHandler) GetCategories(c *fiber.Ctx) error {
	categories, err := h.categoryService.GetCategories()
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, categories)
}

func (h *CategoryHandler) UpdateCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	var req models.CategoryUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	category, err := h.categoryService.UpdateCategory(id, &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, category)
}

func (h *CategoryHandler) DeleteCategory(c *fiber.Ctx) error {
	id := c.Params("id")

	err := h.categoryService.DeleteCategory(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}
