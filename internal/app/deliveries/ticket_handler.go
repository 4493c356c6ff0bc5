package deliveries

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/slocalhq/slocal-core/internal/app/middlewares"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/app/pkg"
	"github.com/slocalhq/slocal-core/internal/app/services"
)

type TicketHandler struct {
	ticketService  *services.TicketService
	authMiddleware *middlewares.AuthMiddleware
}

func NewTicketHandler(ticketService *services.TicketService, authMiddleware *middlewares.AuthMiddleware) *TicketHandler {
	return &TicketHandler{
		ticketService:  ticketService,
		authMiddleware: authMiddleware,
	}
}

func (h *TicketHandler) RegisterRoutes(router fiber.Router) {
	ticketGroup := router.Group("/tickets")

	// All ticket endpoints require an authenticated student
	ticketGroup.Post("/issue", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthStudent, h.IssueTicket)
	ticketGroup.Get("/me", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthStudent, h.GetMyTickets)
	ticketGroup.Get("/code/:code/qr", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthStudent, h.GetTicketQR)
}

// IssueTicket is the one-shot call fired when a swipe completes. The student
// comes from the auth context, never from the request body.
func (h *TicketHandler) IssueTicket(c *fiber.Ctx) error {
	student := c.Locals("student").(*models.Student)

	var req models.TicketIssueRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	response, err := h.ticketService.IssueTicket(c.Context(), student.ID.String(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, response)
}

func (h *TicketHandler) GetMyTickets(c *fiber.Ctx) error {
	student := c.Locals("student").(*models.Student)

	limitStr := c.Query("limit", "10")
	offsetStr := c.Query("offset", "0")

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		limit = 10
	}

	offset, err := strconv.Atoi(offsetStr)
	if err != nil {
		offset = 0
	}

	tickets, err := h.ticketService.GetTicketsByStudent(student.ID.String(), limit, offset)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, tickets)
}

func (h *TicketHandler) GetTicketQR(c *fiber.Ctx) error {
	student := c.Locals("student").(*models.Student)
	code := c.Params("code")

	sizeStr := c.Query("size", "256")
	size, err := strconv.Atoi(sizeStr)
	if err != nil {
		size = 256
	}

	png, err := h.ticketService.TicketQRCode(student.ID.String(), code, size)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}
