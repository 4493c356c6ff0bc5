package deliveries

import (
	"github.com/gofiber/fiber/v2"
	"github.com/slocalhq/slocal-core/internal/app/middlewares"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/app/pkg"
	"github.com/slocalhq/slocal-core/internal/app/services"
)

type StudentHandler struct {
	studentService *services.StudentService
	authMiddleware *middlewares.AuthMiddleware
}

func NewStudentHandler(studentService *services.StudentService, authMiddleware *middlewares.AuthMiddleware) *StudentHandler {
	return &StudentHandler{
		studentService: studentService,
		authMiddleware: authMiddleware,
	}
}

func (h *StudentHandler) RegisterRoutes(router fiber.Router) {
	studentGroup := router.Group("/students")

	// Registration binds the authenticated identity to a student profile
	studentGroup.Post("/register", h.authMiddleware.AuthIdentity, h.Register)
	studentGroup.Get("/me", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthStudent, h.GetMe)
	studentGroup.Patch("/me", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthStudent, h.UpdateMe)

	// Admin endpoints
	studentGroup.Get("/:id", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.GetStudent)
	studentGroup.Delete("/:id", h.authMiddleware.AuthIdentity, h.authMiddleware.AuthAdmin, h.DeleteStudent)
}

// Register creates the student profile for the current identity. The
// identity fields seed the profile; only campus name is taken from the body.
func (h *StudentHandler) Register(c *fiber.Ctx) error {
	identityUser := c.Locals("identity_user").(*models.IdentityUser)

	var body struct {
		CampusName *string `json:"campus_name,omitempty"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&body); err != nil {
			return pkg.ErrorResponse(c, err)
		}
	}

	req := &models.StudentCreateRequest{
		IdentityID:  identityUser.ID.String(),
		Email:       identityUser.Email,
		DisplayName: identityUser.FullName,
		CampusName:  body.CampusName,
	}

	student, err := h.studentService.CreateStudent(req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, student)
}

func (h *StudentHandler) GetMe(c *fiber.Ctx) error {
	student := c.Locals("student").(*models.Student)
	return pkg.SuccessResponse(c, student)
}

func (h *StudentHandler) UpdateMe(c *fiber.Ctx) error {
	student := c.Locals("student").(*models.Student)

	var req models.StudentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return pkg.ErrorResponse(c, err)
	}

	updated, err := h.studentService.UpdateStudent(student.ID.String(), &req)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, updated)
}

func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	id := c.Params("id")

	student, err := h.studentService.GetStudent(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse(c, student)
}

func (h *StudentHandler) DeleteStudent(c *fiber.Ctx) error {
	id := c.Params("id")

	err := h.studentService.DeleteStudent(id)
	if err != nil {
		return pkg.ErrorResponse(c, err)
	}

	return pkg.SuccessResponse[any](c, nil)
}
