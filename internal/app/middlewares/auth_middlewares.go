package middlewares

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/slocalhq/slocal-core/internal/app/errors"
	"github.com/slocalhq/slocal-core/internal/app/models"
	"github.com/slocalhq/slocal-core/internal/app/pkg"
	"github.com/slocalhq/slocal-core/internal/app/services"
)

type AuthMiddleware struct {
	identityService *services.IdentityService
	studentService  *services.StudentService
}

func NewAuthMiddleware(identityService *services.IdentityService, studentService *services.StudentService) *AuthMiddleware {
	return &AuthMiddleware{identityService: identityService, studentService: studentService}
}

func (m *AuthMiddleware) AuthIdentity(c *fiber.Ctx) error {
	token := c.Get("Authorization")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(models.WebResponse[any]{
			Success: false,
			Message: "Unauthorized",
		})
	}

	token = strings.Replace(token, "Bearer ", "", 1)

	identityUser, err := m.identityService.GetCurrentUser(token)
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewBadRequestError(err.Error()))
	}

	c.Locals("identity_user", identityUser)
	c.Locals("user_id", identityUser.ID.String())

	return c.Next()
}

func (m *AuthMiddleware) AuthStudent(c *fiber.Ctx) error {
	identityUser := c.Locals("identity_user").(*models.IdentityUser)

	if identityUser == nil {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("User is not authenticated"))
	}

	student, err := m.studentService.GetStudentByIdentity(identityUser.ID.String())
	if err != nil {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError(fmt.Sprintf("User %s has no student profile. Please register first.", identityUser.Username)))
	}

	c.Locals("student", student)

	return c.Next()
}

func (m *AuthMiddleware) AuthAdmin(c *fiber.Ctx) error {
	identityUser := c.Locals("identity_user").(*models.IdentityUser)

	if identityUser == nil {
		return pkg.ErrorResponse(c, errors.NewUnauthorizedError("User is not authenticated"))
	}

	if identityUser.GlobalRole != models.IdentityRoleAdmin {
		return pkg.ErrorResponse(c, errors.NewForbiddenError("Admin role required"))
	}

	return c.Next()
}
