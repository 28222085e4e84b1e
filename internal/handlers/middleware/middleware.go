package middleware

import (
	"strings"

	employeeController "server/internal/controllers/employees"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

const SessionCookieName = "session_token"

type Middleware struct {
	employees *employeeController.EmployeeController
	log       logger.Logger
}

func New(employees *employeeController.EmployeeController) Middleware {
	return Middleware{
		employees: employees,
		log:       logger.New("middleware"),
	}
}

// RequireAuth resolves the session token to an employee and stores it in the
// request locals. The authenticated employee is always threaded explicitly
// from there; nothing reads ambient global state.
func (m Middleware) RequireAuth(c *fiber.Ctx) error {
	token := sessionToken(c)
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "authentication required"})
	}

	employee, err := m.employees.EmployeeFromToken(c.Context(), token)
	if err != nil {
		m.log.Function("RequireAuth").Er("failed to resolve session", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to resolve session"})
	}
	if employee == nil {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "session expired or invalid"})
	}

	c.Locals("employee", *employee)
	return c.Next()
}

// CurrentEmployee returns the employee RequireAuth stored for this request.
func CurrentEmployee(c *fiber.Ctx) (Employee, bool) {
	employee, ok := c.Locals("employee").(Employee)
	return employee, ok
}

func sessionToken(c *fiber.Ctx) string {
	if auth := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.Cookies(SessionCookieName)
}
