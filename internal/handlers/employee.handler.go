package handlers

import (
	"server/internal/app"
	employeeController "server/internal/controllers/employees"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type EmployeeHandler struct {
	Handler
	controller employeeController.EmployeeController
}

func NewEmployeeHandler(app app.App, router fiber.Router) *EmployeeHandler {
	log := logger.New("handlers").File("employee_handler")
	return &EmployeeHandler{
		controller: *app.EmployeeController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *EmployeeHandler) Register() {
	employees := h.router.Group("/employees", h.middleware.RequireAuth)
	employees.Post("/", h.createEmployee)
	employees.Get("/me", h.me)
}

// createEmployee registers a new employee. Admin only.
func (h *EmployeeHandler) createEmployee(c *fiber.Ctx) error {
	log := h.log.Function("createEmployee")

	actor, ok := middleware.CurrentEmployee(c)
	if !ok || actor.Role != RoleAdmin {
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"message": "admin role required"})
	}

	var request CreateEmployeeRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse employee request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse employee request"})
	}

	if request.Code == "" || request.Name == "" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{
				"message": "validation failed",
				"errors":  fiber.Map{"code": "required", "name": "required"},
			})
	}

	kind, employee, err := h.controller.CreateEmployee(c.Context(), request)
	if err != nil {
		log.Er("failed to create employee", err, "code", request.Code)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to create employee"})
	}
	if kind.IsError() {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "error", kind.ErrorName(): kind.ErrorMessage()})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "employee": employee})
}

func (h *EmployeeHandler) me(c *fiber.Ctx) error {
	employee, ok := middleware.CurrentEmployee(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "authentication required"})
	}

	return c.JSON(fiber.Map{"message": "success", "employee": employee})
}
