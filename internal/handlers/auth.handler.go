package handlers

import (
	"errors"

	"server/internal/app"
	employeeController "server/internal/controllers/employees"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	. "server/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	Handler
	controller employeeController.EmployeeController
}

func NewAuthHandler(app app.App, router fiber.Router) *AuthHandler {
	log := logger.New("handlers").File("auth_handler")
	return &AuthHandler{
		controller: *app.EmployeeController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AuthHandler) Register() {
	auth := h.router.Group("/auth")
	auth.Post("/login", h.login)
	auth.Post("/logout", h.middleware.RequireAuth, h.logout)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	log := h.log.Function("login")

	var request LoginRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse login request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse login request"})
	}

	token, err := h.controller.Login(c.Context(), request.Code, request.Password)
	if err != nil {
		if errors.Is(err, employeeController.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).
				JSON(fiber.Map{"message": employeeController.ErrInvalidCredentials.Error()})
		}
		log.Er("failed to log in", err, "code", request.Code)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to log in"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "success", "token": token})
}

func (h *AuthHandler) logout(c *fiber.Ctx) error {
	log := h.log.Function("logout")

	token := c.Cookies(middleware.SessionCookieName)
	if token == "" {
		if auth := c.Get(fiber.HeaderAuthorization); len(auth) > 7 {
			token = auth[7:]
		}
	}

	if token != "" {
		if err := h.controller.Logout(c.Context(), token); err != nil {
			log.Er("failed to log out", err)
			return c.Status(fiber.StatusInternalServerError).
				JSON(fiber.Map{"message": "failed to log out"})
		}
	}

	c.ClearCookie(middleware.SessionCookieName)
	return c.JSON(fiber.Map{"message": "success"})
}
