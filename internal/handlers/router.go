package handlers

import (
	"server/internal/app"
	"server/internal/handlers/middleware"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	middleware middleware.Middleware
	log        logger.Logger
	router     fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	HealthHandler(router, app.Config)
	NewAuthHandler(*app, router).Register()
	NewEmployeeHandler(*app, router).Register()
	NewReportHandler(*app, router).Register()

	return nil
}
