package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"server/internal/app"
	"server/internal/handlers"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close application", err)
		}
	}()

	fiberApp := fiber.New(fiber.Config{
		AppName: "daily-report-server",
	})

	if err := handlers.Router(fiberApp, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	go func() {
		address := fmt.Sprintf(":%d", application.Config.ServerPort)
		log.Info("Starting server", "address", address)
		if err := fiberApp.Listen(address); err != nil {
			log.Er("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	if err := fiberApp.Shutdown(); err != nil {
		log.Er("failed to shut down server", err)
	}
}
