package app

import (
	"server/config"
	"server/internal/database"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	"server/internal/repositories"
	"server/internal/services"

	employeeController "server/internal/controllers/employees"
	reportController "server/internal/controllers/reports"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	// Services
	TransactionService *services.TransactionService

	// Repositories
	ReportRepo   repositories.ReportRepository
	EmployeeRepo repositories.EmployeeRepository

	// Controllers
	ReportController   *reportController.ReportController
	EmployeeController *employeeController.EmployeeController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	if _, err := db.RunMigrations(); err != nil {
		return &App{}, log.Err("failed to run migrations", err)
	}

	// Initialize services
	transactionService := services.NewTransactionService(db)

	// Initialize repositories
	reportRepo := repositories.NewReport(db)
	employeeRepo := repositories.NewEmployee(db)

	// Initialize controllers with repositories and services
	reportCtrl := reportController.New(reportRepo, employeeRepo, transactionService)
	employeeCtrl := employeeController.New(db, employeeRepo, config)
	middleware := middleware.New(employeeCtrl)

	app := &App{
		Database:           db,
		Config:             config,
		Middleware:         middleware,
		TransactionService: transactionService,
		ReportRepo:         reportRepo,
		EmployeeRepo:       employeeRepo,
		ReportController:   reportCtrl,
		EmployeeController: employeeCtrl,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.TransactionService,
		a.ReportRepo,
		a.EmployeeRepo,
		a.ReportController,
		a.EmployeeController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() error {
	return a.Database.Close()
}
