package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"server/config"
	"server/internal/app"
	employeeController "server/internal/controllers/employees"
	reportController "server/internal/controllers/reports"
	"server/internal/database"
	"server/internal/handlers/middleware"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := database.DB{SQL: gormDB}
	_, err = db.RunMigrations()
	require.NoError(t, err)

	cfg := config.Config{Environment: "test", SessionTTLMinutes: 60}
	reportRepo := repositories.NewReport(db)
	employeeRepo := repositories.NewEmployee(db)
	employeeCtrl := employeeController.New(db, employeeRepo, cfg)

	application := &app.App{
		Database:           db,
		Config:             cfg,
		Middleware:         middleware.New(employeeCtrl),
		TransactionService: services.NewTransactionService(db),
		ReportRepo:         reportRepo,
		EmployeeRepo:       employeeRepo,
		ReportController:   reportController.New(reportRepo, employeeRepo, services.NewTransactionService(db)),
		EmployeeController: employeeCtrl,
	}

	fiberApp := fiber.New()
	require.NoError(t, Router(fiberApp, application))
	return fiberApp
}

func TestHealthEndpoint(t *testing.T) {
	fiberApp := newTestApp(t)

	resp, err := fiberApp.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	fiberApp := newTestApp(t)

	requests := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/reports"},
		{http.MethodGet, "/reports/add"},
		{http.MethodPost, "/reports/add"},
		{http.MethodGet, "/reports/1"},
		{http.MethodGet, "/reports/1/update"},
		{http.MethodPost, "/reports/update/1"},
		{http.MethodPost, "/reports/1/delete"},
		{http.MethodGet, "/reports/export"},
		{http.MethodPost, "/employees"},
		{http.MethodGet, "/employees/me"},
		{http.MethodPost, "/auth/logout"},
	}

	for _, r := range requests {
		t.Run(r.method+" "+r.path, func(t *testing.T) {
			resp, err := fiberApp.Test(httptest.NewRequest(r.method, r.path, nil))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}

func TestLogin_RejectsUnknownEmployee(t *testing.T) {
	fiberApp := newTestApp(t)

	body := strings.NewReader(`{"code":"E999","password":"password001"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := fiberApp.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestStatusForKind(t *testing.T) {
	assert.Equal(t, fiber.StatusNotFound, statusForKind(NotFound))
	assert.Equal(t, fiber.StatusForbidden, statusForKind(Forbidden))
	assert.Equal(t, fiber.StatusBadRequest, statusForKind(HalfsizeError))
	assert.Equal(t, fiber.StatusBadRequest, statusForKind(RangecheckError))
}
