package reportController

import (
	"context"
	"testing"
	"time"

	"server/internal/database"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testEnv struct {
	db         database.DB
	controller *ReportController
	reportRepo repositories.ReportRepository
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	db := database.DB{SQL: gormDB}
	_, err = db.RunMigrations()
	require.NoError(t, err)

	reportRepo := repositories.NewReport(db)
	employeeRepo := repositories.NewEmployee(db)
	transactionService := services.NewTransactionService(db)

	return testEnv{
		db:         db,
		controller: New(reportRepo, employeeRepo, transactionService),
		reportRepo: reportRepo,
	}
}

func (env testEnv) seedEmployee(t *testing.T, code string, deleted bool) *Employee {
	t.Helper()

	now := time.Now()
	employee := &Employee{
		Code:      code,
		Name:      "Employee " + code,
		Password:  "hashed-password",
		Role:      RoleGeneral,
		DeleteFlg: deleted,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, env.db.SQL.Create(employee).Error)
	return employee
}

func (env testEnv) createReport(t *testing.T, code string, date time.Time, title string) *Report {
	t.Helper()

	report := &Report{
		EmployeeCode: code,
		ReportDate:   date,
		Title:        title,
		Content:      "content for " + title,
	}
	require.NoError(t, env.controller.SaveReport(context.Background(), report))
	return report
}

func (env testEnv) countReports(t *testing.T) int64 {
	t.Helper()

	var count int64
	require.NoError(t, env.db.SQL.Model(&Report{}).Count(&count).Error)
	return count
}

func date(day int) time.Time {
	return time.Date(2024, 5, day, 0, 0, 0, 0, time.UTC)
}

func TestSaveReport_CreateStampsTimestamps(t *testing.T) {
	env := newTestEnv(t)
	env.seedEmployee(t, "E001", false)
	ctx := context.Background()

	report := &Report{
		EmployeeCode: "E001",
		ReportDate:   date(1),
		Title:        "First report",
		Content:      "Did things.",
	}
	require.NoError(t, env.controller.SaveReport(ctx, report))

	loaded, err := env.controller.FindByID(ctx, report.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.False(t, loaded.CreatedAt.IsZero())
	assert.Equal(t, loaded.CreatedAt, loaded.UpdatedAt)
	assert.False(t, loaded.DeleteFlg)
}

func TestSaveReport_DuplicateActiveDateRejected(t *testing.T) {
	env := newTestEnv(t)
	env.seedEmployee(t, "E001", false)
	ctx := context.Background()

	env.createReport(t, "E001", date(1), "Original")

	duplicate := &Report{
		EmployeeCode: "E001",
		ReportDate:   date(1),
		Title:        "Duplicate",
		Content:      "Should not land.",
	}
	err := env.controller.SaveReport(ctx, duplicate)
	assert.ErrorIs(t, err, ErrDuplicateReportDate)
	assert.Equal(t, int64(1), env.countReports(t))
}

func TestSaveReport_SameDateDifferentEmployee(t *testing.T) {
	env := newTestEnv(t)
	env.seedEmployee(t, "E001", false)
	env.seedEmployee(t, "E002", false)

	env.createReport(t, "E001", date(1), "E001 report")
	env.createReport(t, "E002", date(1), "E002 report")

	assert.Equal(t, int64(2), env.countReports(t))
}

func TestSaveReport_SoftDeletedDateDoesNotBlockCreate(t *testing.T) {
	env := newTestEnv(t)
	employee := env.seedEmployee(t, "E001", false)
	ctx := context.Background()

	original := env.createReport(t, "E001", date(1), "Original")
	kind, err := env.controller.Delete(ctx, original.ID, employee)
	require.NoError(t, err)
	require.Equal(t, Success, kind)

	replacement := &Report{
		EmployeeCode: "E001",
		ReportDate:   date(1),
		Title:        "Replacement",
		Content:      "New report for the same date.",
	}
	require.NoError(t, env.controller.SaveReport(ctx, replacement))
	assert.Equal(t, int64(2), env.countReports(t))
}

func TestUpdateReport_MissingID(t *testing.T) {
	env := newTestEnv(t)
	env.seedEmployee(t, "E001", false)
	ctx := context.Background()

	kind, err := env.controller.UpdateReport(ctx, &Report{
		BaseModel:    BaseModel{ID: 9999},
		EmployeeCode: "E001",
		ReportDate:   date(1),
		Title:        "Ghost",
		Content:      "No such row.",
	})
	require.NoError(t, err)
	assert.Equal(t, NotFound, kind)
	assert.Equal(t, int64(0), env.countReports(t))
}

func TestUpdateReport_CarriesCreatedAtForward(t *testing.T) {
	env := newTestEnv(t)
	env.seedEmployee(t, "E001", false)
	ctx := context.Background()

	original := env.createReport(t, "E001", date(1), "Original")
	createdAt := original.CreatedAt

	updated := &Report{
		BaseModel:    BaseModel{ID: original.ID},
		EmployeeCode: "E001",
		ReportDate:   date(1),
		Title:        "Edited",
		Content:      "Edited content.",
	}
	kind, err := env.controller.UpdateReport(ctx, updated)
	require.NoError(t, err)
	require.Equal(t, Success, kind)

	loaded, err := env.controller.FindByID(ctx, original.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "Edited", loaded.Title)
	assert.WithinDuration(t, createdAt, loaded.CreatedAt, time.Second)
	assert.True(t, loaded.UpdatedAt.After(loaded.CreatedAt) ||
		loaded.UpdatedAt.Equal(loaded.CreatedAt))
}

func TestUpdateReport_UndeletesSoftDeletedReport(t *testing.T) {
	env := newTestEnv(t)
	employee := env.seedEmployee(t, "E001", false)
	ctx := context.Background()

	original := env.createReport(t, "E001", date(1), "Original")
	kind, err := env.controller.Delete(ctx, original.ID, employee)
	require.NoError(t, err)
	require.Equal(t, Success, kind)

	kind, err = env.controller.UpdateReport(ctx, &Report{
		BaseModel:    BaseModel{ID: original.ID},
		EmployeeCode: "E001",
		ReportDate:   date(1),
		Title:        "Revived",
		Content:      "Back again.",
	})
	require.NoError(t, err)
	require.Equal(t, Success, kind)

	loaded, err := env.controller.FindByID(ctx, original.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.False(t, loaded.DeleteFlg)
	assert.Equal(t, "Revived", loaded.Title)
}

func TestDelete_NonOwnerForbidden(t *testing.T) {
	env := newTestEnv(t)
	env.seedEmployee(t, "E001", false)
	other := env.seedEmployee(t, "E002", false)
	ctx := context.Background()

	report := env.createReport(t, "E001", date(1), "E001 report")

	kind, err := env.controller.Delete(ctx, report.ID, other)
	require.NoError(t, err)
	assert.Equal(t, Forbidden, kind)

	loaded, err := env.controller.FindByID(ctx, report.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.False(t, loaded.DeleteFlg)
}

func TestDelete_MissingReport(t *testing.T) {
	env := newTestEnv(t)
	employee := env.seedEmployee(t, "E001", false)

	kind, err := env.controller.Delete(context.Background(), 9999, employee)
	require.NoError(t, err)
	assert.Equal(t, NotFound, kind)
}

func TestDelete_Idempotent(t *testing.T) {
	env := newTestEnv(t)
	employee := env.seedEmployee(t, "E001", false)
	ctx := context.Background()

	report := env.createReport(t, "E001", date(1), "Report")

	kind, err := env.controller.Delete(ctx, report.ID, employee)
	require.NoError(t, err)
	assert.Equal(t, Success, kind)

	kind, err = env.controller.Delete(ctx, report.ID, employee)
	require.NoError(t, err)
	assert.Equal(t, Success, kind)

	loaded, err := env.controller.FindByID(ctx, report.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.DeleteFlg)
}

func TestGetAllReports_FiltersDeletedOwners(t *testing.T) {
	env := newTestEnv(t)
	env.seedEmployee(t, "E001", false)
	env.seedEmployee(t, "E002", true)

	env.createReport(t, "E001", date(1), "Active owner")
	env.createReport(t, "E002", date(1), "Deleted owner")

	reports, err := env.controller.GetAllReports(context.Background())
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "E001", reports[0].EmployeeCode)
}

func TestGetAllReports_KeepsSoftDeletedReportsOfActiveOwners(t *testing.T) {
	env := newTestEnv(t)
	employee := env.seedEmployee(t, "E001", false)
	ctx := context.Background()

	report := env.createReport(t, "E001", date(1), "Report")
	kind, err := env.controller.Delete(ctx, report.ID, employee)
	require.NoError(t, err)
	require.Equal(t, Success, kind)

	// The listing filters on the owner's flag, not the report's.
	reports, err := env.controller.GetAllReports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.True(t, reports[0].DeleteFlg)
}

func TestExistsByEmployeeAndDate(t *testing.T) {
	env := newTestEnv(t)
	employee := env.seedEmployee(t, "E001", false)
	ctx := context.Background()

	exists, err := env.controller.ExistsByEmployeeAndDate(ctx, employee, date(1))
	require.NoError(t, err)
	assert.False(t, exists)

	report := env.createReport(t, "E001", date(1), "Report")

	exists, err = env.controller.ExistsByEmployeeAndDate(ctx, employee, date(1))
	require.NoError(t, err)
	assert.True(t, exists)

	// Soft deletion does not hide the row from the existence check.
	kind, err := env.controller.Delete(ctx, report.ID, employee)
	require.NoError(t, err)
	require.Equal(t, Success, kind)

	exists, err = env.controller.ExistsByEmployeeAndDate(ctx, employee, date(1))
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestExistsByEmployeeAndDateExcludingID(t *testing.T) {
	env := newTestEnv(t)
	employee := env.seedEmployee(t, "E001", false)
	ctx := context.Background()

	report := env.createReport(t, "E001", date(1), "Report")

	exists, err := env.controller.ExistsByEmployeeAndDateExcludingID(ctx, employee, date(1), report.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = env.controller.ExistsByEmployeeAndDateExcludingID(ctx, employee, date(1), report.ID+1)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetReport_ResolvesOwner(t *testing.T) {
	env := newTestEnv(t)
	env.seedEmployee(t, "E001", false)
	ctx := context.Background()

	report := env.createReport(t, "E001", date(1), "Report")

	loaded, err := env.controller.GetReport(ctx, report.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	require.NotNil(t, loaded.Employee)
	assert.Equal(t, "E001", loaded.Employee.Code)

	missing, err := env.controller.GetReport(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindByEmployee(t *testing.T) {
	env := newTestEnv(t)
	employee := env.seedEmployee(t, "E001", false)
	env.seedEmployee(t, "E002", false)
	ctx := context.Background()

	env.createReport(t, "E001", date(1), "Day one")
	env.createReport(t, "E001", date(2), "Day two")
	env.createReport(t, "E002", date(1), "Other employee")

	reports, err := env.controller.FindByEmployee(ctx, employee)
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

// Two employees share a date; only the owner can delete their own report and
// the other employee's report stays listed.
func TestSharedDateOwnershipScenario(t *testing.T) {
	env := newTestEnv(t)
	hanako := env.seedEmployee(t, "E001", false)
	taro := env.seedEmployee(t, "E002", false)
	ctx := context.Background()

	hanakoReport := env.createReport(t, "E001", date(1), "Hanako's report")
	taroReport := env.createReport(t, "E002", date(1), "Taro's report")

	kind, err := env.controller.Delete(ctx, taroReport.ID, hanako)
	require.NoError(t, err)
	assert.Equal(t, Forbidden, kind)

	kind, err = env.controller.Delete(ctx, hanakoReport.ID, hanako)
	require.NoError(t, err)
	assert.Equal(t, Success, kind)

	kind, err = env.controller.Delete(ctx, taroReport.ID, taro)
	require.NoError(t, err)
	assert.Equal(t, Success, kind)

	loaded, err := env.controller.FindByID(ctx, taroReport.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.True(t, loaded.DeleteFlg)
}
