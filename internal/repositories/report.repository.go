package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	REPORT_CACHE_EXPIRY = 1 * time.Hour
)

// ReportRepository is the persistence surface for reports. Lookups never
// filter by the delete flag; callers own soft-delete semantics.
type ReportRepository interface {
	GetByID(ctx context.Context, id int) (*Report, error)
	GetAll(ctx context.Context) ([]*Report, error)
	GetByEmployee(ctx context.Context, employeeCode string) ([]*Report, error)
	GetByEmployeeAndDate(ctx context.Context, employeeCode string, reportDate time.Time) (*Report, error)
	Create(ctx context.Context, report *Report) error
	Save(ctx context.Context, report *Report) error
}

type reportRepository struct {
	db  database.DB
	log logger.Logger
}

func NewReport(db database.DB) ReportRepository {
	return &reportRepository{
		db:  db,
		log: logger.New("reportRepository"),
	}
}

func (r *reportRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *reportRepository) GetByID(ctx context.Context, id int) (*Report, error) {
	log := r.log.Function("GetByID")

	var report Report
	if err := r.getCacheByID(ctx, id, &report); err == nil {
		return &report, nil
	}

	if err := r.getDB(ctx).Preload("Employee").First(&report, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get report by id", err, "id", id)
	}

	if err := r.addReportToCache(ctx, &report); err != nil {
		log.Warn("failed to add report to cache", "reportID", id, "error", err)
	}

	return &report, nil
}

func (r *reportRepository) GetAll(ctx context.Context) ([]*Report, error) {
	log := r.log.Function("GetAll")

	var reports []*Report
	if err := r.getDB(ctx).Preload("Employee").Find(&reports).Error; err != nil {
		return nil, log.Err("failed to get all reports", err)
	}

	return reports, nil
}

func (r *reportRepository) GetByEmployee(ctx context.Context, employeeCode string) ([]*Report, error) {
	log := r.log.Function("GetByEmployee")

	var reports []*Report
	if err := r.getDB(ctx).Preload("Employee").
		Where("employee_code = ?", employeeCode).
		Find(&reports).Error; err != nil {
		return nil, log.Err("failed to get reports by employee", err, "employeeCode", employeeCode)
	}

	return reports, nil
}

func (r *reportRepository) GetByEmployeeAndDate(
	ctx context.Context,
	employeeCode string,
	reportDate time.Time,
) (*Report, error) {
	log := r.log.Function("GetByEmployeeAndDate")

	var report Report
	err := r.getDB(ctx).
		Where("employee_code = ? AND report_date = ?", employeeCode, reportDate).
		First(&report).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get report by employee and date", err,
			"employeeCode", employeeCode, "reportDate", reportDate)
	}

	return &report, nil
}

func (r *reportRepository) Create(ctx context.Context, report *Report) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Omit(clause.Associations).Create(report).Error; err != nil {
		return log.Err("failed to create report", err, "report", report)
	}

	if err := r.addReportToCache(ctx, report); err != nil {
		log.Warn("failed to add report to cache", "reportID", report.ID, "error", err)
	}

	return nil
}

func (r *reportRepository) Save(ctx context.Context, report *Report) error {
	log := r.log.Function("Save")

	if err := r.getDB(ctx).Omit(clause.Associations).Save(report).Error; err != nil {
		return log.Err("failed to save report", err, "report", report)
	}

	if err := r.addReportToCache(ctx, report); err != nil {
		log.Warn("failed to update report in cache", "reportID", report.ID, "error", err)
	}

	return nil
}

func (r *reportRepository) getCacheByID(ctx context.Context, id int, report *Report) error {
	if r.db.Cache.Report == nil {
		return r.log.Function("getCacheByID").ErrMsg("report cache is not configured")
	}

	found, err := database.NewCacheBuilder(r.db.Cache.Report, strconv.Itoa(id)).
		WithContext(ctx).
		Get(report)
	if err != nil {
		return r.log.Function("getCacheByID").
			Err("failed to get report from cache", err, "reportID", id)
	}

	if !found {
		return r.log.Function("getCacheByID").Error("report not found in cache", "reportID", id)
	}

	return nil
}

func (r *reportRepository) addReportToCache(ctx context.Context, report *Report) error {
	if r.db.Cache.Report == nil {
		return nil
	}

	if err := database.NewCacheBuilder(r.db.Cache.Report, strconv.Itoa(report.ID)).
		WithStruct(report).
		WithTTL(REPORT_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("addReportToCache").
			Err("failed to add report to cache", err, "report", report)
	}
	return nil
}
