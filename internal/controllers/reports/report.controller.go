package reportController

import (
	"context"
	"errors"
	"time"

	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
)

// ErrDuplicateReportDate signals that the employee already has an active
// report for the submitted date.
var ErrDuplicateReportDate = errors.New("a report already exists for this date")

// ReportController owns every business rule around reports and is the sole
// mutator of persisted report state.
type ReportController struct {
	reportRepo         repositories.ReportRepository
	employeeRepo       repositories.EmployeeRepository
	transactionService *services.TransactionService
	log                logger.Logger
}

func New(
	reportRepo repositories.ReportRepository,
	employeeRepo repositories.EmployeeRepository,
	transactionService *services.TransactionService,
) *ReportController {
	return &ReportController{
		reportRepo:         reportRepo,
		employeeRepo:       employeeRepo,
		transactionService: transactionService,
		log:                logger.New("ReportController"),
	}
}

// FindByID returns the report or nil when absent. Absence is represented,
// never thrown.
func (rc *ReportController) FindByID(ctx context.Context, id int) (*Report, error) {
	return rc.reportRepo.GetByID(ctx, id)
}

// GetReport is the detail-view lookup: FindByID plus an owner resolution so
// the caller always gets the employee alongside the report.
func (rc *ReportController) GetReport(ctx context.Context, id int) (*Report, error) {
	report, err := rc.reportRepo.GetByID(ctx, id)
	if err != nil || report == nil {
		return report, err
	}

	if report.Employee == nil {
		employee, err := rc.employeeRepo.GetByCode(ctx, report.EmployeeCode)
		if err != nil {
			return nil, rc.log.Function("GetReport").
				Err("failed to resolve report owner", err, "reportID", id)
		}
		report.Employee = employee
	}

	return report, nil
}

// GetAllReports returns every report whose owner still exists and is not
// soft-deleted. Order follows the store's natural fetch order.
func (rc *ReportController) GetAllReports(ctx context.Context) ([]*Report, error) {
	log := rc.log.Function("GetAllReports")

	allReports, err := rc.reportRepo.GetAll(ctx)
	if err != nil {
		return nil, log.Err("failed to get all reports", err)
	}

	filtered := make([]*Report, 0, len(allReports))
	for _, report := range allReports {
		if report.Employee == nil || report.Employee.DeleteFlg {
			continue
		}
		filtered = append(filtered, report)
	}

	return filtered, nil
}

// ExistsByEmployeeAndDate reports whether the exact-match (employee, date)
// lookup returns a record. The lookup does not filter by delete flag.
func (rc *ReportController) ExistsByEmployeeAndDate(
	ctx context.Context,
	employee *Employee,
	reportDate time.Time,
) (bool, error) {
	existing, err := rc.reportRepo.GetByEmployeeAndDate(ctx, employee.Code, reportDate)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

// ExistsByEmployeeAndDateExcludingID is ExistsByEmployeeAndDate minus the
// record carrying excludeID, so an edit that keeps its date does not collide
// with itself.
func (rc *ReportController) ExistsByEmployeeAndDateExcludingID(
	ctx context.Context,
	employee *Employee,
	reportDate time.Time,
	excludeID int,
) (bool, error) {
	existing, err := rc.reportRepo.GetByEmployeeAndDate(ctx, employee.Code, reportDate)
	if err != nil {
		return false, err
	}
	return existing != nil && existing.ID != excludeID, nil
}

// SaveReport stamps timestamps and persists. A report without an id always
// takes the create branch: CreatedAt is set once, UpdatedAt on every save.
// Creates run the duplicate-date check and the insert inside one transaction;
// the partial unique index on active (employee, date) pairs backstops both.
func (rc *ReportController) SaveReport(ctx context.Context, report *Report) error {
	log := rc.log.Function("SaveReport")

	now := time.Now()
	report.UpdatedAt = now

	if report.ID != 0 {
		if err := rc.reportRepo.Save(ctx, report); err != nil {
			return log.Err("failed to save report", err, "reportID", report.ID)
		}
		return nil
	}

	report.CreatedAt = now

	err := rc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		existing, err := rc.reportRepo.GetByEmployeeAndDate(txCtx, report.EmployeeCode, report.ReportDate)
		if err != nil {
			return err
		}
		if existing != nil && !existing.DeleteFlg {
			return ErrDuplicateReportDate
		}

		return rc.reportRepo.Create(txCtx, report)
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateReportDate) {
			return err
		}
		return log.Err("failed to create report", err,
			"employeeCode", report.EmployeeCode, "reportDate", report.ReportDate)
	}

	return nil
}

// UpdateReport replaces the stored fields of an existing report. The current
// CreatedAt is carried forward regardless of what the caller supplied, and
// the delete flag is forced back to false, so updating a soft-deleted report
// undeletes it.
func (rc *ReportController) UpdateReport(ctx context.Context, report *Report) (ErrorKind, error) {
	log := rc.log.Function("UpdateReport")

	current, err := rc.reportRepo.GetByID(ctx, report.ID)
	if err != nil {
		return CheckOK, log.Err("failed to load report for update", err, "reportID", report.ID)
	}
	if current == nil {
		return NotFound, nil
	}

	report.CreatedAt = current.CreatedAt
	report.UpdatedAt = time.Now()
	report.DeleteFlg = false

	if err := rc.reportRepo.Save(ctx, report); err != nil {
		return CheckOK, log.Err("failed to save updated report", err, "reportID", report.ID)
	}

	return Success, nil
}

// Delete soft-deletes a report. Ownership is a service-level precondition:
// actor must be the report's owner. Deleting an already-deleted report is
// idempotent and still succeeds.
func (rc *ReportController) Delete(ctx context.Context, id int, actor *Employee) (ErrorKind, error) {
	log := rc.log.Function("Delete")

	report, err := rc.reportRepo.GetByID(ctx, id)
	if err != nil {
		return CheckOK, log.Err("failed to load report for delete", err, "reportID", id)
	}
	if report == nil {
		return NotFound, nil
	}

	if actor == nil || report.EmployeeCode != actor.Code {
		return Forbidden, nil
	}

	report.DeleteFlg = true
	if err := rc.reportRepo.Save(ctx, report); err != nil {
		return CheckOK, log.Err("failed to save deleted report", err, "reportID", id)
	}

	return Success, nil
}

// FindByEmployee returns the employee's reports, unfiltered by delete flag.
func (rc *ReportController) FindByEmployee(ctx context.Context, employee *Employee) ([]*Report, error) {
	return rc.reportRepo.GetByEmployee(ctx, employee.Code)
}
