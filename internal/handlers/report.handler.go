package handlers

import (
	"bytes"
	"errors"
	"strconv"

	"server/internal/app"
	reportController "server/internal/controllers/reports"
	"server/internal/handlers/middleware"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	Handler
	controller reportController.ReportController
}

func NewReportHandler(app app.App, router fiber.Router) *ReportHandler {
	log := logger.New("handlers").File("report_handler")
	return &ReportHandler{
		controller: *app.ReportController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReportHandler) Register() {
	reports := h.router.Group("/reports", h.middleware.RequireAuth)

	reports.Get("/", h.list)
	reports.Get("/export", h.export)
	reports.Get("/add", h.create)
	reports.Post("/add", h.save)
	reports.Get("/:id/update", h.edit)
	reports.Post("/update/:id", h.update)
	reports.Get("/:id", h.detail)
	reports.Post("/:id/delete", h.delete)
}

// list renders every active-employee report system-wide, not just the
// current user's.
func (h *ReportHandler) list(c *fiber.Ctx) error {
	log := h.log.Function("list")

	reports, err := h.controller.GetAllReports(c.Context())
	if err != nil {
		log.Er("failed to get reports", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get reports"})
	}

	return c.JSON(fiber.Map{"message": "success", "reports": reports, "listSize": len(reports)})
}

// create hands back a blank report template pre-bound to the current user.
// Nothing is persisted here.
func (h *ReportHandler) create(c *fiber.Ctx) error {
	employee, ok := middleware.CurrentEmployee(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "authentication required"})
	}

	report := Report{
		EmployeeCode: employee.Code,
		Employee:     &employee,
	}

	return c.JSON(fiber.Map{"message": "success", "report": report})
}

func (h *ReportHandler) save(c *fiber.Ctx) error {
	log := h.log.Function("save")

	employee, ok := middleware.CurrentEmployee(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "authentication required"})
	}

	var request ReportRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse report request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse report request"})
	}

	reportDate, fieldErrors := request.Validate()
	if len(fieldErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "validation failed", "errors": fieldErrors, "report": request})
	}

	report := Report{
		EmployeeCode: employee.Code,
		ReportDate:   reportDate,
		Title:        request.Title,
		Content:      request.Content,
	}

	exists, err := h.controller.ExistsByEmployeeAndDate(c.Context(), &employee, reportDate)
	if err != nil {
		log.Er("failed to check for duplicate report date", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to save report"})
	}
	if exists {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{
				"message": "validation failed",
				"errors":  fiber.Map{"reportDate": reportController.ErrDuplicateReportDate.Error()},
				"report":  request,
			})
	}

	if err := h.controller.SaveReport(c.Context(), &report); err != nil {
		if errors.Is(err, reportController.ErrDuplicateReportDate) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{
					"message": "validation failed",
					"errors":  fiber.Map{"reportDate": reportController.ErrDuplicateReportDate.Error()},
					"report":  request,
				})
		}
		log.Er("failed to save report", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to save report"})
	}

	return c.Redirect("/reports", fiber.StatusFound)
}

func (h *ReportHandler) edit(c *fiber.Ctx) error {
	log := h.log.Function("edit")

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "report id must be an integer"})
	}

	report, err := h.controller.FindByID(c.Context(), id)
	if err != nil {
		log.Er("failed to get report", err, "id", id)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get report"})
	}

	return c.JSON(fiber.Map{"message": "success", "report": report})
}

func (h *ReportHandler) update(c *fiber.Ctx) error {
	log := h.log.Function("update")

	employee, ok := middleware.CurrentEmployee(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "authentication required"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "report id must be an integer"})
	}

	var request ReportRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse report request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse report request"})
	}

	// Validation failures re-render the submitted data, not a re-fetch.
	reportDate, fieldErrors := request.Validate()
	if len(fieldErrors) > 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "validation failed", "errors": fieldErrors, "report": request})
	}

	report := Report{
		BaseModel:    BaseModel{ID: id},
		EmployeeCode: employee.Code,
		ReportDate:   reportDate,
		Title:        request.Title,
		Content:      request.Content,
	}

	kind, err := h.controller.UpdateReport(c.Context(), &report)
	if err != nil {
		log.Er("failed to update report", err, "id", id)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to update report"})
	}
	if kind.IsError() {
		return c.Status(statusForKind(kind)).
			JSON(fiber.Map{
				"message":        "error",
				kind.ErrorName(): kind.ErrorMessage(),
				"report":         request,
			})
	}

	return c.Redirect("/reports", fiber.StatusFound)
}

func (h *ReportHandler) detail(c *fiber.Ctx) error {
	log := h.log.Function("detail")

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "report id must be an integer"})
	}

	report, err := h.controller.GetReport(c.Context(), id)
	if err != nil {
		log.Er("failed to get report", err, "id", id)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get report"})
	}
	if report == nil {
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "report not found"})
	}

	return c.JSON(fiber.Map{"message": "success", "report": report, "employee": report.Employee})
}

func (h *ReportHandler) delete(c *fiber.Ctx) error {
	log := h.log.Function("delete")

	employee, ok := middleware.CurrentEmployee(c)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).
			JSON(fiber.Map{"message": "authentication required"})
	}

	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "report id must be an integer"})
	}

	kind, err := h.controller.Delete(c.Context(), id, &employee)
	if err != nil {
		log.Er("failed to delete report", err, "id", id)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to delete report"})
	}
	if kind.IsError() {
		// Error outcomes re-render the detail view with the message attached.
		report, lookupErr := h.controller.GetReport(c.Context(), id)
		if lookupErr != nil {
			log.Er("failed to re-fetch report for error view", lookupErr, "id", id)
		}
		return c.Status(statusForKind(kind)).
			JSON(fiber.Map{
				"message":        "error",
				kind.ErrorName(): kind.ErrorMessage(),
				"report":         report,
			})
	}

	return c.Redirect("/reports", fiber.StatusFound)
}

// export streams every active report as CSV.
func (h *ReportHandler) export(c *fiber.Ctx) error {
	log := h.log.Function("export")

	reports, err := h.controller.GetAllReports(c.Context())
	if err != nil {
		log.Er("failed to get reports for export", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to export reports"})
	}

	rows := make([]utils.ReportCSVRow, 0, len(reports))
	for _, report := range reports {
		row := utils.ReportCSVRow{
			ID:           report.ID,
			EmployeeCode: report.EmployeeCode,
			ReportDate:   report.ReportDate,
			Title:        report.Title,
			Content:      report.Content,
			CreatedAt:    report.CreatedAt,
			UpdatedAt:    report.UpdatedAt,
		}
		if report.Employee != nil {
			row.EmployeeName = report.Employee.Name
		}
		rows = append(rows, row)
	}

	var buf bytes.Buffer
	if err := utils.WriteReportsCSV(&buf, rows); err != nil {
		log.Er("failed to generate report CSV", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to export reports"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reports.csv"`)
	return c.Send(buf.Bytes())
}

func statusForKind(kind ErrorKind) int {
	switch kind {
	case NotFound:
		return fiber.StatusNotFound
	case Forbidden:
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}
