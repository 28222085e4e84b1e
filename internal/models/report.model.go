package models

import (
	"strings"
	"time"

	"server/internal/utils"
)

const (
	ReportDateLayout = "2006-01-02"
	ReportTitleMax   = 100
	ReportContentMax = 600
)

// Report is a single daily work-log entry authored by one employee for one
// calendar date. Soft delete is an explicit flag rather than gorm.DeletedAt:
// the store contract requires owner/date lookups that see deleted rows too.
type Report struct {
	BaseModel
	EmployeeCode string    `gorm:"type:varchar(10);not null;index" json:"employeeCode"`
	Employee     *Employee `gorm:"foreignKey:EmployeeCode;references:Code" json:"employee,omitempty"`
	ReportDate   time.Time `gorm:"type:date;not null"              json:"reportDate"`
	Title        string    `gorm:"type:varchar(100);not null"      json:"title"`
	Content      string    `gorm:"type:varchar(600);not null"      json:"content"`
	DeleteFlg    bool      `gorm:"not null;default:false"          json:"deleteFlg"`
}

type ReportRequest struct {
	ReportDate string `json:"reportDate" form:"reportDate"`
	Title      string `json:"title"      form:"title"`
	Content    string `json:"content"    form:"content"`
}

// Validate runs the presentation-layer field checks and returns a per-field
// error map. An empty map means the submission is well formed; the parsed
// report date is returned alongside so handlers do not parse twice.
func (r ReportRequest) Validate() (time.Time, map[string]string) {
	fieldErrors := map[string]string{}

	var reportDate time.Time
	if strings.TrimSpace(r.ReportDate) == "" {
		fieldErrors["reportDate"] = "report date is required"
	} else {
		parsed := utils.NewDateValidator().ValidateAndConvert(r.ReportDate)
		if !parsed.IsValid {
			fieldErrors["reportDate"] = "report date must be a valid calendar date such as 2024-05-01"
		} else {
			reportDate = parsed.ParsedTime
		}
	}

	switch title := strings.TrimSpace(r.Title); {
	case title == "":
		fieldErrors["title"] = "title is required"
	case len([]rune(title)) > ReportTitleMax:
		fieldErrors["title"] = "title must be 100 characters or fewer"
	}

	switch content := strings.TrimSpace(r.Content); {
	case content == "":
		fieldErrors["content"] = "content is required"
	case len([]rune(content)) > ReportContentMax:
		fieldErrors["content"] = "content must be 600 characters or fewer"
	}

	return reportDate, fieldErrors
}
