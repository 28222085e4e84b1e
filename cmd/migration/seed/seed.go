package seed

import (
	"time"

	"server/config"
	"server/internal/logger"
	. "server/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	now := time.Now()

	employees := []Employee{
		{
			Code:      "E000",
			Name:      "System Admin",
			Password:  "adminpass001",
			Role:      RoleAdmin,
			CreatedAt: now,
			UpdatedAt: now,
		}, {
			Code:      "E001",
			Name:      "Hanako Yamada",
			Password:  "password001",
			Role:      RoleGeneral,
			CreatedAt: now,
			UpdatedAt: now,
		}, {
			Code:      "E002",
			Name:      "Taro Tanaka",
			Password:  "password002",
			Role:      RoleGeneral,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	for _, employee := range employees {
		var existing Employee
		if err := db.First(&existing, "code = ?", employee.Code).Error; err == nil {
			log.Info("Employee already exists", "code", employee.Code)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(employee.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Er("failed to hash seed password", err, "code", employee.Code)
			continue
		}
		employee.Password = string(hash)

		log.Info("Seeding employee", "code", employee.Code)
		if err := db.Create(&employee).Error; err != nil {
			log.Er("failed to create employee", err, "code", employee.Code)
		}
	}

	reportDate := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	reports := []Report{
		{
			BaseModel:    BaseModel{CreatedAt: now, UpdatedAt: now},
			EmployeeCode: "E001",
			ReportDate:   reportDate,
			Title:        "Onboarding review",
			Content:      "Walked through the onboarding checklist with the new hires.",
		}, {
			BaseModel:    BaseModel{CreatedAt: now, UpdatedAt: now},
			EmployeeCode: "E002",
			ReportDate:   reportDate,
			Title:        "Client follow-up",
			Content:      "Summarized the open items from the client call.",
		},
	}

	for _, report := range reports {
		var existing Report
		err := db.First(&existing,
			"employee_code = ? AND report_date = ?", report.EmployeeCode, report.ReportDate).Error
		if err == nil {
			log.Info("Report already exists", "employeeCode", report.EmployeeCode)
			continue
		}

		log.Info("Seeding report", "employeeCode", report.EmployeeCode)
		if err := db.Create(&report).Error; err != nil {
			log.Er("failed to create report", err, "employeeCode", report.EmployeeCode)
		}
	}

	return nil
}
