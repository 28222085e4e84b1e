package models

import "time"

const (
	RoleAdmin   = "admin"
	RoleGeneral = "general"
)

// Employee is identified by its business code (E001, E002, ...). Password
// holds a bcrypt hash once the employee controller has run its checks.
type Employee struct {
	Code      string    `gorm:"type:varchar(10);primaryKey"      json:"code"`
	Name      string    `gorm:"type:varchar(20);not null"        json:"name"`
	Password  string    `gorm:"type:varchar(255);not null"       json:"-"`
	Role      string    `gorm:"type:varchar(10);not null;default:general" json:"role"`
	DeleteFlg bool      `gorm:"not null;default:false"           json:"deleteFlg"`
	CreatedAt time.Time `gorm:"type:datetime"                    json:"createdAt"`
	UpdatedAt time.Time `gorm:"type:datetime"                    json:"updatedAt"`
}

type LoginRequest struct {
	Code     string `json:"code"     form:"code"`
	Password string `json:"password" form:"password"`
}

type CreateEmployeeRequest struct {
	Code     string `json:"code"     form:"code"`
	Name     string `json:"name"     form:"name"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role"     form:"role"`
}
