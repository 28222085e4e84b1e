package repositories

import (
	"context"
	"errors"
	"time"

	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"

	"gorm.io/gorm"
)

const (
	EMPLOYEE_CACHE_EXPIRY = 12 * time.Hour
)

type EmployeeRepository interface {
	GetByCode(ctx context.Context, code string) (*Employee, error)
	GetAll(ctx context.Context) ([]*Employee, error)
	Create(ctx context.Context, employee *Employee) error
	Save(ctx context.Context, employee *Employee) error
}

type employeeRepository struct {
	db  database.DB
	log logger.Logger
}

func NewEmployee(db database.DB) EmployeeRepository {
	return &employeeRepository{
		db:  db,
		log: logger.New("employeeRepository"),
	}
}

func (r *employeeRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *employeeRepository) GetByCode(ctx context.Context, code string) (*Employee, error) {
	log := r.log.Function("GetByCode")

	var employee Employee
	if err := r.getCacheByCode(ctx, code, &employee); err == nil {
		return &employee, nil
	}

	if err := r.getDB(ctx).First(&employee, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, log.Err("failed to get employee by code", err, "code", code)
	}

	if err := r.addEmployeeToCache(ctx, &employee); err != nil {
		log.Warn("failed to add employee to cache", "code", code, "error", err)
	}

	return &employee, nil
}

func (r *employeeRepository) GetAll(ctx context.Context) ([]*Employee, error) {
	log := r.log.Function("GetAll")

	var employees []*Employee
	if err := r.getDB(ctx).Find(&employees).Error; err != nil {
		return nil, log.Err("failed to get all employees", err)
	}

	return employees, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *Employee) error {
	log := r.log.Function("Create")

	if err := r.getDB(ctx).Create(employee).Error; err != nil {
		return log.Err("failed to create employee", err, "code", employee.Code)
	}

	if err := r.addEmployeeToCache(ctx, employee); err != nil {
		log.Warn("failed to add employee to cache", "code", employee.Code, "error", err)
	}

	return nil
}

func (r *employeeRepository) Save(ctx context.Context, employee *Employee) error {
	log := r.log.Function("Save")

	if err := r.getDB(ctx).Save(employee).Error; err != nil {
		return log.Err("failed to save employee", err, "code", employee.Code)
	}

	if err := r.addEmployeeToCache(ctx, employee); err != nil {
		log.Warn("failed to update employee in cache", "code", employee.Code, "error", err)
	}

	return nil
}

// cachedEmployee mirrors Employee for the cache round-trip. The API struct
// hides Password from JSON, but the hash has to survive caching or login
// verification breaks on a cache hit.
type cachedEmployee struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Password  string    `json:"password"`
	Role      string    `json:"role"`
	DeleteFlg bool      `json:"deleteFlg"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *employeeRepository) getCacheByCode(ctx context.Context, code string, employee *Employee) error {
	if r.db.Cache.Employee == nil {
		return r.log.Function("getCacheByCode").ErrMsg("employee cache is not configured")
	}

	var cached cachedEmployee
	found, err := database.NewCacheBuilder(r.db.Cache.Employee, code).
		WithContext(ctx).
		Get(&cached)
	if err != nil {
		return r.log.Function("getCacheByCode").
			Err("failed to get employee from cache", err, "code", code)
	}

	if !found {
		return r.log.Function("getCacheByCode").Error("employee not found in cache", "code", code)
	}

	*employee = Employee{
		Code:      cached.Code,
		Name:      cached.Name,
		Password:  cached.Password,
		Role:      cached.Role,
		DeleteFlg: cached.DeleteFlg,
		CreatedAt: cached.CreatedAt,
		UpdatedAt: cached.UpdatedAt,
	}

	return nil
}

func (r *employeeRepository) addEmployeeToCache(ctx context.Context, employee *Employee) error {
	if r.db.Cache.Employee == nil {
		return nil
	}

	cached := cachedEmployee{
		Code:      employee.Code,
		Name:      employee.Name,
		Password:  employee.Password,
		Role:      employee.Role,
		DeleteFlg: employee.DeleteFlg,
		CreatedAt: employee.CreatedAt,
		UpdatedAt: employee.UpdatedAt,
	}

	if err := database.NewCacheBuilder(r.db.Cache.Employee, employee.Code).
		WithStruct(cached).
		WithTTL(EMPLOYEE_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("addEmployeeToCache").
			Err("failed to add employee to cache", err, "code", employee.Code)
	}
	return nil
}
