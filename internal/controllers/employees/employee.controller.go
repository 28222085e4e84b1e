package employeeController

import (
	"context"
	"errors"
	"regexp"
	"time"

	"server/config"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid employee code or password")

var halfSizePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

type EmployeeController struct {
	employeeRepo repositories.EmployeeRepository
	db           database.DB
	config       config.Config
	log          logger.Logger
}

func New(
	db database.DB,
	employeeRepo repositories.EmployeeRepository,
	config config.Config,
) *EmployeeController {
	return &EmployeeController{
		employeeRepo: employeeRepo,
		db:           db,
		config:       config,
		log:          logger.New("EmployeeController"),
	}
}

// PasswordCheck validates the plaintext password policy and, when it passes,
// replaces the password with its bcrypt hash in place.
func (ec *EmployeeController) PasswordCheck(employee *Employee) ErrorKind {
	if !halfSizePattern.MatchString(employee.Password) {
		return HalfsizeError
	}

	if length := len(employee.Password); length < 8 || length > 16 {
		return RangecheckError
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(employee.Password), bcrypt.DefaultCost)
	if err != nil {
		_ = ec.log.Function("PasswordCheck").Err("failed to hash password", err)
		return RangecheckError
	}
	employee.Password = string(hash)

	return CheckOK
}

func (ec *EmployeeController) CreateEmployee(
	ctx context.Context,
	req CreateEmployeeRequest,
) (ErrorKind, *Employee, error) {
	log := ec.log.Function("CreateEmployee")

	role := req.Role
	if role == "" {
		role = RoleGeneral
	}

	now := time.Now()
	employee := &Employee{
		Code:      req.Code,
		Name:      req.Name,
		Password:  req.Password,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if kind := ec.PasswordCheck(employee); kind != CheckOK {
		return kind, nil, nil
	}

	if err := ec.employeeRepo.Create(ctx, employee); err != nil {
		return CheckOK, nil, log.Err("failed to create employee", err, "code", req.Code)
	}

	return CheckOK, employee, nil
}

// Login verifies the credentials and mints a session token backed by the
// Session cache. Soft-deleted employees cannot log in.
func (ec *EmployeeController) Login(ctx context.Context, code, password string) (string, error) {
	log := ec.log.Function("Login")

	employee, err := ec.employeeRepo.GetByCode(ctx, code)
	if err != nil {
		return "", log.Err("failed to look up employee", err, "code", code)
	}
	if employee == nil || employee.DeleteFlg {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, err := uuid.NewV7()
	if err != nil {
		return "", log.Err("failed to mint session token", err)
	}

	ttl := time.Duration(ec.config.SessionTTLMinutes) * time.Minute
	if err := database.NewCacheBuilder(ec.db.Cache.Session, token.String()).
		WithStruct(employee.Code).
		WithTTL(ttl).
		WithContext(ctx).
		Set(); err != nil {
		return "", log.Err("failed to store session", err, "code", code)
	}

	return token.String(), nil
}

func (ec *EmployeeController) Logout(ctx context.Context, token string) error {
	log := ec.log.Function("Logout")

	if err := database.NewCacheBuilder(ec.db.Cache.Session, token).
		WithContext(ctx).
		Delete(); err != nil {
		return log.Err("failed to delete session", err)
	}

	return nil
}

// EmployeeFromToken resolves a session token to its employee, or nil when the
// session is unknown or expired.
func (ec *EmployeeController) EmployeeFromToken(ctx context.Context, token string) (*Employee, error) {
	log := ec.log.Function("EmployeeFromToken")

	var code string
	found, err := database.NewCacheBuilder(ec.db.Cache.Session, token).
		WithContext(ctx).
		Get(&code)
	if err != nil {
		return nil, log.Err("failed to read session", err)
	}
	if !found {
		return nil, nil
	}

	employee, err := ec.employeeRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, log.Err("failed to look up session employee", err, "code", code)
	}
	if employee == nil || employee.DeleteFlg {
		return nil, nil
	}

	return employee, nil
}
