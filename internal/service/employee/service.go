package employee

import (
	"context"
	"fmt"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/employee"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/user"
	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"golang.org/x/crypto/bcrypt"
)

type EmployeeServiceImpl struct {
	userRepo     user.UserRepository
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(
	userRepo user.UserRepository,
	employeeRepo employee.EmployeeRepository,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		userRepo:     userRepo,
		employeeRepo: employeeRepo,
	}
}

// getClaimsFromContext extracts company_id from the JWT
func getClaimsFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", user.ErrCompanyIDRequired
	}

	return companyID, nil
}

// Create implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, _ := validator.IsValidDate(req.HireDate)

	newEmployee := employee.Employee{
		CompanyID:        companyID,
		EmployeeCode:     req.EmployeeCode,
		FullName:         req.FullName,
		Email:            req.Email,
		PaymentType:      employee.PaymentType(req.PaymentType),
		HourlyRate:       req.HourlyRate,
		MonthlySalary:    req.MonthlySalary,
		HireDate:         hireDate,
		EmploymentStatus: employee.EmploymentStatusActive,
	}

	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashStr := string(hash)

		account, err := s.userRepo.Create(ctx, user.User{
			CompanyID:    &companyID,
			Email:        req.Email,
			PasswordHash: &hashStr,
			Role:         user.RoleEmployee,
		})
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		newEmployee.UserID = &account.ID
	}

	saved, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(saved), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if req.FullName != nil {
		existing.FullName = *req.FullName
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.PaymentType != nil {
		existing.PaymentType = employee.PaymentType(*req.PaymentType)
	}
	if req.HourlyRate != nil {
		existing.HourlyRate = req.HourlyRate
	}
	if req.MonthlySalary != nil {
		existing.MonthlySalary = req.MonthlySalary
	}
	if req.EmploymentStatus != nil {
		existing.EmploymentStatus = employee.EmploymentStatus(*req.EmploymentStatus)
	}

	if err := s.employeeRepo.Update(ctx, existing); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(existing), nil
}

// Get implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Get(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	found, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return toResponse(found), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	companyID, err := getClaimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, toResponse(emp))
	}
	return responses, nil
}

func toResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:               emp.ID,
		UserID:           emp.UserID,
		EmployeeCode:     emp.EmployeeCode,
		FullName:         emp.FullName,
		Email:            emp.Email,
		PaymentType:      emp.PaymentType,
		HourlyRate:       emp.HourlyRate,
		MonthlySalary:    emp.MonthlySalary,
		HireDate:         emp.HireDate.Format("2006-01-02"),
		EmploymentStatus: emp.EmploymentStatus,
		CreatedAt:        emp.CreatedAt,
	}
}
