package employee

import "context"

type EmployeeRepository interface {
	// GetByID retrieves an employee with company isolation
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)

	// GetActiveByCompanyID lists all active employees of a company
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)

	Create(ctx context.Context, employee Employee) (Employee, error)
	Update(ctx context.Context, employee Employee) error
}
