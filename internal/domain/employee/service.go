package employee

import "context"

type EmployeeService interface {
	// Create registers an employee for the caller's company. When the
	// request carries a password a login account is provisioned alongside.
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, id string) (EmployeeResponse, error)

	// List returns the company's active employees.
	List(ctx context.Context) ([]EmployeeResponse, error)
}
