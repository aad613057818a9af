package user

import "time"

type Role string

const (
	RoleSuperAdmin   Role = "SUPER_ADMIN"   // Platform operator, full access
	RoleCompanyAdmin Role = "COMPANY_ADMIN" // Manages employees, rates and payroll
	RoleManager      Role = "MANAGER"       // Approves and views team attendance
	RoleTeamLead     Role = "TEAM_LEAD"     // Views team attendance
	RoleEmployee     Role = "EMPLOYEE"      // Regular employee
)

type User struct {
	ID           string
	CompanyID    *string
	Email        string
	PasswordHash *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if the user administers rates and payroll
func (u *User) IsAdmin() bool {
	return u.Role == RoleSuperAdmin || u.Role == RoleCompanyAdmin
}

// CanViewTeam checks if the user may read other employees' attendance
func (u *User) CanViewTeam() bool {
	return u.IsAdmin() || u.Role == RoleManager || u.Role == RoleTeamLead
}

// CanApprove checks if the user can move payroll records through approval
func (u *User) CanApprove() bool {
	return u.IsAdmin()
}
