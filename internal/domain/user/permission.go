package user

type Permission string

const (
	// Attendance
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceSweep   Permission = "attendance.sweep"

	// Timesheets
	PermissionTimesheetViewOwn Permission = "timesheet.view_own"
	PermissionTimesheetViewAll Permission = "timesheet.view_all"

	// Rates & overtime policy
	PermissionRateManage     Permission = "rate.manage"
	PermissionOvertimeManage Permission = "overtime.manage"

	// Payroll
	PermissionPayrollViewOwn  Permission = "payroll.view_own"
	PermissionPayrollViewAll  Permission = "payroll.view_all"
	PermissionPayrollGenerate Permission = "payroll.generate"
	PermissionPayrollApprove  Permission = "payroll.approve"

	// Employees
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"
)

// RolePermissions maps roles to their permissions. It is a static table
// consulted by route middleware, never mutated at runtime.
var RolePermissions = map[Role][]Permission{
	RoleSuperAdmin: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceSweep,
		PermissionTimesheetViewOwn,
		PermissionTimesheetViewAll,
		PermissionRateManage,
		PermissionOvertimeManage,
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollGenerate,
		PermissionPayrollApprove,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
	},
	RoleCompanyAdmin: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceSweep,
		PermissionTimesheetViewOwn,
		PermissionTimesheetViewAll,
		PermissionRateManage,
		PermissionOvertimeManage,
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollGenerate,
		PermissionPayrollApprove,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
	},
	RoleManager: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionTimesheetViewOwn,
		PermissionTimesheetViewAll,
		PermissionPayrollViewOwn,
		PermissionEmployeeViewAll,
	},
	RoleTeamLead: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionTimesheetViewOwn,
		PermissionTimesheetViewAll,
		PermissionPayrollViewOwn,
	},
	RoleEmployee: {
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionTimesheetViewOwn,
		PermissionPayrollViewOwn,
	},
}

// HasPermission checks if a role carries a permission
func HasPermission(role Role, permission Permission) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}
