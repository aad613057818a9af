package payroll

import "errors"

var (
	ErrRatePeriodNotFound     = errors.New("rate period not found")
	ErrOvertimeConfigNotFound = errors.New("overtime config not found")

	ErrPayrollRecordNotFound      = errors.New("payroll record not found")
	ErrPayrollRecordAlreadyExists = errors.New("payroll record already exists for this period")
	ErrPayrollAlreadyProcessed    = errors.New("payroll record has already been approved or rejected")
	ErrPayrollRecordClosed        = errors.New("payroll record is paid and closed")
)
