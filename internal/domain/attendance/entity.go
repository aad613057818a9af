package attendance

import (
	"time"

	"github.com/arhamhameed97/Timesheet-Management-sub000/internal/domain/timesheet"
)

type Status string

const (
	StatusPresent Status = "PRESENT"
	StatusAbsent  Status = "ABSENT"
	StatusLate    Status = "LATE"
	StatusHalfDay Status = "HALF_DAY"
)

// Attendance is one employee's record for one UTC calendar day. The event
// log is the authoritative source for shift and break math; CheckIn and
// CheckOut mirror the log's first IN and, once the day is closed, its last
// OUT. At most one record exists per (employee, date).
type Attendance struct {
	ID             string
	EmployeeID     string
	CompanyID      string
	Date           time.Time // UTC midnight, day granularity
	CheckIn        *time.Time
	CheckOut       *time.Time
	FirstCheckIn   *time.Time
	Status         Status
	Events         timesheet.EventLog
	Notes          *string
	AutoCheckedOut bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// DTO / Join
	EmployeeName *string
}

// SyncMirrors refreshes the legacy check-in/check-out fields from the log.
func (a *Attendance) SyncMirrors() {
	a.CheckIn = a.Events.FirstIn()
	a.CheckOut = a.Events.LastOut()
	if a.FirstCheckIn == nil {
		a.FirstCheckIn = a.CheckIn
	}
}
