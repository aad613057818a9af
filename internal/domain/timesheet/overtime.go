package timesheet

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultWeeklyThresholdHours is the weekly overtime threshold applied when
// an employee has no OvertimeConfig of their own.
var DefaultWeeklyThresholdHours = decimal.NewFromInt(40)

// DefaultOvertimeMultiplier is the pay multiplier applied to overtime hours
// when no OvertimeConfig overrides it.
var DefaultOvertimeMultiplier = decimal.NewFromFloat(1.5)

// OvertimeSplit is one day's worked hours divided into the portion below and
// above the cumulative weekly threshold.
type OvertimeSplit struct {
	RegularHours  decimal.Decimal
	OvertimeHours decimal.Decimal
}

// SplitOvertime divides todayHours into regular and overtime hours given the
// hours already worked earlier in the same week. Overtime is credited only
// for hours that push the cumulative weekly total past the threshold, so
// summing the splits across a week always reproduces the week's totals:
// Σregular+Σovertime = Σdaily and Σovertime = max(0, weekTotal − threshold).
func SplitOvertime(todayHours, hoursBeforeToday, threshold decimal.Decimal) OvertimeSplit {
	if threshold.IsNegative() {
		threshold = decimal.Zero
	}

	usedBefore := decimal.Min(hoursBeforeToday, threshold)
	remaining := decimal.Max(decimal.Zero, threshold.Sub(usedBefore))

	regular := decimal.Min(todayHours, remaining)
	overtime := decimal.Max(decimal.Zero, todayHours.Sub(remaining))

	return OvertimeSplit{RegularHours: regular, OvertimeHours: overtime}
}

// WeekStart returns UTC midnight of the Monday of the ISO week containing
// the given date.
func WeekStart(date time.Time) time.Time {
	d := StartOfDayUTC(date)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0, Sunday = 6
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns UTC midnight of the Sunday of the ISO week containing the
// given date.
func WeekEnd(date time.Time) time.Time {
	return WeekStart(date).AddDate(0, 0, 6)
}

// HoursFromSeconds converts a seconds total into fractional decimal hours.
func HoursFromSeconds(seconds int64) decimal.Decimal {
	return decimal.NewFromInt(seconds).Div(decimal.NewFromInt(3600))
}
