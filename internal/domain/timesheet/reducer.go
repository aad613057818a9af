package timesheet

import "time"

// DayTotals is the reduced view of one attendance day.
type DayTotals struct {
	WorkedSeconds int64
	BreakSeconds  int64
	CurrentlyOpen bool
	Anomalies     Anomalies
}

// WorkedHours returns the worked total as fractional hours.
func (d DayTotals) WorkedHours() float64 {
	return float64(d.WorkedSeconds) / 3600
}

// ReduceDay folds one day's event log into total worked and break seconds.
//
// The log is normalized first (sorted, unknown types dropped). Walking the
// sorted log, each IN opens a span and each OUT closes it; an OUT without an
// open span is dropped and counted as an anomaly. Break time accumulates in
// the gaps between an OUT and the immediately following IN. A trailing open
// IN is projected to asOf, so a day still in progress shows a live duration
// and a closed-over past day shows a final one (see CutoffFor).
//
// When the log is empty the primary clock-in/clock-out mirrors are used as a
// fallback: both set gives their difference, only clock-in set projects to
// asOf. Raw negative differences (clock skew, bad data) are absolute-valued
// and counted in Anomalies rather than failing the reduction.
func ReduceDay(log EventLog, fallbackIn, fallbackOut *time.Time, asOf time.Time) DayTotals {
	sorted, anomalies := log.Normalize()

	if len(sorted) == 0 {
		return reduceFallback(fallbackIn, fallbackOut, asOf, anomalies)
	}

	var totals DayTotals
	var openSince *time.Time
	var lastOut *time.Time

	for i := range sorted {
		ev := sorted[i]
		switch ev.Type {
		case EventIn:
			if openSince == nil {
				openSince = &sorted[i].Time
				if lastOut != nil {
					span, neg := absSeconds(ev.Time.Sub(*lastOut))
					totals.BreakSeconds += span
					if neg {
						anomalies.NegativeSpans++
					}
				}
			}
		case EventOut:
			if openSince == nil {
				anomalies.OrphanOuts++
				continue
			}
			span, neg := absSeconds(ev.Time.Sub(*openSince))
			totals.WorkedSeconds += span
			if neg {
				anomalies.NegativeSpans++
			}
			openSince = nil
			lastOut = &sorted[i].Time
		}
	}

	if openSince != nil {
		span, neg := absSeconds(asOf.Sub(*openSince))
		totals.WorkedSeconds += span
		if neg {
			anomalies.NegativeSpans++
		}
		totals.CurrentlyOpen = true
	}

	totals.Anomalies = anomalies
	return totals
}

func reduceFallback(fallbackIn, fallbackOut *time.Time, asOf time.Time, anomalies Anomalies) DayTotals {
	totals := DayTotals{Anomalies: anomalies}
	if fallbackIn == nil {
		return totals
	}

	end := fallbackOut
	if end == nil {
		end = &asOf
		totals.CurrentlyOpen = true
	}

	span, neg := absSeconds(end.Sub(*fallbackIn))
	totals.WorkedSeconds = span
	if neg {
		totals.Anomalies.NegativeSpans++
	}
	return totals
}

func absSeconds(d time.Duration) (seconds int64, negative bool) {
	if d < 0 {
		return int64((-d).Seconds()), true
	}
	return int64(d.Seconds()), false
}

// CutoffFor returns the canonical "as of" timestamp for reducing a day:
// wall-clock now for the current UTC date, end of day UTC for any other date.
// Using end of day for past dates keeps historical figures stable no matter
// when they are recomputed.
func CutoffFor(date, now time.Time) time.Time {
	if SameUTCDate(date, now) {
		return now
	}
	return EndOfDayUTC(date)
}

// EndOfDayUTC returns 23:59:59.999 UTC of the given date.
func EndOfDayUTC(date time.Time) time.Time {
	d := date.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999_000_000, time.UTC)
}

// StartOfDayUTC truncates a timestamp to UTC midnight.
func StartOfDayUTC(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// SameUTCDate reports whether two timestamps fall on the same UTC calendar day.
func SameUTCDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
