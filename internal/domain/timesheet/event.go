package timesheet

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// EventType marks a log entry as a check-in or a check-out.
type EventType string

const (
	EventIn  EventType = "IN"
	EventOut EventType = "OUT"
)

// Event is a single check-in or check-out action within one attendance day.
type Event struct {
	Type EventType `json:"type"`
	Time time.Time `json:"time"`
}

// EventLog is the ordered check-in/check-out history of one attendance day.
// A well-formed log alternates IN, OUT, IN, OUT, ... and may end on an open
// IN (employee still clocked in) or be empty.
type EventLog []Event

// Anomalies counts the defensive corrections applied while normalizing or
// reducing a log. It is part of the result, not an error: callers decide
// whether and how to surface it.
type Anomalies struct {
	OutOfOrder    int // events that had to be re-sorted chronologically
	OrphanOuts    int // OUT events with no matching open IN, dropped
	UnknownTypes  int // events whose type was neither IN nor OUT, dropped
	NegativeSpans int // spans whose raw difference was negative, absolute-valued
}

// Any reports whether any correction was applied.
func (a Anomalies) Any() bool {
	return a.OutOfOrder > 0 || a.OrphanOuts > 0 || a.UnknownTypes > 0 || a.NegativeSpans > 0
}

// ParseEventLog decodes a serialized event log. The zero-length and nil cases
// both decode to an empty log.
func ParseEventLog(data []byte) (EventLog, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var log EventLog
	if err := json.Unmarshal(data, &log); err != nil {
		return nil, fmt.Errorf("failed to parse event log: %w", err)
	}
	return log, nil
}

// Encode serializes the log for storage. Round-trips through ParseEventLog
// without reordering or loss.
func (l EventLog) Encode() ([]byte, error) {
	if l == nil {
		l = EventLog{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event log: %w", err)
	}
	return data, nil
}

// Normalize returns a chronologically sorted copy of the log with unknown
// event types removed, plus the corrections that were applied. The receiver
// is never mutated. Sorting is stable so same-timestamp events keep their
// relative order.
func (l EventLog) Normalize() (EventLog, Anomalies) {
	var anomalies Anomalies

	out := make(EventLog, 0, len(l))
	for _, ev := range l {
		if ev.Type != EventIn && ev.Type != EventOut {
			anomalies.UnknownTypes++
			continue
		}
		out = append(out, ev)
	}

	if !sort.SliceIsSorted(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) }) {
		anomalies.OutOfOrder++
		sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	}

	return out, anomalies
}

// FirstIn returns the timestamp of the earliest IN event, or nil.
func (l EventLog) FirstIn() *time.Time {
	sorted, _ := l.Normalize()
	for _, ev := range sorted {
		if ev.Type == EventIn {
			t := ev.Time
			return &t
		}
	}
	return nil
}

// LastOut returns the timestamp of the final OUT event, or nil when the log
// is empty or still ends on an open IN.
func (l EventLog) LastOut() *time.Time {
	sorted, _ := l.Normalize()
	if len(sorted) == 0 {
		return nil
	}
	last := sorted[len(sorted)-1]
	if last.Type != EventOut {
		return nil
	}
	t := last.Time
	return &t
}

// Open reports whether the log ends on an unmatched IN.
func (l EventLog) Open() bool {
	sorted, _ := l.Normalize()
	open := false
	for _, ev := range sorted {
		switch ev.Type {
		case EventIn:
			open = true
		case EventOut:
			open = false
		}
	}
	return open
}
