package models

import "time"

// DateLayout is the calendar date format accepted by the API.
const DateLayout = "2006-01-02"

// DateWindow is an inclusive calendar date interval. Either end may be nil,
// meaning the window is open on that side. Only the year/month/day of From
// and To are significant.
type DateWindow struct {
	From *time.Time
	To   *time.Time
}

// DayWindow returns the window covering exactly one calendar day.
func DayWindow(day time.Time) DateWindow {
	d := day
	return DateWindow{From: &d, To: &d}
}

// Ordered reports whether From is not after To. Open windows are always ordered.
func (w DateWindow) Ordered() bool {
	if w.From == nil || w.To == nil {
		return true
	}
	return !civil(*w.From, time.UTC).After(civil(*w.To, time.UTC))
}

// Bounds resolves the window to instants in loc: From becomes the start of
// its day (00:00:00.000) and To the end of its day (23:59:59.999). A nil
// pointer is returned for an open side.
func (w DateWindow) Bounds(loc *time.Location) (from, to *time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	if w.From != nil {
		f := civil(*w.From, loc)
		from = &f
	}
	if w.To != nil {
		y, m, d := w.To.Date()
		t := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
		to = &t
	}
	return from, to
}

// Contains reports whether ts falls inside the resolved bounds.
func Contains(ts time.Time, from, to *time.Time) bool {
	if from != nil && ts.Before(*from) {
		return false
	}
	if to != nil && ts.After(*to) {
		return false
	}
	return true
}

// civil re-anchors the calendar date of t at midnight in loc.
func civil(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
