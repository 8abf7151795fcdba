package core

import "time"

// DateRange is an inclusive [Start, End] reporting window. The zero value
// means "all time": it contains every valid date.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// NewDateRange builds an inclusive range. Callers must keep Start <= End;
// Contains and Overlap treat an inverted range as empty.
func NewDateRange(start, end Date) DateRange {
	return DateRange{Start: start, End: end}
}

// MonthRange returns the range covering one calendar month.
func MonthRange(year, month int) DateRange {
	start := NewDate(year, month, 1)
	end := Date{Time: start.AddDate(0, 1, -1)}
	return DateRange{Start: start, End: end}
}

// YearRange returns the range covering one calendar year.
func YearRange(year int) DateRange {
	return DateRange{Start: NewDate(year, 1, 1), End: NewDate(year, 12, 31)}
}

// IsUnbounded reports whether the range is the zero "all time" window.
func (r DateRange) IsUnbounded() bool {
	return r.Start.IsZero() && r.End.IsZero()
}

func (r DateRange) Validate() error {
	if r.IsUnbounded() {
		return nil
	}
	if r.Start.IsZero() || r.End.IsZero() {
		return ErrInvalidDate
	}
	if r.End.Before(r.Start) {
		return ErrInvalidDate
	}
	return nil
}

// Contains reports whether d falls inside the range, both ends inclusive.
// A zero date is never contained; an unbounded range contains every valid
// date.
func (r DateRange) Contains(d Date) bool {
	if d.IsZero() {
		return false
	}
	if r.IsUnbounded() {
		return true
	}
	return !d.Before(r.Start) && !d.After(r.End)
}

// Days returns the inclusive day count of the range. A single-day range
// counts as 1. Unbounded or inverted ranges count as 0.
func (r DateRange) Days() int {
	if r.IsUnbounded() || r.End.Before(r.Start) {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

// Overlap intersects two ranges. The second return is false when they do
// not share any day.
func (r DateRange) Overlap(other DateRange) (DateRange, bool) {
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	if start.IsZero() || end.IsZero() || start.After(end) {
		return DateRange{}, false
	}
	return DateRange{Start: start, End: end}, true
}

// DaysBetween returns the number of whole days from a to b. Negative when
// b precedes a. Both dates are UTC midnights, so the division is exact.
func DaysBetween(a, b Date) int {
	return int(b.Sub(a.Time) / (24 * time.Hour))
}
