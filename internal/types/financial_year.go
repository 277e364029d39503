package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// ErrFinancialYearLabel is returned for labels not in the "YYYY-YYYY" format
// with consecutive years.
var ErrFinancialYearLabel = errors.New("the financial year must be formatted as YYYY-YYYY with consecutive years, e.g. 2024-2025")

var financialYearPattern = regexp.MustCompile(`^([0-9]{4})-([0-9]{4})$`)

// FinancialYear is an accounting period running from April 1 to March 31 of the
// following calendar year. It is identified by the calendar year it starts in.
type FinancialYear struct {
	StartYear int
}

// FinancialYearOf returns the financial year a date belongs to.
// January to March belong to the year that started the previous April.
func FinancialYearOf(d Date) FinancialYear {
	if d.Month() < time.April {
		return FinancialYear{StartYear: d.Year() - 1}
	}

	return FinancialYear{StartYear: d.Year()}
}

// ParseFinancialYear parses a label like "2024-2025".
func ParseFinancialYear(label string) (FinancialYear, error) {
	match := financialYearPattern.FindStringSubmatch(label)
	if match == nil {
		return FinancialYear{}, fmt.Errorf("%w, got %q", ErrFinancialYearLabel, label)
	}

	start, _ := strconv.Atoi(match[1])
	end, _ := strconv.Atoi(match[2])
	if end != start+1 {
		return FinancialYear{}, fmt.Errorf("%w, got %q", ErrFinancialYearLabel, label)
	}

	return FinancialYear{StartYear: start}, nil
}

// Label returns the "YYYY-YYYY" label.
func (y FinancialYear) Label() string {
	return fmt.Sprintf("%04d-%04d", y.StartYear, y.StartYear+1)
}

// String implements fmt.Stringer.
func (y FinancialYear) String() string {
	return y.Label()
}

// Start is April 1 of the starting year.
func (y FinancialYear) Start() Date {
	return NewDate(y.StartYear, time.April, 1)
}

// End is March 31 of the following year.
func (y FinancialYear) End() Date {
	return NewDate(y.StartYear+1, time.March, 31)
}

// Window returns the inclusive date window of the financial year.
func (y FinancialYear) Window() Window {
	return Window{Start: y.Start(), End: y.End()}
}

// Window is an inclusive date range.
type Window struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// NewWindow returns a window, failing when end is before start.
func NewWindow(start, end Date) (Window, error) {
	if end.Before(start) {
		return Window{}, fmt.Errorf("%w: %s is before %s", ErrDateRange, end, start)
	}

	return Window{Start: start, End: end}, nil
}

// Overlaps reports whether the range [start, end] shares at least one day
// with the window.
func (w Window) Overlaps(start, end Date) bool {
	return !end.Before(w.Start) && !start.After(w.End)
}

// Contains reports whether d lies inside the window.
func (w Window) Contains(d Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}
