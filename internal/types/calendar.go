package types

import (
	"errors"
	"fmt"
	"time"
)

// ErrDateRange is returned when a range ends before it starts.
var ErrDateRange = errors.New("the end date must not be before the start date")

// WorkingDays counts the days from start to end, both inclusive, that fall on
// Monday to Friday.
func WorkingDays(start, end Date) (int, error) {
	if end.Before(start) {
		return 0, fmt.Errorf("%w: %s is before %s", ErrDateRange, end, start)
	}

	// Whole weeks contribute five days each, the remainder is walked
	total := int(time.Time(end).Sub(time.Time(start)).Hours()/24) + 1
	days := total / 7 * 5

	current := start.AddDays(total / 7 * 7)
	for !current.After(end) {
		if wd := current.Weekday(); wd != time.Saturday && wd != time.Sunday {
			days++
		}
		current = current.AddDays(1)
	}

	return days, nil
}
