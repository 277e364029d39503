// Package types implements special types for the allocation backend.
package types

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateFormat is the wire and query string format of a Date.
const DateFormat = "2006-01-02"

// Date is a calendar day without a time of day. It is always stored as
// 00:00 UTC.
type Date time.Time

// NewDate returns a new Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the Date on which t occurs in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// ParseDate parses a "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}

	return DateOf(t), nil
}

// String returns the date formatted as YYYY-MM-DD.
func (d Date) String() string {
	return time.Time(d).Format(DateFormat)
}

// MarshalJSON implements the json.Marshaler interface.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}

	return []byte(fmt.Sprintf("%q", d.String())), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Only the "YYYY-MM-DD" format is accepted.
func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*d = Date{}
		return nil
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return fmt.Errorf("%q is not a valid date, use the YYYY-MM-DD format", value)
	}

	*d = parsed
	return nil
}

// UnmarshalParam implements gin's binding.BindUnmarshaler for query strings.
func (d *Date) UnmarshalParam(p string) error {
	return d.UnmarshalJSON([]byte(p))
}

// Scan writes the value from the database.
func (d *Date) Scan(value interface{}) (err error) {
	// Some drivers hand out dates as text
	switch v := value.(type) {
	case []byte:
		value = string(v)
	}

	if s, ok := value.(string); ok {
		if len(s) < len(DateFormat) {
			return fmt.Errorf("cannot scan %q into a date", s)
		}

		parsed, err := ParseDate(s[:len(DateFormat)])
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	}

	nullTime := &sql.NullTime{}
	err = nullTime.Scan(value)
	if err != nil {
		return err
	}

	if !nullTime.Valid {
		*d = Date{}
		return nil
	}

	*d = DateOf(nullTime.Time.UTC())
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (d Date) Value() (driver.Value, error) {
	return time.Time(DateOf(time.Time(d))), nil
}

// GormDataType defines the data type used by gorm for the type.
func (Date) GormDataType() string {
	return "date"
}

// IsZero reports if the date is the zero value.
func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

// AddDays returns the date n days after d.
func (d Date) AddDays(n int) Date {
	return Date(time.Time(d).AddDate(0, 0, n))
}

// Before reports whether d is before e.
func (d Date) Before(e Date) bool {
	return time.Time(d).Before(time.Time(e))
}

// After reports whether d is after e.
func (d Date) After(e Date) bool {
	return time.Time(d).After(time.Time(e))
}

// Equal reports whether d and e are the same day.
func (d Date) Equal(e Date) bool {
	return time.Time(d).Equal(time.Time(e))
}

// Weekday returns the day of the week.
func (d Date) Weekday() time.Weekday {
	return time.Time(d).Weekday()
}

// Month returns the month of the year, 1 to 12.
func (d Date) Month() time.Month {
	return time.Time(d).Month()
}

// Year returns the year.
func (d Date) Year() int {
	return time.Time(d).Year()
}
