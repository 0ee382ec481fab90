// Package types implements the calendar and JSON column types used by
// the expense tracker models.
package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var ErrInvalidMonth = errors.New("the month must be in YYYY-MM or YYYY-MM-DD format")

var monthInput = regexp.MustCompile(`^\d{4}-\d{2}(-\d{2})?$`)

// Month is a month in a specific year. It is always stored as the
// first day of that month.
type Month time.Time

// NewMonth returns a new Month.
func NewMonth(year int, month time.Month) Month {
	return Month(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))
}

// MonthOf returns the Month in which a time occurs in that time's location.
func MonthOf(t time.Time) Month {
	year, month, _ := t.Date()
	return NewMonth(year, month)
}

// ParseMonth parses a "YYYY-MM" or "YYYY-MM-DD" string and returns the
// Month it falls into. The day, if given, is validated and then dropped.
func ParseMonth(s string) (Month, error) {
	if !monthInput.MatchString(s) {
		return Month{}, ErrInvalidMonth
	}

	layout := "2006-01"
	if len(s) == len("2006-01-02") {
		layout = "2006-01-02"
	}

	t, err := time.Parse(layout, s)
	if err != nil {
		return Month{}, fmt.Errorf("%w: %s", ErrInvalidMonth, s)
	}

	return MonthOf(t), nil
}

// String returns the time formatted as YYYY-MM.
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", time.Time(m).Year(), time.Time(m).Month())
}

// MarshalJSON implements the json.Marshaler interface.
// The month is rendered as its first day, e.g. "2025-03-01".
func (m Month) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.FirstDay().String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The month is expected to be a string in a format accepted by ParseMonth.
func (m *Month) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		return nil
	}

	month, err := ParseMonth(value)
	if err != nil {
		return err
	}

	*m = month
	return nil
}

// Scan writes the value from the database.
func (m *Month) Scan(value any) error {
	t, err := scanTime(value)
	if err != nil {
		return err
	}

	if t.IsZero() {
		*m = Month{}
		return nil
	}

	*m = MonthOf(t)
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (m Month) Value() (driver.Value, error) {
	year, month, _ := time.Time(m).Date()
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC), nil
}

// GormDataType defines the data type used by gorm the type.
func (Month) GormDataType() string {
	return "date"
}

// IsZero reports if the month is the zero value.
func (m Month) IsZero() bool {
	return time.Time(m).IsZero()
}

// AddDate adds a specified amount of years and months.
func (m Month) AddDate(years, months int) Month {
	return Month(time.Time(m).AddDate(years, months, 0))
}

// Before reports whether the month instant m is before n.
func (m Month) Before(n Month) bool {
	return time.Time(m).Before(time.Time(n))
}

// After reports whether the month instant m is after n.
func (m Month) After(n Month) bool {
	return time.Time(m).After(time.Time(n))
}

// FirstDay returns the first calendar day of the month.
func (m Month) FirstDay() Date {
	return Date(time.Time(m))
}

// LastDay returns the last calendar day of the month.
func (m Month) LastDay() Date {
	return Date(time.Time(m.AddDate(0, 1)).AddDate(0, 0, -1))
}
