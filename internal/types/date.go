package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var ErrInvalidDate = errors.New("dates must be in YYYY-MM-DD format")

var dateInput = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Date is a calendar day without a time of day, stored at UTC midnight.
type Date time.Time

// NewDate returns a new Date.
func NewDate(year int, month time.Month, day int) Date {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return NewDate(year, month, day)
}

// ParseDate parses a strict "YYYY-MM-DD" string.
func ParseDate(s string) (Date, error) {
	if !dateInput.MatchString(s) {
		return Date{}, fmt.Errorf("%w, got '%s'", ErrInvalidDate, s)
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w, got '%s'", ErrInvalidDate, s)
	}

	return Date(t), nil
}

func (d Date) String() string {
	return time.Time(d).Format(DateLayout)
}

// Time returns the date as time.Time at UTC midnight.
func (d Date) Time() time.Time {
	return time.Time(d)
}

// Month returns the month the date falls into.
func (d Date) Month() Month {
	return MonthOf(time.Time(d))
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "null" {
		return nil
	}

	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}

	*d = parsed
	return nil
}

// Scan writes the value from the database.
func (d *Date) Scan(value any) error {
	t, err := scanTime(value)
	if err != nil {
		return err
	}

	if t.IsZero() {
		*d = Date{}
		return nil
	}

	*d = DateOf(t)
	return nil
}

// Value returns the value for the SQL driver to write to the database.
func (d Date) Value() (driver.Value, error) {
	return time.Time(DateOf(time.Time(d))), nil
}

// GormDataType defines the data type used by gorm the type.
func (Date) GormDataType() string {
	return "date"
}

func (d Date) IsZero() bool {
	return time.Time(d).IsZero()
}

func (d Date) Before(e Date) bool {
	return time.Time(d).Before(time.Time(e))
}

func (d Date) After(e Date) bool {
	return time.Time(d).After(time.Time(e))
}

// AddDate adds years, months and days to the date.
func (d Date) AddDate(years, months, days int) Date {
	return Date(time.Time(d).AddDate(years, months, days))
}

// storedLayouts are the textual representations a date column can be
// read back as. SQLite keeps dates as text.
var storedLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	DateLayout,
}

func scanTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		return v, nil
	case []byte:
		return parseStored(string(v))
	case string:
		return parseStored(v)
	}

	return time.Time{}, fmt.Errorf("cannot scan %T into a date", value)
}

func parseStored(s string) (time.Time, error) {
	for _, layout := range storedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse '%s' as a date", s)
}
