package decision

import (
	"encoding/json"
	"fmt"
	"time"
)

// Date is a calendar date without a time component. The Case Access Project
// publishes decision dates both with and without a day; a missing day is
// read as the first of the month.
type Date struct {
	Year  int
	Month int // 1-12
	Day   int // 1-31
}

// ParseDate reads a date in "2006-01-02" or "2006-01" form.
func ParseDate(value string) (Date, error) {
	layout := "2006-01-02"
	if len(value) == len("2006-01") {
		value += "-01"
	}
	parsed, err := time.Parse(layout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid decision date %q: %w", value, err)
	}
	return FromTime(parsed), nil
}

// FromTime creates a Date from a time.Time.
func FromTime(t time.Time) Date {
	return Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// ToTime converts the date to a time.Time at midnight UTC.
func (date Date) ToTime() time.Time {
	return time.Date(date.Year, time.Month(date.Month), date.Day, 0, 0, 0, 0, time.UTC)
}

// IsZero reports whether the date is unset.
func (date Date) IsZero() bool {
	return date == Date{}
}

// Before reports whether date precedes other.
func (date Date) Before(other Date) bool {
	return date.ToTime().Before(other.ToTime())
}

func (date Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", date.Year, date.Month, date.Day)
}

// MarshalJSON encodes the date as a "2006-01-02" string.
func (date Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(date.String())
}

// UnmarshalJSON decodes "2006-01-02" and "2006-01" strings.
func (date *Date) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	if value == "" {
		*date = Date{}
		return nil
	}
	parsed, err := ParseDate(value)
	if err != nil {
		return err
	}
	*date = parsed
	return nil
}
