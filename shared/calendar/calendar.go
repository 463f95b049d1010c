// Package calendar holds the wall-clock date and time-of-day types used for
// appointments and weekly schedules. Both are stored as DATE and TIME columns
// and carry no time zone; the application zone from shared/timezone gives them
// an instant when one is needed.
package calendar

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"mediconnect/shared/constant"
	"mediconnect/shared/timezone"
)

var (
	ErrInvalidDate = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidTime = errors.New("time must be in HH:MM or h:MM AM/PM format")
)

var timeLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"03:04 PM",
	"3:04PM",
	"03:04PM",
}

// Date is a calendar day without a zone.
type Date struct {
	civil.Date
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{civil.Date{Year: year, Month: month, Day: day}}
}

// DateOf returns the calendar day of t as seen in t's own location.
func DateOf(t time.Time) Date {
	return Date{civil.DateOf(t)}
}

// Today returns the current day in the application time zone.
func Today() Date {
	return DateOf(timezone.Now())
}

func ParseDate(value string) (Date, error) {
	d, err := civil.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return Date{}, ErrInvalidDate
	}

	return Date{d}, nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Date == (civil.Date{})
}

func (d Date) AddDays(n int) Date {
	return Date{d.Date.AddDays(n)}
}

func (d Date) Weekday() time.Weekday {
	return d.Date.In(time.UTC).Weekday()
}

func (d Date) Before(other Date) bool {
	return d.Date.Before(other.Date)
}

func (d Date) After(other Date) bool {
	return d.Date.After(other.Date)
}

func (d Date) Equal(other Date) bool {
	return d.Date == other.Date
}

// Format renders the date with a time.Format layout.
func (d Date) Format(layout string) string {
	return d.Date.In(time.UTC).Format(layout)
}

// At combines the date with a time of day in the application time zone.
func (d Date) At(t TimeOfDay) time.Time {
	return time.Date(d.Year, d.Month, d.Day, t.Hour, t.Minute, t.Second, 0, timezone.GetLocation())
}

// Range returns count consecutive days starting at d.
func (d Date) Range(count int) []Date {
	days := make([]Date, 0, max(count, 0))
	for i := range max(count, 0) {
		days = append(days, d.AddDays(i))
	}

	return days
}

func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}

		return nil
	case time.Time:
		*d = Date{civil.DateOf(v)}

		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("calendar: cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(value string) error {
	if len(value) > len(constant.DayFormat) {
		value = value[:len(constant.DayFormat)]
	}

	parsed, err := civil.ParseDate(value)
	if err != nil {
		return fmt.Errorf("calendar: scan date %q: %w", value, err)
	}

	*d = Date{parsed}

	return nil
}

func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil //nolint:nilnil
	}

	return d.String(), nil
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	civil.Time
}

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay{civil.Time{Hour: hour, Minute: minute}}
}

// TimeOf returns the wall-clock time of t in t's own location.
func TimeOf(t time.Time) TimeOfDay {
	return NewTimeOfDay(t.Hour(), t.Minute())
}

// ParseTimeOfDay accepts 24-hour ("09:15", "09:15:00") and 12-hour ("9:15 AM") forms.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	value = strings.ToUpper(strings.TrimSpace(value))

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute()), nil
		}
	}

	return TimeOfDay{}, ErrInvalidTime
}

// Minutes returns the number of minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Add moves the time forward by d. The second result is false once the
// result would cross midnight.
func (t TimeOfDay) Add(d time.Duration) (TimeOfDay, bool) {
	total := t.Minutes() + int(d/time.Minute)
	if total >= 24*60 || total < 0 {
		return TimeOfDay{}, false
	}

	return NewTimeOfDay(total/60, total%60), true
}

func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

func (t TimeOfDay) Equal(other TimeOfDay) bool {
	return t.Minutes() == other.Minutes()
}

// Clock renders the 24-hour "15:04" form.
func (t TimeOfDay) Clock() string {
	return t.layout(constant.ClockFormat)
}

// Display renders the 12-hour "3:04 PM" form used for slot lists.
func (t TimeOfDay) Display() string {
	return t.layout(constant.DisplayTime)
}

// DisplayPadded renders the zero-padded "03:04 PM" form used in emails.
func (t TimeOfDay) DisplayPadded() string {
	return t.layout(constant.DisplayTimePad)
}

func (t TimeOfDay) layout(layout string) string {
	return time.Date(0, 1, 1, t.Hour, t.Minute, 0, 0, time.UTC).Format(layout)
}

func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = TimeOfDay{}

		return nil
	case time.Time:
		*t = TimeOf(v)

		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("calendar: cannot scan %T into TimeOfDay", src)
	}
}

func (t *TimeOfDay) scanString(value string) error {
	parsed, err := ParseTimeOfDay(value)
	if err != nil {
		return fmt.Errorf("calendar: scan time %q: %w", value, err)
	}

	*t = parsed

	return nil
}

func (t TimeOfDay) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:00", t.Hour, t.Minute), nil
}
