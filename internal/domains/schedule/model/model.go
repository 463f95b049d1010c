package model

import (
	"errors"
	"mediconnect/shared/calendar"
	"mediconnect/shared/model"
	"slices"
	"strings"
	"time"
)

const (
	TableName  = "doctor_schedules"
	EntityName = "schedule"

	FieldID        = "id"
	FieldDoctorID  = "doctor_id"
	FieldDayOfWeek = "day_of_week"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldSlotKind  = "slot_kind"
	FieldIsActive  = "is_active"

	SlotKindConsultation = "consultation"
)

var ErrInvalidDay = errors.New("day must be one of monday..sunday")

type Day string

const (
	Monday    Day = "monday"
	Tuesday   Day = "tuesday"
	Wednesday Day = "wednesday"
	Thursday  Day = "thursday"
	Friday    Day = "friday"
	Saturday  Day = "saturday"
	Sunday    Day = "sunday"
)

// Days lists the week in display order.
var Days = []Day{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

func ParseDay(value string) (Day, error) {
	day := Day(strings.ToLower(strings.TrimSpace(value)))
	if !slices.Contains(Days, day) {
		return "", ErrInvalidDay
	}

	return day, nil
}

// DayOf maps a time.Weekday onto a schedule day.
func DayOf(weekday time.Weekday) Day {
	if weekday == time.Sunday {
		return Sunday
	}

	return Days[weekday-1]
}

func (d Day) Weekday() time.Weekday {
	return time.Weekday((slices.Index(Days, d) + 1) % 7)
}

func (d Day) Title() string {
	if d == "" {
		return ""
	}

	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

type Entry struct {
	ID        string             `db:"id"`
	DoctorID  string             `db:"doctor_id"`
	DayOfWeek Day                `db:"day_of_week"`
	StartTime calendar.TimeOfDay `db:"start_time"`
	EndTime   calendar.TimeOfDay `db:"end_time"`
	SlotKind  string             `db:"slot_kind"`
	IsActive  bool               `db:"is_active"`
	model.Metadata
}

func (e Entry) Window() Window {
	return Window{Start: e.StartTime, End: e.EndTime}
}

// Window is a half-open [Start, End) range of bookable time.
type Window struct {
	Start calendar.TimeOfDay
	End   calendar.TimeOfDay
}

// Week holds the active windows of each day, ordered by start.
type Week map[Day][]Window

// DayDeactivated is raised once per toggle that turns an active day off.
type DayDeactivated struct {
	DoctorID string
	Day      Day
	At       time.Time
}

// CascadeReport summarizes the appointments a deactivation affected.
type CascadeReport struct {
	Flagged  []string `json:"flagged"`
	Notified int      `json:"notified"`
	Failed   []string `json:"failed"`
}

type ToggleResult struct {
	Day     Day            `json:"day"`
	Active  bool           `json:"active"`
	Updated int64          `json:"updated"`
	Cascade *CascadeReport `json:"cascade,omitempty"`
}
