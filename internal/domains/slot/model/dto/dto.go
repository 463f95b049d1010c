package dto

import (
	"mediconnect/internal/domains/schedule/model"
	"mediconnect/shared/calendar"
	"mediconnect/shared/constant"
)

type Slot struct {
	Time    string `json:"time"`
	Display string `json:"display"`
}

func SlotsFrom(times []calendar.TimeOfDay) []Slot {
	res := make([]Slot, 0, len(times))
	for _, t := range times {
		res = append(res, Slot{Time: t.Clock(), Display: t.Display()})
	}

	return res
}

// Availability is one doctor-day. OffDay means no active schedule that
// weekday; an empty Slots with OffDay false means fully booked.
type Availability struct {
	Date      string `json:"date"`
	DayName   string `json:"day_name"`
	Formatted string `json:"formatted"`
	OffDay    bool   `json:"off_day"`
	Slots     []Slot `json:"slots"`
}

func NewAvailability(date calendar.Date, offDay bool, times []calendar.TimeOfDay) Availability {
	return Availability{
		Date:      date.String(),
		DayName:   model.DayOf(date.Weekday()).Title(),
		Formatted: date.Format(constant.DisplayDateShort),
		OffDay:    offDay,
		Slots:     SlotsFrom(times),
	}
}

// Times parses the slot clock values back.
func (a Availability) Times() []calendar.TimeOfDay {
	res := make([]calendar.TimeOfDay, 0, len(a.Slots))

	for _, s := range a.Slots {
		if t, err := calendar.ParseTimeOfDay(s.Time); err == nil {
			res = append(res, t)
		}
	}

	return res
}

type LookaheadResponse struct {
	DoctorID string         `json:"doctor_id"`
	Days     []Availability `json:"days"`
}
