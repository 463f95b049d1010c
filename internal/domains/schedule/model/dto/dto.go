package dto

import (
	"mediconnect/internal/domains/schedule/model"
	"mediconnect/shared/calendar"
	"mediconnect/shared/failure"
)

type CreateEntryRequest struct {
	Day       string `json:"day"        validate:"required,weekday"`
	StartTime string `json:"start_time" validate:"required,clock"`
	EndTime   string `json:"end_time"   validate:"required,clock"`
}

// Parse converts the request into typed values and checks start < end.
func (r CreateEntryRequest) Parse() (model.Day, calendar.TimeOfDay, calendar.TimeOfDay, error) {
	day, err := model.ParseDay(r.Day)
	if err != nil {
		return "", calendar.TimeOfDay{}, calendar.TimeOfDay{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	start, err := calendar.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return "", calendar.TimeOfDay{}, calendar.TimeOfDay{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	end, err := calendar.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return "", calendar.TimeOfDay{}, calendar.TimeOfDay{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	return day, start, end, nil
}

type ToggleDayRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type EntryResponse struct {
	ID        string `json:"id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Display   string `json:"display"`
	IsActive  bool   `json:"is_active"`
}

func (r *EntryResponse) FromModel(m model.Entry) {
	r.ID = m.ID
	r.Day = string(m.DayOfWeek)
	r.StartTime = m.StartTime.Clock()
	r.EndTime = m.EndTime.Clock()
	r.Display = m.StartTime.Display() + " - " + m.EndTime.Display()
	r.IsActive = m.IsActive
}

type DayScheduleResponse struct {
	Day     string          `json:"day"`
	Label   string          `json:"label"`
	Active  bool            `json:"active"`
	Entries []EntryResponse `json:"entries"`
}

type WeeklyScheduleResponse struct {
	DoctorID string                `json:"doctor_id"`
	Days     []DayScheduleResponse `json:"days"`
}

// FromModels groups entries by day in Monday..Sunday order. A day is active
// when at least one of its entries is.
func (r *WeeklyScheduleResponse) FromModels(doctorID string, entries []model.Entry) {
	r.DoctorID = doctorID
	r.Days = make([]DayScheduleResponse, 0, len(model.Days))

	for _, day := range model.Days {
		res := DayScheduleResponse{Day: string(day), Label: day.Title(), Entries: []EntryResponse{}}

		for _, entry := range entries {
			if entry.DayOfWeek != day {
				continue
			}

			var e EntryResponse

			e.FromModel(entry)
			res.Entries = append(res.Entries, e)
			res.Active = res.Active || entry.IsActive
		}

		r.Days = append(r.Days, res)
	}
}
