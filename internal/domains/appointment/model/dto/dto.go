package dto

import (
	"mediconnect/internal/domains/appointment/model"
	doctorModel "mediconnect/internal/domains/doctor/model"
	slotDto "mediconnect/internal/domains/slot/model/dto"
	"mediconnect/shared"
	"mediconnect/shared/calendar"
	"mediconnect/shared/constant"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/failure"
	"mediconnect/shared/timezone"
	"strings"
)

type BookRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,id"`
	Date     string `json:"date"      validate:"required,isodate"`
	Time     string `json:"time"      validate:"required,clock"`
	Type     string `json:"type"      validate:"required,oneof=consultation follow_up check_up"`
	Reason   string `json:"reason"    validate:"omitempty,max=500"`
}

// Parse converts the request into typed values. Failures are validation errors.
func (r BookRequest) Parse() (calendar.Date, calendar.TimeOfDay, model.Type, error) {
	date, t, err := parseSlot(r.Date, r.Time)
	if err != nil {
		return date, t, "", err
	}

	kind := model.Type(strings.ToLower(r.Type))
	if !kind.Valid() {
		return date, t, "", failure.BadRequestFromString("type must be one of consultation, follow_up, check_up") // nolint:wrapcheck
	}

	return date, t, kind, nil
}

type RescheduleRequest struct {
	Date string `json:"date" validate:"required,isodate"`
	Time string `json:"time" validate:"required,clock"`
}

func (r RescheduleRequest) Parse() (calendar.Date, calendar.TimeOfDay, error) {
	return parseSlot(r.Date, r.Time)
}

type TransferRequest struct {
	DoctorID string `json:"doctor_id" validate:"required,id"`
	Date     string `json:"date"      validate:"required,isodate"`
	Time     string `json:"time"      validate:"required,clock"`
}

func (r TransferRequest) Parse() (calendar.Date, calendar.TimeOfDay, error) {
	return parseSlot(r.Date, r.Time)
}

func parseSlot(rawDate, rawTime string) (calendar.Date, calendar.TimeOfDay, error) {
	date, err := calendar.ParseDate(rawDate)
	if err != nil {
		return date, calendar.TimeOfDay{}, failure.BadRequest(err) // nolint:wrapcheck
	}

	t, err := calendar.ParseTimeOfDay(rawTime)
	if err != nil {
		return date, t, failure.BadRequest(err) // nolint:wrapcheck
	}

	return date, t, nil
}

// ListFilter narrows "my appointments".
type ListFilter struct {
	Status string `validate:"omitempty,oneof=pending confirmed completed cancelled missed needs_rescheduling"`
	Date   string `validate:"omitempty,isodate"`
}

type AppointmentResponse struct {
	ID              string `json:"id"`
	PatientID       string `json:"patient_id"`
	DoctorID        string `json:"doctor_id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	DisplayDate     string `json:"display_date"`
	DisplayTime     string `json:"display_time"`
	Type            string `json:"type"`
	Reason          string `json:"reason"`
	Status          string `json:"status"`
	StatusChangedAt string `json:"status_changed_at"`
	gDto.Metadata
}

func (r *AppointmentResponse) FromModel(m model.Appointment) {
	r.ID = m.ID
	r.PatientID = m.PatientID
	r.DoctorID = m.DoctorID
	r.Date = m.Date.String()
	r.Time = m.Time.Clock()
	r.DisplayDate = m.Date.Format(constant.DisplayDate)
	r.DisplayTime = m.Time.Display()
	r.Type = string(m.Type)
	r.Reason = m.Reason
	r.Status = string(m.Status)
	r.StatusChangedAt = timezone.Format(m.StatusChangedAt, constant.DateFormat)
	r.Metadata.FromModel(m.Metadata)
}

type GetAppointmentsResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetAppointmentsResponse) FromModels(models []model.Appointment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)
	r.Appointments = make([]AppointmentResponse, 0, len(models))

	for _, m := range models {
		var res AppointmentResponse

		res.FromModel(m)
		r.Appointments = append(r.Appointments, res)
	}
}

type RescheduleOptionsResponse struct {
	Appointment AppointmentResponse    `json:"appointment"`
	Days        []slotDto.Availability `json:"days"`
}

type TransferCandidate struct {
	DoctorID          string   `json:"doctor_id"`
	Name              string   `json:"name"`
	Specialization    string   `json:"specialization"`
	RoomLocation      string   `json:"room_location"`
	Slots             []string `json:"slots"`
	SameTimeAvailable bool     `json:"same_time_available"`
}

func NewTransferCandidate(doctor doctorModel.Doctor, day slotDto.Availability, original calendar.TimeOfDay, limit int) TransferCandidate {
	candidate := TransferCandidate{
		DoctorID:       doctor.ID,
		Name:           doctor.Name,
		Specialization: string(doctor.Specialization),
		RoomLocation:   doctor.RoomLocation,
		Slots:          []string{},
	}

	for _, s := range day.Slots {
		if s.Time == original.Clock() {
			candidate.SameTimeAvailable = true
		}

		if len(candidate.Slots) < limit {
			candidate.Slots = append(candidate.Slots, s.Display)
		}
	}

	return candidate
}

type TransferOptionsResponse struct {
	Appointment AppointmentResponse `json:"appointment"`
	Candidates  []TransferCandidate `json:"candidates"`
}

type TransferDoctorSlotsResponse struct {
	DoctorID string                 `json:"doctor_id"`
	Name     string                 `json:"name"`
	Days     []slotDto.Availability `json:"days"`
}
