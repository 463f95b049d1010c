package model

import (
	appointmentModel "mediconnect/internal/domains/appointment/model"
	doctorModel "mediconnect/internal/domains/doctor/model"
	patientModel "mediconnect/internal/domains/patient/model"
	"mediconnect/shared/constant"
	"strings"
	"time"
)

type Kind string

const (
	KindRescheduleNeeded   Kind = "reschedule_needed"
	KindRescheduleReminder Kind = "reschedule_reminder"
	KindUpcoming           Kind = "upcoming_reminder"
)

var Kinds = []Kind{KindRescheduleNeeded, KindRescheduleReminder, KindUpcoming}

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
	ChannelEvent = "event"

	DefaultLocation = "Visit Reception at Ground Floor"
	portalPath      = "/patient/appointments"
)

var typeLabels = map[appointmentModel.Type]string{
	appointmentModel.TypeConsultation: "Consultation",
	appointmentModel.TypeFollowUp:     "Follow-up",
	appointmentModel.TypeCheckUp:      "Check-up",
}

// Notice is the data every notification template renders from.
type Notice struct {
	AppName         string
	AppointmentID   string
	PatientName     string
	PatientEmail    string
	PatientPhone    string
	DoctorName      string
	Specialty       string
	AppointmentType string
	Date            string
	LongDate        string
	Time            string
	Location        string
	PortalURL       string
}

func NewNotice(appName, portalURL string, apt appointmentModel.Appointment, patient patientModel.Patient, doctor doctorModel.Doctor) Notice {
	location := doctor.RoomLocation
	if strings.TrimSpace(location) == constant.Empty {
		location = DefaultLocation
	}

	return Notice{
		AppName:         appName,
		AppointmentID:   apt.ID,
		PatientName:     patient.Name,
		PatientEmail:    patient.Email,
		PatientPhone:    patient.Phone,
		DoctorName:      DoctorTitle(doctor.Name),
		Specialty:       specialtyLabel(doctor.Specialization),
		AppointmentType: typeLabels[apt.Type],
		Date:            apt.Date.Format(constant.DisplayDate),
		LongDate:        apt.Date.Format(constant.DisplayDateLong),
		Time:            apt.Time.DisplayPadded(),
		Location:        location,
		PortalURL:       strings.TrimRight(portalURL, "/") + portalPath,
	}
}

// DoctorTitle prefixes "Dr." unless the name already carries it.
func DoctorTitle(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(strings.ToLower(name), "dr.") {
		return name
	}

	return "Dr. " + name
}

func specialtyLabel(s doctorModel.Specialization) string {
	if s == "" {
		return ""
	}

	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

// Event is published on the notification topic for every dispatched notice.
type Event struct {
	Kind          Kind      `json:"kind"`
	AppointmentID string    `json:"appointment_id"`
	PatientID     string    `json:"patient_id"`
	DoctorID      string    `json:"doctor_id"`
	Date          string    `json:"appointment_date"`
	Time          string    `json:"appointment_time"`
	Status        string    `json:"status"`
	EmailSent     bool      `json:"email_sent"`
	OccurredAt    time.Time `json:"occurred_at"`
}
