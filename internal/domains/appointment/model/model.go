package model

import (
	"mediconnect/shared/account"
	"mediconnect/shared/calendar"
	"mediconnect/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "appointments"
	EntityName = "appointment"

	FieldID              = "id"
	FieldPatientID       = "patient_id"
	FieldDoctorID        = "doctor_id"
	FieldDate            = "appointment_date"
	FieldTime            = "appointment_time"
	FieldType            = "appointment_type"
	FieldReason          = "reason"
	FieldStatus          = "status"
	FieldReminderSent    = "reminder_sent"
	FieldStatusChangedAt = "status_changed_at"
)

type Status string

const (
	StatusPending           Status = "pending"
	StatusConfirmed         Status = "confirmed"
	StatusCompleted         Status = "completed"
	StatusCancelled         Status = "cancelled"
	StatusMissed            Status = "missed"
	StatusNeedsRescheduling Status = "needs_rescheduling"
)

var Statuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
	StatusCancelled,
	StatusMissed,
	StatusNeedsRescheduling,
}

// ActiveStatuses hold a slot. At most one appointment per (doctor, date, time)
// may be in one of them.
var ActiveStatuses = []Status{StatusPending, StatusConfirmed}

// TerminalStatuses cannot be cancelled or completed again.
var TerminalStatuses = []Status{StatusCompleted, StatusCancelled}

func (s Status) Valid() bool {
	return slices.Contains(Statuses, s)
}

func (s Status) Active() bool {
	return slices.Contains(ActiveStatuses, s)
}

func (s Status) Terminal() bool {
	return slices.Contains(TerminalStatuses, s)
}

type Type string

const (
	TypeConsultation Type = "consultation"
	TypeFollowUp     Type = "follow_up"
	TypeCheckUp      Type = "check_up"
)

var Types = []Type{TypeConsultation, TypeFollowUp, TypeCheckUp}

func (t Type) Valid() bool {
	return slices.Contains(Types, t)
}

type Appointment struct {
	ID              string             `db:"id"`
	PatientID       string             `db:"patient_id"`
	DoctorID        string             `db:"doctor_id"`
	Date            calendar.Date      `db:"appointment_date"`
	Time            calendar.TimeOfDay `db:"appointment_time"`
	Type            Type               `db:"appointment_type"`
	Reason          string             `db:"reason"`
	Status          Status             `db:"status"`
	ReminderSent    bool               `db:"reminder_sent"`
	StatusChangedAt time.Time          `db:"status_changed_at"`
	model.Metadata
}

// StartsAt is the appointment instant in the application time zone.
func (a Appointment) StartsAt() time.Time {
	return a.Date.At(a.Time)
}

// OwnedBy reports whether acc is the patient or the doctor of the appointment.
func (a Appointment) OwnedBy(acc account.Account) bool {
	if id, ok := acc.Patient(); ok {
		return a.PatientID == id
	}

	if id, ok := acc.Doctor(); ok {
		return a.DoctorID == id
	}

	return false
}

// Move places a needs_rescheduling appointment on a new slot, possibly with a
// different doctor, and confirms it.
type Move struct {
	AppointmentID string
	DoctorID      string
	Date          calendar.Date
	Time          calendar.TimeOfDay
	Actor         string
	At            time.Time
}

const (
	SweepMissed              = "missed"
	SweepExpiredReschedule   = "expired-reschedule"
	SweepReminders           = "reminders"
	SweepRescheduleReminders = "reschedule-reminders"
)

// SweepResult counts what one sweep run looked at and changed. Rows that lost
// a race to another writer are neither updated nor failed.
type SweepResult struct {
	Name    string `json:"name"`
	Scanned int    `json:"scanned"`
	Updated int    `json:"updated"`
	Failed  int    `json:"failed"`
}
