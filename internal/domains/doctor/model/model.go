package model

import (
	"mediconnect/shared/model"
	"slices"
)

const (
	TableName  = "doctors"
	EntityName = "doctor"

	FieldID             = "id"
	FieldUserID         = "user_id"
	FieldName           = "name"
	FieldSpecialization = "specialization"
	FieldIsAvailable    = "is_available"
	FieldIsActive       = "is_active"
)

type Specialization string

const (
	SpecializationCardiology    Specialization = "cardiology"
	SpecializationGeneral       Specialization = "general"
	SpecializationDermatology   Specialization = "dermatology"
	SpecializationOrthopedic    Specialization = "orthopedic"
	SpecializationOphthalmology Specialization = "ophthalmology"
	SpecializationDentistry     Specialization = "dentistry"
	SpecializationNeurology     Specialization = "neurology"
	SpecializationPediatrics    Specialization = "pediatrics"
	SpecializationPsychiatry    Specialization = "psychiatry"
	SpecializationGynecology    Specialization = "gynecology"
	SpecializationOther         Specialization = "other"
)

var Specializations = []Specialization{
	SpecializationCardiology,
	SpecializationGeneral,
	SpecializationDermatology,
	SpecializationOrthopedic,
	SpecializationOphthalmology,
	SpecializationDentistry,
	SpecializationNeurology,
	SpecializationPediatrics,
	SpecializationPsychiatry,
	SpecializationGynecology,
	SpecializationOther,
}

func (s Specialization) Valid() bool {
	return slices.Contains(Specializations, s)
}

type Doctor struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	Phone          string         `db:"phone"`
	Specialization Specialization `db:"specialization"`
	RoomLocation   string         `db:"room_location"`
	IsAvailable    bool           `db:"is_available"`
	IsActive       bool           `db:"is_active"`
	model.Metadata
}

// Bookable reports whether patients may take new appointments with the doctor.
func (d Doctor) Bookable() bool {
	return d.IsAvailable && d.IsActive
}
