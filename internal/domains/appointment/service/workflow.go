package service

//go:generate go run go.uber.org/mock/mockgen -source=./workflow.go -destination=../mocks/workflow_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"mediconnect/config"
	"mediconnect/infras/metrics"
	"mediconnect/infras/otel"
	"mediconnect/internal/domains/appointment/model"
	"mediconnect/internal/domains/appointment/model/dto"
	"mediconnect/internal/domains/appointment/repository"
	doctorModel "mediconnect/internal/domains/doctor/model"
	doctorRepo "mediconnect/internal/domains/doctor/repository"
	doctorService "mediconnect/internal/domains/doctor/service"
	slotService "mediconnect/internal/domains/slot/service"
	"mediconnect/shared"
	"mediconnect/shared/account"
	"mediconnect/shared/calendar"
	"mediconnect/shared/constant"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/failure"
	"mediconnect/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Workflow lets a patient recover an appointment flagged needs_rescheduling,
// either on a new slot with the same doctor or with another doctor of the
// same specialization.
type Workflow interface {
	RescheduleOptions(ctx context.Context, patientID, id string) (dto.RescheduleOptionsResponse, error)
	Reschedule(ctx context.Context, patientID, id string, req dto.RescheduleRequest) (dto.AppointmentResponse, error)
	TransferOptions(ctx context.Context, patientID, id string) (dto.TransferOptionsResponse, error)
	TransferDoctorSlots(ctx context.Context, patientID, id, doctorID string) (dto.TransferDoctorSlotsResponse, error)
	Transfer(ctx context.Context, patientID, id string, req dto.TransferRequest) (dto.AppointmentResponse, error)
}

type workflowImpl struct {
	repo       repository.Appointment
	doctorRepo doctorRepo.Doctor
	slots      slotService.Slot
	metrics    *metrics.Metrics
	cfg        *config.Config
	otel       otel.Otel
}

func NewWorkflow(
	repo repository.Appointment,
	doctorRepo doctorRepo.Doctor,
	slots slotService.Slot,
	m *metrics.Metrics,
	cfg *config.Config,
	otel otel.Otel,
) Workflow {
	return &workflowImpl{
		repo:       repo,
		doctorRepo: doctorRepo,
		slots:      slots,
		metrics:    m,
		cfg:        cfg,
		otel:       otel,
	}
}

func (s *workflowImpl) RescheduleOptions(ctx context.Context, patientID, id string) (res dto.RescheduleOptionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".workflow.RescheduleOptions")
	defer scope.End()
	defer scope.TraceIfError(err)

	appointment, err := s.flagged(ctx, patientID, id)
	if err != nil {
		return res, err
	}

	days, err := s.slots.OpenDates(ctx, appointment.DoctorID, calendar.Today().AddDays(1), s.cfg.Scheduling.RescheduleWindowDays)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res.Appointment.FromModel(appointment)
	res.Days = days

	return res, nil
}

func (s *workflowImpl) Reschedule(ctx context.Context, patientID, id string, req dto.RescheduleRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".workflow.Reschedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, t, err := req.Parse()
	if err != nil {
		return res, err
	}

	appointment, err := s.flagged(ctx, patientID, id)
	if err != nil {
		return res, err
	}

	if !date.After(calendar.Today()) {
		return res, failure.BadRequestFromString("new date must be after today") // nolint:wrapcheck
	}

	if err = s.slots.CheckSlot(ctx, appointment.DoctorID, date, t); err != nil {
		return res, err //nolint:wrapcheck
	}

	appointment, err = s.move(ctx, appointment, appointment.DoctorID, date, t)
	if err != nil {
		return res, err
	}

	res.FromModel(appointment)

	return res, nil
}

func (s *workflowImpl) TransferOptions(ctx context.Context, patientID, id string) (res dto.TransferOptionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".workflow.TransferOptions")
	defer scope.End()
	defer scope.TraceIfError(err)

	appointment, err := s.flagged(ctx, patientID, id)
	if err != nil {
		return res, err
	}

	original, err := s.doctor(ctx, appointment.DoctorID)
	if err != nil {
		return res, err
	}

	filter := doctorService.BookableFilter()
	filter.Filters = append(filter.Filters,
		gDto.Filter{Field: doctorModel.FieldSpecialization, Value: string(original.Specialization), Operator: gDto.FilterOperatorEq, Table: doctorModel.TableName},
		gDto.Filter{ArgName: "excluded_id", Field: doctorModel.FieldID, Value: original.ID, Operator: gDto.FilterOperatorNotEq, Table: doctorModel.TableName},
	)

	candidates, err := s.doctorRepo.GetAll(ctx, gDto.QueryParams{SortBy: doctorModel.FieldName, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get transfer candidates")

		return res, fmt.Errorf("failed to get transfer candidates: %w", err)
	}

	date := transferDate(appointment.Date)

	res.Appointment.FromModel(appointment)
	res.Candidates = []dto.TransferCandidate{}

	for _, candidate := range candidates {
		day, err := s.slots.Availability(ctx, candidate.ID, date)
		if err != nil {
			return res, err //nolint:wrapcheck
		}

		if day.OffDay {
			continue
		}

		res.Candidates = append(res.Candidates, dto.NewTransferCandidate(candidate, day, appointment.Time, s.cfg.Scheduling.TransferSlotLimit))
	}

	return res, nil
}

// TransferDoctorSlots lists the open days of a prospective transfer target so
// the patient may pick a different date.
func (s *workflowImpl) TransferDoctorSlots(ctx context.Context, patientID, id, doctorID string) (res dto.TransferDoctorSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".workflow.TransferDoctorSlots")
	defer scope.End()
	defer scope.TraceIfError(err)

	appointment, err := s.flagged(ctx, patientID, id)
	if err != nil {
		return res, err
	}

	target, err := s.transferTarget(ctx, appointment, doctorID)
	if err != nil {
		return res, err
	}

	days, err := s.slots.OpenDates(ctx, target.ID, calendar.Today().AddDays(1), s.cfg.Scheduling.RescheduleWindowDays)
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	res = dto.TransferDoctorSlotsResponse{DoctorID: target.ID, Name: target.Name, Days: days}

	return res, nil
}

func (s *workflowImpl) Transfer(ctx context.Context, patientID, id string, req dto.TransferRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".workflow.Transfer")
	defer scope.End()
	defer scope.TraceIfError(err)

	date, t, err := req.Parse()
	if err != nil {
		return res, err
	}

	appointment, err := s.flagged(ctx, patientID, id)
	if err != nil {
		return res, err
	}

	target, err := s.transferTarget(ctx, appointment, req.DoctorID)
	if err != nil {
		return res, err
	}

	if !date.After(calendar.Today()) {
		return res, failure.NotAvailable("transfers can only be made to a future date") // nolint:wrapcheck
	}

	if err = s.slots.CheckSlot(ctx, target.ID, date, t); err != nil {
		return res, err //nolint:wrapcheck
	}

	previousDoctor := appointment.DoctorID

	appointment, err = s.move(ctx, appointment, target.ID, date, t)
	if err != nil {
		return res, err
	}

	s.slots.Invalidate(ctx, previousDoctor)

	res.FromModel(appointment)

	return res, nil
}

// flagged loads the patient's appointment and requires needs_rescheduling.
func (s *workflowImpl) flagged(ctx context.Context, patientID, id string) (model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, gDto.FilterGroup{Filters: []any{repository.ByID(id)}})
	if err != nil {
		log.Error().Err(err).Str("appointmentID", id).Msg("failed to get appointment")

		return appointment, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty || appointment.PatientID != patientID {
		return model.Appointment{}, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if appointment.Status != model.StatusNeedsRescheduling {
		return appointment, failure.InvalidState(fmt.Sprintf("appointment is %s and does not need rescheduling", appointment.Status)) // nolint:wrapcheck
	}

	return appointment, nil
}

func (s *workflowImpl) doctor(ctx context.Context, id string) (doctorModel.Doctor, error) {
	doctor, err := s.doctorRepo.Get(ctx, shared.FilterByID(id, doctorModel.FieldID, doctorModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("doctorID", id).Msg("failed to get doctor")

		return doctor, fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctor.ID == constant.Empty {
		return doctor, failure.NotFound("doctor not found") // nolint:wrapcheck
	}

	return doctor, nil
}

// transferTarget checks that doctorID may take over the appointment.
func (s *workflowImpl) transferTarget(ctx context.Context, appointment model.Appointment, doctorID string) (doctorModel.Doctor, error) {
	if doctorID == appointment.DoctorID {
		return doctorModel.Doctor{}, failure.BadRequestFromString("choose a different doctor to transfer to") // nolint:wrapcheck
	}

	target, err := s.doctor(ctx, doctorID)
	if err != nil {
		return target, err
	}

	if !target.Bookable() {
		return target, failure.NotAvailable("selected doctor is not accepting appointments") // nolint:wrapcheck
	}

	original, err := s.doctor(ctx, appointment.DoctorID)
	if err != nil {
		return target, err
	}

	if target.Specialization != original.Specialization {
		return target, failure.BadRequestFromString(fmt.Sprintf("transfers are limited to %s doctors", original.Specialization)) // nolint:wrapcheck
	}

	return target, nil
}

func (s *workflowImpl) move(ctx context.Context, appointment model.Appointment, doctorID string, date calendar.Date, t calendar.TimeOfDay) (model.Appointment, error) {
	move := model.Move{
		AppointmentID: appointment.ID,
		DoctorID:      doctorID,
		Date:          date,
		Time:          t,
		Actor:         account.Actor(ctx),
		At:            timezone.Now(),
	}

	err := s.repo.Move(ctx, move)

	switch {
	case errors.Is(err, repository.ErrSlotTaken):
		return appointment, failure.SlotConflict("this slot was just booked by someone else, please pick another time") // nolint:wrapcheck
	case errors.Is(err, repository.ErrStatusChanged):
		return appointment, failure.InvalidState("appointment no longer needs rescheduling") // nolint:wrapcheck
	case errors.Is(err, repository.ErrDoctorNotFound):
		return appointment, failure.NotFound("doctor not found") // nolint:wrapcheck
	case err != nil:
		log.Error().Err(err).Str("appointmentID", appointment.ID).Msg("failed to move appointment")

		return appointment, fmt.Errorf("failed to move appointment: %w", err)
	}

	s.metrics.ObserveTransition(string(model.StatusConfirmed))
	s.slots.Invalidate(ctx, doctorID)

	appointment.DoctorID = doctorID
	appointment.Date = date
	appointment.Time = t
	appointment.Status = model.StatusConfirmed
	appointment.ReminderSent = false
	appointment.StatusChangedAt = move.At
	appointment.ModifiedAt = move.At
	appointment.ModifiedBy = move.Actor

	return appointment, nil
}

// transferDate is the day transfer candidates are offered on: the original
// date, or its next occurrence when the original has already passed.
func transferDate(original calendar.Date) calendar.Date {
	tomorrow := calendar.Today().AddDays(1)
	if !original.Before(tomorrow) {
		return original
	}

	offset := (int(original.Weekday()) - int(tomorrow.Weekday()) + 7) % 7

	return tomorrow.AddDays(offset)
}
