package service

//go:generate go run go.uber.org/mock/mockgen -source=./appointment.go -destination=../mocks/appointment_mock.go -package=mocks -mock_names=Appointment=MockAppointmentService

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
	patientModel "mediconnect/internal/domains/patient/model"
	patientRepo "mediconnect/internal/domains/patient/repository"
	slotService "mediconnect/internal/domains/slot/service"
	"mediconnect/shared"
	"mediconnect/shared/account"
	"mediconnect/shared/calendar"
	"mediconnect/shared/constant"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/failure"
	gModel "mediconnect/shared/model"
	"mediconnect/shared/timezone"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	bookingBooked   = "booked"
	bookingConflict = "conflict"
	bookingRejected = "rejected"
	bookingError    = "error"
)

// openStatuses can still be cancelled or completed.
var openStatuses = []model.Status{
	model.StatusPending,
	model.StatusConfirmed,
	model.StatusMissed,
	model.StatusNeedsRescheduling,
}

var sortableFields = []string{model.FieldDate, model.FieldStatus, constant.FieldCreatedAt}

type Appointment interface {
	Book(ctx context.Context, patientID string, req dto.BookRequest) (dto.AppointmentResponse, error)
	Cancel(ctx context.Context, acc account.Account, id string) (dto.AppointmentResponse, error)
	Complete(ctx context.Context, doctorID, id string) (dto.AppointmentResponse, error)
	Get(ctx context.Context, acc account.Account, id string) (dto.AppointmentResponse, error)
	List(ctx context.Context, acc account.Account, req gDto.QueryParams, filter dto.ListFilter) (dto.GetAppointmentsResponse, error)
	ExportCalendar(ctx context.Context, acc account.Account) ([]byte, error)
}

type appointmentImpl struct {
	repo        repository.Appointment
	doctorRepo  doctorRepo.Doctor
	patientRepo patientRepo.Patient
	slots       slotService.Slot
	metrics     *metrics.Metrics
	cfg         *config.Config
	otel        otel.Otel
}

func NewAppointment(
	repo repository.Appointment,
	doctorRepo doctorRepo.Doctor,
	patientRepo patientRepo.Patient,
	slots slotService.Slot,
	m *metrics.Metrics,
	cfg *config.Config,
	otel otel.Otel,
) Appointment {
	return &appointmentImpl{
		repo:        repo,
		doctorRepo:  doctorRepo,
		patientRepo: patientRepo,
		slots:       slots,
		metrics:     m,
		cfg:         cfg,
		otel:        otel,
	}
}

// Book reserves a pending appointment for the patient. Same-day booking is not
// offered.
func (s *appointmentImpl) Book(ctx context.Context, patientID string, req dto.BookRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Book")
	defer scope.End()
	defer scope.TraceIfError(err)

	defer func() {
		s.metrics.ObserveBooking(bookingOutcome(err))
	}()

	date, t, kind, err := req.Parse()
	if err != nil {
		return res, err
	}

	if !date.After(calendar.Today()) {
		return res, failure.BadRequestFromString("appointments can only be booked from tomorrow onwards") // nolint:wrapcheck
	}

	if _, err = s.bookableDoctor(ctx, req.DoctorID); err != nil {
		return res, err
	}

	if err = s.slots.CheckSlot(ctx, req.DoctorID, date, t); err != nil {
		return res, err //nolint:wrapcheck
	}

	now := timezone.Now()
	appointment := model.Appointment{
		ID:              uuid.NewString(),
		PatientID:       patientID,
		DoctorID:        req.DoctorID,
		Date:            date,
		Time:            t,
		Type:            kind,
		Reason:          req.Reason,
		Status:          model.StatusPending,
		StatusChangedAt: now,
		Metadata:        gModel.NewMetadata(account.Actor(ctx), now),
	}

	err = s.repo.Reserve(ctx, appointment)

	switch {
	case errors.Is(err, repository.ErrSlotTaken):
		return res, failure.SlotConflict("this slot was just booked by someone else, please pick another time") // nolint:wrapcheck
	case errors.Is(err, repository.ErrDoctorNotFound):
		return res, failure.NotFound("doctor not found") // nolint:wrapcheck
	case err != nil:
		log.Error().Err(err).Str("doctorID", req.DoctorID).Msg("failed to book appointment")

		return res, fmt.Errorf("failed to book appointment: %w", err)
	}

	s.slots.Invalidate(ctx, appointment.DoctorID)

	res.FromModel(appointment)

	return res, nil
}

// Cancel is open to the patient and the doctor of the appointment.
func (s *appointmentImpl) Cancel(ctx context.Context, acc account.Account, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	appointment, err := s.owned(ctx, acc, id)
	if err != nil {
		return res, err
	}

	appointment, err = s.finish(ctx, appointment, model.StatusCancelled)
	if err != nil {
		return res, err
	}

	res.FromModel(appointment)

	return res, nil
}

func (s *appointmentImpl) Complete(ctx context.Context, doctorID, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	appointment, err := s.find(ctx, id)
	if err != nil {
		return res, err
	}

	if appointment.DoctorID != doctorID {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	appointment, err = s.finish(ctx, appointment, model.StatusCompleted)
	if err != nil {
		return res, err
	}

	res.FromModel(appointment)

	return res, nil
}

func (s *appointmentImpl) Get(ctx context.Context, acc account.Account, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	appointment, err := s.owned(ctx, acc, id)
	if err != nil {
		return res, err
	}

	res.FromModel(appointment)

	return res, nil
}

// List returns the caller's own appointments, newest date first by default.
func (s *appointmentImpl) List(ctx context.Context, acc account.Account, req gDto.QueryParams, filter dto.ListFilter) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.List")
	defer scope.End()
	defer scope.TraceIfError(err)

	owner, err := ownerFilter(acc)
	if err != nil {
		return res, err
	}

	where := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{owner}}

	if filter.Status != constant.Empty {
		status := model.Status(filter.Status)
		if !status.Valid() {
			return res, failure.BadRequestFromString(fmt.Sprintf("unknown status %q", filter.Status)) // nolint:wrapcheck
		}

		where.Filters = append(where.Filters, repository.StatusIn(status))
	}

	if filter.Date != constant.Empty {
		date, err := calendar.ParseDate(filter.Date)
		if err != nil {
			return res, failure.BadRequest(err) // nolint:wrapcheck
		}

		where.Filters = append(where.Filters, repository.OnDates(date))
	}

	if !slices.Contains(sortableFields, req.SortBy) {
		req.SortBy = model.FieldDate
		req.SortDir = gDto.SortDirDesc
	}

	if req.SortDir == constant.Empty {
		req.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, where)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, where)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *appointmentImpl) bookableDoctor(ctx context.Context, doctorID string) (doctorModel.Doctor, error) {
	doctor, err := s.doctorRepo.Get(ctx, shared.FilterByID(doctorID, doctorModel.FieldID, doctorModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to get doctor")

		return doctor, fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctor.ID == constant.Empty {
		return doctor, failure.NotFound("doctor not found") // nolint:wrapcheck
	}

	if !doctor.Bookable() {
		return doctor, failure.NotAvailable("doctor is not accepting appointments") // nolint:wrapcheck
	}

	return doctor, nil
}

func (s *appointmentImpl) find(ctx context.Context, id string) (model.Appointment, error) {
	appointment, err := s.repo.Get(ctx, gDto.FilterGroup{Filters: []any{repository.ByID(id)}})
	if err != nil {
		log.Error().Err(err).Str("appointmentID", id).Msg("failed to get appointment")

		return appointment, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return appointment, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	return appointment, nil
}

// owned loads an appointment the caller is party to. Anyone else gets NotFound.
func (s *appointmentImpl) owned(ctx context.Context, acc account.Account, id string) (model.Appointment, error) {
	appointment, err := s.find(ctx, id)
	if err != nil {
		return appointment, err
	}

	if !appointment.OwnedBy(acc) {
		return model.Appointment{}, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	return appointment, nil
}

// finish moves an open appointment to a terminal status. The update is
// guarded on the open statuses so a concurrent terminal write wins cleanly.
func (s *appointmentImpl) finish(ctx context.Context, appointment model.Appointment, to model.Status) (model.Appointment, error) {
	if appointment.Status.Terminal() {
		return appointment, failure.InvalidState(fmt.Sprintf("appointment is already %s", appointment.Status)) // nolint:wrapcheck
	}

	now := timezone.Now()
	actor := account.Actor(ctx)

	updated, err := s.repo.UpdateCount(ctx, map[string]any{
		model.FieldStatus:          to,
		model.FieldStatusChangedAt: now,
		constant.FieldModifiedAt:   now,
		constant.FieldModifiedBy:   actor,
	}, repository.Guarded(appointment.ID, openStatuses...))
	if err != nil {
		log.Error().Err(err).Str("appointmentID", appointment.ID).Msg("failed to update appointment status")

		return appointment, fmt.Errorf("failed to update appointment status: %w", err)
	}

	if updated == 0 {
		return appointment, failure.InvalidState("appointment status changed, please reload") // nolint:wrapcheck
	}

	s.metrics.ObserveTransition(string(to))
	s.slots.Invalidate(ctx, appointment.DoctorID)

	appointment.Status = to
	appointment.StatusChangedAt = now
	appointment.ModifiedAt = now
	appointment.ModifiedBy = actor

	return appointment, nil
}

func ownerFilter(acc account.Account) (gDto.Filter, error) {
	if id, ok := acc.Patient(); ok {
		return repository.ByPatient(id), nil
	}

	if id, ok := acc.Doctor(); ok {
		return repository.ByDoctor(id), nil
	}

	return gDto.Filter{}, failure.ResourceRestrictedError
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return bookingBooked
	case failure.Is(err, failure.KindSlotConflict):
		return bookingConflict
	case failure.KindOf(err) != failure.KindUnknown && failure.KindOf(err) != failure.KindInternal:
		return bookingRejected
	default:
		return bookingError
	}
}

// participantNames resolves display names for the calendar feed.
func (s *appointmentImpl) participantNames(ctx context.Context, appointments []model.Appointment, byDoctor bool) (map[string]string, error) {
	ids := []string{}

	for _, a := range appointments {
		id := a.DoctorID
		if !byDoctor {
			id = a.PatientID
		}

		if !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}

	names := map[string]string{}
	if len(ids) == 0 {
		return names, nil
	}

	if byDoctor {
		doctors, err := s.doctorRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{Filters: []any{
			gDto.Filter{Field: doctorModel.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: doctorModel.TableName},
		}})
		if err != nil {
			return nil, fmt.Errorf("failed to get doctors: %w", err)
		}

		for _, d := range doctors {
			names[d.ID] = d.Name
		}

		return names, nil
	}

	patients, err := s.patientRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{Filters: []any{
		gDto.Filter{Field: patientModel.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: patientModel.TableName},
	}})
	if err != nil {
		return nil, fmt.Errorf("failed to get patients: %w", err)
	}

	for _, p := range patients {
		names[p.ID] = p.Name
	}

	return names, nil
}
