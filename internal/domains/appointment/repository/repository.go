package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"mediconnect/infras/otel"
	"mediconnect/infras/postgres"
	"mediconnect/internal/domains/appointment/model"
	"mediconnect/shared/calendar"
	"mediconnect/shared/constant"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/logger"
	gRepo "mediconnect/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	// ErrSlotTaken means another active appointment already holds the slot.
	ErrSlotTaken = errors.New("slot already taken")
	// ErrStatusChanged means the row left the expected status before the write.
	ErrStatusChanged = errors.New("appointment status changed")
	// ErrDoctorNotFound means the doctor row to lock does not exist.
	ErrDoctorNotFound = errors.New("doctor not found")
)

const (
	queryLockDoctor = `SELECT id FROM doctors WHERE id = $1 FOR UPDATE`

	querySlotTaken = `SELECT EXISTS(
		SELECT 1 FROM appointments
		WHERE doctor_id = $1 AND appointment_date = $2 AND appointment_time = $3
		AND status = ANY($4) AND id::text <> $5
	)`

	startsAtExpr  = "(appointment_date + appointment_time)"
	wallClock     = "2006-01-02 15:04:05"
	argFromStatus = "current_status"
)

type Appointment interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Reserve(ctx context.Context, appointment model.Appointment) error
	Move(ctx context.Context, move model.Move) error
	BookedTimes(ctx context.Context, doctorID string, date calendar.Date) ([]calendar.TimeOfDay, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Reserve inserts a pending appointment. The doctor row is locked for the
// rest of the transaction so concurrent reservations for that doctor queue up
// behind the slot check.
func (r *repositoryImpl) Reserve(ctx context.Context, appointment model.Appointment) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.Reserve")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockDoctor(ctx, tx, appointment.DoctorID); err != nil {
			return err
		}

		taken, err := slotTaken(ctx, tx, appointment.DoctorID, appointment.Date, appointment.Time, appointment.ID)
		if err != nil {
			return err
		}

		if taken {
			return ErrSlotTaken
		}

		return r.InsertTx(ctx, tx, appointment) //nolint:wrapcheck
	})

	return mapUniqueViolation(err)
}

// Move confirms a needs_rescheduling appointment on a new slot. The doctor of
// the target slot is locked, and the update only applies while the row is
// still needs_rescheduling.
func (r *repositoryImpl) Move(ctx context.Context, move model.Move) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.Move")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := lockDoctor(ctx, tx, move.DoctorID); err != nil {
			return err
		}

		taken, err := slotTaken(ctx, tx, move.DoctorID, move.Date, move.Time, move.AppointmentID)
		if err != nil {
			return err
		}

		if taken {
			return ErrSlotTaken
		}

		updated, err := r.UpdateCountTx(ctx, tx, map[string]any{
			model.FieldDoctorID:        move.DoctorID,
			model.FieldDate:            move.Date,
			model.FieldTime:            move.Time,
			model.FieldStatus:          model.StatusConfirmed,
			model.FieldReminderSent:    false,
			model.FieldStatusChangedAt: move.At,
			constant.FieldModifiedAt:   move.At,
			constant.FieldModifiedBy:   move.Actor,
		}, Guarded(move.AppointmentID, model.StatusNeedsRescheduling))
		if err != nil {
			return err //nolint:wrapcheck
		}

		if updated == 0 {
			return ErrStatusChanged
		}

		return nil
	})

	return mapUniqueViolation(err)
}

// BookedTimes lists the times held by active appointments of the doctor on date.
func (r *repositoryImpl) BookedTimes(ctx context.Context, doctorID string, date calendar.Date) ([]calendar.TimeOfDay, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".appointment.BookedTimes")
	defer scope.End()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			ByDoctor(doctorID),
			gDto.Filter{Field: model.FieldDate, Value: date, Operator: gDto.FilterOperatorEq},
			StatusIn(model.ActiveStatuses...),
		},
	}

	rows, err := r.GetAll(ctx, gDto.QueryParams{}, filter, model.FieldTime)
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get booked times: %w", err)
	}

	times := make([]calendar.TimeOfDay, 0, len(rows))
	for _, row := range rows {
		times = append(times, row.Time)
	}

	return times, nil
}

func lockDoctor(ctx context.Context, tx *sqlx.Tx, doctorID string) error {
	var id string

	err := tx.GetContext(ctx, &id, queryLockDoctor, doctorID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrDoctorNotFound
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock doctor: %w", err)
	}

	return nil
}

func slotTaken(ctx context.Context, tx *sqlx.Tx, doctorID string, date calendar.Date, t calendar.TimeOfDay, excludeID string) (bool, error) {
	statuses := make([]string, 0, len(model.ActiveStatuses))
	for _, s := range model.ActiveStatuses {
		statuses = append(statuses, string(s))
	}

	var taken bool

	if err := tx.GetContext(ctx, &taken, querySlotTaken, doctorID, date, t, pq.Array(statuses), excludeID); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to check slot: %w", err)
	}

	return taken, nil
}

// mapUniqueViolation turns a hit on the active-slot unique index into ErrSlotTaken.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == constant.PqErrorCodeUniqueViolation {
		return ErrSlotTaken
	}

	return err
}

func ByID(id string) gDto.Filter {
	return gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorEq}
}

func ByDoctor(doctorID string) gDto.Filter {
	return gDto.Filter{Field: model.FieldDoctorID, Value: doctorID, Operator: gDto.FilterOperatorEq}
}

func ByPatient(patientID string) gDto.Filter {
	return gDto.Filter{Field: model.FieldPatientID, Value: patientID, Operator: gDto.FilterOperatorEq}
}

// StatusIn matches the current status. It binds under its own argument name
// so it can sit next to a status assignment in the same update.
func StatusIn(statuses ...model.Status) gDto.Filter {
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	return gDto.Filter{ArgName: argFromStatus, Field: model.FieldStatus, Value: values, Operator: gDto.FilterOperatorIn}
}

// Guarded matches one appointment only while it is in one of from.
func Guarded(id string, from ...model.Status) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{ByID(id), StatusIn(from...)},
	}
}

// StartsAtOrBefore matches appointments whose wall-clock start is not after t.
func StartsAtOrBefore(t time.Time) gDto.Filter {
	return gDto.Filter{ArgName: "starts_before", Field: startsAtExpr, Value: t.Format(wallClock), Operator: gDto.FilterOperatorLessEq}
}

// StartsAtOrAfter matches appointments whose wall-clock start is not before t.
func StartsAtOrAfter(t time.Time) gDto.Filter {
	return gDto.Filter{ArgName: "starts_after", Field: startsAtExpr, Value: t.Format(wallClock), Operator: gDto.FilterOperatorGreaterEq}
}

// StatusChangedAtOrBefore matches rows whose status last changed no later than t.
func StatusChangedAtOrBefore(t time.Time) gDto.Filter {
	return gDto.Filter{ArgName: "changed_before", Field: model.FieldStatusChangedAt, Value: t, Operator: gDto.FilterOperatorLessEq}
}

func OnDates(dates ...calendar.Date) gDto.Filter {
	return gDto.Filter{Field: model.FieldDate, Value: dates, Operator: gDto.FilterOperatorIn}
}

func NotReminded() gDto.Filter {
	return gDto.Filter{ArgName: "already_reminded", Field: model.FieldReminderSent, Value: false, Operator: gDto.FilterOperatorEq}
}
