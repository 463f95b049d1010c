package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mediconnect/infras/otel/mocks"
	"mediconnect/infras/postgres"
	"mediconnect/internal/domains/appointment/model"
	"mediconnect/internal/domains/appointment/repository"
	"mediconnect/shared/calendar"
)

var (
	lockQuery  = regexp.QuoteMeta("SELECT id FROM doctors WHERE id = $1 FOR UPDATE")
	checkQuery = regexp.QuoteMeta("SELECT EXISTS(")
)

func newRepository(t *testing.T) (repository.Appointment, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	conn := sqlx.NewDb(db, "postgres")
	t.Cleanup(func() { _ = conn.Close() })

	return repository.New(&postgres.Connection{Read: conn, Write: conn}, mocks.NewOtel()), mock
}

func pendingAppointment() model.Appointment {
	return model.Appointment{
		ID:        "apt-1",
		PatientID: "pat-1",
		DoctorID:  "doc-1",
		Date:      calendar.NewDate(2026, 10, 19),
		Time:      calendar.NewTimeOfDay(9, 0),
		Type:      model.TypeConsultation,
		Status:    model.StatusPending,
	}
}

func TestReserve(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		wantErr error
		anyErr  bool
	}{
		{
			name: "locks the doctor then inserts",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WithArgs("doc-1").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("doc-1"))
				mock.ExpectQuery(checkQuery).
					WithArgs("doc-1", "2026-10-19", "09:00:00", sqlmock.AnyArg(), "apt-1").
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec("INSERT INTO appointments").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "active appointment already holds the slot",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("doc-1"))
				mock.ExpectQuery(checkQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectRollback()
			},
			wantErr: repository.ErrSlotTaken,
		},
		{
			name: "unique index violation maps to slot taken",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("doc-1"))
				mock.ExpectQuery(checkQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec("INSERT INTO appointments").WillReturnError(&pq.Error{Code: "23505", Constraint: "ux_appointments_active_slot"})
				mock.ExpectRollback()
			},
			wantErr: repository.ErrSlotTaken,
		},
		{
			name: "unknown doctor",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WillReturnRows(sqlmock.NewRows([]string{"id"}))
				mock.ExpectRollback()
			},
			wantErr: repository.ErrDoctorNotFound,
		},
		{
			name: "other insert failure is passed through",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(lockQuery).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("doc-1"))
				mock.ExpectQuery(checkQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
				mock.ExpectExec("INSERT INTO appointments").WillReturnError(errors.New("connection reset"))
				mock.ExpectRollback()
			},
			anyErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)
			tt.setup(mock)

			err := repo.Reserve(context.Background(), pendingAppointment())

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.anyErr:
				require.Error(t, err)
				assert.NotErrorIs(t, err, repository.ErrSlotTaken)
			default:
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestMove(t *testing.T) {
	move := model.Move{
		AppointmentID: "apt-1",
		DoctorID:      "doc-2",
		Date:          calendar.NewDate(2026, 10, 21),
		Time:          calendar.NewTimeOfDay(10, 30),
		Actor:         "pat@clinic.test",
		At:            time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name     string
		taken    bool
		affected int64
		wantErr  error
	}{
		{name: "moves and confirms", affected: 1},
		{name: "slot taken", taken: true, wantErr: repository.ErrSlotTaken},
		{name: "status changed meanwhile", affected: 0, wantErr: repository.ErrStatusChanged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepository(t)

			mock.ExpectBegin()
			mock.ExpectQuery(lockQuery).WithArgs("doc-2").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("doc-2"))
			mock.ExpectQuery(checkQuery).
				WithArgs("doc-2", "2026-10-21", "10:30:00", sqlmock.AnyArg(), "apt-1").
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(tt.taken))

			if !tt.taken {
				mock.ExpectExec(regexp.QuoteMeta("UPDATE appointments SET")).WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			if tt.wantErr != nil {
				mock.ExpectRollback()
			} else {
				mock.ExpectCommit()
			}

			err := repo.Move(context.Background(), move)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestBookedTimes(t *testing.T) {
	repo, mock := newRepository(t)

	mock.ExpectPrepare("SELECT appointments.appointment_time FROM appointments").
		ExpectQuery().
		WithArgs("doc-1", "2026-10-19", "pending", "confirmed").
		WillReturnRows(sqlmock.NewRows([]string{"appointment_time"}).AddRow("09:00:00").AddRow("09:15:00"))

	times, err := repo.BookedTimes(context.Background(), "doc-1", calendar.NewDate(2026, 10, 19))

	require.NoError(t, err)
	require.Len(t, times, 2)
	assert.Equal(t, "09:15", times[1].Clock())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFilters(t *testing.T) {
	guard := repository.Guarded("apt-1", model.StatusPending, model.StatusConfirmed)
	where, args := guard.GetWhereClause()

	assert.Equal(t, "(id = :id AND status IN (:current_status_0, :current_status_1) )", where)
	assert.Equal(t, "confirmed", args["current_status_1"])

	before := repository.StartsAtOrBefore(time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC))
	where, args = before.GetWhereClause()

	assert.Equal(t, "(appointment_date + appointment_time) <= :starts_before", where)
	assert.Equal(t, "2026-10-19 06:00:00", args["starts_before"])
}
