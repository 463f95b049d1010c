package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"mediconnect/config"
	"mediconnect/infras/metrics"
	"mediconnect/infras/otel/mocks"
	appointmentMocks "mediconnect/internal/domains/appointment/mocks"
	"mediconnect/internal/domains/appointment/model"
	"mediconnect/internal/domains/appointment/repository"
	"mediconnect/internal/domains/appointment/service"
	doctorMocks "mediconnect/internal/domains/doctor/mocks"
	doctorModel "mediconnect/internal/domains/doctor/model"
	notificationMocks "mediconnect/internal/domains/notification/mocks"
	patientMocks "mediconnect/internal/domains/patient/mocks"
	slotMocks "mediconnect/internal/domains/slot/mocks"
	"mediconnect/shared/calendar"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/timezone"
)

// Thursday 2026-10-15, 08:00.
var now = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

var (
	nextMonday  = calendar.NewDate(2026, 10, 19)
	nextTuesday = calendar.NewDate(2026, 10, 20)
	nine        = calendar.NewTimeOfDay(9, 0)
)

type fixture struct {
	appointment service.Appointment
	workflow    service.Workflow
	sweeper     service.Sweeper
	repo        *appointmentMocks.MockAppointment
	doctors     *doctorMocks.MockDoctor
	patients    *patientMocks.MockPatient
	slots       *slotMocks.MockSlot
	notifier    *notificationMocks.MockNotifier
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "MediConnect"
	cfg.Scheduling.RescheduleWindowDays = 7
	cfg.Scheduling.MissedAfterHours = 3
	cfg.Scheduling.RescheduleExpiryHours = 24
	cfg.Scheduling.RescheduleReminderHours = 12
	cfg.Scheduling.ReminderLeadMinutes = 60
	cfg.Scheduling.ReminderWindowMinutes = 5
	cfg.Scheduling.TransferSlotLimit = 10

	return cfg
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	restore := timezone.Freeze(now)
	t.Cleanup(restore)

	ctrl := gomock.NewController(t)
	f := fixture{
		repo:     appointmentMocks.NewMockAppointment(ctrl),
		doctors:  doctorMocks.NewMockDoctor(ctrl),
		patients: patientMocks.NewMockPatient(ctrl),
		slots:    slotMocks.NewMockSlot(ctrl),
		notifier: notificationMocks.NewMockNotifier(ctrl),
	}

	cfg := testConfig()
	m := metrics.New()

	f.appointment = service.NewAppointment(f.repo, f.doctors, f.patients, f.slots, m, cfg, mocks.NewOtel())
	f.workflow = service.NewWorkflow(f.repo, f.doctors, f.slots, m, cfg, mocks.NewOtel())
	f.sweeper = service.NewSweeper(f.repo, f.notifier, cfg, mocks.NewOtel())

	return f
}

func cardiologist(id string) doctorModel.Doctor {
	return doctorModel.Doctor{
		ID:             id,
		Name:           "Ravi Rao",
		Specialization: doctorModel.SpecializationCardiology,
		IsAvailable:    true,
		IsActive:       true,
	}
}

func booked(status model.Status) model.Appointment {
	return model.Appointment{
		ID:              "apt-1",
		PatientID:       "pat-1",
		DoctorID:        "doc-1",
		Date:            nextMonday,
		Time:            nine,
		Type:            model.TypeConsultation,
		Status:          status,
		StatusChangedAt: now.Add(-time.Hour),
	}
}

func (f fixture) expectDoctor(doctor doctorModel.Doctor) *gomock.Call {
	return f.doctors.EXPECT().Get(gomock.Any(), gomock.Any()).Return(doctor, nil)
}

func (f fixture) expectAppointment(apt model.Appointment) *gomock.Call {
	return f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(apt, nil)
}

// ledger is an in-memory Reserve that holds a lock across check and insert the
// way the doctor row lock does in Postgres.
type ledger struct {
	repository.Appointment
	mu   sync.Mutex
	rows []model.Appointment
}

func newLedger() *ledger {
	return &ledger{}
}

func (l *ledger) Reserve(_ context.Context, apt model.Appointment) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, row := range l.rows {
		if row.DoctorID == apt.DoctorID && row.Date.Equal(apt.Date) && row.Time.Equal(apt.Time) && row.Status.Active() {
			return repository.ErrSlotTaken
		}
	}

	l.rows = append(l.rows, apt)

	return nil
}

// Move applies the same check as Reserve, ignoring the row being moved.
func (l *ledger) Move(_ context.Context, move model.Move) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	index := -1

	for i, row := range l.rows {
		if row.ID == move.AppointmentID {
			index = i

			continue
		}

		if row.DoctorID == move.DoctorID && row.Date.Equal(move.Date) && row.Time.Equal(move.Time) && row.Status.Active() {
			return repository.ErrSlotTaken
		}
	}

	if index < 0 || l.rows[index].Status != model.StatusNeedsRescheduling {
		return repository.ErrStatusChanged
	}

	row := &l.rows[index]
	row.DoctorID = move.DoctorID
	row.Date = move.Date
	row.Time = move.Time
	row.Status = model.StatusConfirmed
	row.ReminderSent = false
	row.StatusChangedAt = move.At

	return nil
}

func (l *ledger) BookedTimes(_ context.Context, doctorID string, date calendar.Date) ([]calendar.TimeOfDay, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	times := []calendar.TimeOfDay{}

	for _, row := range l.rows {
		if row.DoctorID == doctorID && row.Date.Equal(date) && row.Status.Active() {
			times = append(times, row.Time)
		}
	}

	return times, nil
}

// Get only understands the id filter.
func (l *ledger) Get(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Appointment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, f := range filter.Filters {
		byID, ok := f.(gDto.Filter)
		if !ok || byID.Field != model.FieldID {
			continue
		}

		for _, row := range l.rows {
			if row.ID == byID.Value {
				return row, nil
			}
		}
	}

	return model.Appointment{}, nil
}

func (l *ledger) setStatus(id string, status model.Status) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.rows {
		if l.rows[i].ID == id {
			l.rows[i].Status = status
		}
	}
}
