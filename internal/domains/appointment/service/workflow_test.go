package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mediconnect/infras/metrics"
	"mediconnect/infras/otel/mocks"
	"mediconnect/internal/domains/appointment/model"
	"mediconnect/internal/domains/appointment/model/dto"
	"mediconnect/internal/domains/appointment/repository"
	"mediconnect/internal/domains/appointment/service"
	doctorModel "mediconnect/internal/domains/doctor/model"
	scheduleMocks "mediconnect/internal/domains/schedule/mocks"
	scheduleModel "mediconnect/internal/domains/schedule/model"
	slotDto "mediconnect/internal/domains/slot/model/dto"
	slotService "mediconnect/internal/domains/slot/service"
	"mediconnect/shared/cache/cachetest"
	"mediconnect/shared/calendar"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/failure"
)

var ten = calendar.NewTimeOfDay(10, 0)

func TestWorkflow_Reschedule(t *testing.T) {
	req := dto.RescheduleRequest{Date: "2026-10-20", Time: "10:00"}

	t.Run("flagged appointment goes back to confirmed", func(t *testing.T) {
		f := newFixture(t)

		f.expectAppointment(booked(model.StatusNeedsRescheduling))
		f.slots.EXPECT().CheckSlot(gomock.Any(), "doc-1", nextTuesday, ten).Return(nil)
		f.repo.EXPECT().Move(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, move model.Move) error {
			assert.Equal(t, "apt-1", move.AppointmentID)
			assert.Equal(t, "doc-1", move.DoctorID)
			assert.True(t, move.Date.Equal(nextTuesday))
			assert.True(t, move.Time.Equal(ten))
			assert.True(t, now.Equal(move.At))

			return nil
		})
		f.slots.EXPECT().Invalidate(gomock.Any(), "doc-1")

		res, err := f.workflow.Reschedule(context.Background(), "pat-1", "apt-1", req)

		require.NoError(t, err)
		assert.Equal(t, "confirmed", res.Status)
		assert.Equal(t, "2026-10-20", res.Date)
		assert.Equal(t, "10:00", res.Time)
	})

	t.Run("day without a schedule", func(t *testing.T) {
		f := newFixture(t)

		f.expectAppointment(booked(model.StatusNeedsRescheduling))
		f.slots.EXPECT().CheckSlot(gomock.Any(), "doc-1", nextTuesday, ten).
			Return(failure.NotAvailable("doctor does not work on Tuesday"))

		_, err := f.workflow.Reschedule(context.Background(), "pat-1", "apt-1", req)

		assert.True(t, failure.Is(err, failure.KindNotAvailable))
	})

	t.Run("only flagged appointments", func(t *testing.T) {
		f := newFixture(t)

		f.expectAppointment(booked(model.StatusConfirmed))

		_, err := f.workflow.Reschedule(context.Background(), "pat-1", "apt-1", req)

		assert.True(t, failure.Is(err, failure.KindInvalidState))
	})

	t.Run("someone else's appointment", func(t *testing.T) {
		f := newFixture(t)

		f.expectAppointment(booked(model.StatusNeedsRescheduling))

		_, err := f.workflow.Reschedule(context.Background(), "pat-2", "apt-1", req)

		assert.True(t, failure.Is(err, failure.KindNotFound))
	})

	t.Run("new date must be in the future", func(t *testing.T) {
		f := newFixture(t)

		f.expectAppointment(booked(model.StatusNeedsRescheduling))

		_, err := f.workflow.Reschedule(context.Background(), "pat-1", "apt-1", dto.RescheduleRequest{Date: "2026-10-15", Time: "10:00"})

		assert.True(t, failure.Is(err, failure.KindValidation))
	})

	t.Run("slot taken at commit", func(t *testing.T) {
		f := newFixture(t)

		f.expectAppointment(booked(model.StatusNeedsRescheduling))
		f.slots.EXPECT().CheckSlot(gomock.Any(), "doc-1", nextTuesday, ten).Return(nil)
		f.repo.EXPECT().Move(gomock.Any(), gomock.Any()).Return(repository.ErrSlotTaken)

		_, err := f.workflow.Reschedule(context.Background(), "pat-1", "apt-1", req)

		assert.True(t, failure.Is(err, failure.KindSlotConflict))
	})

	t.Run("status changed underneath", func(t *testing.T) {
		f := newFixture(t)

		f.expectAppointment(booked(model.StatusNeedsRescheduling))
		f.slots.EXPECT().CheckSlot(gomock.Any(), "doc-1", nextTuesday, ten).Return(nil)
		f.repo.EXPECT().Move(gomock.Any(), gomock.Any()).Return(repository.ErrStatusChanged)

		_, err := f.workflow.Reschedule(context.Background(), "pat-1", "apt-1", req)

		assert.True(t, failure.Is(err, failure.KindInvalidState))
	})
}

func TestWorkflow_RescheduleOptions(t *testing.T) {
	f := newFixture(t)

	tomorrow := calendar.NewDate(2026, 10, 16)
	days := []slotDto.Availability{slotDto.NewAvailability(nextMonday, false, []calendar.TimeOfDay{nine})}

	f.expectAppointment(booked(model.StatusNeedsRescheduling))
	f.slots.EXPECT().OpenDates(gomock.Any(), "doc-1", tomorrow, 7).Return(days, nil)

	res, err := f.workflow.RescheduleOptions(context.Background(), "pat-1", "apt-1")

	require.NoError(t, err)
	assert.Equal(t, "apt-1", res.Appointment.ID)
	assert.Equal(t, days, res.Days)
}

func TestWorkflow_TransferOptions(t *testing.T) {
	f := newFixture(t)

	free := cardiologist("doc-2")
	free.Name = "Meera Iyer"
	off := cardiologist("doc-3")

	f.expectAppointment(booked(model.StatusNeedsRescheduling))
	f.expectDoctor(cardiologist("doc-1"))
	f.doctors.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]doctorModel.Doctor, error) {
			assert.Contains(t, filter.Filters, gDto.Filter{
				ArgName:  "excluded_id",
				Field:    doctorModel.FieldID,
				Value:    "doc-1",
				Operator: gDto.FilterOperatorNotEq,
				Table:    doctorModel.TableName,
			})

			return []doctorModel.Doctor{free, off}, nil
		})
	f.slots.EXPECT().Availability(gomock.Any(), "doc-2", nextMonday).
		Return(slotDto.NewAvailability(nextMonday, false, []calendar.TimeOfDay{nine, ten}), nil)
	f.slots.EXPECT().Availability(gomock.Any(), "doc-3", nextMonday).
		Return(slotDto.NewAvailability(nextMonday, true, nil), nil)

	res, err := f.workflow.TransferOptions(context.Background(), "pat-1", "apt-1")

	require.NoError(t, err)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, "doc-2", res.Candidates[0].DoctorID)
	assert.True(t, res.Candidates[0].SameTimeAvailable)
	assert.Equal(t, []string{"9:00 AM", "10:00 AM"}, res.Candidates[0].Slots)
}

func TestWorkflow_Transfer(t *testing.T) {
	req := dto.TransferRequest{DoctorID: "doc-2", Date: "2026-10-19", Time: "09:00"}

	t.Run("moves to another cardiologist", func(t *testing.T) {
		f := newFixture(t)

		f.expectAppointment(booked(model.StatusNeedsRescheduling))
		gomock.InOrder(
			f.expectDoctor(cardiologist("doc-2")),
			f.expectDoctor(cardiologist("doc-1")),
		)
		f.slots.EXPECT().CheckSlot(gomock.Any(), "doc-2", nextMonday, nine).Return(nil)
		f.repo.EXPECT().Move(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, move model.Move) error {
			assert.Equal(t, "doc-2", move.DoctorID)

			return nil
		})
		f.slots.EXPECT().Invalidate(gomock.Any(), "doc-2")
		f.slots.EXPECT().Invalidate(gomock.Any(), "doc-1")

		res, err := f.workflow.Transfer(context.Background(), "pat-1", "apt-1", req)

		require.NoError(t, err)
		assert.Equal(t, "doc-2", res.DoctorID)
		assert.Equal(t, "confirmed", res.Status)
	})

	t.Run("different specialization is rejected without changes", func(t *testing.T) {
		f := newFixture(t)

		dermatologist := cardiologist("doc-2")
		dermatologist.Specialization = doctorModel.SpecializationDermatology

		f.expectAppointment(booked(model.StatusNeedsRescheduling))
		gomock.InOrder(
			f.expectDoctor(dermatologist),
			f.expectDoctor(cardiologist("doc-1")),
		)

		_, err := f.workflow.Transfer(context.Background(), "pat-1", "apt-1", req)

		assert.True(t, failure.Is(err, failure.KindValidation))
	})

	t.Run("same doctor", func(t *testing.T) {
		f := newFixture(t)

		f.expectAppointment(booked(model.StatusNeedsRescheduling))

		_, err := f.workflow.Transfer(context.Background(), "pat-1", "apt-1",
			dto.TransferRequest{DoctorID: "doc-1", Date: "2026-10-19", Time: "09:00"})

		assert.True(t, failure.Is(err, failure.KindValidation))
	})

	t.Run("unknown target", func(t *testing.T) {
		f := newFixture(t)

		f.expectAppointment(booked(model.StatusNeedsRescheduling))
		f.expectDoctor(doctorModel.Doctor{})

		_, err := f.workflow.Transfer(context.Background(), "pat-1", "apt-1", req)

		assert.True(t, failure.Is(err, failure.KindNotFound))
	})

	t.Run("target not accepting patients", func(t *testing.T) {
		f := newFixture(t)

		inactive := cardiologist("doc-2")
		inactive.IsActive = false

		f.expectAppointment(booked(model.StatusNeedsRescheduling))
		f.expectDoctor(inactive)

		_, err := f.workflow.Transfer(context.Background(), "pat-1", "apt-1", req)

		assert.True(t, failure.Is(err, failure.KindNotAvailable))
	})
}

func TestWorkflow_TransferDoctorSlots(t *testing.T) {
	f := newFixture(t)

	tomorrow := calendar.NewDate(2026, 10, 16)

	f.expectAppointment(booked(model.StatusNeedsRescheduling))
	gomock.InOrder(
		f.expectDoctor(cardiologist("doc-2")),
		f.expectDoctor(cardiologist("doc-1")),
	)
	f.slots.EXPECT().OpenDates(gomock.Any(), "doc-2", tomorrow, 7).Return([]slotDto.Availability{}, nil)

	res, err := f.workflow.TransferDoctorSlots(context.Background(), "pat-1", "apt-1", "doc-2")

	require.NoError(t, err)
	assert.Equal(t, "doc-2", res.DoctorID)
	assert.Empty(t, res.Days)
}

func TestWorkflow_RescheduleRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	store := newLedger()

	schedule := scheduleMocks.NewMockSchedule(gomock.NewController(t))
	schedule.EXPECT().ActiveWeek(gomock.Any(), "doc-1").Return(scheduleModel.Week{
		scheduleModel.Monday:  {{Start: nine, End: calendar.NewTimeOfDay(9, 30)}},
		scheduleModel.Tuesday: {{Start: nine, End: calendar.NewTimeOfDay(9, 30)}},
	}, nil).AnyTimes()

	f.doctors.EXPECT().Get(gomock.Any(), gomock.Any()).Return(cardiologist("doc-1"), nil).AnyTimes()

	cfg := testConfig()
	cfg.Cache.TTL = 60

	redisCache, _ := cachetest.New(t)
	slots := slotService.New(schedule, store, cfg, redisCache, mocks.NewOtel())
	appointments := service.NewAppointment(store, f.doctors, f.patients, slots, metrics.New(), cfg, mocks.NewOtel())
	workflow := service.NewWorkflow(store, f.doctors, slots, metrics.New(), cfg, mocks.NewOtel())

	quarterPast := calendar.NewTimeOfDay(9, 15)

	open := func(date calendar.Date) []string {
		t.Helper()

		day, err := slots.Availability(ctx, "doc-1", date)
		require.NoError(t, err)

		res := []string{}
		for _, slot := range day.Times() {
			res = append(res, slot.Clock())
		}

		return res
	}

	// Warm the cache so every later read proves invalidation.
	assert.Equal(t, []string{"09:00", "09:15"}, open(nextMonday))
	assert.Equal(t, []string{"09:00", "09:15"}, open(nextTuesday))

	booking, err := appointments.Book(ctx, "pat-1", bookRequest("2026-10-19"))
	require.NoError(t, err)
	assert.NotContains(t, open(nextMonday), nine.Clock())

	store.setStatus(booking.ID, model.StatusNeedsRescheduling)
	slots.Invalidate(ctx, "doc-1")

	res, err := workflow.Reschedule(ctx, "pat-1", booking.ID, dto.RescheduleRequest{Date: "2026-10-20", Time: "09:15"})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", res.Status)

	assert.Equal(t, []string{"09:00"}, open(nextTuesday), "the new slot is taken")
	assert.Contains(t, open(nextMonday), nine.Clock(), "the original slot is free again")
	assert.NotContains(t, open(nextTuesday), quarterPast.Clock())

	_, err = appointments.Book(ctx, "pat-2", dto.BookRequest{DoctorID: "doc-1", Date: "2026-10-20", Time: "09:15", Type: "consultation"})
	assert.True(t, failure.Is(err, failure.KindSlotConflict))
}
