package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mediconnect/config"
	"mediconnect/infras/otel/mocks"
	appointmentMocks "mediconnect/internal/domains/appointment/mocks"
	scheduleMocks "mediconnect/internal/domains/schedule/mocks"
	scheduleModel "mediconnect/internal/domains/schedule/model"
	"mediconnect/internal/domains/slot/model/dto"
	"mediconnect/internal/domains/slot/service"
	"mediconnect/shared/cache/cachetest"
	"mediconnect/shared/calendar"
	"mediconnect/shared/failure"
	"mediconnect/shared/timezone"
)

// Thursday 2026-10-15, 08:00.
var now = time.Date(2026, 10, 15, 8, 0, 0, 0, time.UTC)

var (
	nextMonday  = calendar.NewDate(2026, 10, 19)
	nextTuesday = calendar.NewDate(2026, 10, 20)
)

type fixture struct {
	svc          service.Slot
	schedule     *scheduleMocks.MockSchedule
	appointments *appointmentMocks.MockAppointment
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	restore := timezone.Freeze(now)
	t.Cleanup(restore)

	ctrl := gomock.NewController(t)
	schedule := scheduleMocks.NewMockSchedule(ctrl)
	appointments := appointmentMocks.NewMockAppointment(ctrl)
	redisCache, _ := cachetest.New(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Scheduling.BookingLookaheadDays = 3

	return fixture{
		svc:          service.New(schedule, appointments, cfg, redisCache, mocks.NewOtel()),
		schedule:     schedule,
		appointments: appointments,
	}
}

func mondayMorning() scheduleModel.Week {
	return scheduleModel.Week{
		scheduleModel.Monday: {{Start: calendar.NewTimeOfDay(9, 0), End: calendar.NewTimeOfDay(9, 30)}},
	}
}

func displays(day dto.Availability) []string {
	res := []string{}
	for _, s := range day.Slots {
		res = append(res, s.Display)
	}

	return res
}

func TestAvailability_BookingScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.schedule.EXPECT().ActiveWeek(gomock.Any(), "doc-1").Return(mondayMorning(), nil).Times(4)

	gomock.InOrder(
		f.appointments.EXPECT().BookedTimes(gomock.Any(), "doc-1", nextMonday).Return(nil, nil),
		f.appointments.EXPECT().BookedTimes(gomock.Any(), "doc-1", nextMonday).
			Return([]calendar.TimeOfDay{calendar.NewTimeOfDay(9, 0)}, nil),
		f.appointments.EXPECT().BookedTimes(gomock.Any(), "doc-1", nextMonday).
			Return([]calendar.TimeOfDay{calendar.NewTimeOfDay(9, 0), calendar.NewTimeOfDay(9, 15)}, nil),
	)

	day, err := f.svc.Availability(ctx, "doc-1", nextMonday)
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "9:15 AM"}, displays(day))
	assert.Equal(t, "Monday", day.DayName)

	// Served from cache until a write invalidates it.
	day, err = f.svc.Availability(ctx, "doc-1", nextMonday)
	require.NoError(t, err)
	assert.Len(t, day.Slots, 2)

	f.svc.Invalidate(ctx, "doc-1")

	day, err = f.svc.Availability(ctx, "doc-1", nextMonday)
	require.NoError(t, err)
	assert.Equal(t, []string{"9:15 AM"}, displays(day))

	f.svc.Invalidate(ctx, "doc-1")

	day, err = f.svc.Availability(ctx, "doc-1", nextMonday)
	require.NoError(t, err)
	assert.Empty(t, day.Slots)
	assert.False(t, day.OffDay)
}

func TestAvailability_WriteDuringReadIsNotCached(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.schedule.EXPECT().ActiveWeek(gomock.Any(), "doc-1").Return(mondayMorning(), nil).Times(3)

	gomock.InOrder(
		// A booking of 9:00 commits and invalidates after this read started.
		f.appointments.EXPECT().BookedTimes(gomock.Any(), "doc-1", nextMonday).
			DoAndReturn(func(ctx context.Context, doctorID string, _ calendar.Date) ([]calendar.TimeOfDay, error) {
				f.svc.Invalidate(ctx, doctorID)

				return nil, nil
			}),
		f.appointments.EXPECT().BookedTimes(gomock.Any(), "doc-1", nextMonday).
			Return([]calendar.TimeOfDay{calendar.NewTimeOfDay(9, 0)}, nil),
	)

	day, err := f.svc.Availability(ctx, "doc-1", nextMonday)
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "9:15 AM"}, displays(day))

	day, err = f.svc.Availability(ctx, "doc-1", nextMonday)
	require.NoError(t, err)
	assert.Equal(t, []string{"9:15 AM"}, displays(day))

	day, err = f.svc.Availability(ctx, "doc-1", nextMonday)
	require.NoError(t, err)
	assert.Equal(t, []string{"9:15 AM"}, displays(day), "fresh result is cached")
}

func TestAvailability_OffDay(t *testing.T) {
	f := newFixture(t)

	f.schedule.EXPECT().ActiveWeek(gomock.Any(), "doc-1").Return(mondayMorning(), nil)

	day, err := f.svc.Availability(context.Background(), "doc-1", nextTuesday)

	require.NoError(t, err)
	assert.True(t, day.OffDay)
	assert.Empty(t, day.Slots)
}

func TestAvailability_Errors(t *testing.T) {
	t.Run("schedule failure", func(t *testing.T) {
		f := newFixture(t)
		f.schedule.EXPECT().ActiveWeek(gomock.Any(), "doc-1").Return(nil, errors.New("database error"))

		_, err := f.svc.Availability(context.Background(), "doc-1", nextMonday)
		assert.Error(t, err)
	})
}

func TestAvailability_PastDateIsGenerated(t *testing.T) {
	f := newFixture(t)
	lastMonday := calendar.NewDate(2026, 10, 12)

	f.schedule.EXPECT().ActiveWeek(gomock.Any(), "doc-1").Return(mondayMorning(), nil)
	f.appointments.EXPECT().BookedTimes(gomock.Any(), "doc-1", lastMonday).Return(nil, nil)

	day, err := f.svc.Availability(context.Background(), "doc-1", lastMonday)

	require.NoError(t, err)
	assert.Equal(t, []string{"9:00 AM", "9:15 AM"}, displays(day))
}

func TestAvailability_TodayDropsStartedSlots(t *testing.T) {
	f := newFixture(t)
	today := calendar.NewDate(2026, 10, 15)

	f.schedule.EXPECT().ActiveWeek(gomock.Any(), "doc-1").Return(scheduleModel.Week{
		scheduleModel.Thursday: {{Start: calendar.NewTimeOfDay(7, 30), End: calendar.NewTimeOfDay(8, 30)}},
	}, nil)
	f.appointments.EXPECT().BookedTimes(gomock.Any(), "doc-1", today).Return(nil, nil)

	day, err := f.svc.Availability(context.Background(), "doc-1", today)

	require.NoError(t, err)
	assert.Equal(t, []string{"8:15 AM"}, displays(day))
}

func TestLookahead(t *testing.T) {
	f := newFixture(t)

	f.schedule.EXPECT().ActiveWeek(gomock.Any(), "doc-1").Return(scheduleModel.Week{
		scheduleModel.Saturday: {{Start: calendar.NewTimeOfDay(10, 0), End: calendar.NewTimeOfDay(10, 30)}},
	}, nil)
	f.appointments.EXPECT().BookedTimes(gomock.Any(), "doc-1", calendar.NewDate(2026, 10, 17)).Return(nil, nil)

	res, err := f.svc.Lookahead(context.Background(), "doc-1")

	require.NoError(t, err)
	require.Len(t, res.Days, 3)
	assert.Equal(t, "2026-10-16", res.Days[0].Date)
	assert.True(t, res.Days[0].OffDay)
	assert.False(t, res.Days[1].OffDay)
	assert.Equal(t, "Sat, Oct 17", res.Days[1].Formatted)
	assert.Len(t, res.Days[1].Slots, 2)
	assert.True(t, res.Days[2].OffDay)
}

func TestOpenDates(t *testing.T) {
	f := newFixture(t)

	f.schedule.EXPECT().ActiveWeek(gomock.Any(), "doc-1").Return(mondayMorning(), nil)
	f.appointments.EXPECT().BookedTimes(gomock.Any(), "doc-1", nextMonday).
		Return([]calendar.TimeOfDay{calendar.NewTimeOfDay(9, 0), calendar.NewTimeOfDay(9, 15)}, nil)

	days, err := f.svc.OpenDates(context.Background(), "doc-1", calendar.NewDate(2026, 10, 16), 7)

	require.NoError(t, err)
	assert.Empty(t, days, "a fully booked day is not open")
}

func TestCheckSlot(t *testing.T) {
	tests := []struct {
		name     string
		date     calendar.Date
		time     calendar.TimeOfDay
		wantKind failure.Kind
	}{
		{name: "valid", date: nextMonday, time: calendar.NewTimeOfDay(9, 15)},
		{name: "no schedule that weekday", date: nextTuesday, time: calendar.NewTimeOfDay(9, 0), wantKind: failure.KindNotAvailable},
		{name: "between slots", date: nextMonday, time: calendar.NewTimeOfDay(9, 5), wantKind: failure.KindNotAvailable},
		{name: "window end", date: nextMonday, time: calendar.NewTimeOfDay(9, 30), wantKind: failure.KindNotAvailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.schedule.EXPECT().ActiveWeek(gomock.Any(), "doc-1").Return(mondayMorning(), nil)

			err := f.svc.CheckSlot(context.Background(), "doc-1", tt.date, tt.time)
			if tt.wantKind == failure.KindUnknown {
				require.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantKind, failure.KindOf(err))
		})
	}
}
