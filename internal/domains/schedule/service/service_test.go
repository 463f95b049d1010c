package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mediconnect/infras/otel/mocks"
	scheduleMocks "mediconnect/internal/domains/schedule/mocks"
	"mediconnect/internal/domains/schedule/model"
	"mediconnect/internal/domains/schedule/model/dto"
	"mediconnect/internal/domains/schedule/service"
	"mediconnect/internal/domains/slot"
	"mediconnect/shared/cache/cachetest"
	"mediconnect/shared/calendar"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/failure"
)

type handlerFunc func(ctx context.Context, event model.DayDeactivated) (model.CascadeReport, error)

func (f handlerFunc) HandleDayDeactivated(ctx context.Context, event model.DayDeactivated) (model.CascadeReport, error) {
	return f(ctx, event)
}

func entry(id string, day model.Day, sh, sm, eh, em int, active bool) model.Entry {
	return model.Entry{
		ID:        id,
		DoctorID:  "doc-1",
		DayOfWeek: day,
		StartTime: calendar.NewTimeOfDay(sh, sm),
		EndTime:   calendar.NewTimeOfDay(eh, em),
		SlotKind:  model.SlotKindConsultation,
		IsActive:  active,
	}
}

func TestScheduleService_SetDayActive(t *testing.T) {
	tests := []struct {
		name        string
		active      bool
		entries     []model.Entry
		getErr      error
		wantCalls   int
		wantKind    failure.Kind
		wantErr     bool
		wantCascade bool
	}{
		{
			name:        "deactivating an active day runs the cascade once",
			entries:     []model.Entry{entry("e-1", model.Monday, 9, 0, 12, 0, true), entry("e-2", model.Monday, 14, 0, 16, 0, false)},
			wantCalls:   1,
			wantCascade: true,
		},
		{
			name:        "deactivating an already inactive day re-runs the cascade",
			entries:     []model.Entry{entry("e-1", model.Monday, 9, 0, 12, 0, false)},
			wantCalls:   1,
			wantCascade: true,
		},
		{
			name:    "activating never cascades",
			active:  true,
			entries: []model.Entry{entry("e-1", model.Monday, 9, 0, 12, 0, false)},
		},
		{
			name:     "day without entries",
			entries:  []model.Entry{},
			wantErr:  true,
			wantKind: failure.KindNotFound,
		},
		{
			name:    "repository failure",
			getErr:  errors.New("database error"),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := scheduleMocks.NewMockSchedule(ctrl)
			redisCache, server := cachetest.New(t)

			require.NoError(t, server.Set(slot.CacheKey("doc-1", calendar.NewDate(2026, 10, 19)), "{}"))

			calls := 0
			handler := handlerFunc(func(_ context.Context, event model.DayDeactivated) (model.CascadeReport, error) {
				calls++

				assert.Equal(t, "doc-1", event.DoctorID)
				assert.Equal(t, model.Monday, event.Day)

				return model.CascadeReport{Flagged: []string{"apt-1"}, Notified: 1}, nil
			})

			repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.entries, tt.getErr)

			if len(tt.entries) > 0 {
				repo.EXPECT().
					UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, mod map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, tt.active, mod[model.FieldIsActive])

						return int64(len(tt.entries)), nil
					})
			}

			svc := service.New(repo, redisCache, mocks.NewOtel(), handler)

			res, err := svc.SetDayActive(context.Background(), "doc-1", model.Monday, tt.active)
			if tt.wantErr {
				require.Error(t, err)

				if tt.wantKind != failure.KindUnknown {
					assert.Equal(t, tt.wantKind, failure.KindOf(err))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, int64(len(tt.entries)), res.Updated)
			assert.False(t, server.Exists(slot.CacheKey("doc-1", calendar.NewDate(2026, 10, 19))))

			if tt.wantCascade {
				require.NotNil(t, res.Cascade)
				assert.Equal(t, []string{"apt-1"}, res.Cascade.Flagged)
			} else {
				assert.Nil(t, res.Cascade)
			}
		})
	}
}

func TestScheduleService_SetDayActiveCascadeError(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := scheduleMocks.NewMockSchedule(ctrl)
	redisCache, _ := cachetest.New(t)

	gomock.InOrder(
		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Entry{entry("e-1", model.Friday, 9, 0, 12, 0, true)}, nil),
		repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil),
		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Entry{entry("e-1", model.Friday, 9, 0, 12, 0, false)}, nil),
		repo.EXPECT().UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(1), nil),
	)

	calls := 0
	handler := handlerFunc(func(context.Context, model.DayDeactivated) (model.CascadeReport, error) {
		calls++
		if calls == 1 {
			return model.CascadeReport{Flagged: []string{}, Failed: []string{}}, errors.New("appointments unavailable")
		}

		return model.CascadeReport{Flagged: []string{"apt-1"}, Notified: 1, Failed: []string{}}, nil
	})

	svc := service.New(repo, redisCache, mocks.NewOtel(), handler)

	res, err := svc.SetDayActive(context.Background(), "doc-1", model.Friday, false)

	require.Error(t, err)
	assert.Equal(t, failure.KindInternal, failure.KindOf(err))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	assert.ErrorContains(t, err, "appointments unavailable")
	assert.False(t, res.Active)
	assert.NotNil(t, res.Cascade)

	res, err = svc.SetDayActive(context.Background(), "doc-1", model.Friday, false)

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	require.NotNil(t, res.Cascade)
	assert.Equal(t, []string{"apt-1"}, res.Cascade.Flagged)
}

func TestScheduleService_AddEntry(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.CreateEntryRequest
		setup    func(repo *scheduleMocks.MockSchedule)
		wantErr  bool
		wantKind failure.Kind
	}{
		{
			name: "adds entry",
			req:  dto.CreateEntryRequest{Day: "Monday", StartTime: "09:00", EndTime: "12:30 PM"},
			setup: func(repo *scheduleMocks.MockSchedule) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e model.Entry) error {
					assert.Equal(t, model.Monday, e.DayOfWeek)
					assert.Equal(t, "12:30", e.EndTime.Clock())
					assert.True(t, e.IsActive)
					assert.Equal(t, model.SlotKindConsultation, e.SlotKind)

					return nil
				})
			},
		},
		{
			name:     "start after end",
			req:      dto.CreateEntryRequest{Day: "monday", StartTime: "13:00", EndTime: "09:00"},
			setup:    func(_ *scheduleMocks.MockSchedule) {},
			wantErr:  true,
			wantKind: failure.KindValidation,
		},
		{
			name:     "equal start and end",
			req:      dto.CreateEntryRequest{Day: "monday", StartTime: "09:00", EndTime: "09:00"},
			setup:    func(_ *scheduleMocks.MockSchedule) {},
			wantErr:  true,
			wantKind: failure.KindValidation,
		},
		{
			name:     "unknown day",
			req:      dto.CreateEntryRequest{Day: "funday", StartTime: "09:00", EndTime: "10:00"},
			setup:    func(_ *scheduleMocks.MockSchedule) {},
			wantErr:  true,
			wantKind: failure.KindValidation,
		},
		{
			name: "insert failure",
			req:  dto.CreateEntryRequest{Day: "tuesday", StartTime: "09:00", EndTime: "10:00"},
			setup: func(repo *scheduleMocks.MockSchedule) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := scheduleMocks.NewMockSchedule(ctrl)
			redisCache, _ := cachetest.New(t)
			tt.setup(repo)

			res, err := service.New(repo, redisCache, mocks.NewOtel(), nil).AddEntry(context.Background(), "doc-1", tt.req)
			if tt.wantErr {
				require.Error(t, err)

				if tt.wantKind != failure.KindUnknown {
					assert.Equal(t, tt.wantKind, failure.KindOf(err))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "monday", res.Day)
			assert.Equal(t, "9:00 AM - 12:30 PM", res.Display)
		})
	}
}

func TestScheduleService_DeleteEntry(t *testing.T) {
	t.Run("entry of another doctor", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := scheduleMocks.NewMockSchedule(ctrl)
		redisCache, _ := cachetest.New(t)

		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Entry{}, nil)

		err := service.New(repo, redisCache, mocks.NewOtel(), nil).DeleteEntry(context.Background(), "doc-1", "e-9")

		assert.Equal(t, failure.KindNotFound, failure.KindOf(err))
	})

	t.Run("deletes without cascading", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := scheduleMocks.NewMockSchedule(ctrl)
		redisCache, _ := cachetest.New(t)

		handler := handlerFunc(func(context.Context, model.DayDeactivated) (model.CascadeReport, error) {
			t.Fatal("delete must not cascade")

			return model.CascadeReport{}, nil
		})

		repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Entry{ID: "e-1"}, nil)
		repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		require.NoError(t, service.New(repo, redisCache, mocks.NewOtel(), handler).DeleteEntry(context.Background(), "doc-1", "e-1"))
	})
}

func TestScheduleService_ReadSide(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := scheduleMocks.NewMockSchedule(ctrl)
	redisCache, _ := cachetest.New(t)
	svc := service.New(repo, redisCache, mocks.NewOtel(), nil)

	repo.EXPECT().ActiveWeek(gomock.Any(), "doc-1").Return(model.Week{
		model.Friday: {{Start: calendar.NewTimeOfDay(9, 0), End: calendar.NewTimeOfDay(10, 0)}},
		model.Monday: {{Start: calendar.NewTimeOfDay(9, 0), End: calendar.NewTimeOfDay(10, 0)}},
	}, nil)

	days, err := svc.ActiveDays(context.Background(), "doc-1")
	require.NoError(t, err)
	assert.Equal(t, []model.Day{model.Monday, model.Friday}, days)

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Entry{
		entry("e-1", model.Monday, 9, 0, 10, 0, true),
	}, nil)

	windows, err := svc.Entries(context.Background(), "doc-1", model.Monday)
	require.NoError(t, err)
	require.Len(t, windows, 1)
	assert.Equal(t, "09:00", windows[0].Start.Clock())

	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Entry{
		entry("e-1", model.Monday, 9, 0, 10, 0, true),
		entry("e-2", model.Sunday, 9, 0, 10, 0, false),
	}, nil)

	week, err := svc.WeeklySchedule(context.Background(), "doc-1")
	require.NoError(t, err)
	require.Len(t, week.Days, 7)
	assert.True(t, week.Days[0].Active)
	assert.Len(t, week.Days[0].Entries, 1)
	assert.False(t, week.Days[6].Active)
	assert.Equal(t, "Sunday", week.Days[6].Label)
}
