package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mediconnect/config"
	"mediconnect/infras/otel/mocks"
	doctorMocks "mediconnect/internal/domains/doctor/mocks"
	"mediconnect/internal/domains/doctor/model"
	"mediconnect/internal/domains/doctor/service"
	"mediconnect/shared/cache/cachetest"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/failure"
)

func newService(t *testing.T) (service.Doctor, *doctorMocks.MockDoctor) {
	ctrl := gomock.NewController(t)
	mockRepo := doctorMocks.NewMockDoctor(ctrl)
	redisCache, _ := cachetest.New(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(mockRepo, cfg, redisCache, mocks.NewOtel()), mockRepo
}

func TestDoctorService_GetAll(t *testing.T) {
	cardiologist := model.Doctor{
		ID:             "doc-1",
		Name:           "Dr. Rao",
		Specialization: model.SpecializationCardiology,
		RoomLocation:   "Room 101",
		IsAvailable:    true,
		IsActive:       true,
	}

	tests := []struct {
		name           string
		specialization string
		setupMock      func(repo *doctorMocks.MockDoctor)
		wantErr        bool
		wantKind       failure.Kind
		wantDoctors    int
	}{
		{
			name:           "filters by specialization",
			specialization: "Cardiology",
			setupMock: func(repo *doctorMocks.MockDoctor) {
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				repo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Doctor, error) {
						assert.Equal(t, model.FieldName, params.SortBy)
						assert.Len(t, filter.Filters, 3)

						return []model.Doctor{cardiologist}, nil
					})
			},
			wantDoctors: 1,
		},
		{
			name:           "unknown specialization",
			specialization: "astrology",
			setupMock:      func(_ *doctorMocks.MockDoctor) {},
			wantErr:        true,
			wantKind:       failure.KindValidation,
		},
		{
			name: "count error",
			setupMock: func(repo *doctorMocks.MockDoctor) {
				repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.setupMock(repo)

			res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, tt.specialization)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.KindOf(err))

				return
			}

			require.NoError(t, err)
			assert.Len(t, res.Doctors, tt.wantDoctors)
			assert.Equal(t, "cardiology", res.Doctors[0].Specialization)
			assert.True(t, res.Doctors[0].IsAvailable)
		})
	}
}

func TestDoctorService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Doctor{}, nil)

		_, err := svc.Get(context.Background(), "missing")

		assert.True(t, failure.Is(err, failure.KindNotFound))
	})

	t.Run("found", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Doctor{ID: "doc-1", Name: "Dr. Rao", IsActive: true}, nil)

		res, err := svc.Get(context.Background(), "doc-1")

		require.NoError(t, err)
		assert.Equal(t, "Dr. Rao", res.Name)
		assert.False(t, res.IsAvailable)
	})
}

func TestDoctorService_Specializations(t *testing.T) {
	svc, _ := newService(t)

	res := svc.Specializations(context.Background())

	require.Len(t, res, len(model.Specializations))
	assert.Equal(t, "cardiology", res[0].Value)
	assert.Equal(t, "Cardiology", res[0].Label)
}
