package service

import (
	"context"
	"fmt"
	"mediconnect/config"
	"mediconnect/infras/otel"
	"mediconnect/internal/domains/doctor/model"
	"mediconnect/internal/domains/doctor/model/dto"
	"mediconnect/internal/domains/doctor/repository"
	"mediconnect/shared"
	"mediconnect/shared/cache"
	"mediconnect/shared/constant"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/failure"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetDoctor    = "doctor:get"
	cacheGetAllDoctor = "doctor:gets"
)

type Doctor interface {
	GetAll(ctx context.Context, req gDto.QueryParams, specialization string) (dto.GetDoctorsResponse, error)
	Get(ctx context.Context, id string) (dto.DoctorResponse, error)
	Specializations(ctx context.Context) []dto.SpecializationResponse
}

type serviceImpl struct {
	repo  repository.Doctor
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Doctor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Doctor {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// BookableFilter matches doctors that accept new appointments.
func BookableFilter() gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldIsAvailable, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldIsActive, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

// GetAll lists bookable doctors, optionally narrowed to one specialization.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, specialization string) (res dto.GetDoctorsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".doctor.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := BookableFilter()

	if specialization != constant.Empty {
		spec := model.Specialization(strings.ToLower(specialization))
		if !spec.Valid() {
			return res, failure.BadRequestFromString(fmt.Sprintf("unknown specialization %q", specialization)) // nolint:wrapcheck
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldSpecialization,
			Value:    string(spec),
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if req.SortBy == constant.Empty {
		req.SortBy = model.FieldName
		req.SortDir = gDto.SortDirAsc
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllDoctor, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for doctors")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count doctors")

		return res, fmt.Errorf("failed to count doctors: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctors")

		return res, fmt.Errorf("failed to get doctors: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctors to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.DoctorResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".doctor.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetDoctor, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	doctor, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get doctor")

		return res, fmt.Errorf("failed to get doctor: %w", err)
	}

	if doctor.ID == constant.Empty {
		return res, failure.NotFound("doctor not found") // nolint:wrapcheck
	}

	res.FromModel(doctor)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save doctor to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Specializations(ctx context.Context) []dto.SpecializationResponse {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".doctor.Specializations")
	defer scope.End()

	return dto.SpecializationsResponse()
}
