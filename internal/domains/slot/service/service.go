package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"mediconnect/config"
	"mediconnect/infras/otel"
	appointmentRepo "mediconnect/internal/domains/appointment/repository"
	scheduleModel "mediconnect/internal/domains/schedule/model"
	scheduleRepo "mediconnect/internal/domains/schedule/repository"
	"mediconnect/internal/domains/slot"
	"mediconnect/internal/domains/slot/model/dto"
	"mediconnect/shared/cache"
	"mediconnect/shared/calendar"
	"mediconnect/shared/constant"
	"mediconnect/shared/failure"
	"mediconnect/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Slot interface {
	Availability(ctx context.Context, doctorID string, date calendar.Date) (dto.Availability, error)
	Lookahead(ctx context.Context, doctorID string) (dto.LookaheadResponse, error)
	OpenDates(ctx context.Context, doctorID string, from calendar.Date, days int) ([]dto.Availability, error)
	CheckSlot(ctx context.Context, doctorID string, date calendar.Date, t calendar.TimeOfDay) error
	Invalidate(ctx context.Context, doctorIDs ...string)
}

type serviceImpl struct {
	scheduleRepo    scheduleRepo.Schedule
	appointmentRepo appointmentRepo.Appointment
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(scheduleRepo scheduleRepo.Schedule, appointmentRepo appointmentRepo.Appointment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Slot {
	return &serviceImpl{
		scheduleRepo:    scheduleRepo,
		appointmentRepo: appointmentRepo,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

// Availability lists the open slots of one doctor-day. It accepts any date;
// callers reject past ones. For today, times that already started are dropped.
func (s *serviceImpl) Availability(ctx context.Context, doctorID string, date calendar.Date) (res dto.Availability, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Availability")
	defer scope.End()
	defer scope.TraceIfError(err)

	week, err := s.scheduleRepo.ActiveWeek(ctx, doctorID)
	if err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to get doctor schedule")

		return res, fmt.Errorf("failed to get doctor schedule: %w", err)
	}

	res, err = s.availability(ctx, doctorID, date, week)
	if err != nil {
		return res, err
	}

	return dropStarted(res, date), nil
}

// Lookahead covers the default booking view: the configured number of days
// starting tomorrow, off days included.
func (s *serviceImpl) Lookahead(ctx context.Context, doctorID string) (res dto.LookaheadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.Lookahead")
	defer scope.End()
	defer scope.TraceIfError(err)

	week, err := s.scheduleRepo.ActiveWeek(ctx, doctorID)
	if err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to get doctor schedule")

		return res, fmt.Errorf("failed to get doctor schedule: %w", err)
	}

	res = dto.LookaheadResponse{DoctorID: doctorID, Days: []dto.Availability{}}

	for _, date := range calendar.Today().AddDays(1).Range(s.cfg.Scheduling.BookingLookaheadDays) {
		day, err := s.availability(ctx, doctorID, date, week)
		if err != nil {
			return res, err
		}

		res.Days = append(res.Days, day)
	}

	return res, nil
}

// OpenDates returns the days in [from, from+days) that have at least one slot.
func (s *serviceImpl) OpenDates(ctx context.Context, doctorID string, from calendar.Date, days int) (res []dto.Availability, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.OpenDates")
	defer scope.End()
	defer scope.TraceIfError(err)

	week, err := s.scheduleRepo.ActiveWeek(ctx, doctorID)
	if err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to get doctor schedule")

		return nil, fmt.Errorf("failed to get doctor schedule: %w", err)
	}

	res = []dto.Availability{}

	for _, date := range from.Range(days) {
		day, err := s.availability(ctx, doctorID, date, week)
		if err != nil {
			return nil, err
		}

		if day.OffDay || len(day.Slots) == 0 {
			continue
		}

		res = append(res, day)
	}

	return res, nil
}

// CheckSlot verifies that t is a slot instant of one of the doctor's active
// windows on date's weekday. It does not look at bookings.
func (s *serviceImpl) CheckSlot(ctx context.Context, doctorID string, date calendar.Date, t calendar.TimeOfDay) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".slot.CheckSlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	week, err := s.scheduleRepo.ActiveWeek(ctx, doctorID)
	if err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to get doctor schedule")

		return fmt.Errorf("failed to get doctor schedule: %w", err)
	}

	day := scheduleModel.DayOf(date.Weekday())

	windows := week[day]
	if len(windows) == 0 {
		return failure.NotAvailable(fmt.Sprintf("doctor is not available on %s", day.Title())) // nolint:wrapcheck
	}

	if !slot.Contains(windows, t) {
		return failure.NotAvailable(fmt.Sprintf("%s is not a valid slot on %s", t.Display(), day.Title())) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) Invalidate(ctx context.Context, doctorIDs ...string) {
	for _, id := range doctorIDs {
		slot.Invalidate(ctx, s.cache, id)
	}
}

func (s *serviceImpl) availability(ctx context.Context, doctorID string, date calendar.Date, week scheduleModel.Week) (res dto.Availability, err error) {
	windows := week[scheduleModel.DayOf(date.Weekday())]
	if len(windows) == 0 {
		return dto.NewAvailability(date, true, nil), nil
	}

	generation, cacheable := s.generation(ctx, doctorID)
	cacheKey := slot.VersionedKey(doctorID, date, generation)

	if cacheable {
		if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
			return res, nil
		}
	}

	booked, err := s.appointmentRepo.BookedTimes(ctx, doctorID, date)
	if err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to get booked times")

		return res, fmt.Errorf("failed to get booked times: %w", err)
	}

	res = dto.NewAvailability(date, false, slot.Generate(windows, booked))

	// The key carries the generation read before BookedTimes; a write that
	// lands in between bumps it, so this entry is never served.
	if cacheable {
		if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save availability to cache")
		}
	}

	return res, nil
}

// generation reads the doctor's invalidation counter. The second result is
// false when redis cannot be read, which bypasses the cache.
func (s *serviceImpl) generation(ctx context.Context, doctorID string) (int64, bool) {
	var generation int64

	err := s.cache.Get(ctx, slot.GenerationKey(doctorID), &generation)
	if err == nil {
		return generation, true
	}

	if errors.Is(err, cache.Nil) {
		return 0, true
	}

	log.Warn().Err(err).Str("doctorID", doctorID).Msg("failed to read availability generation")

	return 0, false
}

func dropStarted(day dto.Availability, date calendar.Date) dto.Availability {
	if !date.Equal(calendar.Today()) {
		return day
	}

	now := calendar.TimeOf(timezone.Now())
	open := make([]dto.Slot, 0, len(day.Slots))

	for _, s := range day.Slots {
		t, err := calendar.ParseTimeOfDay(s.Time)
		if err == nil && now.Before(t) {
			open = append(open, s)
		}
	}

	day.Slots = open

	return day
}
