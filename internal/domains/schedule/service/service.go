package service

import (
	"context"
	"fmt"
	"mediconnect/infras/otel"
	"mediconnect/internal/domains/schedule/model"
	"mediconnect/internal/domains/schedule/model/dto"
	"mediconnect/internal/domains/schedule/repository"
	"mediconnect/internal/domains/slot"
	"mediconnect/shared/account"
	"mediconnect/shared/cache"
	"mediconnect/shared/constant"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/failure"
	gModel "mediconnect/shared/model"
	"mediconnect/shared/timezone"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DayDeactivatedHandler reacts to a day being switched off. It runs inside the
// toggle call so the caller sees the outcome in the response.
type DayDeactivatedHandler interface {
	HandleDayDeactivated(ctx context.Context, event model.DayDeactivated) (model.CascadeReport, error)
}

type Schedule interface {
	ActiveDays(ctx context.Context, doctorID string) ([]model.Day, error)
	Entries(ctx context.Context, doctorID string, day model.Day) ([]model.Window, error)
	WeeklySchedule(ctx context.Context, doctorID string) (dto.WeeklyScheduleResponse, error)
	AddEntry(ctx context.Context, doctorID string, req dto.CreateEntryRequest) (dto.EntryResponse, error)
	DeleteEntry(ctx context.Context, doctorID, entryID string) error
	SetDayActive(ctx context.Context, doctorID string, day model.Day, active bool) (model.ToggleResult, error)
}

type serviceImpl struct {
	repo    repository.Schedule
	cache   cache.RedisCache
	otel    otel.Otel
	handler DayDeactivatedHandler
}

func New(repo repository.Schedule, cache cache.RedisCache, otel otel.Otel, handler DayDeactivatedHandler) Schedule {
	return &serviceImpl{
		repo:    repo,
		cache:   cache,
		otel:    otel,
		handler: handler,
	}
}

func (s *serviceImpl) ActiveDays(ctx context.Context, doctorID string) (res []model.Day, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.ActiveDays")
	defer scope.End()
	defer scope.TraceIfError(err)

	week, err := s.repo.ActiveWeek(ctx, doctorID)
	if err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to get active days")

		return nil, fmt.Errorf("failed to get active days: %w", err)
	}

	res = []model.Day{}

	for _, day := range model.Days {
		if len(week[day]) > 0 {
			res = append(res, day)
		}
	}

	return res, nil
}

// Entries returns the active consultation windows of one day ordered by start.
func (s *serviceImpl) Entries(ctx context.Context, doctorID string, day model.Day) (res []model.Window, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.Entries")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := repository.ActiveFilter(doctorID)
	filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldDayOfWeek, Value: day, Operator: gDto.FilterOperatorEq})

	entries, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to get schedule entries")

		return nil, fmt.Errorf("failed to get schedule entries: %w", err)
	}

	res = make([]model.Window, 0, len(entries))
	for _, entry := range entries {
		res = append(res, entry.Window())
	}

	return res, nil
}

func (s *serviceImpl) WeeklySchedule(ctx context.Context, doctorID string) (res dto.WeeklyScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.WeeklySchedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	entries, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}, doctorFilter(doctorID))
	if err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to get weekly schedule")

		return res, fmt.Errorf("failed to get weekly schedule: %w", err)
	}

	res.FromModels(doctorID, entries)

	return res, nil
}

func (s *serviceImpl) AddEntry(ctx context.Context, doctorID string, req dto.CreateEntryRequest) (res dto.EntryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.AddEntry")
	defer scope.End()
	defer scope.TraceIfError(err)

	day, start, end, err := req.Parse()
	if err != nil {
		return res, err
	}

	if !start.Before(end) {
		return res, failure.BadRequestFromString("start_time must be before end_time") // nolint:wrapcheck
	}

	entry := model.Entry{
		ID:        uuid.NewString(),
		DoctorID:  doctorID,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
		SlotKind:  model.SlotKindConsultation,
		IsActive:  true,
		Metadata:  gModel.NewMetadata(account.Actor(ctx), timezone.Now()),
	}

	if err = s.repo.Insert(ctx, entry); err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to add schedule entry")

		return res, fmt.Errorf("failed to add schedule entry: %w", err)
	}

	slot.Invalidate(ctx, s.cache, doctorID)

	res.FromModel(entry)

	return res, nil
}

// DeleteEntry removes one window. Appointments already booked inside it are left alone.
func (s *serviceImpl) DeleteEntry(ctx context.Context, doctorID, entryID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.DeleteEntry")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := entryFilter(doctorID, entryID)

	entry, err := s.repo.Get(ctx, filter, model.FieldID)
	if err != nil {
		log.Error().Err(err).Str("entryID", entryID).Msg("failed to get schedule entry")

		return fmt.Errorf("failed to get schedule entry: %w", err)
	}

	if entry.ID == constant.Empty {
		return failure.NotFound("schedule entry not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("entryID", entryID).Msg("failed to delete schedule entry")

		return fmt.Errorf("failed to delete schedule entry: %w", err)
	}

	slot.Invalidate(ctx, s.cache, doctorID)

	return nil
}

// SetDayActive switches every entry of day on or off. Turning a day off raises
// DayDeactivated and waits for the handler; a failed cascade is returned as an
// internal failure with the toggle already persisted.
func (s *serviceImpl) SetDayActive(ctx context.Context, doctorID string, day model.Day, active bool) (res model.ToggleResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".schedule.SetDayActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := doctorFilter(doctorID)
	filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldDayOfWeek, Value: day, Operator: gDto.FilterOperatorEq})

	entries, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter, model.FieldID, model.FieldIsActive)
	if err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to get schedule entries")

		return res, fmt.Errorf("failed to get schedule entries: %w", err)
	}

	if len(entries) == 0 {
		return res, failure.NotFound(fmt.Sprintf("no schedule entries on %s", day.Title())) // nolint:wrapcheck
	}

	wasActive := slices.ContainsFunc(entries, func(e model.Entry) bool { return e.IsActive })

	now := timezone.Now()

	updated, err := s.repo.UpdateCount(ctx, map[string]any{
		model.FieldIsActive:      active,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: account.Actor(ctx),
	}, filter)
	if err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Msg("failed to toggle schedule day")

		return res, fmt.Errorf("failed to toggle schedule day: %w", err)
	}

	slot.Invalidate(ctx, s.cache, doctorID)

	res = model.ToggleResult{Day: day, Active: active, Updated: updated}

	if active || s.handler == nil {
		return res, nil
	}

	// A day that is already off still cascades: flagging is guarded, so a
	// retry only picks up what an earlier failed run left behind.
	report, err := s.handler.HandleDayDeactivated(ctx, model.DayDeactivated{DoctorID: doctorID, Day: day, At: now})
	if err != nil {
		log.Error().Err(err).Str("doctorID", doctorID).Str("day", string(day)).Bool("wasActive", wasActive).Msg("day deactivation cascade failed")

		res.Cascade = &report

		return res, failure.InternalError(fmt.Errorf("%s is off but rescheduling affected appointments failed, deactivate again to retry: %w", day.Title(), err)) // nolint:wrapcheck
	}

	res.Cascade = &report

	return res, nil
}

func doctorFilter(doctorID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldDoctorID, Value: doctorID, Operator: gDto.FilterOperatorEq},
		},
	}
}

func entryFilter(doctorID, entryID string) gDto.FilterGroup {
	filter := doctorFilter(doctorID)
	filter.Filters = append(filter.Filters, gDto.Filter{Field: model.FieldID, Value: entryID, Operator: gDto.FilterOperatorEq})

	return filter
}
