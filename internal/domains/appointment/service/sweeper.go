package service

//go:generate go run go.uber.org/mock/mockgen -source=./sweeper.go -destination=../mocks/sweeper_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mediconnect/config"
	"mediconnect/infras/otel"
	"mediconnect/internal/domains/appointment/model"
	"mediconnect/internal/domains/appointment/repository"
	notificationService "mediconnect/internal/domains/notification/service"
	"mediconnect/shared/account"
	"mediconnect/shared/constant"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

// Sweeper holds the time-driven transitions. Every update is guarded on the
// status the row was selected in, so running a sweep twice changes nothing
// the second time.
type Sweeper interface {
	SweepMissed(ctx context.Context) (model.SweepResult, error)
	SweepExpiredReschedule(ctx context.Context) (model.SweepResult, error)
	SweepReminders(ctx context.Context) (model.SweepResult, error)
	SweepRescheduleReminders(ctx context.Context) (model.SweepResult, error)
}

type sweeperImpl struct {
	repo     repository.Appointment
	notifier notificationService.Notifier
	cfg      *config.Config
	otel     otel.Otel
}

func NewSweeper(repo repository.Appointment, notifier notificationService.Notifier, cfg *config.Config, otel otel.Otel) Sweeper {
	return &sweeperImpl{
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
		otel:     otel,
	}
}

// SweepMissed marks active appointments missed once their start is more than
// MissedAfterHours in the past.
func (s *sweeperImpl) SweepMissed(ctx context.Context) (res model.SweepResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sweeper.SweepMissed")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.Name = model.SweepMissed
	cutoff := timezone.Now().Add(-time.Duration(s.cfg.Scheduling.MissedAfterHours) * time.Hour)

	return s.transition(ctx, res, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			repository.StatusIn(model.ActiveStatuses...),
			repository.StartsAtOrBefore(cutoff),
		},
	}, model.ActiveStatuses, model.StatusMissed)
}

// SweepExpiredReschedule cancels flagged appointments the patient left alone
// for RescheduleExpiryHours. No notification goes out.
func (s *sweeperImpl) SweepExpiredReschedule(ctx context.Context) (res model.SweepResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sweeper.SweepExpiredReschedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.Name = model.SweepExpiredReschedule
	cutoff := timezone.Now().Add(-time.Duration(s.cfg.Scheduling.RescheduleExpiryHours) * time.Hour)
	flagged := []model.Status{model.StatusNeedsRescheduling}

	return s.transition(ctx, res, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			repository.StatusIn(flagged...),
			repository.StatusChangedAtOrBefore(cutoff),
		},
	}, flagged, model.StatusCancelled)
}

// SweepReminders notifies patients whose appointment starts about
// ReminderLeadMinutes from now.
func (s *sweeperImpl) SweepReminders(ctx context.Context) (res model.SweepResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sweeper.SweepReminders")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.Name = model.SweepReminders
	lead := timezone.Now().Add(time.Duration(s.cfg.Scheduling.ReminderLeadMinutes) * time.Minute)
	window := time.Duration(s.cfg.Scheduling.ReminderWindowMinutes) * time.Minute

	return s.remind(ctx, res, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			repository.StatusIn(model.ActiveStatuses...),
			repository.NotReminded(),
			repository.StartsAtOrAfter(lead.Add(-window)),
			repository.StartsAtOrBefore(lead.Add(window)),
		},
	}, model.ActiveStatuses, s.notifier.NotifyUpcoming)
}

// SweepRescheduleReminders nudges patients who have not acted on a flagged
// appointment for RescheduleReminderHours. Each appointment is nudged once.
func (s *sweeperImpl) SweepRescheduleReminders(ctx context.Context) (res model.SweepResult, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sweeper.SweepRescheduleReminders")
	defer scope.End()
	defer scope.TraceIfError(err)

	res.Name = model.SweepRescheduleReminders
	cutoff := timezone.Now().Add(-time.Duration(s.cfg.Scheduling.RescheduleReminderHours) * time.Hour)
	flagged := []model.Status{model.StatusNeedsRescheduling}

	return s.remind(ctx, res, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			repository.StatusIn(flagged...),
			repository.NotReminded(),
			repository.StatusChangedAtOrBefore(cutoff),
		},
	}, flagged, s.notifier.NotifyRescheduleReminder)
}

func (s *sweeperImpl) transition(ctx context.Context, res model.SweepResult, where gDto.FilterGroup, from []model.Status, to model.Status) (model.SweepResult, error) {
	rows, err := s.repo.GetAll(ctx, gDto.QueryParams{}, where)
	if err != nil {
		log.Error().Err(err).Str("sweep", res.Name).Msg("failed to scan appointments")

		return res, fmt.Errorf("failed to scan appointments for %s: %w", res.Name, err)
	}

	res.Scanned = len(rows)

	for _, row := range rows {
		now := timezone.Now()

		updated, err := s.repo.UpdateCount(ctx, map[string]any{
			model.FieldStatus:          to,
			model.FieldStatusChangedAt: now,
			constant.FieldModifiedAt:   now,
			constant.FieldModifiedBy:   account.SystemActor,
		}, repository.Guarded(row.ID, from...))
		if err != nil {
			log.Error().Err(err).Str("sweep", res.Name).Str("appointmentID", row.ID).Msg("failed to update appointment")

			res.Failed++

			continue
		}

		res.Updated += int(updated)
	}

	return res, nil
}

// remind sends one notification per row and only marks the row once the
// notification went out, so a failed send is retried on the next run.
func (s *sweeperImpl) remind(
	ctx context.Context,
	res model.SweepResult,
	where gDto.FilterGroup,
	from []model.Status,
	notify func(context.Context, model.Appointment) error,
) (model.SweepResult, error) {
	rows, err := s.repo.GetAll(ctx, gDto.QueryParams{}, where)
	if err != nil {
		log.Error().Err(err).Str("sweep", res.Name).Msg("failed to scan appointments")

		return res, fmt.Errorf("failed to scan appointments for %s: %w", res.Name, err)
	}

	res.Scanned = len(rows)

	for _, row := range rows {
		if err := notify(ctx, row); err != nil {
			log.Warn().Err(err).Str("sweep", res.Name).Str("appointmentID", row.ID).Msg("failed to send reminder")

			res.Failed++

			continue
		}

		guard := repository.Guarded(row.ID, from...)
		guard.Filters = append(guard.Filters, repository.NotReminded())

		updated, err := s.repo.UpdateCount(ctx, map[string]any{
			model.FieldReminderSent:  true,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: account.SystemActor,
		}, guard)
		if err != nil {
			log.Error().Err(err).Str("sweep", res.Name).Str("appointmentID", row.ID).Msg("failed to mark reminder sent")

			res.Failed++

			continue
		}

		res.Updated += int(updated)
	}

	return res, nil
}
