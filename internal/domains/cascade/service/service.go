// Package service reacts to a doctor switching a weekday off. Every pending
// or confirmed appointment on that weekday within the horizon is flagged
// needs_rescheduling and the patient is told once.
package service

import (
	"context"
	"fmt"
	"mediconnect/config"
	"mediconnect/infras/metrics"
	"mediconnect/infras/otel"
	appointmentModel "mediconnect/internal/domains/appointment/model"
	appointmentRepo "mediconnect/internal/domains/appointment/repository"
	notificationService "mediconnect/internal/domains/notification/service"
	scheduleModel "mediconnect/internal/domains/schedule/model"
	slotService "mediconnect/internal/domains/slot/service"
	"mediconnect/shared/account"
	"mediconnect/shared/calendar"
	"mediconnect/shared/constant"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Cascade interface {
	HandleDayDeactivated(ctx context.Context, event scheduleModel.DayDeactivated) (scheduleModel.CascadeReport, error)
}

type serviceImpl struct {
	appointments appointmentRepo.Appointment
	notifier     notificationService.Notifier
	slots        slotService.Slot
	metrics      *metrics.Metrics
	cfg          *config.Config
	otel         otel.Otel
}

func New(
	appointments appointmentRepo.Appointment,
	notifier notificationService.Notifier,
	slots slotService.Slot,
	m *metrics.Metrics,
	cfg *config.Config,
	otel otel.Otel,
) Cascade {
	return &serviceImpl{
		appointments: appointments,
		notifier:     notifier,
		slots:        slots,
		metrics:      m,
		cfg:          cfg,
		otel:         otel,
	}
}

// HandleDayDeactivated flags first and notifies after, so a notification
// outage never leaves an appointment on a day the doctor no longer works.
func (s *serviceImpl) HandleDayDeactivated(ctx context.Context, event scheduleModel.DayDeactivated) (report scheduleModel.CascadeReport, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".cascade.HandleDayDeactivated")
	defer scope.End()
	defer scope.TraceIfError(err)

	report = scheduleModel.CascadeReport{Flagged: []string{}, Failed: []string{}}

	dates := AffectedDates(calendar.Today(), event.Day, s.cfg.Scheduling.CascadeHorizonDays)
	if len(dates) == 0 {
		return report, nil
	}

	rows, err := s.appointments.GetAll(ctx, gDto.QueryParams{SortBy: appointmentModel.FieldDate, SortDir: gDto.SortDirAsc}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			appointmentRepo.ByDoctor(event.DoctorID),
			appointmentRepo.StatusIn(appointmentModel.ActiveStatuses...),
			appointmentRepo.OnDates(dates...),
		},
	})
	if err != nil {
		log.Error().Err(err).Str("doctorID", event.DoctorID).Str("day", string(event.Day)).Msg("failed to load affected appointments")

		return report, fmt.Errorf("failed to load affected appointments: %w", err)
	}

	flagged := make([]appointmentModel.Appointment, 0, len(rows))

	for _, row := range rows {
		ok, err := s.flag(ctx, row)
		if err != nil {
			log.Error().Err(err).Str("appointmentID", row.ID).Msg("failed to flag appointment for rescheduling")

			report.Failed = append(report.Failed, row.ID)

			continue
		}

		if !ok {
			continue
		}

		row.Status = appointmentModel.StatusNeedsRescheduling
		row.ReminderSent = false

		flagged = append(flagged, row)
		report.Flagged = append(report.Flagged, row.ID)
	}

	for _, row := range flagged {
		if err := s.notifier.NotifyRescheduleNeeded(ctx, row); err != nil {
			log.Warn().Err(err).Str("appointmentID", row.ID).Msg("failed to notify patient about rescheduling")

			continue
		}

		report.Notified++
	}

	s.metrics.ObserveCascade(len(report.Flagged), report.Notified, len(report.Failed))

	if len(report.Flagged) > 0 {
		s.slots.Invalidate(ctx, event.DoctorID)
	}

	log.Info().
		Str("doctorID", event.DoctorID).
		Str("day", string(event.Day)).
		Int("flagged", len(report.Flagged)).
		Int("notified", report.Notified).
		Int("failed", len(report.Failed)).
		Msg("off-day cascade finished")

	return report, nil
}

// flag reports false when the row left pending/confirmed before the update.
func (s *serviceImpl) flag(ctx context.Context, row appointmentModel.Appointment) (bool, error) {
	now := timezone.Now()

	updated, err := s.appointments.UpdateCount(ctx, map[string]any{
		appointmentModel.FieldStatus:          appointmentModel.StatusNeedsRescheduling,
		appointmentModel.FieldStatusChangedAt: now,
		appointmentModel.FieldReminderSent:    false,
		constant.FieldModifiedAt:              now,
		constant.FieldModifiedBy:              account.Actor(ctx),
	}, appointmentRepo.Guarded(row.ID, appointmentModel.ActiveStatuses...))
	if err != nil {
		return false, fmt.Errorf("failed to flag appointment: %w", err)
	}

	if updated == 1 {
		s.metrics.ObserveTransition(string(appointmentModel.StatusNeedsRescheduling))
	}

	return updated == 1, nil
}

// AffectedDates lists the days in from..from+horizon that fall on day.
func AffectedDates(from calendar.Date, day scheduleModel.Day, horizon int) []calendar.Date {
	dates := []calendar.Date{}

	for _, d := range from.Range(horizon + 1) {
		if scheduleModel.DayOf(d.Weekday()) == day {
			dates = append(dates, d)
		}
	}

	return dates
}
