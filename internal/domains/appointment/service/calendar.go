package service

import (
	"context"
	"fmt"
	"mediconnect/internal/domains/appointment/model"
	"mediconnect/internal/domains/appointment/repository"
	notificationModel "mediconnect/internal/domains/notification/model"
	"mediconnect/internal/domains/slot"
	"mediconnect/shared/account"
	"mediconnect/shared/calendar"
	"mediconnect/shared/constant"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/timezone"

	ics "github.com/arran4/golang-ical"
	"github.com/rs/zerolog/log"
)

const calendarProductID = "-//MediConnect//Appointments//EN"

// ExportCalendar renders the caller's upcoming pending and confirmed
// appointments as an iCalendar feed.
func (s *appointmentImpl) ExportCalendar(ctx context.Context, acc account.Account) (res []byte, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".appointment.ExportCalendar")
	defer scope.End()
	defer scope.TraceIfError(err)

	owner, err := ownerFilter(acc)
	if err != nil {
		return nil, err
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			owner,
			repository.StatusIn(model.ActiveStatuses...),
			gDto.Filter{Field: model.FieldDate, Value: calendar.Today(), Operator: gDto.FilterOperatorGreaterEq},
		},
	}

	appointments, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldDate, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get upcoming appointments")

		return nil, fmt.Errorf("failed to get upcoming appointments: %w", err)
	}

	_, isPatient := acc.Patient()

	names, err := s.participantNames(ctx, appointments, isPatient)
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve calendar participants")

		return nil, err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(calendarProductID)
	cal.SetXWRCalName(s.cfg.App.Name + " appointments")

	stamp := timezone.Now()

	for _, a := range appointments {
		start := a.StartsAt()

		event := cal.AddEvent(a.ID + "@mediconnect")
		event.SetDtStampTime(stamp)
		event.SetCreatedTime(a.CreatedAt)
		event.SetStartAt(start)
		event.SetEndAt(start.Add(slot.Step))
		event.SetDescription(a.Reason)

		if isPatient {
			event.SetSummary("Appointment with " + notificationModel.DoctorTitle(names[a.DoctorID]))
		} else {
			event.SetSummary("Appointment with " + names[a.PatientID])
		}

		if a.Status == model.StatusConfirmed {
			event.SetStatus(ics.ObjectStatusConfirmed)
		} else {
			event.SetStatus(ics.ObjectStatusTentative)
		}
	}

	return []byte(cal.Serialize()), nil
}
