package schedule

import (
	"net/http"
	"mediconnect/infras/otel"
	"mediconnect/internal/domains/schedule/model"
	"mediconnect/internal/domains/schedule/model/dto"
	"mediconnect/internal/domains/schedule/service"
	"mediconnect/shared/account"
	"mediconnect/shared/constant"
	"mediconnect/shared/failure"
	"mediconnect/shared/validator"
	"mediconnect/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

// Handler serves the signed-in doctor's own weekly schedule.
type Handler struct {
	service service.Schedule
	otel    otel.Otel
}

func New(service service.Schedule, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/schedule", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetWeeklySchedule)
		routerGroup.Post("/entries", handler.AddEntry)
		routerGroup.Delete("/entries/{id}", handler.DeleteEntry)
		routerGroup.Put("/days/{day}", handler.ToggleDay)
	})
}

// GetWeeklySchedule returns Monday to Sunday with the entries of each day.
// @Summary Get my weekly schedule
// @Tags Schedule
// @Produce json
// @Success 200 {object} response.Data[dto.WeeklyScheduleResponse] "Weekly schedule"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedule [get]
// @Security BearerAuth
func (handler *Handler) GetWeeklySchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetWeeklySchedule")
	defer scope.End()

	_, doctorID, err := account.Profile(ctx, account.RoleDoctor)
	if err != nil {
		response.WithError(w, err)

		return
	}

	week, err := handler.service.WeeklySchedule(ctx, doctorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get weekly schedule")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, week)
}

// AddEntry adds a working window to one weekday.
// @Summary Add a schedule entry
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.CreateEntryRequest true "Schedule entry"
// @Success 201 {object} response.Data[dto.EntryResponse] "Created entry"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedule/entries [post]
// @Security BearerAuth
func (handler *Handler) AddEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddEntry")
	defer scope.End()

	_, doctorID, err := account.Profile(ctx, account.RoleDoctor)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.CreateEntryRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	entry, err := handler.service.AddEntry(ctx, doctorID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add schedule entry")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Schedule entry added by doctor " + doctorID)

	response.WithJSON(w, http.StatusCreated, entry)
}

// DeleteEntry removes one of the doctor's entries. Existing appointments are
// left alone.
// @Summary Delete a schedule entry
// @Tags Schedule
// @Produce json
// @Param id path string true "Entry ID"
// @Success 200 {object} response.Message "Schedule entry deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedule/entries/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteEntry")
	defer scope.End()

	_, doctorID, err := account.Profile(ctx, account.RoleDoctor)
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err := handler.service.DeleteEntry(ctx, doctorID, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete schedule entry")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Schedule entry deleted successfully")
}

// ToggleDay switches every entry of a weekday on or off. Switching a day off
// flags the appointments booked on it for rescheduling.
// @Summary Toggle a weekday
// @Tags Schedule
// @Accept json
// @Produce json
// @Param day path string true "Weekday (monday..sunday)"
// @Param request body dto.ToggleDayRequest true "Target state"
// @Success 200 {object} response.Data[model.ToggleResult] "Toggle result with cascade report"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedule/days/{day} [put]
// @Security BearerAuth
func (handler *Handler) ToggleDay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ToggleDay")
	defer scope.End()

	_, doctorID, err := account.Profile(ctx, account.RoleDoctor)
	if err != nil {
		response.WithError(w, err)

		return
	}

	day, err := model.ParseDay(chi.URLParam(r, constant.RequestParamDay))
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	req := dto.ToggleDayRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	result, err := handler.service.SetDayActive(ctx, doctorID, day, *req.Active)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to toggle day")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, result)
}
