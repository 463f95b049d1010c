package doctor

import (
	"net/http"
	"mediconnect/infras/otel"
	"mediconnect/internal/domains/doctor/service"
	slotService "mediconnect/internal/domains/slot/service"
	"mediconnect/shared/calendar"
	"mediconnect/shared/constant"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/failure"
	"mediconnect/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Doctor
	slots   slotService.Slot
	otel    otel.Otel
}

func New(service service.Doctor, slots slotService.Slot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		slots:   slots,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/doctors", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetDoctors)
		routerGroup.Get("/specializations", handler.GetSpecializations)
		routerGroup.Get("/{id}", handler.GetDoctorByID)
		routerGroup.Get("/{id}/slots", handler.GetSlots)
	})
}

// GetDoctors lists doctors that accept appointments.
// @Summary Get available doctors
// @Description Retrieve active and available doctors, optionally narrowed to one specialization.
// @Tags Doctor
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param specialization query string false "Filter by specialization"
// @Success 200 {object} response.Data[dto.GetDoctorsResponse] "List of doctors"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors [get]
// @Security BearerAuth
func (handler *Handler) GetDoctors(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctors")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	doctors, err := handler.service.GetAll(ctx, queryParams, r.URL.Query().Get(constant.RequestQuerySpecialty))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctors")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, doctors)
}

// GetSpecializations lists the specializations patients can filter by.
// @Summary Get specializations
// @Tags Doctor
// @Produce json
// @Success 200 {object} response.Data[[]dto.SpecializationResponse] "Specializations"
// @Router /v1/doctors/specializations [get]
// @Security BearerAuth
func (handler *Handler) GetSpecializations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSpecializations")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.Specializations(ctx))
}

// GetDoctorByID retrieves one doctor.
// @Summary Get a doctor by ID
// @Tags Doctor
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Data[dto.DoctorResponse] "Doctor details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetDoctorByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDoctorByID")
	defer scope.End()

	doctor, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get doctor by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, doctor)
}

// GetSlots returns the free slots of a doctor. Without a date the next
// lookahead days starting tomorrow are returned.
// @Summary Get available slots
// @Description Slots for one date, or the booking lookahead when no date is given.
// @Tags Doctor
// @Produce json
// @Param id path string true "Doctor ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[slotDto.Availability] "Slots for one date"
// @Success 200 {object} response.Data[slotDto.LookaheadResponse] "Slots for the lookahead days"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/doctors/{id}/slots [get]
// @Security BearerAuth
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	doctorID := chi.URLParam(r, constant.RequestParamID)
	rawDate := r.URL.Query().Get(constant.RequestQueryDate)

	if rawDate == constant.Empty {
		days, err := handler.slots.Lookahead(ctx, doctorID)
		if err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to get slot lookahead")

			response.WithError(w, err)

			return
		}

		response.WithJSON(w, http.StatusOK, days)

		return
	}

	date, err := calendar.ParseDate(rawDate)
	if err != nil {
		response.WithError(w, failure.BadRequest(err))

		return
	}

	if date.Before(calendar.Today()) {
		response.WithError(w, failure.BadRequestFromString("date must not be in the past"))

		return
	}

	day, err := handler.slots.Availability(ctx, doctorID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, day)
}
