package appointment

import (
	"net/http"
	"mediconnect/infras/otel"
	"mediconnect/internal/domains/appointment/model/dto"
	"mediconnect/internal/domains/appointment/service"
	"mediconnect/shared/account"
	"mediconnect/shared/constant"
	gDto "mediconnect/shared/dto"
	"mediconnect/shared/validator"
	"mediconnect/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

const calendarFileName = "appointments.ics"

type Handler struct {
	service  service.Appointment
	workflow service.Workflow
	otel     otel.Otel
}

func New(service service.Appointment, workflow service.Workflow, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		workflow: workflow,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/appointments", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.Book)
		routerGroup.Get("/", handler.GetMyAppointments)
		routerGroup.Get("/calendar.ics", handler.ExportCalendar)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Post("/{id}/cancel", handler.Cancel)
		routerGroup.Post("/{id}/complete", handler.Complete)
		routerGroup.Get("/{id}/reschedule", handler.RescheduleOptions)
		routerGroup.Post("/{id}/reschedule", handler.Reschedule)
		routerGroup.Get("/{id}/transfer", handler.TransferOptions)
		routerGroup.Get("/{id}/transfer/{doctorID}/slots", handler.TransferDoctorSlots)
		routerGroup.Post("/{id}/transfer", handler.Transfer)
	})
}

// Book reserves a slot for the signed-in patient.
// @Summary Book an appointment
// @Description Book a pending appointment from tomorrow onwards on a free slot.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.BookRequest true "Booking"
// @Success 201 {object} response.Data[dto.AppointmentResponse] "Booked appointment"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Slot already taken"
// @Failure 422 {object} response.Error "Doctor not available"
// @Failure 500 {object} response.Error
// @Router /v1/appointments [post]
// @Security BearerAuth
func (handler *Handler) Book(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Book")
	defer scope.End()

	_, patientID, err := account.Profile(ctx, account.RolePatient)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.BookRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	appointment, err := handler.service.Book(ctx, patientID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment booked by patient " + patientID)

	response.WithJSON(w, http.StatusCreated, appointment)
}

// GetMyAppointments lists the caller's appointments.
// @Summary Get my appointments
// @Tags Appointment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "Appointments"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments [get]
// @Security BearerAuth
func (handler *Handler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyAppointments")
	defer scope.End()

	acc, _ := account.FromContext(ctx)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter := dto.ListFilter{
		Status: r.URL.Query().Get(constant.RequestQueryStatus),
		Date:   r.URL.Query().Get(constant.RequestQueryDate),
	}

	if err := validator.ValidateStruct(&filter); err != nil {
		response.WithError(w, err)

		return
	}

	appointments, err := handler.service.List(ctx, acc, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointments)
}

// ExportCalendar downloads upcoming appointments as iCalendar.
// @Summary Export my calendar
// @Tags Appointment
// @Produce text/calendar
// @Success 200 {string} string "iCalendar feed"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/calendar.ics [get]
// @Security BearerAuth
func (handler *Handler) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ExportCalendar")
	defer scope.End()

	acc, _ := account.FromContext(ctx)

	feed, err := handler.service.ExportCalendar(ctx, acc)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to export calendar")

		response.WithError(w, err)

		return
	}

	response.WithFile(w, constant.ContentTypeCalendar, calendarFileName, feed)
}

// GetAppointmentByID returns one of the caller's appointments.
// @Summary Get an appointment
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	acc, _ := account.FromContext(ctx)

	appointment, err := handler.service.Get(ctx, acc, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointment)
}

// Cancel is available to the patient and the doctor of the appointment.
// @Summary Cancel an appointment
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Cancelled appointment"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/cancel [post]
// @Security BearerAuth
func (handler *Handler) Cancel(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Cancel")
	defer scope.End()

	acc, _ := account.FromContext(ctx)

	appointment, err := handler.service.Cancel(ctx, acc, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel appointment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointment)
}

// Complete marks an appointment done.
// @Summary Complete an appointment
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Completed appointment"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/complete [post]
// @Security BearerAuth
func (handler *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Complete")
	defer scope.End()

	_, doctorID, err := account.Profile(ctx, account.RoleDoctor)
	if err != nil {
		response.WithError(w, err)

		return
	}

	appointment, err := handler.service.Complete(ctx, doctorID, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to complete appointment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointment)
}

// RescheduleOptions lists open days with the same doctor.
// @Summary Reschedule options
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.RescheduleOptionsResponse] "Open days"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/reschedule [get]
// @Security BearerAuth
func (handler *Handler) RescheduleOptions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RescheduleOptions")
	defer scope.End()

	_, patientID, err := account.Profile(ctx, account.RolePatient)
	if err != nil {
		response.WithError(w, err)

		return
	}

	options, err := handler.workflow.RescheduleOptions(ctx, patientID, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get reschedule options")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, options)
}

// Reschedule moves a flagged appointment to a new slot with the same doctor.
// @Summary Reschedule an appointment
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.RescheduleRequest true "New slot"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Rescheduled appointment"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/reschedule [post]
// @Security BearerAuth
func (handler *Handler) Reschedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Reschedule")
	defer scope.End()

	_, patientID, err := account.Profile(ctx, account.RolePatient)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.RescheduleRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	appointment, err := handler.workflow.Reschedule(ctx, patientID, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reschedule appointment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointment)
}

// TransferOptions lists other doctors of the same specialization.
// @Summary Transfer options
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.TransferOptionsResponse] "Candidates"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/transfer [get]
// @Security BearerAuth
func (handler *Handler) TransferOptions(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransferOptions")
	defer scope.End()

	_, patientID, err := account.Profile(ctx, account.RolePatient)
	if err != nil {
		response.WithError(w, err)

		return
	}

	options, err := handler.workflow.TransferOptions(ctx, patientID, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get transfer options")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, options)
}

// TransferDoctorSlots lists the open days of one transfer candidate.
// @Summary Transfer candidate slots
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Param doctorID path string true "Candidate doctor ID"
// @Success 200 {object} response.Data[dto.TransferDoctorSlotsResponse] "Open days"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/transfer/{doctorID}/slots [get]
// @Security BearerAuth
func (handler *Handler) TransferDoctorSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".TransferDoctorSlots")
	defer scope.End()

	_, patientID, err := account.Profile(ctx, account.RolePatient)
	if err != nil {
		response.WithError(w, err)

		return
	}

	slots, err := handler.workflow.TransferDoctorSlots(ctx, patientID,
		chi.URLParam(r, constant.RequestParamID), chi.URLParam(r, constant.RequestParamDoctorID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get transfer doctor slots")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, slots)
}

// Transfer moves a flagged appointment to another doctor.
// @Summary Transfer an appointment
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.TransferRequest true "Target doctor and slot"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Transferred appointment"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/appointments/{id}/transfer [post]
// @Security BearerAuth
func (handler *Handler) Transfer(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Transfer")
	defer scope.End()

	_, patientID, err := account.Profile(ctx, account.RolePatient)
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.TransferRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	appointment, err := handler.workflow.Transfer(ctx, patientID, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to transfer appointment")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointment)
}
