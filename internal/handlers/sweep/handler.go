package sweep

import (
	"fmt"
	"net/http"
	"slices"
	"mediconnect/infras/otel"
	"mediconnect/internal/domains/sweep/service"
	"mediconnect/shared/constant"
	"mediconnect/shared/failure"
	"mediconnect/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	runner service.Runner
	otel   otel.Otel
}

func New(runner service.Runner, otel otel.Otel) Handler {
	return Handler{
		runner: runner,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/sweeps", func(routerGroup chi.Router) {
		routerGroup.Post("/{name}", handler.Run)
	})
}

// Run triggers one sweep, or all of them with the name "all". Meant for an
// external scheduler.
// @Summary Run a sweep
// @Tags Internal
// @Produce json
// @Param name path string true "missed | expired-reschedule | reminders | reschedule-reminders | all"
// @Success 200 {object} response.Data[[]model.SweepResult] "Sweep results"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/internal/sweeps/{name} [post]
// @Security ApiKeyAuth
func (handler *Handler) Run(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RunSweep")
	defer scope.End()

	name := chi.URLParam(r, constant.RequestParamName)
	if name != service.All && !slices.Contains(service.Order, name) {
		response.WithError(w, failure.BadRequestFromString(fmt.Sprintf("unknown sweep %q", name)))

		return
	}

	results, err := handler.runner.Run(ctx, name)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to run sweep")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, results)
}
