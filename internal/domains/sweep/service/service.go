package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"mediconnect/infras/metrics"
	"mediconnect/infras/otel"
	appointmentModel "mediconnect/internal/domains/appointment/model"
	appointmentService "mediconnect/internal/domains/appointment/service"
	"mediconnect/shared/constant"
	"slices"

	"github.com/rs/zerolog/log"
)

// All selects every sweep.
const All = "all"

// Order is the sequence used for "all". Missed runs first so reminders never
// go out for appointments that already passed.
var Order = []string{
	appointmentModel.SweepMissed,
	appointmentModel.SweepExpiredReschedule,
	appointmentModel.SweepReminders,
	appointmentModel.SweepRescheduleReminders,
}

var ErrUnknownSweep = errors.New("unknown sweep")

type Runner interface {
	Run(ctx context.Context, names ...string) ([]appointmentModel.SweepResult, error)
}

type runnerImpl struct {
	sweeps  map[string]func(context.Context) (appointmentModel.SweepResult, error)
	metrics *metrics.Metrics
	otel    otel.Otel
}

func New(sweeper appointmentService.Sweeper, m *metrics.Metrics, otel otel.Otel) Runner {
	return &runnerImpl{
		sweeps: map[string]func(context.Context) (appointmentModel.SweepResult, error){
			appointmentModel.SweepMissed:              sweeper.SweepMissed,
			appointmentModel.SweepExpiredReschedule:   sweeper.SweepExpiredReschedule,
			appointmentModel.SweepReminders:           sweeper.SweepReminders,
			appointmentModel.SweepRescheduleReminders: sweeper.SweepRescheduleReminders,
		},
		metrics: m,
		otel:    otel,
	}
}

// Run executes the named sweeps one after another. A failing sweep does not
// stop the rest; every error is joined into the returned one.
func (r *runnerImpl) Run(ctx context.Context, names ...string) (results []appointmentModel.SweepResult, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".sweep.Run")
	defer scope.End()
	defer scope.TraceIfError(err)

	selected, err := resolve(names)

	results = make([]appointmentModel.SweepResult, 0, len(selected))
	errs := []error{err}

	for _, name := range selected {
		res, sweepErr := r.sweeps[name](ctx)
		if sweepErr != nil {
			errs = append(errs, sweepErr)
		}

		r.metrics.ObserveSweep(name, res.Updated, res.Failed)

		log.Info().
			Str("sweep", name).
			Int("scanned", res.Scanned).
			Int("updated", res.Updated).
			Int("failed", res.Failed).
			Err(sweepErr).
			Msg("sweep finished")

		results = append(results, res)
	}

	return results, errors.Join(errs...)
}

// resolve expands "all", drops duplicates and keeps Order. Unknown names are
// reported but do not prevent the known ones from running.
func resolve(names []string) ([]string, error) {
	if len(names) == 0 || slices.Contains(names, All) {
		return Order, nil
	}

	var errs []error

	for _, name := range names {
		if !slices.Contains(Order, name) {
			errs = append(errs, fmt.Errorf("%w: %q", ErrUnknownSweep, name))
		}
	}

	selected := []string{}

	for _, name := range Order {
		if slices.Contains(names, name) {
			selected = append(selected, name)
		}
	}

	return selected, errors.Join(errs...)
}
