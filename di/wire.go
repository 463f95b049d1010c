//go:build wireinject
// +build wireinject

package di

import (
	"mediconnect/config"
	"mediconnect/infras/jwt"
	"mediconnect/infras/kafka"
	"mediconnect/infras/mail"
	"mediconnect/infras/metrics"
	"mediconnect/infras/otel"
	"mediconnect/infras/postgres"
	"mediconnect/infras/redis"
	"mediconnect/infras/sms"
	"mediconnect/permissions"
	"mediconnect/shared/cache"
	"mediconnect/transport/http"
	"mediconnect/transport/http/middleware"
	"mediconnect/transport/http/router"

	"github.com/google/wire"

	appointmentRepository "mediconnect/internal/domains/appointment/repository"
	appointmentService "mediconnect/internal/domains/appointment/service"
	cascadeService "mediconnect/internal/domains/cascade/service"
	doctorRepository "mediconnect/internal/domains/doctor/repository"
	doctorService "mediconnect/internal/domains/doctor/service"
	notificationService "mediconnect/internal/domains/notification/service"
	patientRepository "mediconnect/internal/domains/patient/repository"
	scheduleRepository "mediconnect/internal/domains/schedule/repository"
	scheduleService "mediconnect/internal/domains/schedule/service"
	slotService "mediconnect/internal/domains/slot/service"
	sweepService "mediconnect/internal/domains/sweep/service"

	appointmentHandler "mediconnect/internal/handlers/appointment"
	doctorHandler "mediconnect/internal/handlers/doctor"
	scheduleHandler "mediconnect/internal/handlers/schedule"
	sweepHandler "mediconnect/internal/handlers/sweep"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	metrics.New,
	kafka.New,
	mail.New,
	sms.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
	wire.Struct(new(router.Middlewares), "*"),
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var doctorDomain = wire.NewSet(
	doctorRepository.New,
	doctorService.New,
)

var scheduleDomain = wire.NewSet(
	scheduleRepository.New,
	scheduleService.New,
	wire.Bind(new(scheduleService.DayDeactivatedHandler), new(cascadeService.Cascade)),
	cascadeService.New,
)

var appointmentDomain = wire.NewSet(
	patientRepository.New,
	appointmentRepository.New,
	slotService.New,
	notificationService.New,
	appointmentService.NewAppointment,
	appointmentService.NewWorkflow,
	appointmentService.NewSweeper,
	sweepService.New,
)

var domains = wire.NewSet(
	doctorDomain,
	scheduleDomain,
	appointmentDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	doctorHandler.New,
	scheduleHandler.New,
	appointmentHandler.New,
	sweepHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}

// InitializeSweeper builds only what the sweep command needs.
func InitializeSweeper() (sweepService.Runner, error) {
	wire.Build(
		config.Get,
		postgres.New,
		otel.New,
		metrics.New,
		kafka.New,
		mail.New,
		sms.New,
		doctorRepository.New,
		patientRepository.New,
		appointmentRepository.New,
		notificationService.New,
		appointmentService.NewSweeper,
		sweepService.New,
	)

	return nil, nil
}
