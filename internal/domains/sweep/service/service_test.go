package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"mediconnect/infras/metrics"
	"mediconnect/infras/otel/mocks"
	appointmentMocks "mediconnect/internal/domains/appointment/mocks"
	"mediconnect/internal/domains/appointment/model"
	"mediconnect/internal/domains/sweep/service"
)

func newRunner(t *testing.T) (service.Runner, *appointmentMocks.MockSweeper) {
	t.Helper()

	sweeper := appointmentMocks.NewMockSweeper(gomock.NewController(t))

	return service.New(sweeper, metrics.New(), mocks.NewOtel()), sweeper
}

func TestRunner_All(t *testing.T) {
	runner, sweeper := newRunner(t)

	gomock.InOrder(
		sweeper.EXPECT().SweepMissed(gomock.Any()).Return(model.SweepResult{Name: model.SweepMissed, Scanned: 2, Updated: 2}, nil),
		sweeper.EXPECT().SweepExpiredReschedule(gomock.Any()).Return(model.SweepResult{Name: model.SweepExpiredReschedule}, nil),
		sweeper.EXPECT().SweepReminders(gomock.Any()).Return(model.SweepResult{Name: model.SweepReminders}, nil),
		sweeper.EXPECT().SweepRescheduleReminders(gomock.Any()).Return(model.SweepResult{Name: model.SweepRescheduleReminders}, nil),
	)

	results, err := runner.Run(context.Background(), service.All)

	require.NoError(t, err)
	require.Len(t, results, 4)
	assert.Equal(t, 2, results[0].Updated)
}

func TestRunner_Selected(t *testing.T) {
	runner, sweeper := newRunner(t)

	gomock.InOrder(
		sweeper.EXPECT().SweepMissed(gomock.Any()).Return(model.SweepResult{Name: model.SweepMissed}, nil),
		sweeper.EXPECT().SweepReminders(gomock.Any()).Return(model.SweepResult{Name: model.SweepReminders}, nil),
	)

	results, err := runner.Run(context.Background(), model.SweepReminders, model.SweepMissed, model.SweepReminders)

	require.NoError(t, err)
	assert.Equal(t, model.SweepMissed, results[0].Name)
	assert.Equal(t, model.SweepReminders, results[1].Name)
}

func TestRunner_UnknownAndFailing(t *testing.T) {
	runner, sweeper := newRunner(t)

	scanErr := errors.New("connection reset")
	sweeper.EXPECT().SweepMissed(gomock.Any()).Return(model.SweepResult{Name: model.SweepMissed}, scanErr)

	results, err := runner.Run(context.Background(), "vacuum", model.SweepMissed)

	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrUnknownSweep)
	assert.ErrorIs(t, err, scanErr)
	assert.Len(t, results, 1)
}
