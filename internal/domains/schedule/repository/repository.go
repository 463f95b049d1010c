package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mediconnect/infras/otel"
	"mediconnect/infras/postgres"
	"mediconnect/internal/domains/schedule/model"
	"mediconnect/shared/constant"
	gDto "mediconnect/shared/dto"
	gRepo "mediconnect/shared/repository"
)

type Schedule interface {
	Insert(ctx context.Context, model model.Entry) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Entry, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Entry, error)
	UpdateCount(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ActiveWeek(ctx context.Context, doctorID string) (model.Week, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Entry]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Schedule {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Entry](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// ActiveFilter matches the doctor's active consultation entries.
func ActiveFilter(doctorID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldDoctorID, Value: doctorID, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldIsActive, Value: true, Operator: gDto.FilterOperatorEq},
			gDto.Filter{Field: model.FieldSlotKind, Value: model.SlotKindConsultation, Operator: gDto.FilterOperatorEq},
		},
	}
}

// ActiveWeek loads every active consultation window of the doctor, grouped by day.
func (r *repositoryImpl) ActiveWeek(ctx context.Context, doctorID string) (model.Week, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".schedule.ActiveWeek")
	defer scope.End()

	entries, err := r.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}, ActiveFilter(doctorID))
	if err != nil {
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to load active schedule: %w", err)
	}

	week := model.Week{}
	for _, entry := range entries {
		week[entry.DayOfWeek] = append(week[entry.DayOfWeek], entry.Window())
	}

	return week, nil
}
