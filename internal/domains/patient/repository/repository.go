package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"mediconnect/infras/otel"
	"mediconnect/infras/postgres"
	"mediconnect/internal/domains/patient/model"
	gDto "mediconnect/shared/dto"
	gRepo "mediconnect/shared/repository"
)

type Patient interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Patient, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Patient, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Patient]
}

func New(db *postgres.Connection, otel otel.Otel) Patient {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Patient](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
