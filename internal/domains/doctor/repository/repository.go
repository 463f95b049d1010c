package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"mediconnect/infras/otel"
	"mediconnect/infras/postgres"
	"mediconnect/internal/domains/doctor/model"
	gDto "mediconnect/shared/dto"
	gRepo "mediconnect/shared/repository"
)

type Doctor interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Doctor, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Doctor, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Doctor]
}

func New(db *postgres.Connection, otel otel.Otel) Doctor {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Doctor](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
