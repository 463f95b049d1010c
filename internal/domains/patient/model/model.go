package model

import "mediconnect/shared/model"

const (
	TableName  = "patients"
	EntityName = "patient"

	FieldID     = "id"
	FieldUserID = "user_id"
)

type Patient struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	Email  string `db:"email"`
	Phone  string `db:"phone"`
	model.Metadata
}
