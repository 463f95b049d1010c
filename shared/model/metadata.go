package model

import "time"

type Metadata struct {
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
	ModifiedAt time.Time `json:"modified_at" db:"modified_at"`
	CreatedBy  string    `json:"created_by"  db:"created_by"`
	ModifiedBy string    `json:"modified_by" db:"modified_by"`
}

// NewMetadata stamps a new row as created and modified by actor at now.
func NewMetadata(actor string, now time.Time) Metadata {
	return Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  actor,
		ModifiedBy: actor,
	}
}
