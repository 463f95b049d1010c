package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mediconnect/internal/domains/appointment/model"
	"mediconnect/shared/account"
)

func TestStatus(t *testing.T) {
	assert.True(t, model.StatusPending.Active())
	assert.True(t, model.StatusConfirmed.Active())
	assert.False(t, model.StatusNeedsRescheduling.Active())
	assert.True(t, model.StatusCancelled.Terminal())
	assert.False(t, model.StatusMissed.Terminal())
	assert.False(t, model.Status("done").Valid())
	assert.True(t, model.TypeFollowUp.Valid())
	assert.False(t, model.Type("surgery").Valid())
}

func TestAppointment_OwnedBy(t *testing.T) {
	apt := model.Appointment{PatientID: "p-1", DoctorID: "d-1"}

	tests := []struct {
		name string
		acc  account.Account
		want bool
	}{
		{name: "patient owner", acc: account.Account{Role: account.RolePatient, ProfileID: "p-1"}, want: true},
		{name: "doctor owner", acc: account.Account{Role: account.RoleDoctor, ProfileID: "d-1"}, want: true},
		{name: "other patient", acc: account.Account{Role: account.RolePatient, ProfileID: "p-2"}},
		{name: "doctor id as patient", acc: account.Account{Role: account.RolePatient, ProfileID: "d-1"}},
		{name: "staff", acc: account.Account{Role: account.RoleStaff, ProfileID: "p-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apt.OwnedBy(tt.acc))
		})
	}
}
