// Package account models the authenticated caller. A user holds exactly one
// role and the role decides which profile the ProfileID points at.
package account

import (
	"context"
	"slices"

	"mediconnect/shared/constant"
	"mediconnect/shared/failure"
)

type Role string

const (
	RolePatient  Role = "patient"
	RoleDoctor   Role = "doctor"
	RoleStaff    Role = "staff"
	RolePharmacy Role = "pharmacy"
)

// SystemActor is recorded when no caller is attached, e.g. sweeps.
const SystemActor = "system"

var roles = []Role{RolePatient, RoleDoctor, RoleStaff, RolePharmacy}

func (r Role) Valid() bool {
	return slices.Contains(roles, r)
}

func (r Role) String() string {
	return string(r)
}

type Account struct {
	UserID    string
	Email     string
	Role      Role
	ProfileID string
}

// Patient returns the patient profile id when the account is a patient.
func (a Account) Patient() (string, bool) {
	return a.profile(RolePatient)
}

// Doctor returns the doctor profile id when the account is a doctor.
func (a Account) Doctor() (string, bool) {
	return a.profile(RoleDoctor)
}

// Staff returns the staff profile id when the account is staff.
func (a Account) Staff() (string, bool) {
	return a.profile(RoleStaff)
}

// Pharmacy returns the pharmacy profile id when the account is pharmacy.
func (a Account) Pharmacy() (string, bool) {
	return a.profile(RolePharmacy)
}

func (a Account) profile(role Role) (string, bool) {
	if a.Role != role || a.ProfileID == constant.Empty {
		return constant.Empty, false
	}

	return a.ProfileID, true
}

func WithContext(ctx context.Context, acc Account) context.Context {
	return context.WithValue(ctx, constant.ContextKeyAccount, acc)
}

func FromContext(ctx context.Context) (Account, bool) {
	acc, ok := ctx.Value(constant.ContextKeyAccount).(Account)

	return acc, ok
}

// Actor names the caller for created_by/modified_by columns.
func Actor(ctx context.Context) string {
	acc, ok := FromContext(ctx)
	if !ok || acc.Email == constant.Empty {
		return SystemActor
	}

	return acc.Email
}

// Profile returns the caller and its profile id when the caller holds role.
// Any other caller gets a forbidden failure.
func Profile(ctx context.Context, role Role) (Account, string, error) {
	acc, ok := FromContext(ctx)
	if !ok {
		return acc, constant.Empty, failure.Unauthorized("authentication required") // nolint:wrapcheck
	}

	id, ok := acc.profile(role)
	if !ok {
		return acc, constant.Empty, failure.ResourceRestrictedError
	}

	return acc, id, nil
}
