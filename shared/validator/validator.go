package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"mediconnect/shared/calendar"
	"mediconnect/shared/failure"
	"slices"
	"strings"

	val "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate *val.Validate

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func registerWeekdayValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	return slices.Contains(weekdays, strings.ToLower(str))
}

func registerClockValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := calendar.ParseTimeOfDay(str)

	return err == nil
}

func registerDateValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	_, err := calendar.ParseDate(str)

	return err == nil
}

func registerUUIDValidation(field val.FieldLevel) bool {
	str, ok := field.Field().Interface().(string)
	if !ok {
		return false
	}

	return uuid.Validate(str) == nil
}

func init() {
	validate = val.New(val.WithRequiredStructEnabled())

	err := validate.RegisterValidation("empty", func(fl val.FieldLevel) bool {
		empty := fl.Field().IsZero()

		return empty
	})

	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("weekday", registerWeekdayValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("clock", registerClockValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("isodate", registerDateValidation)
	if err != nil {
		panic(err)
	}

	err = validate.RegisterValidation("id", registerUUIDValidation)
	if err != nil {
		panic(err)
	}
}

// Validate reads from the given io.Reader into the given struct, and then performs validation
// on the struct using the validator package. If the struct is invalid according to the
// validation rules, an error is returned. Otherwise, nil is returned.
// https://github.com/go-playground/validator
func Validate[T any](r io.Reader, data *T) error {
	decoder := json.NewDecoder(r)
	err := decoder.Decode(data)

	if err != nil {
		return failure.BadRequest(fmt.Errorf("failed to decode request body: %w", err)) //nolint:wrapcheck
	}

	return ValidateStruct(data)
}

func ValidateStruct[T any](data *T) error {
	err := validate.Struct(data)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}

func ValidateVar(field any, tag string) error {
	err := validate.Var(field, tag)

	if err != nil {
		msg := message(err)

		return failure.BadRequestFromString(msg) //nolint:wrapcheck
	}

	return nil
}
