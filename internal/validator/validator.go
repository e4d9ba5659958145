// Package validator wraps go-playground/validator for request struct
// validation based on `validate` tags.
package validator

import (
	"sync"

	"github.com/go-playground/validator/v10"

	ierr "github.com/roomledger/roomledger/internal/errors"
)

var (
	validate *validator.Validate
	once     sync.Once
)

func getValidator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidateRequest validates a request struct and converts violations into a
// validation error with per-field details.
func ValidateRequest(req any) error {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return ierr.WithError(err).
			WithHint("Invalid request payload").
			Mark(ierr.ErrValidation)
	}

	details := make(map[string]any, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}

	return ierr.NewError("request validation failed").
		WithHint("Invalid request payload").
		WithReportableDetails(details).
		Mark(ierr.ErrValidation)
}
