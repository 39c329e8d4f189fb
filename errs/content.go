package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Content management errors
var (
	ErrValidation         = errors.New("validation failed")
	ErrUniquenessConflict = errors.New("uniqueness conflict")
	ErrDependencyConflict = errors.New("dependency conflict")
	ErrStorageFailure     = errors.New("storage failure")
)

// NewValidationError reports one message per offending field. Nothing was
// written when this is returned.
func NewValidationError(fields map[string]string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusUnprocessableEntity,
		err:        ErrValidation,
		Details:    fieldDetails(fields),
		Fields:     fields,
	}
}

// NewFieldValidationError is a shorthand for a single-field validation error
func NewFieldValidationError(field, message string) *ApiErr {
	err := NewValidationError(map[string]string{field: message})
	err.Field = field
	return err
}

func NewUniquenessConflictError(entity, field, value string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrUniquenessConflict,
		Details:    fmt.Sprintf("%s with %s %q already exists", entity, field, value),
		Field:      field,
	}
}

func NewDependencyConflictError(entity, dependent string, count int64) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        ErrDependencyConflict,
		Details:    fmt.Sprintf("cannot delete %s: %d %s still attached", entity, count, dependent),
		Field:      dependent,
	}
}

func NewStorageFailureError(operation string, paths []string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrStorageFailure,
		Details:    fmt.Sprintf("failed to %s %s", operation, strings.Join(paths, ", ")),
		Cause:      cause,
		Field:      "storage",
	}
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUniquenessConflict matches both resolver-detected collisions and unique
// index violations raised by the database.
func IsUniquenessConflict(err error) bool {
	return errors.Is(err, ErrUniquenessConflict) || errors.Is(err, ErrUniqueConstraintViolation)
}

func IsDependencyConflict(err error) bool {
	return errors.Is(err, ErrDependencyConflict)
}

func IsStorageFailure(err error) bool {
	return errors.Is(err, ErrStorageFailure)
}
