package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/assist"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/export"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/llm"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/schemas"
	"github.com/dmsgk904/RFP-for-CO2-capture-process/internal/types"
	"github.com/go-playground/validator/v10"
)

// ErrDocumentNotFound indicates no document is stored under the id
type ErrDocumentNotFound struct {
	ID string
}

func (e *ErrDocumentNotFound) Error() string {
	return fmt.Sprintf("document not found: %s", e.ID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// validationError converts a validator failure into an ErrValidation
func validationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &ErrValidation{Field: fe.Field(), Message: "failed on '" + fe.Tag() + "'"}
	}
	return &ErrValidation{Field: "body", Message: err.Error()}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrDocumentNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	case *schemas.ValidationError:
		return http.StatusUnprocessableEntity
	case *llm.ConfigError:
		return http.StatusServiceUnavailable
	case *llm.AuthError, *llm.GenerationError:
		return http.StatusBadGateway
	}

	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.Is(err, types.ErrRowNotFound):
		return http.StatusNotFound
	case errors.Is(err, assist.ErrUnknownSection):
		return http.StatusNotFound
	case errors.Is(err, types.ErrUnknownField),
		errors.Is(err, types.ErrUnknownRowField),
		errors.Is(err, types.ErrUnknownOption),
		errors.Is(err, types.ErrFieldNotOnRow),
		errors.Is(err, types.ErrRowNotRemovable):
		return http.StatusBadRequest
	case errors.Is(err, assist.ErrInFlight):
		return http.StatusConflict
	case errors.Is(err, export.ErrUnsupportedImage):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, export.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
