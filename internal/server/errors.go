// Package server provides the HTTP API and pages of the My Jobs service.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/fastlabor/internal/myjobs"
	"github.com/jonathan/fastlabor/internal/records"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		outOfRange *records.ErrSelectionOutOfRange
		validation *ErrValidation
		fetch      *myjobs.FetchError
	)
	switch {
	case errors.As(err, &outOfRange):
		return http.StatusNotFound
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &fetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text safe to show a client. Upstream failures
// are reported generically.
func publicMessage(err error) string {
	switch HTTPStatus(err) {
	case http.StatusBadGateway:
		return "spreadsheet is unavailable"
	case http.StatusInternalServerError:
		return "internal server error"
	default:
		return err.Error()
	}
}
