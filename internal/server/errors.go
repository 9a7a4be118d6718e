// Package server provides the HTTP API for building and exporting portfolios.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/portfolio-builder/internal/augment"
	"github.com/jonathan/portfolio-builder/internal/generation"
	"github.com/jonathan/portfolio-builder/internal/ingestion"
	"github.com/jonathan/portfolio-builder/internal/portfolio"
	"github.com/jonathan/portfolio-builder/internal/session"
	"github.com/jonathan/portfolio-builder/internal/templates"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrUnavailable indicates a feature that is not configured on this server
type ErrUnavailable struct {
	Feature string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not available on this server", e.Feature)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr  *ErrValidation
		unavailableErr *ErrUnavailable
		targetErr      *augment.InvalidTargetError
		extractionErr  *ingestion.ExtractionError
		generationErr  *generation.GenerationError
	)

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, augment.ErrGenerationAlreadyInFlight):
		return http.StatusConflict
	case portfolio.IsIndexOutOfRange(err):
		return http.StatusNotFound
	case errors.As(err, &validationErr),
		errors.As(err, &targetErr),
		portfolio.IsValidation(err),
		generation.IsValidation(err),
		templates.IsUnknownTemplate(err),
		ingestion.IsUploadError(err),
		isUnreadableUpload(err):
		return http.StatusBadRequest
	case errors.As(err, &unavailableErr):
		return http.StatusNotImplemented
	case augment.IsRemote(err),
		errors.As(err, &generationErr),
		errors.As(err, &extractionErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// isUnreadableUpload reports whether an uploaded file yielded no usable text
func isUnreadableUpload(err error) bool {
	var extractionErr *ingestion.ExtractionError
	return errors.As(err, &extractionErr) && extractionErr.Stage == "text"
}

// errorCode is the machine-readable code sent alongside the message
func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "generation_in_flight"
	case http.StatusNotImplemented:
		return "unavailable"
	case http.StatusBadGateway:
		return "remote_service_error"
	default:
		return "internal_error"
	}
}
