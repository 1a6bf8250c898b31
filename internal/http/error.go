package http

import (
	"context"
	"errors"
	"net/http"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

// StatusCodeFromError maps the error taxonomy onto an http status code.
func StatusCodeFromError(err error) int {
	var validationErr *inErrors.ValidationError
	var notFoundErr *inErrors.NotFoundError
	var conflictErr *inErrors.ConflictError
	var dependencyErr *inErrors.DependencyError
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &conflictErr):
		return http.StatusConflict
	case errors.As(err, &dependencyErr):
		return http.StatusServiceUnavailable
	case errors.Is(err, inErrors.ErrEmptyAuth),
		errors.Is(err, inErrors.ErrTokenInvalid),
		errors.Is(err, inErrors.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, inErrors.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func WriteErrorResponse(c context.Context, w http.ResponseWriter, err error) {
	statusCode := StatusCodeFromError(err)
	body := map[string]interface{}{
		"status":     StatusFailed,
		"statusCode": statusCode,
		"message":    err.Error(),
	}
	if statusCode == http.StatusInternalServerError {
		body["message"] = http.StatusText(http.StatusInternalServerError)
	}

	var validationErr *inErrors.ValidationError
	if errors.As(err, &validationErr) {
		body["message"] = "invalid request"
		body["errors"] = validationErr.Fields
	}
	WriteJsonResponse(c, w, map[string]string{}, body)
}
