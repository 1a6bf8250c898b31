package otel

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

const KeyErrorKind = "error.kind"

// ErrorKind names the taxonomy class of err for span attributes and metrics labels.
func ErrorKind(err error) string {
	switch {
	case inErrors.IsValidation(err):
		return "validation"
	case inErrors.IsNotFound(err):
		return "not_found"
	case inErrors.IsConflict(err):
		return "conflict"
	case inErrors.IsDependency(err):
		return "dependency"
	default:
		return "internal"
	}
}

func RecordError(err error, span trace.Span) {
	if err == nil {
		return
	}
	span.SetAttributes(attribute.String(KeyErrorKind, ErrorKind(err)))
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err)
}
