package otel

import (
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/storefront/internal/constants"
)

var Tracer = otel.Tracer(
	constants.AppNotificationService,
	trace.WithInstrumentationAttributes(semconv.ServiceNameKey.String(constants.AppNotificationService)),
)
