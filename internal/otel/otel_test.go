package otel

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

func TestShutdownOtel(t *testing.T) {
	called := 0
	ok := func(context.Context) error {
		called++
		return nil
	}
	err := ShutdownOtel(context.Background(), []ShutdownFunc{ok})
	assert.NoError(t, err)
	assert.Equal(t, 1, called)

	failing := func(context.Context) error { return errors.New("exporter closed") }
	err = ShutdownOtel(context.Background(), []ShutdownFunc{failing})
	assert.EqualError(t, err, "exporter closed")
}

func TestPropagatorFields(t *testing.T) {
	fields := newPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "uber-trace-id")
	assert.Contains(t, fields, "ot-tracer-traceid")

	carrier := propagation.MapCarrier{}
	newPropagator().Inject(context.Background(), carrier)
	assert.Empty(t, carrier.Get("traceparent"))
}

func TestRecordError(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	RecordError(nil, span)
	RecordError(errors.New("failed"), span)
	span.End()

	spans := recorder.Ended()
	assert.Len(t, spans, 1)
	assert.Equal(t, "failed", spans[0].Status().Description)
	assert.NotEmpty(t, spans[0].Events())
	assert.Contains(t, spans[0].Attributes(), attribute.String(KeyErrorKind, "internal"))
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{err: inErrors.NewValidationError("size", "is required"), expected: "validation"},
		{err: inErrors.NewNotFoundError("cart item", "1"), expected: "not_found"},
		{err: inErrors.NewConflictError("total drift"), expected: "conflict"},
		{err: inErrors.NewDependencyError("catalog", errors.New("timeout")), expected: "dependency"},
		{err: errors.New("boom"), expected: "internal"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, ErrorKind(fmt.Errorf("wrapped with error=%w", tt.err)))
		})
	}
}
