package log

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDFromContext(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))

	c := AttachRequestIDToContext(context.Background(), "request-1")
	assert.Equal(t, "request-1", RequestIDFromContext(c))
}

func TestAttachTraceIdFromContext(t *testing.T) {
	buf := bytes.Buffer{}
	logger := zerolog.New(&buf).Hook(AttachTraceIdFromContext())

	c := AttachRequestIDToContext(context.Background(), "request-2")
	logger.Info().Ctx(c).Msg("hello")

	got := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "request-2", got[KeyRequestID])
	assert.NotContains(t, got, KeyTraceID, "no span is recording so trace id must be absent")
}
