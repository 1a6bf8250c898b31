package log

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
		env      string
		expected zerolog.Level
	}{
		{name: "explicit level wins", logLevel: "warn", env: "development", expected: zerolog.WarnLevel},
		{name: "development defaults to trace", env: "development", expected: zerolog.TraceLevel},
		{name: "production defaults to info", env: "production", expected: zerolog.InfoLevel},
		{name: "unparsable level is ignored", logLevel: "loud", expected: zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.logLevel)
			t.Setenv("ENV", tt.env)
			assert.Equal(t, tt.expected, level())
		})
	}
}
