package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitBrokers(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty", input: "", expected: []string{}},
		{name: "single", input: "kafka:9092", expected: []string{"kafka:9092"}},
		{name: "trims blanks", input: " kafka-1:9092, ,kafka-2:9092 ", expected: []string{"kafka-1:9092", "kafka-2:9092"}},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitBrokers(tt.input))
		})
	}
}
