package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		value    string
		expected Severity
		isValid  bool
	}{
		{value: "low", expected: SeverityLow, isValid: true},
		{value: "medium", expected: SeverityMedium, isValid: true},
		{value: "high", expected: SeverityHigh, isValid: true},
		{value: "critical", expected: SeverityCritical, isValid: true},
		{value: "1", expected: SeverityLow, isValid: true},
		{value: "2", expected: SeverityLow, isValid: true},
		{value: "3", expected: SeverityMedium, isValid: true},
		{value: "4", expected: SeverityHigh, isValid: true},
		{value: "5", expected: SeverityHigh, isValid: true},
		{value: "6", expected: SeverityCritical, isValid: true},
		{value: ""},
		{value: "0"},
		{value: "7"},
		{value: "LOW"},
		{value: "severe"},
	}
	for _, tt := range tests {
		t.Run("severity "+tt.value, func(t *testing.T) {
			severity, err := ParseSeverity(tt.value)
			if !tt.isValid {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, severity)
		})
	}
}

func TestSeveritiesAreOrderedLowToCritical(t *testing.T) {
	assert.Equal(t, []Severity{SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}, Severities)
}

func TestSeverityValidate(t *testing.T) {
	assert.NoError(t, SeverityMedium.Validate())
	assert.Error(t, Severity("urgent").Validate())
}
