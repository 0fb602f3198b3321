package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventSubmissionValidate(t *testing.T) {
	submission := EventSubmission{
		EventType: "auth.failure",
		Severity:  "high",
		Message:   "5 failed logins",
	}
	assert.NoError(t, submission.Validate())

	err := EventSubmission{Severity: "high"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to receive an event type")
	assert.Contains(t, err.Error(), "failed to receive a message")
	assert.NotContains(t, err.Error(), "failed to receive a severity")
}
