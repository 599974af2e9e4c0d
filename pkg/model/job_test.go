//go:build unit || !integration

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJobStatusRoundTrip(t *testing.T) {
	for status := jobStatusUnknown + 1; status < jobStatusDone; status++ {
		parsed, err := ParseJobStatus(status.String())
		require.NoError(t, err)
		require.Equal(t, status, parsed)
	}
}

func TestParseJobStatusIsCaseInsensitive(t *testing.T) {
	parsed, err := ParseJobStatus("succeeded")
	require.NoError(t, err)
	require.Equal(t, JobStatusSucceeded, parsed)
}

func TestParseJobStatusUnknown(t *testing.T) {
	parsed, err := ParseJobStatus("Exploded")
	require.Error(t, err)
	require.False(t, IsValidJobStatus(parsed))
	require.Equal(t, "Unknown", parsed.String())
}

func TestTerminalStates(t *testing.T) {
	require.True(t, JobStatusSucceeded.IsTerminal())
	require.True(t, JobStatusFailed.IsTerminal())
	require.True(t, JobStatusCancelled.IsTerminal())
	require.False(t, JobStatusRunning.IsTerminal())
	require.False(t, JobStatusTriggered.IsTerminal())

	require.True(t, JobStatusFailed.IsError())
	require.False(t, JobStatusCancelled.IsError())
}
