//go:build unit || !integration

package fcerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPredicatesMatchOnlyTheirKind(t *testing.T) {
	authErr := NewAuthorizationRequired("GetParticipants", nil)
	remoteErr := NewRemoteFailure("GetParticipants", 502)
	malformedErr := NewMalformedResponse("GetParticipants", errors.New("no Result node"))
	validationErr := NewValidationf("name must not be empty")

	require.True(t, IsAuthorizationRequired(authErr))
	require.True(t, IsRemoteFailure(remoteErr))
	require.True(t, IsMalformedResponse(malformedErr))
	require.True(t, IsValidation(validationErr))

	require.False(t, IsAuthorizationRequired(remoteErr))
	require.False(t, IsRemoteFailure(authErr))
	require.False(t, IsValidation(malformedErr))

	require.False(t, IsRemoteFailure(nil))
	require.False(t, IsRemoteFailure(errors.New("plain")))
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("listing participants: %w", NewRemoteFailure("GetParticipants", 502))
	require.True(t, IsRemoteFailure(wrapped))
}

func TestErrorCarriesEndpointAndStatus(t *testing.T) {
	err := NewRemoteFailure("ProposeComputation", 502)
	require.Contains(t, err.Error(), "ProposeComputation")
	require.Contains(t, err.Error(), "502")
	require.Equal(t, 502, err.StatusCode)
}

func TestUnwrapExposesTheCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewRemoteFailureFromError("GetParticipants", cause)
	require.ErrorIs(t, err, cause)
}
