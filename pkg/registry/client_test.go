//go:build unit || !integration

package registry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fedcompute-project/fedcompute/pkg/fcerrors"
	"github.com/fedcompute-project/fedcompute/pkg/logger"
)

func TestInvokePostsSignedJSON(t *testing.T) {
	logger.ConfigureTestLogging(t)

	var got struct {
		method, path, auth, contentType string
		body                            map[string]string
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		got.contentType = r.Header.Get("Content-Type")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got.body))
		_, _ = w.Write([]byte(`{"outputParameters": {"Result": [[["a", "b"]]]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Invoke(context.Background(), "TriggerJob",
		map[string]string{"projectname": "proj1"}, "tok-123")
	require.NoError(t, err)
	require.Equal(t, []Row{{"a", "b"}}, result.Rows)

	require.Equal(t, http.MethodPost, got.method)
	require.Equal(t, "/api/TriggerJob", got.path)
	require.Equal(t, "Bearer tok-123", got.auth)
	require.Equal(t, "application/json", got.contentType)
	require.Equal(t, map[string]string{"projectname": "proj1"}, got.body)
}

func TestInvokeEmptyResultIsSuccess(t *testing.T) {
	logger.ConfigureTestLogging(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"outputParameters": {"Result": []}}`))
	}))
	defer server.Close()

	result, err := NewClient(server.URL).Invoke(context.Background(), "GetParticipants", struct{}{}, "tok")
	require.NoError(t, err)
	require.True(t, result.Empty())
}

func TestInvoke401SurfacesAuthorizationRequired(t *testing.T) {
	logger.ConfigureTestLogging(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Invoke(context.Background(), "GetParticipants", struct{}{}, "stale")
	require.Error(t, err)
	require.True(t, fcerrors.IsAuthorizationRequired(err))
	require.False(t, fcerrors.IsRemoteFailure(err))
}

func TestInvokeNonSuccessSurfacesRemoteFailure(t *testing.T) {
	logger.ConfigureTestLogging(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Invoke(context.Background(), "ProposeComputation", struct{}{}, "tok")
	require.True(t, fcerrors.IsRemoteFailure(err))

	var fcErr *fcerrors.Error
	require.True(t, errors.As(err, &fcErr))
	require.Equal(t, "ProposeComputation", fcErr.Endpoint)
	require.Equal(t, http.StatusBadGateway, fcErr.StatusCode)
}

func TestInvokeMalformedEnvelope(t *testing.T) {
	logger.ConfigureTestLogging(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"unexpected": "shape"}`))
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Invoke(context.Background(), "GetSchemas", struct{}{}, "tok")
	require.True(t, fcerrors.IsMalformedResponse(err))
}

func TestInvokeCancelledContextPassesThrough(t *testing.T) {
	logger.ConfigureTestLogging(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(server.URL).Invoke(ctx, "GetParticipants", struct{}{}, "tok")
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, fcerrors.IsRemoteFailure(err))
}

func TestInvokeTransportFailure(t *testing.T) {
	logger.ConfigureTestLogging(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := NewClient(server.URL).Invoke(context.Background(), "GetParticipants", struct{}{}, "tok")
	require.True(t, fcerrors.IsRemoteFailure(err))
}
