//go:build unit || !integration

package jobs_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fedcompute-project/fedcompute/pkg/fcerrors"
	"github.com/fedcompute-project/fedcompute/pkg/jobs"
	"github.com/fedcompute-project/fedcompute/pkg/logger"
	"github.com/fedcompute-project/fedcompute/pkg/model"
	"github.com/fedcompute-project/fedcompute/pkg/testutils"
	"github.com/fedcompute-project/fedcompute/pkg/util/idgen"
)

func newDispatcher(t *testing.T, api *testutils.RegistryServer) *jobs.Dispatcher {
	t.Helper()
	tokenServer, _ := testutils.TokenServer(t)
	session := testutils.Session(t, api.Server.URL,
		testutils.Target(tokenServer.URL, api.Server.URL, "central"))
	return jobs.NewDispatcher(session)
}

func TestTriggerForwardsValidJobIDVerbatim(t *testing.T) {
	logger.ConfigureTestLogging(t)

	var body map[string]string
	api := testutils.NewRegistryServer(t, map[string]http.HandlerFunc{
		"TriggerJob": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_, _ = w.Write([]byte(testutils.Envelope()))
		},
	})
	dispatcher := newDispatcher(t, api)

	jobID := idgen.NewJobID()
	sent, err := dispatcher.Trigger(context.Background(), "mean-age", jobID)
	require.NoError(t, err)
	require.Equal(t, jobID, sent, "a valid idempotency key is reused, letting the remote side deduplicate")
	require.Equal(t, map[string]string{"projectname": "mean-age", "jobid": jobID}, body)
}

func TestTriggerMintsFreshIDsForMissingOrInvalidOnes(t *testing.T) {
	logger.ConfigureTestLogging(t)

	api := testutils.NewRegistryServer(t, map[string]http.HandlerFunc{
		"TriggerJob": testutils.OKEnvelope(),
	})
	dispatcher := newDispatcher(t, api)
	ctx := context.Background()

	first, err := dispatcher.Trigger(ctx, "mean-age", "")
	require.NoError(t, err)
	second, err := dispatcher.Trigger(ctx, "mean-age", "")
	require.NoError(t, err)
	replaced, err := dispatcher.Trigger(ctx, "mean-age", "not-a-guid")
	require.NoError(t, err)

	require.True(t, idgen.IsValidJobID(first))
	require.True(t, idgen.IsValidJobID(second))
	require.True(t, idgen.IsValidJobID(replaced))
	require.NotEqual(t, first, second, "each missing id mints a distinct job")
	require.NotEqual(t, "not-a-guid", replaced)
}

func TestTriggerRequiresAProject(t *testing.T) {
	logger.ConfigureTestLogging(t)

	api := testutils.NewRegistryServer(t, map[string]http.HandlerFunc{
		"TriggerJob": testutils.OKEnvelope(),
	})
	dispatcher := newDispatcher(t, api)

	_, err := dispatcher.Trigger(context.Background(), "", "")
	require.True(t, fcerrors.IsValidation(err))
	require.Zero(t, api.Calls("TriggerJob"))
}

func TestListDecodesJobHistory(t *testing.T) {
	logger.ConfigureTestLogging(t)

	jobID := idgen.NewJobID()
	api := testutils.NewRegistryServer(t, map[string]http.HandlerFunc{
		"GetProjectJobs": testutils.OKEnvelope(
			[]interface{}{
				jobID, "mean-age", "run", "42.5", "completed ok", "log line",
				"Succeeded", "2023-04-01T10:00:00", "2023-04-01T10:05:00",
			},
			[]interface{}{
				idgen.NewJobID(), "mean-age", "run", "", "", "",
				"Exploded", "2023-04-01T11:00:00", "",
			},
		),
	})
	dispatcher := newDispatcher(t, api)

	list, err := dispatcher.List(context.Background(), "mean-age")
	require.NoError(t, err)
	require.Len(t, list, 2)

	done := list[0]
	require.Equal(t, jobID, done.ID)
	require.Equal(t, model.JobStatusSucceeded, done.Status)
	require.True(t, done.Status.IsTerminal())
	require.Equal(t, "42.5", done.Result)
	require.False(t, done.EndedAt.IsZero())

	// a status string this core has never heard of must not fail the listing
	odd := list[1]
	require.False(t, model.IsValidJobStatus(odd.Status))
	require.True(t, odd.EndedAt.IsZero())
}

func TestListSurfacesSessionErrors(t *testing.T) {
	logger.ConfigureTestLogging(t)

	api := testutils.NewRegistryServer(t, map[string]http.HandlerFunc{
		"GetProjectJobs": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		},
	})
	dispatcher := newDispatcher(t, api)

	_, err := dispatcher.List(context.Background(), "mean-age")
	require.True(t, fcerrors.IsAuthorizationRequired(err))
}
