//go:build unit || !integration

package datasource_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fedcompute-project/fedcompute/pkg/datasource"
	"github.com/fedcompute-project/fedcompute/pkg/fcerrors"
	"github.com/fedcompute-project/fedcompute/pkg/logger"
	"github.com/fedcompute-project/fedcompute/pkg/testutils"
)

// fakeStager records staged keys and hands back a canned signed URL.
type fakeStager struct {
	calls    int
	lastKey  string
	lastBody string
	err      error
}

func (f *fakeStager) Stage(ctx context.Context, key string, body io.Reader) (string, error) {
	f.calls++
	f.lastKey = key
	contents, _ := io.ReadAll(body)
	f.lastBody = string(contents)
	if f.err != nil {
		return "", f.err
	}
	return "https://blobs.example.org/" + key + "?sig=abc", nil
}

func newService(t *testing.T, api *testutils.RegistryServer, stager datasource.BlobStager) *datasource.Service {
	t.Helper()
	tokenServer, _ := testutils.TokenServer(t)
	session := testutils.Session(t, api.Server.URL,
		testutils.Target(tokenServer.URL, api.Server.URL, "local"))
	return datasource.NewService(session, stager, "/var/lib/fedcompute/data")
}

func TestCreateRunsBothPhasesInOrder(t *testing.T) {
	logger.ConfigureTestLogging(t)

	var download, create map[string]string
	api := testutils.NewRegistryServer(t, map[string]http.HandlerFunc{
		"DownloadDataSourceFile": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&download))
			require.Nil(t, create, "fetch must land before the catalog record is finalized")
			_, _ = w.Write([]byte(testutils.Envelope()))
		},
		"CreateCSVDataSource": func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, json.NewDecoder(r.Body).Decode(&create))
			_, _ = w.Write([]byte(testutils.Envelope()))
		},
	})
	stager := &fakeStager{}
	service := newService(t, api, stager)

	err := service.Create(context.Background(), datasource.CreateRequest{
		Name:       "admissions",
		Type:       "csv",
		SchemaName: "patients-v1",
		File:       strings.NewReader("age,stay\n70,12\n"),
		FileName:   "upload-2023-04-01.csv",
	})
	require.NoError(t, err)

	// the staged key keeps the catalog name, only the upload's extension survives
	require.Equal(t, 1, stager.calls)
	require.Equal(t, "admissions.csv", stager.lastKey)
	require.Equal(t, "age,stay\n70,12\n", stager.lastBody)

	require.Equal(t, map[string]string{
		"downloaduri":   "https://blobs.example.org/admissions.csv?sig=abc",
		"localfilename": "admissions.csv",
	}, download)
	require.Equal(t, map[string]string{
		"datasourcename":     "admissions",
		"datasourcedesc":     "admissions", // defaults to the name
		"schemaname":         "patients-v1",
		"datasourcelocation": "/var/lib/fedcompute/data/admissions.csv",
	}, create)
}

func TestCreateRejectsUnsupportedTypeBeforeTouchingAnything(t *testing.T) {
	logger.ConfigureTestLogging(t)

	api := testutils.NewRegistryServer(t, map[string]http.HandlerFunc{
		"DownloadDataSourceFile": testutils.OKEnvelope(),
		"CreateCSVDataSource":    testutils.OKEnvelope(),
	})
	stager := &fakeStager{}
	service := newService(t, api, stager)

	err := service.Create(context.Background(), datasource.CreateRequest{
		Name:       "admissions",
		Type:       "xml",
		SchemaName: "patients-v1",
		File:       strings.NewReader("<xml/>"),
		FileName:   "upload.xml",
	})
	require.True(t, fcerrors.IsValidation(err))
	require.Contains(t, err.Error(), "xml")

	require.Zero(t, stager.calls, "an unsupported type costs zero storage")
	require.Zero(t, api.Calls("DownloadDataSourceFile"))
	require.Zero(t, api.Calls("CreateCSVDataSource"))
}

func TestCreateTypeIsCaseInsensitive(t *testing.T) {
	logger.ConfigureTestLogging(t)

	api := testutils.NewRegistryServer(t, map[string]http.HandlerFunc{
		"DownloadDataSourceFile": testutils.OKEnvelope(),
		"CreateCSVDataSource":    testutils.OKEnvelope(),
	})
	service := newService(t, api, &fakeStager{})

	err := service.Create(context.Background(), datasource.CreateRequest{
		Name:       "admissions",
		Type:       " CSV ",
		SchemaName: "patients-v1",
		File:       strings.NewReader("age\n70\n"),
		FileName:   "upload.csv",
	})
	require.NoError(t, err)
}

func TestCreateStopsWhenStagingFails(t *testing.T) {
	logger.ConfigureTestLogging(t)

	api := testutils.NewRegistryServer(t, map[string]http.HandlerFunc{
		"DownloadDataSourceFile": testutils.OKEnvelope(),
		"CreateCSVDataSource":    testutils.OKEnvelope(),
	})
	stager := &fakeStager{err: io.ErrUnexpectedEOF}
	service := newService(t, api, stager)

	err := service.Create(context.Background(), datasource.CreateRequest{
		Name:       "admissions",
		Type:       "csv",
		SchemaName: "patients-v1",
		File:       strings.NewReader("age\n70\n"),
		FileName:   "upload.csv",
	})
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)

	require.Zero(t, api.Calls("DownloadDataSourceFile"), "no fetch without a staged blob")
	require.Zero(t, api.Calls("CreateCSVDataSource"))
}

func TestListDecodesCatalogRows(t *testing.T) {
	logger.ConfigureTestLogging(t)

	api := testutils.NewRegistryServer(t, map[string]http.HandlerFunc{
		"GetDataSources": testutils.OKEnvelope(
			[]interface{}{
				"1", "admissions", "patient admissions", "csv",
				"patients-v1", "/var/lib/fedcompute/data/admissions.csv",
			},
		),
	})
	service := newService(t, api, &fakeStager{})

	list, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "admissions", list[0].Name)
	require.Equal(t, "patients-v1", list[0].SchemaName)
	require.Equal(t, "/var/lib/fedcompute/data/admissions.csv", list[0].AccessInfo)
}
