package datasource

import (
	"context"
	"io"
	"path"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"

	"github.com/fedcompute-project/fedcompute/pkg/fcerrors"
	"github.com/fedcompute-project/fedcompute/pkg/model"
	"github.com/fedcompute-project/fedcompute/pkg/registry"
)

// Wire layout for GetDataSources rows. Column order is the contract.
var dataSourceLayout = registry.Layout{
	Endpoint: "GetDataSources",
	Columns: []string{
		"id",
		"name",
		"description",
		"type",
		"schemaname",
		"accessinfo",
	},
}

// BlobStager stages a raw file into durable blob storage and mints a
// time-limited signed download URL for it.
type BlobStager interface {
	Stage(ctx context.Context, key string, body io.Reader) (string, error)
}

// Service runs the two-phase data source ingestion against the
// participant's own catalog: stage the blob, have the compute node fetch it
// via the signed URL, then finalize the catalog record with the local
// access path. A data source is not visible until the final step lands.
type Service struct {
	local   *registry.Session
	stager  BlobStager
	dataDir string
}

func NewService(local *registry.Session, stager BlobStager, dataDir string) *Service {
	return &Service{
		local:   local,
		stager:  stager,
		dataDir: dataDir,
	}
}

// List returns the participant's cataloged data sources. Entries still in
// flight through ingestion do not appear.
func (s *Service) List(ctx context.Context) ([]model.DataSource, error) {
	result, err := s.local.Invoke(ctx, dataSourceLayout.Endpoint, struct{}{})
	if err != nil {
		return nil, err
	}

	sources := make([]model.DataSource, 0, len(result.Rows))
	for _, row := range result.Rows {
		fields, err := dataSourceLayout.Bind(row)
		if err != nil {
			return nil, fcerrors.NewMalformedResponse(dataSourceLayout.Endpoint, err)
		}
		sources = append(sources, model.DataSource{
			ID:          fields.String("id"),
			Name:        fields.String("name"),
			Description: fields.String("description"),
			Type:        model.DataSourceType(fields.String("type")),
			SchemaName:  fields.String("schemaname"),
			AccessInfo:  fields.String("accessinfo"),
		})
		if err := fields.Err(); err != nil {
			return nil, fcerrors.NewMalformedResponse(dataSourceLayout.Endpoint, err)
		}
	}
	return sources, nil
}

// CreateRequest carries a new data source and its raw file. FileName is the
// original upload name; only its extension is kept.
type CreateRequest struct {
	Name        string
	Description string
	Type        string
	SchemaName  string
	File        io.Reader
	FileName    string
}

func (r CreateRequest) validate() error {
	var result *multierror.Error
	if _, ok := model.ParseDataSourceType(r.Type); !ok {
		result = multierror.Append(result, fcerrors.NewValidationf("unsupported data source type %q", r.Type))
	}
	if r.Name == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("datasourcename must not be empty"))
	}
	if r.SchemaName == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("schemaname must not be empty"))
	}
	if r.File == nil {
		result = multierror.Append(result, fcerrors.NewValidationf("a data file is required"))
	}
	return result.ErrorOrNil()
}

// Create ingests a data source. The type check runs before storage is
// touched; an unsupported type costs zero storage and zero registry calls.
// If the fetch or finalize step fails the staged blob is left behind for
// external housekeeping — no cleanup is attempted here.
func (s *Service) Create(ctx context.Context, req CreateRequest) error {
	if err := req.validate(); err != nil {
		return fcerrors.NewValidation(err)
	}

	localFileName := req.Name + path.Ext(req.FileName)

	// phase 1: stage blob, mint signed download URL
	downloadURI, err := s.stager.Stage(ctx, localFileName, req.File)
	if err != nil {
		return err
	}

	// phase 2 has a hard data dependency on phase 1's output: the compute
	// node fetches the blob through the minted URL
	if _, err := s.local.Invoke(ctx, "DownloadDataSourceFile", map[string]string{
		"downloaduri":   downloadURI,
		"localfilename": localFileName,
	}); err != nil {
		return err
	}

	description := req.Description
	if description == "" {
		description = req.Name
	}

	// finalize the catalog record against the fetched local path
	if _, err := s.local.Invoke(ctx, "CreateCSVDataSource", map[string]string{
		"datasourcename":     req.Name,
		"datasourcedesc":     description,
		"schemaname":         req.SchemaName,
		"datasourcelocation": path.Join(s.dataDir, localFileName),
	}); err != nil {
		return err
	}

	log.Ctx(ctx).Info().
		Str("DataSource", req.Name).
		Str("Schema", req.SchemaName).
		Msg("cataloged data source")
	return nil
}
