package catalog

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"

	"github.com/fedcompute-project/fedcompute/pkg/fcerrors"
	"github.com/fedcompute-project/fedcompute/pkg/model"
	"github.com/fedcompute-project/fedcompute/pkg/registry"
)

// Wire layout for GetComputationProjects rows. Column order is the contract.
var projectLayout = registry.Layout{
	Endpoint: "GetComputationProjects",
	Columns: []string{
		"id",
		"projectname",
		"projectdesc",
		"formula",
		"datacatalog",
		"computationtype",
		"enabled",
		"validfrom",
		"validto",
	},
}

// Projects is the computation-project half of the shared catalog. Proposals
// default to broadcast: proposing a project implies intent to share it with
// the whole federation, and the registry pushes accepted definitions to
// every participant currently inside its validity window. Success means
// the registry accepted the definition, not that propagation finished.
type Projects struct {
	session *registry.Session
}

func NewProjects(session *registry.Session) *Projects {
	return &Projects{session: session}
}

// List returns project definitions, optionally filtered by name. Empty name
// lists everything.
func (p *Projects) List(ctx context.Context, name string) ([]model.ComputationProject, error) {
	req := map[string]string{"projectname": name}
	result, err := p.session.Invoke(ctx, projectLayout.Endpoint, req)
	if err != nil {
		return nil, err
	}

	projects := make([]model.ComputationProject, 0, len(result.Rows))
	for _, row := range result.Rows {
		project, err := decodeProject(row)
		if err != nil {
			return nil, fcerrors.NewMalformedResponse(projectLayout.Endpoint, err)
		}
		projects = append(projects, project)
	}
	return projects, nil
}

func decodeProject(row registry.Row) (model.ComputationProject, error) {
	fields, err := projectLayout.Bind(row)
	if err != nil {
		return model.ComputationProject{}, err
	}

	project := model.ComputationProject{
		ID:              fields.UUID("id"),
		Name:            fields.String("projectname"),
		Description:     fields.String("projectdesc"),
		Formula:         fields.String("formula"),
		DataCatalog:     fields.String("datacatalog"),
		ComputationType: fields.String("computationtype"),
		Enabled:         fields.Bool("enabled"),
		ValidFrom:       fields.Time("validfrom"),
		ValidTo:         fields.Time("validto"),
		// registry-held definitions are the shared, broadcast copies
		Broadcast: true,
	}
	return project, fields.Err()
}

// ProposeRequest is a new shared project definition.
type ProposeRequest struct {
	Name            string `json:"projectname"`
	Description     string `json:"projectdesc"`
	SchemaName      string `json:"schemaname"`
	ComputationType string `json:"computationtype"`
	Formula         string `json:"formula"`
	Broadcast       bool   `json:"broadcast"`
}

func (r ProposeRequest) Validate() error {
	var result *multierror.Error
	if r.Name == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("projectname must not be empty"))
	}
	if r.SchemaName == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("schemaname must not be empty"))
	}
	if r.ComputationType == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("computationtype must not be empty"))
	}
	if r.Formula == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("formula must not be empty"))
	}
	return result.ErrorOrNil()
}

// Propose submits a project definition to the central registry with
// broadcast enabled. Validation happens before any network call.
func (p *Projects) Propose(ctx context.Context, req ProposeRequest) error {
	if err := req.Validate(); err != nil {
		return fcerrors.NewValidation(err)
	}
	req.Broadcast = true

	if _, err := p.session.Invoke(ctx, "ProposeComputation", req); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("Project", req.Name).Msg("proposed computation project")
	return nil
}

// RegisterComputationTypes triggers computation-type discovery on the
// remote registry. The operation carries no payload beyond an empty object.
func (p *Projects) RegisterComputationTypes(ctx context.Context) error {
	_, err := p.session.Invoke(ctx, "RegisterComputations", struct{}{})
	return err
}
