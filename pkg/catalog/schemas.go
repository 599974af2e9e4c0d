package catalog

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/fedcompute-project/fedcompute/pkg/fcerrors"
	"github.com/fedcompute-project/fedcompute/pkg/model"
	"github.com/fedcompute-project/fedcompute/pkg/registry"
)

// Wire layout for GetSchemas rows. Column order is the contract.
var schemaLayout = registry.Layout{
	Endpoint: "GetSchemas",
	Columns: []string{
		"id",
		"name",
		"description",
		"version",
		"schema",
	},
}

// Schemas is the model-schema half of the shared catalog. Versions grow
// monotonically per name on the registry side: registering under an
// existing name publishes a new version, it never mutates the old one.
type Schemas struct {
	session *registry.Session
}

func NewSchemas(session *registry.Session) *Schemas {
	return &Schemas{session: session}
}

// List returns schemas, optionally filtered by name. Empty name lists
// everything.
func (s *Schemas) List(ctx context.Context, name string) ([]model.ModelSchema, error) {
	req := map[string]string{"schemaname": name}
	result, err := s.session.Invoke(ctx, schemaLayout.Endpoint, req)
	if err != nil {
		return nil, err
	}

	schemas := make([]model.ModelSchema, 0, len(result.Rows))
	for _, row := range result.Rows {
		schema, err := decodeSchema(row)
		if err != nil {
			return nil, fcerrors.NewMalformedResponse(schemaLayout.Endpoint, err)
		}
		schemas = append(schemas, schema)
	}
	return schemas, nil
}

func decodeSchema(row registry.Row) (model.ModelSchema, error) {
	fields, err := schemaLayout.Bind(row)
	if err != nil {
		return model.ModelSchema{}, err
	}

	schema := model.ModelSchema{
		ID:          fields.String("id"),
		Name:        fields.String("name"),
		Description: fields.String("description"),
		Version:     fields.String("version"),
		SchemaJSON:  fields.String("schema"),
	}
	return schema, fields.Err()
}

// Register publishes a schema to the central registry with broadcast
// enabled. The description defaults to the schema name when omitted, and
// the schema body must be a well-formed JSON document.
func (s *Schemas) Register(ctx context.Context, name, description, schemaJSON string) error {
	if name == "" {
		return fcerrors.NewValidationf("schemaname must not be empty")
	}
	if schemaJSON == "" || !json.Valid([]byte(schemaJSON)) {
		return fcerrors.NewValidationf("schema must be a well-formed JSON document")
	}
	if description == "" {
		description = name
	}

	req := map[string]interface{}{
		"schemaname": name,
		"schemadesc": description,
		"schema":     schemaJSON,
		"broadcast":  true,
	}
	if _, err := s.session.Invoke(ctx, "RegisterSchema", req); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("Schema", name).Msg("registered model schema")
	return nil
}
