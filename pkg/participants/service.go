package participants

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"

	"github.com/fedcompute-project/fedcompute/pkg/fcerrors"
	"github.com/fedcompute-project/fedcompute/pkg/model"
	"github.com/fedcompute-project/fedcompute/pkg/registry"
)

// Wire layout for GetParticipants rows. Column order is the contract.
var participantLayout = registry.Layout{
	Endpoint: "GetParticipants",
	Columns: []string{
		"id",
		"name",
		"clientid",
		"tenantid",
		"url",
		"clientsecret",
		"enabled",
		"validfrom",
		"validto",
	},
}

// Service manages the central registry's roster of trusted participants.
// Listing reads from the central registry; registration is
// participant-initiated trust bootstrapping and therefore goes through the
// participant's own session, never the registry's.
type Service struct {
	central *registry.Session
	local   *registry.Session
}

func NewService(central, local *registry.Session) *Service {
	return &Service{
		central: central,
		local:   local,
	}
}

// List returns every participant known to the central registry. An empty
// federation is a valid, empty answer.
func (s *Service) List(ctx context.Context) ([]model.Participant, error) {
	result, err := s.central.Invoke(ctx, participantLayout.Endpoint, struct{}{})
	if err != nil {
		return nil, err
	}

	participants := make([]model.Participant, 0, len(result.Rows))
	for _, row := range result.Rows {
		participant, err := decodeParticipant(row)
		if err != nil {
			return nil, fcerrors.NewMalformedResponse(participantLayout.Endpoint, err)
		}
		participants = append(participants, participant)
	}
	return participants, nil
}

func decodeParticipant(row registry.Row) (model.Participant, error) {
	fields, err := participantLayout.Bind(row)
	if err != nil {
		return model.Participant{}, err
	}

	participant := model.Participant{
		ID:           fields.UUID("id"),
		Name:         fields.String("name"),
		ClientID:     fields.UUID("clientid"),
		TenantID:     fields.String("tenantid"),
		URL:          fields.String("url"),
		ClientSecret: fields.String("clientsecret"),
		Enabled:      fields.Bool("enabled"),
		ValidFrom:    fields.Time("validfrom"),
		ValidTo:      fields.Time("validto"),
	}
	return participant, fields.Err()
}

// RegisterRequest enrolls the central registry as a trusted peer of this
// participant. Registration is idempotent on clientid: re-registering the
// same client updates the existing record.
type RegisterRequest struct {
	Name         string `json:"name"`
	ClientID     string `json:"clientid"`
	ClientSecret string `json:"clientsecret"`
	TenantID     string `json:"tenantid"`
	URL          string `json:"url"`
}

func (r RegisterRequest) Validate() error {
	var result *multierror.Error
	if r.Name == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("name must not be empty"))
	}
	if r.ClientID == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("clientid must not be empty"))
	}
	if r.ClientSecret == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("clientsecret must not be empty"))
	}
	if r.TenantID == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("tenantid must not be empty"))
	}
	if r.URL == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("url must not be empty"))
	}
	return result.ErrorOrNil()
}

// Register posts the RegisterMaster operation to the participant's own web
// API with the participant's own credential.
func (s *Service) Register(ctx context.Context, req RegisterRequest) error {
	if err := req.Validate(); err != nil {
		return fcerrors.NewValidation(err)
	}

	if _, err := s.local.Invoke(ctx, "RegisterMaster", req); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("Name", req.Name).Msg("registered central registry as trusted master")
	return nil
}
