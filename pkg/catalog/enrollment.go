package catalog

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog/log"

	"github.com/fedcompute-project/fedcompute/pkg/fcerrors"
	"github.com/fedcompute-project/fedcompute/pkg/model"
	"github.com/fedcompute-project/fedcompute/pkg/registry"
)

// Wire layout for GetProjectParticipants rows. Column order is the contract.
var enrollmentLayout = registry.Layout{
	Endpoint: "GetProjectParticipants",
	Columns: []string{
		"id",
		"projectname",
		"participantname",
		"enabled",
	},
}

// Enrollment manages which participants take part in which projects.
type Enrollment struct {
	session *registry.Session
}

func NewEnrollment(session *registry.Session) *Enrollment {
	return &Enrollment{session: session}
}

// ProjectParticipants lists the membership rows for a project.
func (e *Enrollment) ProjectParticipants(ctx context.Context, projectName string) ([]model.ProjectEnrollment, error) {
	req := map[string]string{"projectname": projectName}
	result, err := e.session.Invoke(ctx, enrollmentLayout.Endpoint, req)
	if err != nil {
		return nil, err
	}

	enrollments := make([]model.ProjectEnrollment, 0, len(result.Rows))
	for _, row := range result.Rows {
		fields, err := enrollmentLayout.Bind(row)
		if err != nil {
			return nil, fcerrors.NewMalformedResponse(enrollmentLayout.Endpoint, err)
		}
		enrollments = append(enrollments, model.ProjectEnrollment{
			ID:          fields.String("id"),
			ProjectName: fields.String("projectname"),
			Participant: fields.String("participantname"),
			Enabled:     fields.String("enabled"),
		})
		if err := fields.Err(); err != nil {
			return nil, fcerrors.NewMalformedResponse(enrollmentLayout.Endpoint, err)
		}
	}
	return enrollments, nil
}

// Enroll forwards an enrollment operation for the (project, participant)
// pair. The operation tag is an open string interpreted by the remote
// registry — Enroll and Withdraw are the known values — and is forwarded
// verbatim.
func (e *Enrollment) Enroll(ctx context.Context, projectName, participantName, operation string) error {
	var result *multierror.Error
	if projectName == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("projectname must not be empty"))
	}
	if participantName == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("participantname must not be empty"))
	}
	if operation == "" {
		result = multierror.Append(result, fcerrors.NewValidationf("operation must not be empty"))
	}
	if err := result.ErrorOrNil(); err != nil {
		return fcerrors.NewValidation(err)
	}

	req := map[string]string{
		"projectname":     projectName,
		"participantname": participantName,
		"operation":       operation,
	}
	if _, err := e.session.Invoke(ctx, "EnrollInProject", req); err != nil {
		return err
	}
	log.Ctx(ctx).Info().
		Str("Project", projectName).
		Str("Participant", participantName).
		Str("Operation", operation).
		Msg("forwarded enrollment operation")
	return nil
}
