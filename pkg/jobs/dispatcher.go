package jobs

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/fedcompute-project/fedcompute/pkg/fcerrors"
	"github.com/fedcompute-project/fedcompute/pkg/model"
	"github.com/fedcompute-project/fedcompute/pkg/registry"
	"github.com/fedcompute-project/fedcompute/pkg/util/idgen"
)

// Wire layout for GetProjectJobs rows. Column order is the contract.
var jobLayout = registry.Layout{
	Endpoint: "GetProjectJobs",
	Columns: []string{
		"jobid",
		"projectname",
		"operation",
		"result",
		"summary",
		"logtxt",
		"status",
		"startdatetime",
		"enddatetime",
	},
}

// Dispatcher creates and triggers computation jobs. Its only state-machine
// responsibility is Created -> Triggered; everything after that is reported
// by the participant's compute engine and read back through List.
type Dispatcher struct {
	session *registry.Session
}

func NewDispatcher(session *registry.Session) *Dispatcher {
	return &Dispatcher{session: session}
}

// Trigger asks the registry to run a job for the project and returns the
// idempotency key that was sent. A syntactically valid caller-supplied
// jobID is forwarded verbatim so the remote side can deduplicate; an absent
// or invalid one is replaced with a fresh identifier. The dispatcher never
// guesses remote dedup behavior — its contract is only to always send a
// well-formed identifier.
func (d *Dispatcher) Trigger(ctx context.Context, projectName, jobID string) (string, error) {
	if projectName == "" {
		return "", fcerrors.NewValidationf("projectname must not be empty")
	}
	jobID = idgen.NormalizeJobID(jobID)

	req := map[string]string{
		"projectname": projectName,
		"jobid":       jobID,
	}
	if _, err := d.session.Invoke(ctx, "TriggerJob", req); err != nil {
		return "", err
	}
	log.Ctx(ctx).Info().
		Str("Project", projectName).
		Str("JobID", jobID).
		Msg("triggered computation job")
	return jobID, nil
}

// List returns the ordered job history for a project, or for every project
// when projectName is empty.
func (d *Dispatcher) List(ctx context.Context, projectName string) ([]model.ComputationJob, error) {
	req := map[string]string{"projectname": projectName}
	result, err := d.session.Invoke(ctx, jobLayout.Endpoint, req)
	if err != nil {
		return nil, err
	}

	list := make([]model.ComputationJob, 0, len(result.Rows))
	for _, row := range result.Rows {
		job, err := decodeJob(row)
		if err != nil {
			return nil, fcerrors.NewMalformedResponse(jobLayout.Endpoint, err)
		}
		list = append(list, job)
	}
	return list, nil
}

func decodeJob(row registry.Row) (model.ComputationJob, error) {
	fields, err := jobLayout.Bind(row)
	if err != nil {
		return model.ComputationJob{}, err
	}

	job := model.ComputationJob{
		ID:          fields.String("jobid"),
		ProjectName: fields.String("projectname"),
		Operation:   fields.String("operation"),
		Result:      fields.String("result"),
		Summary:     fields.String("summary"),
		LogText:     fields.String("logtxt"),
		StartedAt:   fields.Time("startdatetime"),
		EndedAt:     fields.Time("enddatetime"),
	}
	if err := fields.Err(); err != nil {
		return model.ComputationJob{}, err
	}

	// the compute engine owns status strings; an unknown one is reported
	// as-is rather than failing the whole listing
	status, err := model.ParseJobStatus(fields.String("status"))
	if err != nil {
		log.Debug().Str("Status", fields.String("status")).Msg("unknown job status reported by registry")
	}
	job.Status = status
	return job, nil
}
