package model

import (
	"fmt"
	"strings"
	"time"
)

// ComputationJob is one execution of a project's computation on the
// federation. ID doubles as the idempotency key: resubmitting the same id
// against the same project must not create a second job record.
type ComputationJob struct {
	ID          string    `json:"jobid"`
	ProjectName string    `json:"projectname"`
	Operation   string    `json:"operation"`
	Result      string    `json:"result"`
	Summary     string    `json:"summary"`
	LogText     string    `json:"logtxt"`
	Status      JobStatus `json:"status"`
	StartedAt   time.Time `json:"startdatetime"`
	EndedAt     time.Time `json:"enddatetime"`
}

// JobStatus is the lifecycle state of a computation job. Only
// Created -> Triggered is driven by this core; the participant's compute
// engine reports the rest.
type JobStatus int

const (
	jobStatusUnknown JobStatus = iota // must be first

	// the job record exists but nothing has been asked to run yet
	JobStatusCreated

	// the dispatcher has asked the registry to run the job
	JobStatusTriggered

	// the compute engine has picked the job up
	JobStatusRunning

	// terminal states reported by the compute engine
	JobStatusSucceeded
	JobStatusFailed
	JobStatusCancelled

	jobStatusDone // must be last
)

var jobStatusNames = map[JobStatus]string{
	JobStatusCreated:   "Created",
	JobStatusTriggered: "Triggered",
	JobStatusRunning:   "Running",
	JobStatusSucceeded: "Succeeded",
	JobStatusFailed:    "Failed",
	JobStatusCancelled: "Cancelled",
}

func (s JobStatus) String() string {
	if name, ok := jobStatusNames[s]; ok {
		return name
	}
	return "Unknown"
}

// IsTerminal returns true once the job can no longer change state.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusSucceeded || s == JobStatusFailed || s == JobStatusCancelled
}

func (s JobStatus) IsError() bool {
	return s == JobStatusFailed
}

func IsValidJobStatus(s JobStatus) bool {
	return s > jobStatusUnknown && s < jobStatusDone
}

// ParseJobStatus maps the registry's status column onto the enum. Unknown
// strings parse to the unknown status with an error rather than being
// silently coerced.
func ParseJobStatus(str string) (JobStatus, error) {
	for status := jobStatusUnknown + 1; status < jobStatusDone; status++ {
		if strings.EqualFold(status.String(), str) {
			return status, nil
		}
	}
	return jobStatusUnknown, fmt.Errorf("job: unknown job status '%s'", str)
}
