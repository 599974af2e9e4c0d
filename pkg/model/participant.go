package model

import (
	"time"

	"github.com/google/uuid"
)

// Participant is a compute node trusted by the central registry through its
// own OAuth client credential. Participants are never hard-deleted; they
// are disabled or aged out of their validity window instead.
type Participant struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ClientID     uuid.UUID `json:"clientid"`
	TenantID     string    `json:"tenantid"`
	URL          string    `json:"url"`
	ClientSecret string    `json:"clientsecret"`
	Enabled      bool      `json:"enabled"`
	ValidFrom    time.Time `json:"validfrom"`
	ValidTo      time.Time `json:"validto"`
}

// Usable reports whether the participant may take part in the federation at
// the given instant. Enabled participants outside their validity window are
// unusable regardless of the flag.
func (p Participant) Usable(now time.Time) bool {
	if !p.Enabled {
		return false
	}
	return !now.Before(p.ValidFrom) && now.Before(p.ValidTo)
}

// ProjectEnrollment is one (project, participant) membership row.
type ProjectEnrollment struct {
	ID          string `json:"id"`
	ProjectName string `json:"projectname"`
	Participant string `json:"participantname"`
	Enabled     string `json:"enabled"`
}

// Enrollment operation tags. The remote registry interprets these; the core
// only forwards them verbatim alongside the (project, participant) pair.
const (
	EnrollmentOperationEnroll   = "Enroll"
	EnrollmentOperationWithdraw = "Withdraw"
)
