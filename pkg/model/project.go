package model

import (
	"time"

	"github.com/google/uuid"
)

// ComputationProject is a shared computation definition owned by the
// central registry. When Broadcast is set the registry propagates the
// definition to every participant whose validity window includes now;
// propagation is at-least-once and its completion is not observable here.
type ComputationProject struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"projectname"`
	Description     string    `json:"projectdesc"`
	Formula         string    `json:"formula"`
	DataCatalog     string    `json:"datacatalog"`
	ComputationType string    `json:"computationtype"`
	Enabled         bool      `json:"enabled"`
	ValidFrom       time.Time `json:"validfrom"`
	ValidTo         time.Time `json:"validto"`
	Broadcast       bool      `json:"broadcast"`
}
