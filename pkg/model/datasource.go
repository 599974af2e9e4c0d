package model

import (
	"strings"
)

// DataSourceType enumerates ingestable data source formats. Only the
// tabular CSV variant is currently supported; anything else is rejected
// before storage is touched.
type DataSourceType string

const (
	DataSourceTypeCSV DataSourceType = "csv"
)

func ParseDataSourceType(s string) (DataSourceType, bool) {
	switch DataSourceType(strings.ToLower(strings.TrimSpace(s))) {
	case DataSourceTypeCSV:
		return DataSourceTypeCSV, true
	default:
		return "", false
	}
}

// DataSource is a participant-local catalog entry. It becomes visible only
// once the two-phase ingestion finishes: blob staged, fetched by the
// compute node, and the record finalized with the local access path.
type DataSource struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        DataSourceType `json:"type"`
	SchemaName  string         `json:"schemaname"`
	AccessInfo  string         `json:"accessinfo"`
	Enabled     bool           `json:"enabled"`
}
