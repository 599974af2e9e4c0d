package model

// ModelSchema is a versioned, immutable schema definition. Republishing
// under an existing name creates a new version; content is never mutated in
// place.
type ModelSchema struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version"`
	SchemaJSON  string `json:"schema"`
	SchemaBin   []byte `json:"schemabin,omitempty"`
}
