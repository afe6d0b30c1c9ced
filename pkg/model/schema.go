package model

// SchemaItem is one required property in a record schema.
type SchemaItem struct {
	Path string `json:"path"`
	Kind string `json:"kind,omitempty"`
}

// Schema describes the required shape of records of one kind.
type Schema struct {
	Kind   string       `json:"kind"`
	Schema []SchemaItem `json:"schema"`
}
