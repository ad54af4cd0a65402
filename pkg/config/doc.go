// Package config loads versioned skipgrid documents: it validates raw YAML
// against a JSON schema, decodes it into a typed object, fills in defaults
// and runs semantic validation.
package config
