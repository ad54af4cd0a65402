// Package yaml wraps [github.com/goccy/go-yaml] with the encoder settings
// used for layout documents and snapshots, JSON schema validation, and
// errors that point at the offending source line.
package yaml
