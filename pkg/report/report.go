package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/macropower/skipgrid/api/v1beta1"
	"github.com/macropower/skipgrid/pkg/grid"
	"github.com/macropower/skipgrid/pkg/yaml"
)

// Kind is the document kind written by [Marshal].
const Kind = "Snapshot"

// Format is a serialization format for a [Document].
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// AllFormats lists the accepted [Format] names.
var AllFormats = []string{string(FormatYAML), string(FormatJSON)}

var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat returns the [Format] named by s. An empty string selects YAML.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatYAML, "yml", "":
		return FormatYAML, nil
	case FormatJSON:
		return FormatJSON, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Document is the serialized form of a layout pass.
type Document struct {
	v1beta1.TypeMeta `json:",inline"`

	Snapshot *grid.Snapshot `json:"snapshot"`
	Labels   []string       `json:"labels,omitempty"`
	Skip     []int          `json:"skip"`
}

// NewDocument creates a [Document] for snap, which was computed with skip.
func NewDocument(snap *grid.Snapshot, skip grid.SkipSet) *Document {
	indices := skip.Indices()
	if indices == nil {
		indices = []int{}
	}

	return &Document{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
		Snapshot: snap,
		Skip:     indices,
	}
}

// WithLabels sets the label of each item, indexed by item position.
func (d *Document) WithLabels(labels []string) *Document {
	d.Labels = labels

	return d
}

// Marshal encodes the document in the given format.
func (d *Document) Marshal(format Format) ([]byte, error) {
	switch format {
	case FormatYAML, "":
		b, err := yaml.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("marshal yaml: %w", err)
		}

		return b, nil

	case FormatJSON:
		b, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}

		return append(b, '\n'), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}
