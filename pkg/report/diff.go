package report

import (
	"fmt"

	"github.com/aymanbagabas/go-udiff"
)

// Diff returns a unified diff between two serialized documents. It is
// empty when both are equal.
func Diff(fromName, toName string, from, to []byte) string {
	return udiff.Unified(fromName, toName, string(from), string(to))
}

// DiffDocuments marshals both documents as YAML and diffs them.
func DiffDocuments(fromName, toName string, from, to *Document) (string, error) {
	a, err := from.Marshal(FormatYAML)
	if err != nil {
		return "", fmt.Errorf("%s: %w", fromName, err)
	}

	b, err := to.Marshal(FormatYAML)
	if err != nil {
		return "", fmt.Errorf("%s: %w", toName, err)
	}

	return Diff(fromName, toName, a, b), nil
}
