package yaml

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
	"github.com/goccy/go-yaml/printer"
	"github.com/goccy/go-yaml/token"
)

var errHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

func NewPathBuilder() *yaml.PathBuilder {
	return &yaml.PathBuilder{}
}

// PathFromLocation converts a sequence of keys and indices into a path.
// Segments that parse as unsigned integers are treated as sequence indices.
func PathFromLocation(location ...string) *yaml.Path {
	b := NewPathBuilder().Root()

	for _, part := range location {
		var index uint
		if _, err := fmt.Sscanf(part, "%d", &index); err == nil {
			b = b.Index(index)
		} else {
			b = b.Child(part)
		}
	}

	return b.Build()
}

// Error is a YAML error. It includes the original error, and the path
// or [*token.Token] where the error occurred. When the source is known,
// the message includes the surrounding lines.
type Error struct {
	Err     error
	Path    *yaml.Path
	Token   *token.Token
	Source  []byte
	Colored bool
}

type ErrorOpt func(e *Error)

func NewError(err error, opts ...ErrorOpt) *Error {
	e := &Error{Err: err}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

func WithPath(path *yaml.Path) ErrorOpt {
	return func(e *Error) {
		e.Path = path
	}
}

func WithToken(tk *token.Token) ErrorOpt {
	return func(e *Error) {
		e.Token = tk
	}
}

func WithSource(source []byte) ErrorOpt {
	return func(e *Error) {
		e.Source = source
	}
}

func WithColor(colored bool) ErrorOpt {
	return func(e *Error) {
		e.Colored = colored
	}
}

// Annotate applies opts to err if it is (or wraps) an [*Error], and returns
// err.
func Annotate(err error, opts ...ErrorOpt) error {
	var yamlErr *Error
	if errors.As(err, &yamlErr) {
		for _, opt := range opts {
			opt(yamlErr)
		}
	}

	return err
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	if e.Err == nil {
		return ""
	}

	if e.Path == nil && e.Token == nil {
		return e.Err.Error()
	}

	tk := e.Token
	if tk == nil && e.Source != nil {
		tk = tokenForPath(e.Source, e.Path)
	}

	if tk == nil {
		return fmt.Sprintf("error at %s: %v", e.Path, e.Err)
	}

	header := fmt.Sprintf("[%d:%d] %v", tk.Position.Line, tk.Position.Column, e.Err)
	if e.Path != nil {
		header = fmt.Sprintf("[%d:%d] %s: %v", tk.Position.Line, tk.Position.Column, e.Path, e.Err)
	}
	if e.Colored {
		header = errHeaderStyle.Render(header)
	}

	var p printer.Printer

	p.LineNumber = true

	return header + "\n" + p.PrintErrorToken(tk, e.Colored)
}

// tokenForPath returns the token of the key at path, or of the value if the
// path has no key (the root, or a sequence entry).
func tokenForPath(source []byte, path *yaml.Path) *token.Token {
	file, err := parser.ParseBytes(source, 0)
	if err != nil {
		return nil
	}

	node, err := path.FilterFile(file)
	if err != nil {
		return nil
	}

	if key := keyToken(file, path); key != nil {
		return key
	}

	return node.GetToken()
}

func keyToken(file *ast.File, path *yaml.Path) *token.Token {
	s := path.String()

	dot := strings.LastIndex(s, ".")
	if dot == -1 || dot < strings.LastIndex(s, "[") {
		return nil
	}

	parent, err := yaml.PathString(s[:dot])
	if err != nil {
		return nil
	}

	node, err := parent.FilterFile(file)
	if err != nil {
		return nil
	}

	mapping, ok := node.(*ast.MappingNode)
	if !ok {
		return nil
	}

	for _, v := range mapping.Values {
		if v.Key.String() == s[dot+1:] {
			return v.Key.GetToken()
		}
	}

	return nil
}
