package layouts

import (
	"fmt"

	"github.com/macropower/skipgrid/pkg/config"
)

// Parse validates and loads a layout document.
func Parse(data []byte, opts ...config.LoaderOpt) (*Layout, error) {
	v, err := DefaultValidator()
	if err != nil {
		return nil, err
	}

	l, err := config.NewLoaderFromBytes(data, Empty, v, opts...).ValidateAndLoad()
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}

	return l, nil
}

// Load reads, validates and loads the layout document at path.
func Load(path string, opts ...config.LoaderOpt) (*Layout, error) {
	v, err := DefaultValidator()
	if err != nil {
		return nil, err
	}

	loader, err := config.NewLoaderFromFile(path, Empty, v, opts...)
	if err != nil {
		return nil, fmt.Errorf("load layout: %w", err)
	}

	l, err := loader.ValidateAndLoad()
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", path, err)
	}

	return l, nil
}
