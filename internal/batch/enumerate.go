package batch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Enumerate returns the names in dir accepted by sel, in lexical order.
// A missing dir yields ErrMissingInputDirectory; no matches yield
// ErrEmptyInputSet.
func Enumerate(dir string, sel Selector) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: '%s'", ErrMissingInputDirectory, dir)
		}
		return nil, fmt.Errorf("stat input directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: '%s' is not a directory", ErrMissingInputDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if sel(dir, e) {
			names = append(names, e.Name())
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("%w in '%s'", ErrEmptyInputSet, dir)
	}
	return names, nil
}
