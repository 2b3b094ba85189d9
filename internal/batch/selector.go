package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Selector decides whether an entry of dir is an input file.
type Selector func(dir string, entry fs.DirEntry) bool

// SuffixSelector accepts non-directory entries whose name ends with suffix.
func SuffixSelector(suffix string) Selector {
	return func(dir string, entry fs.DirEntry) bool {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
			return false
		}
		return !isDir(filepath.Join(dir, entry.Name()))
	}
}

// RegularFileSelector accepts regular files (symlinks followed) whose name
// matches the include glob. An empty glob matches everything.
func RegularFileSelector(include string) Selector {
	return func(dir string, entry fs.DirEntry) bool {
		if include != "" {
			ok, err := doublestar.Match(include, entry.Name())
			if err != nil || !ok {
				return false
			}
		}
		info, err := os.Stat(filepath.Join(dir, entry.Name()))
		if err != nil {
			return false
		}
		return info.Mode().IsRegular()
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
