package diagfmt

import (
	"os"
	"path/filepath"
	"strings"
)

// PathStyle selects how file paths are printed. The zero value prints the
// path as stored in the FileSet.
type PathStyle struct {
	Mode PathMode
	Base string // for PathRelative; "" means the working directory
}

type PathMode uint8

const (
	PathAsGiven PathMode = iota
	PathAbsolute
	PathRelative // falls back to the given path outside Base
	PathBasename
)

func (s PathStyle) apply(path string) string {
	switch s.Mode {
	case PathBasename:
		return filepath.Base(path)
	case PathAbsolute:
		if abs, err := filepath.Abs(path); err == nil {
			return abs
		}
	case PathRelative:
		if rel, ok := relativeTo(s.Base, path); ok {
			return rel
		}
	}
	return path
}

func relativeTo(base, path string) (string, bool) {
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", false
		}
		base = wd
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(base, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}
