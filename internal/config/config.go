// Package config finds and decodes svfmt.toml.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"svfmt/internal/format"
)

const FileName = "svfmt.toml"

// DefaultMaxLineWidth matches the column limit of port-list wrapping.
const DefaultMaxLineWidth = 80

type Config struct {
	Path   string `toml:"-"` // empty when no file was found
	Format Format `toml:"format"`
	Files  Files  `toml:"files"`
}

type Format struct {
	IndentWidth  int  `toml:"indent_width"`
	UseTabs      bool `toml:"use_tabs"`
	MaxLineWidth int  `toml:"max_line_width"`
}

type Files struct {
	// Exclude holds glob patterns matched against slash-separated paths
	// relative to the config directory, and against base names.
	Exclude []string `toml:"exclude,omitempty"`
}

func Default() Config {
	return Config{Format: Format{
		IndentWidth:  format.DefaultIndentWidth,
		MaxLineWidth: DefaultMaxLineWidth,
	}}
}

// Options converts the [format] table.
func (f Format) Options() format.Options {
	return format.Options{
		IndentWidth:  f.IndentWidth,
		UseTabs:      f.UseTabs,
		MaxLineWidth: f.MaxLineWidth,
	}
}

// Root is the directory holding the config file.
func (c Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Excluded reports whether path matches one of the exclude patterns.
func (c Config) Excluded(path string) bool {
	if len(c.Files.Exclude) == 0 {
		return false
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	rel := filepath.Base(path)
	if root := c.Root(); root != "" {
		if r, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(r, "..") {
			rel = r
		}
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, pat := range c.Files.Exclude {
		if ok, _ := filepath.Match(pat, rel); ok {
			return true
		}
		if ok, _ := filepath.Match(pat, base); ok {
			return true
		}
		// "dir/" отсекает всё поддерево
		if strings.HasSuffix(pat, "/") && strings.HasPrefix(rel, pat) {
			return true
		}
	}
	return false
}

// Find searches startDir and its parents for svfmt.toml.
func Find(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load decodes path over the defaults. Unknown keys and invalid values are
// errors; invalid values wrap format.ErrConfig.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("format", "indent_width") && cfg.Format.IndentWidth == 0 {
		return Config{}, fmt.Errorf("%s: %w", path,
			&format.ConfigError{Field: "indent_width", Value: 0, Msg: "must be between 1 and 16"})
	}
	if err := cfg.Format.Options().Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadFor returns the config that applies to files in dir, or the defaults
// when no svfmt.toml is found.
func LoadFor(dir string) (Config, error) {
	path, ok, err := Find(dir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(path)
}

// Encode writes cfg as TOML.
func Encode(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
