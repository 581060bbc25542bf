package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"svfmt/internal/config"
)

// configCache resolves the svfmt.toml for each directory once.
type configCache struct {
	fixed *config.Config

	mu    sync.Mutex
	byDir map[string]configEntry
}

type configEntry struct {
	cfg config.Config
	err error
}

func newConfigCache(fixed *config.Config) *configCache {
	return &configCache{fixed: fixed, byDir: make(map[string]configEntry)}
}

func (c *configCache) forFile(path string) (config.Config, error) {
	if c.fixed != nil {
		return *c.fixed, nil
	}
	dir := filepath.Dir(path)
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.byDir[dir]; ok {
		return e.cfg, e.err
	}
	cfg, err := config.LoadFor(dir)
	c.byDir[dir] = configEntry{cfg: cfg, err: err}
	return cfg, err
}

// collectSourceFiles expands paths into a sorted, de-duplicated file list.
// Files named explicitly are always taken; files found by walking a
// directory must have a known extension and must not be excluded by their
// config. Hidden directories are skipped.
func collectSourceFiles(ctx context.Context, paths []string, cfgs *configCache) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	addFile := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			if _, ok := LanguageFor(p); ok {
				addFile(p)
			}
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if _, ok := LanguageFor(path); !ok {
				return nil
			}
			// ошибку конфига покажет formatFile для этого файла
			if cfg, err := cfgs.forFile(path); err == nil && cfg.Excluded(path) {
				return nil
			}
			addFile(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}
