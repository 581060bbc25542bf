package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"svfmt/internal/diag"
	"svfmt/internal/format"
	"svfmt/internal/version"
)

// bump when DiskPayload or cacheKeyFields change
const diskCacheSchema uint16 = 2

// Digest keys one cached formatting result.
type Digest [32]byte

// DiskCache maps (tool version, language rules, options, content) to the
// formatted bytes and the parse diagnostics. Entries are written to a temp
// file and renamed into place, so concurrent writers never expose a partial
// entry.
type DiskCache struct {
	dir string
}

// DiskPayload is the cached result of formatting one input.
type DiskPayload struct {
	Schema      uint16            `msgpack:"s"`
	Key         Digest            `msgpack:"k"`
	Language    string            `msgpack:"l"`
	Formatted   []byte            `msgpack:"f"` // LF-normalised, without BOM
	Diagnostics []diag.Diagnostic `msgpack:"d"`
}

// OpenDiskCache opens <user cache dir>/<app>.
func OpenDiskCache(app string) (*DiskCache, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return nil, err
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) entriesDir() string { return filepath.Join(c.dir, "fmt") }

func (c *DiskCache) pathFor(key Digest) string {
	name := hex.EncodeToString(key[:])
	// две первые цифры — подкаталог, чтобы не раздувать один каталог
	return filepath.Join(c.entriesDir(), name[:2], name+".mp")
}

// Put stores payload under key. A nil cache ignores it.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	payload.Schema = diskCacheSchema
	payload.Key = key
	data, err := msgpack.Marshal(payload)
	if err != nil {
		return err
	}

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	_, werr := tmp.Write(data)
	cerr := tmp.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return nil
}

// Get loads the entry for key. Entries of another schema, or whose stored key
// differs, are misses.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	data, err := os.ReadFile(c.pathFor(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := msgpack.Unmarshal(data, out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchema && out.Key == key, nil
}

// Clean removes every entry and reports how many there were.
func (c *DiskCache) Clean() (int, error) {
	if c == nil {
		return 0, nil
	}
	n := 0
	err := filepath.WalkDir(c.entriesDir(), func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(d.Name()) == ".mp" {
			n++
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return 0, err
	}
	return n, os.RemoveAll(c.entriesDir())
}

// cacheKeyFields is everything a formatted result depends on.
type cacheKeyFields struct {
	Tool         string
	Language     string
	Rules        string
	IndentWidth  int
	UseTabs      bool
	MaxLineWidth int
	Content      [32]byte
}

var marshalKey = msgpack.Marshal

// cacheKey reports false when the key cannot be encoded; the file then
// bypasses the cache.
func cacheKey(lang Language, opts format.Options, contentHash [32]byte) (Digest, bool) {
	data, err := marshalKey(&cacheKeyFields{
		Tool:         version.Version,
		Language:     lang.Name,
		Rules:        lang.Table.Version,
		IndentWidth:  opts.IndentWidth,
		UseTabs:      opts.UseTabs,
		MaxLineWidth: opts.MaxLineWidth,
		Content:      contentHash,
	})
	if err != nil {
		return Digest{}, false
	}
	return sha256.Sum256(data), true
}
