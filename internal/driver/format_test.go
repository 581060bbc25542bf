package driver_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svfmt/internal/config"
	"svfmt/internal/diag"
	"svfmt/internal/driver"
	"svfmt/internal/format"
	"svfmt/internal/observ"
)

const (
	messy = "module  m (  a,b);endmodule"
	clean = "module m(a, b);\nendmodule\n"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFormatPathsWritesChangedFiles(t *testing.T) {
	dir := t.TempDir()
	sv := filepath.Join(dir, "m.sv")
	writeFile(t, sv, messy)
	writeFile(t, filepath.Join(dir, "notes.txt"), "not   source")

	results, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, sv, results[0].Path)
	assert.Equal(t, "systemverilog", results[0].Language)
	assert.NoError(t, results[0].Err)
	assert.True(t, results[0].Changed)
	assert.Equal(t, clean, readFile(t, sv))
	assert.Equal(t, "not   source", readFile(t, filepath.Join(dir, "notes.txt")))

	results, err = driver.FormatPaths(context.Background(), []string{sv}, driver.FormatOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.False(t, results[0].Changed, "second run must be a no-op")
}

func TestFormatPathsCheckLeavesFiles(t *testing.T) {
	dir := t.TempDir()
	sv := filepath.Join(dir, "m.sv")
	writeFile(t, sv, messy)

	results, err := driver.FormatPaths(context.Background(), []string{sv}, driver.FormatOptions{Check: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Changed)
	assert.Empty(t, results[0].Formatted)
	assert.Equal(t, messy, readFile(t, sv))
}

func TestFormatPathsDiff(t *testing.T) {
	dir := t.TempDir()
	sv := filepath.Join(dir, "m.sv")
	writeFile(t, sv, messy)

	results, err := driver.FormatPaths(context.Background(), []string{sv}, driver.FormatOptions{Check: true, Diff: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Changed)
	assert.Contains(t, results[0].Diff, "module m(a, b);")
	assert.Equal(t, messy, readFile(t, sv))
}

func TestFormatPathsRestoresLineEndings(t *testing.T) {
	dir := t.TempDir()
	sv := filepath.Join(dir, "m.sv")
	writeFile(t, sv, "\xEF\xBB\xBFmodule  m;\r\nendmodule\r\n")

	results, err := driver.FormatPaths(context.Background(), []string{sv}, driver.FormatOptions{Stdout: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "\xEF\xBB\xBFmodule m;\r\nendmodule\r\n", string(results[0].Formatted))
	assert.True(t, results[0].Changed)
}

func TestFormatPathsHonoursConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), "[format]\nindent_width = 2\n\n[files]\nexclude = [\"gen/\"]\n")
	sv := filepath.Join(dir, "rtl", "m.sv")
	writeFile(t, sv, "module m;\nwire a;\nendmodule\n")
	gen := filepath.Join(dir, "gen", "regs.sv")
	writeFile(t, gen, messy)

	results, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, sv, results[0].Path)
	assert.Equal(t, "module m;\n  wire a;\nendmodule\n", readFile(t, sv))
	assert.Equal(t, messy, readFile(t, gen))
}

func TestFormatPathsOverridesBeatConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), "[format]\nindent_width = 2\n")
	sv := filepath.Join(dir, "m.sv")
	writeFile(t, sv, "module m;\nwire a;\nendmodule\n")

	tabs := true
	results, err := driver.FormatPaths(context.Background(), []string{sv}, driver.FormatOptions{
		Stdout:    true,
		Overrides: driver.Overrides{UseTabs: &tabs},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "module m;\n\twire a;\nendmodule\n", string(results[0].Formatted))
}

func TestFormatPathsBadConfigIsPerFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, config.FileName), "[format]\nindent_width = 40\n")
	sv := filepath.Join(dir, "m.sv")
	writeFile(t, sv, messy)

	results, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, format.ErrConfig)
	assert.Equal(t, messy, readFile(t, sv))
}

func TestFormatPathsInvalidOverride(t *testing.T) {
	dir := t.TempDir()
	sv := filepath.Join(dir, "m.sv")
	writeFile(t, sv, messy)

	width := -1
	results, err := driver.FormatPaths(context.Background(), []string{sv}, driver.FormatOptions{
		Overrides: driver.Overrides{MaxLineWidth: &width},
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.ErrorIs(t, results[0].Err, format.ErrConfig)
	assert.Equal(t, messy, readFile(t, sv))
}

func TestFormatPathsKeepsErrorRegions(t *testing.T) {
	dir := t.TempDir()
	sv := filepath.Join(dir, "m.sv")
	writeFile(t, sv, "module m;\nassign   =  ;\nwire   w;\nendmodule\n")

	results, err := driver.FormatPaths(context.Background(), []string{sv}, driver.FormatOptions{Verify: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "module m;\n    assign   =  ;\n    wire w;\nendmodule\n", readFile(t, sv))
	require.Len(t, results[0].Diagnostics, 1)
	assert.Equal(t, diag.SynUnparseable, results[0].Diagnostics[0].Code)
	assert.NotNil(t, results[0].Files)
}

func TestFormatPathsC(t *testing.T) {
	dir := t.TempDir()
	c := filepath.Join(dir, "main.c")
	writeFile(t, c, "int   main(void){return 0;}")

	results, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{Stdout: true})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c", results[0].Language)
	assert.Equal(t, "int main(void) {\n    return 0;\n}\n", string(results[0].Formatted))
}

func TestFormatPathsNoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "x")
	writeFile(t, filepath.Join(dir, ".hidden", "h.sv"), messy)

	_, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{})
	assert.EqualError(t, err, "format: no source files found")
}

func TestFormatPathsCache(t *testing.T) {
	dir := t.TempDir()
	sv := filepath.Join(dir, "m.sv")
	writeFile(t, sv, "module m;\nassign   =  ;\nendmodule\n")
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	require.NoError(t, err)

	opts := driver.FormatOptions{Stdout: true, Cache: cache}
	first, err := driver.FormatPaths(context.Background(), []string{sv}, opts)
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.False(t, first[0].Cached)

	second, err := driver.FormatPaths(context.Background(), []string{sv}, opts)
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.True(t, second[0].Cached)
	assert.Equal(t, first[0].Formatted, second[0].Formatted)
	assert.Equal(t, first[0].Diagnostics, second[0].Diagnostics)

	width := 4
	opts.Overrides.IndentWidth = &width
	opts.Overrides.MaxLineWidth = &width
	third, err := driver.FormatPaths(context.Background(), []string{sv}, opts)
	require.NoError(t, err)
	assert.False(t, third[0].Cached, "options are part of the key")

	removed, err := cache.Clean()
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	fourth, err := driver.FormatPaths(context.Background(), []string{sv}, driver.FormatOptions{Stdout: true, Cache: cache})
	require.NoError(t, err)
	assert.False(t, fourth[0].Cached)
}

type recordingSink struct {
	mu     sync.Mutex
	events []driver.Event
}

func (s *recordingSink) OnEvent(ev driver.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
}

func (s *recordingSink) has(file string, stage driver.Stage, status driver.Status) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range s.events {
		if ev.File == file && ev.Stage == stage && ev.Status == status {
			return true
		}
	}
	return false
}

func TestFormatPathsProgressAndTimings(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for _, name := range []string{"a.sv", "b.sv", "c.sv"} {
		p := filepath.Join(dir, name)
		writeFile(t, p, messy)
		paths = append(paths, p)
	}
	sink := &recordingSink{}
	timer := observ.NewTimer()

	results, err := driver.FormatPaths(context.Background(), []string{dir}, driver.FormatOptions{Jobs: 2, Progress: sink, Timer: timer})
	require.NoError(t, err)
	require.Len(t, results, 3)
	for i, p := range paths {
		assert.Equal(t, p, results[i].Path)
		assert.True(t, sink.has(p, driver.StageParse, driver.StatusQueued))
		assert.True(t, sink.has(p, driver.StageParse, driver.StatusDone))
		assert.True(t, sink.has(p, driver.StageRender, driver.StatusDone))
		assert.True(t, sink.has(p, driver.StageWrite, driver.StatusDone))
	}

	names := map[string]int{}
	for _, ph := range timer.Report().Phases {
		names[ph.Name] = ph.Count
	}
	assert.Contains(t, names, "collect")
	assert.Contains(t, names, "format")
	assert.Equal(t, 3, names["parse"])
	assert.Equal(t, 3, names["write"])
}

func TestFormatPathsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := driver.FormatPaths(ctx, []string{t.TempDir()}, driver.FormatOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFormatBytes(t *testing.T) {
	res := driver.FormatBytes(context.Background(), "<stdin>", []byte(messy), driver.FormatOptions{Diff: true})
	require.NoError(t, res.Err)
	assert.Equal(t, "systemverilog", res.Language)
	assert.Equal(t, clean, string(res.Formatted))
	assert.True(t, res.Changed)
	assert.NotEmpty(t, res.Diff)

	cfg := config.Default()
	cfg.Format.IndentWidth = 3
	res = driver.FormatBytes(context.Background(), "x.c", []byte("int f(void){return 1;}"), driver.FormatOptions{Config: &cfg})
	require.NoError(t, res.Err)
	assert.Equal(t, "int f(void) {\n   return 1;\n}\n", string(res.Formatted))
}

func TestLanguageFor(t *testing.T) {
	for _, tc := range []struct {
		path string
		want string
		ok   bool
	}{
		{"a.sv", "systemverilog", true},
		{"A.SVH", "systemverilog", true},
		{"b.v", "systemverilog", true},
		{"c.h", "c", true},
		{"d.txt", "", false},
		{"Makefile", "", false},
	} {
		lang, ok := driver.LanguageFor(tc.path)
		assert.Equal(t, tc.ok, ok, tc.path)
		assert.Equal(t, tc.want, lang.Name, tc.path)
	}
	assert.Equal(t, []string{".c", ".h", ".sv", ".svh", ".v", ".vh"}, driver.Extensions())
}

func TestFormatBytesDetectsLanguage(t *testing.T) {
	res := driver.FormatBytes(context.Background(), "<stdin>", []byte("#include <stdio.h>\nint   main(void){return 0;}"), driver.FormatOptions{})
	require.NoError(t, res.Err)
	assert.Equal(t, "c", res.Language)
	assert.Equal(t, "#include <stdio.h>\nint main(void) {\n    return 0;\n}\n", string(res.Formatted))
}
